package hostbridge

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenNSW/formflow/internal/config"
	"github.com/OpenNSW/formflow/internal/endpoints"
	"github.com/OpenNSW/formflow/internal/eventloop"
	"github.com/OpenNSW/formflow/internal/handler"
	"github.com/OpenNSW/formflow/internal/logging"
	"github.com/OpenNSW/formflow/internal/notify"
	"github.com/OpenNSW/formflow/internal/transport"
)

func TestMain(m *testing.M) {
	slog.SetDefault(logging.NewNop())
	os.Exit(m.Run())
}

var testCORS = config.CORSConfig{
	AllowedOrigins: []string{"http://localhost:3000"},
	AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	AllowedHeaders: []string{"Content-Type"},
}

type notificationsResponse struct {
	Notifications []Entry `json:"notifications"`
}

// setupServer wires a bridge whose order endpoint is a local test server answering with
// status and body. The inventory endpoint is left unconfigured.
func setupServer(t *testing.T, status int, body string) (*Server, *Inbox) {
	t.Helper()
	flow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(flow.Close)

	loop := eventloop.New()
	t.Cleanup(loop.Close)

	registry, err := endpoints.NewRegistry(map[string]string{endpoints.NameOrder: flow.URL})
	require.NoError(t, err)

	deps := handler.Deps{Sender: transport.NewClient(nil), Scheduler: loop}
	factory := handler.NewFactory(registry, deps, config.HandlersConfig{OrderNotifyPending: false})

	inbox := NewInbox(10)
	srv, err := NewServer(factory, inbox, testCORS)
	require.NoError(t, err)
	return srv, inbox
}

func doRequest(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleFormEvent(t *testing.T) {
	t.Run("Accepted and notified", func(t *testing.T) {
		srv, inbox := setupServer(t, http.StatusOK, "ok")

		rec := doRequest(srv, http.MethodPost, "/api/forms/order/events", `{"entityId":"{abc}","userId":"{u1}"}`)
		require.Equal(t, http.StatusAccepted, rec.Code)

		var resp FormEventResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.InvocationID)

		require.Eventually(t, func() bool { return inbox.Len() == 1 }, 5*time.Second, 10*time.Millisecond)

		rec = doRequest(srv, http.MethodGet, "/api/notifications", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var got notificationsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got.Notifications, 1)
		assert.Equal(t, notify.LevelSuccess, got.Notifications[0].Level)
		assert.Equal(t, handler.OrderMessages.Success, got.Notifications[0].Message)
		assert.NotEmpty(t, got.Notifications[0].ID)
		assert.Equal(t, 0, inbox.Len())
	})

	t.Run("Workflow error body reaches notification", func(t *testing.T) {
		srv, inbox := setupServer(t, http.StatusBadRequest, "ERR123")

		rec := doRequest(srv, http.MethodPost, "/api/forms/order/events", `{"entityId":"{abc}","userId":"{u1}"}`)
		require.Equal(t, http.StatusAccepted, rec.Code)

		require.Eventually(t, func() bool { return inbox.Len() == 1 }, 5*time.Second, 10*time.Millisecond)
		entries := inbox.Drain()
		assert.Equal(t, notify.LevelError, entries[0].Level)
		assert.Equal(t, "Order creation failed: ERR123", entries[0].Message)
	})

	t.Run("Missing identifier", func(t *testing.T) {
		srv, inbox := setupServer(t, http.StatusOK, "ok")

		rec := doRequest(srv, http.MethodPost, "/api/forms/order/events", `{"entityId":"","userId":"{u1}"}`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var resp FormEventResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, string(handler.StateAborted), resp.State)

		require.Eventually(t, func() bool { return inbox.Len() == 1 }, 5*time.Second, 10*time.Millisecond)
		assert.Equal(t, handler.MsgContactNotFound, inbox.Drain()[0].Message)
	})

	t.Run("Empty body", func(t *testing.T) {
		srv, _ := setupServer(t, http.StatusOK, "ok")

		rec := doRequest(srv, http.MethodPost, "/api/forms/order/events", "")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("Malformed body", func(t *testing.T) {
		srv, _ := setupServer(t, http.StatusOK, "ok")

		rec := doRequest(srv, http.MethodPost, "/api/forms/order/events", `{"entityId":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Unknown handler", func(t *testing.T) {
		srv, _ := setupServer(t, http.StatusOK, "ok")

		rec := doRequest(srv, http.MethodPost, "/api/forms/refund/events", `{}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Handler without endpoint", func(t *testing.T) {
		srv, _ := setupServer(t, http.StatusOK, "ok")

		rec := doRequest(srv, http.MethodPost, "/api/forms/inventory/events", `{}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHealthAndMetrics(t *testing.T) {
	srv, _ := setupServer(t, http.StatusOK, "ok")

	rec := doRequest(srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec = doRequest(srv, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "formflow_")
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := setupServer(t, http.StatusOK, "ok")

	req := httptest.NewRequest(http.MethodOptions, "/api/forms/order/events", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewServer_NoEndpoints(t *testing.T) {
	loop := eventloop.New()
	defer loop.Close()
	registry, err := endpoints.NewRegistry(nil)
	require.NoError(t, err)

	factory := handler.NewFactory(registry, handler.Deps{Sender: transport.NewClient(nil), Scheduler: loop}, config.HandlersConfig{})
	_, err = NewServer(factory, NewInbox(1), testCORS)
	assert.Error(t, err)
}

func TestInbox(t *testing.T) {
	t.Run("Drops oldest when full", func(t *testing.T) {
		inbox := NewInbox(2)
		ctx := context.Background()
		_, err := inbox.AddGlobalNotification(ctx, notify.New(notify.LevelInfo, "first"))
		require.NoError(t, err)
		_, err = inbox.AddGlobalNotification(ctx, notify.New(notify.LevelInfo, "second"))
		require.NoError(t, err)
		_, err = inbox.AddGlobalNotification(ctx, notify.New(notify.LevelInfo, "third"))
		require.NoError(t, err)

		entries := inbox.Drain()
		require.Len(t, entries, 2)
		assert.Equal(t, "second", entries[0].Message)
		assert.Equal(t, "third", entries[1].Message)
	})

	t.Run("Unique ids", func(t *testing.T) {
		inbox := NewInbox(5)
		a, _ := inbox.AddGlobalNotification(context.Background(), notify.New(notify.LevelInfo, "a"))
		b, _ := inbox.AddGlobalNotification(context.Background(), notify.New(notify.LevelInfo, "a"))
		assert.NotEqual(t, a, b)
	})

	t.Run("Drain empty", func(t *testing.T) {
		entries := NewInbox(1).Drain()
		assert.NotNil(t, entries)
		assert.Empty(t, entries)
	})
}
