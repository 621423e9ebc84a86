package hostbridge

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/OpenNSW/formflow/internal/form"
	"github.com/OpenNSW/formflow/internal/handler"
)

// FormEventResponse is returned by the form event endpoint
type FormEventResponse struct {
	Success      bool   `json:"success"`
	InvocationID string `json:"invocationId,omitempty"`
	State        string `json:"state,omitempty"`
	Error        string `json:"error,omitempty"`
}

// handleFormEvent invokes a handler for the record described in the request body.
// An empty body is accepted; handlers that need an identifier reject it themselves.
func (s *Server) handleFormEvent(c *gin.Context) {
	ctx := c.Request.Context()

	t, err := handler.ParseType(c.Param("handler"))
	if err != nil {
		writeJSONError(c, http.StatusNotFound, err.Error())
		return
	}
	h, ok := s.handlers[t]
	if !ok {
		writeJSONError(c, http.StatusNotFound, "handler not configured: "+string(t))
		return
	}

	var fc form.StaticContext
	if err := c.ShouldBindJSON(&fc); err != nil && !errors.Is(err, io.EOF) {
		writeJSONError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	inv, err := h.Invoke(ctx, handler.BasicHost{Context: fc, Notifier: s.inbox})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, form.ErrMissingIdentifier) {
			status = http.StatusUnprocessableEntity
		} else {
			slog.ErrorContext(ctx, "failed to invoke form handler",
				"handler", t,
				"error", err)
		}
		resp := FormEventResponse{Success: false, Error: err.Error()}
		if inv != nil {
			resp.InvocationID = inv.ID.String()
			resp.State = string(inv.State())
		}
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusAccepted, FormEventResponse{
		Success:      true,
		InvocationID: inv.ID.String(),
		State:        string(inv.State()),
	})
}

// handleNotifications drains the inbox.
func (s *Server) handleNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"notifications": s.inbox.Drain(),
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) handleMetrics(c *gin.Context) {
	promhttp.Handler().ServeHTTP(c.Writer, c.Request)
}

func writeJSONError(c *gin.Context, status int, message string) {
	c.JSON(status, FormEventResponse{
		Success: false,
		Error:   message,
	})
}
