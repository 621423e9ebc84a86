package endpoints

import (
	"errors"
	"fmt"
	"net/url"
	"sort"

	"gopkg.in/yaml.v3"
)

// ErrEndpointNotFound is returned when no URL is registered under the requested name.
var ErrEndpointNotFound = errors.New("endpoint not found")

// Registry maps handler names to pre-signed workflow endpoint URLs.
// It is immutable once built.
type Registry struct {
	urls map[string]string
}

// File is the on-disk layout of an endpoints file:
//
//	endpoints:
//	  order:
//	    url: https://prod-21.example.logic.azure.com/workflows/.../invoke?sig=...
//	  inventory:
//	    url: https://...
type File struct {
	Endpoints map[string]Endpoint `yaml:"endpoints"`
}

type Endpoint struct {
	URL string `yaml:"url"`
}

// NewRegistry validates urls and builds a Registry. Empty URLs are skipped.
func NewRegistry(urls map[string]string) (*Registry, error) {
	r := &Registry{urls: make(map[string]string, len(urls))}
	for name, raw := range urls {
		if raw == "" {
			continue
		}
		if err := validateURL(raw); err != nil {
			return nil, fmt.Errorf("endpoint %q: %w", name, err)
		}
		r.urls[name] = raw
	}
	return r, nil
}

// Parse decodes an endpoints YAML document.
func Parse(data []byte) (*Registry, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse endpoints file: %w", err)
	}
	urls := make(map[string]string, len(f.Endpoints))
	for name, ep := range f.Endpoints {
		urls[name] = ep.URL
	}
	return NewRegistry(urls)
}

// Resolve returns the URL registered for name.
func (r *Registry) Resolve(name string) (string, error) {
	if r != nil {
		if u, ok := r.urls[name]; ok {
			return u, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrEndpointNotFound, name)
}

// Names returns the registered endpoint names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.urls))
	for name := range r.urls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid url scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("url has no host")
	}
	return nil
}

// signatureParams are query parameters that carry endpoint credentials.
var signatureParams = []string{"sig", "signature", "code"}

// Redact masks credential query parameters so a URL can be logged.
func Redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "REDACTED"
	}
	q := u.Query()
	changed := false
	for _, p := range signatureParams {
		if q.Has(p) {
			q.Set(p, "REDACTED")
			changed = true
		}
	}
	if changed {
		u.RawQuery = q.Encode()
	}
	return u.String()
}
