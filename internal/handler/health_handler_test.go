package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakePinger struct {
	err error
}

func (f fakePinger) PingContext(context.Context) error { return f.err }

func TestHealthHandlerReady(t *testing.T) {
	h := NewHealthHandler(fakePinger{}, nil, nil)
	c, rec := newTestContext(http.MethodGet, "/ready", "")
	h.Ready(c)
	assert.Equal(t, http.StatusOK, rec.Code)

	h = NewHealthHandler(fakePinger{err: errors.New("connection refused")}, nil, nil)
	c, rec = newTestContext(http.MethodGet, "/ready", "")
	h.Ready(c)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unavailable", decodeBody(t, rec)["status"])
}

func TestHealthHandlerHealthAndMetrics(t *testing.T) {
	h := NewHealthHandler(nil, nil, nil)

	c, rec := newTestContext(http.MethodGet, "/health", "")
	h.Health(c)
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newTestContext(http.MethodGet, "/metrics", "")
	h.Prometheus(c)
	c.Writer.WriteHeaderNow() // gin's engine flushes the status after handlers return
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	h = NewHealthHandler(nil, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("up 1\n"))
	}), nil)
	c, rec = newTestContext(http.MethodGet, "/metrics", "")
	h.Prometheus(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "up 1\n", rec.Body.String())
}
