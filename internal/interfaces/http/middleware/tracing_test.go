package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	prev := otel.GetTracerProvider()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	otel.SetTracerProvider(tp)

	t.Cleanup(func() {
		_ = tp.Shutdown(t.Context())
		otel.SetTracerProvider(prev)
	})
	return sr
}

func newTracedRouter(status int) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), Tracing(TracingConfig{ServiceName: "stockroom-test", Enabled: true}), SpanErrorMarker())
	router.GET("/api/v1/products/:id", func(c *gin.Context) {
		c.Status(status)
	})
	return router
}

func spanAttr(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracing_Disabled(t *testing.T) {
	sr := setupTestTracer(t)

	router := gin.New()
	router.Use(Tracing(TracingConfig{Enabled: false}))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	w := serve(router, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, sr.Ended())
}

func TestTracing_RecordsRequestSpan(t *testing.T) {
	sr := setupTestTracer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/7", nil)
	req.Header.Set(RequestIDHeader, "req-span")
	w := serve(newTracedRouter(http.StatusOK), req)
	require.Equal(t, http.StatusOK, w.Code)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Contains(t, spans[0].Name(), "/api/v1/products/:id")

	v, ok := spanAttr(spans[0], "request_id")
	require.True(t, ok)
	assert.Equal(t, "req-span", v.AsString())
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)
}

func TestSpanErrorMarker(t *testing.T) {
	tests := []struct {
		status  int
		message string
	}{
		{http.StatusBadRequest, "Client Error"},
		{http.StatusNotFound, "Not Found"},
		{http.StatusUnprocessableEntity, "Invalid State"},
		{http.StatusTooManyRequests, "Rate Limited"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			sr := setupTestTracer(t)

			serve(newTracedRouter(tt.status), httptest.NewRequest(http.MethodGet, "/api/v1/products/1", nil))

			spans := sr.Ended()
			require.Len(t, spans, 1)
			assert.Equal(t, codes.Error, spans[0].Status().Code)
			assert.Equal(t, tt.message, spans[0].Status().Description)
		})
	}
}

func TestSpanErrorMarker_ServerError(t *testing.T) {
	sr := setupTestTracer(t)

	serve(newTracedRouter(http.StatusInternalServerError), httptest.NewRequest(http.MethodGet, "/api/v1/products/1", nil))

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	v, ok := spanAttr(spans[0], "http.status_code")
	require.True(t, ok)
	assert.Equal(t, int64(http.StatusInternalServerError), v.AsInt64())
}

func TestSpanErrorMarker_WithoutSpan(t *testing.T) {
	router := gin.New()
	router.Use(SpanErrorMarker())
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})

	assert.NotPanics(t, func() {
		w := serve(router, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
