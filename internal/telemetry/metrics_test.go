package telemetry_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitflix/gitflix/internal/telemetry"
)

func TestRecordersAreNilSafe(t *testing.T) {
	var m *telemetry.Metrics
	require.NotPanics(t, func() {
		m.RecordFrameEncoded("raw")
		m.RecordFrameDecoded("delta")
		m.RecordCacheLookup(true)
		m.SetQueueDepth(3)
		m.RecordPipelineError("decode")
	})
}

func TestHandlerServesRecordedCounters(t *testing.T) {
	m := telemetry.New()
	m.RecordFrameEncoded("raw")
	m.RecordFrameEncoded("delta")
	m.RecordFrameEncoded("delta")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.True(t, strings.Contains(body, `gitflix_frames_encoded_total{compression_type="raw"} 1`))
	require.True(t, strings.Contains(body, `gitflix_frames_encoded_total{compression_type="delta"} 2`))
}
