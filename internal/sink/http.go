package sink

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/aparnaratheesh55/sunbird-cb-ext/internal/telemetry"
)

// maxResponseBodySize caps how much of an error response is read back for
// logging
const maxResponseBodySize = 4096

// HTTPSink posts telemetry events directly to a telemetry collector
// endpoint instead of a queue. Selected via TELEMETRY_SINK=http.
type HTTPSink struct {
	url       string
	authToken string
	client    *http.Client
	logger    *zap.Logger
}

// NewHTTPSink creates an HTTPSink posting to baseURL+endpoint. authToken,
// when non-empty, is sent as a bearer token.
func NewHTTPSink(baseURL, endpoint, authToken string, logger *zap.Logger) *HTTPSink {
	return &HTTPSink{
		url:       baseURL + endpoint,
		authToken: authToken,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Publish POSTs the event as JSON. The topic is advisory on this path; the
// collector endpoint is fixed by configuration.
func (s *HTTPSink) Publish(topic string, event *telemetry.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal telemetry event: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create telemetry request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.authToken)
	}

	startTime := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("telemetry POST failed: %w", err)
	}
	defer resp.Body.Close()

	latencyMs := time.Since(startTime).Milliseconds()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
		return fmt.Errorf("telemetry POST returned status %d: %s", resp.StatusCode, string(respBody))
	}

	s.logger.Debug("Posted telemetry event",
		zap.String("topic", topic),
		zap.String("mid", event.MID),
		zap.Int("status", resp.StatusCode),
		zap.Int64("latency_ms", latencyMs),
	)
	return nil
}
