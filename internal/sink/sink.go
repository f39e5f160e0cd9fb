// Package sink provides the outbound telemetry publish paths.
package sink

import (
	"github.com/aparnaratheesh55/sunbird-cb-ext/internal/telemetry"
)

// EventSink publishes a telemetry event, keyed by topic. Fire-and-forget
// from the caller's perspective: delivery guarantees beyond the publish
// call belong to the substrate. Implementations must be safe for
// concurrent use.
type EventSink interface {
	Publish(topic string, event *telemetry.Event) error
}
