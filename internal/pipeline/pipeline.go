// Package pipeline implements the work-order enrichment pipeline: it
// consumes change notifications, enriches the work order with its
// allocations, refreshes the user-to-work-order mapping index, redacts
// personal fields and publishes the canonical telemetry event.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/aparnaratheesh55/sunbird-cb-ext/internal/config"
	"github.com/aparnaratheesh55/sunbird-cb-ext/internal/consumer"
	"github.com/aparnaratheesh55/sunbird-cb-ext/internal/models"
	"github.com/aparnaratheesh55/sunbird-cb-ext/internal/rabbitmq"
	"github.com/aparnaratheesh55/sunbird-cb-ext/internal/redact"
	"github.com/aparnaratheesh55/sunbird-cb-ext/internal/sink"
	"github.com/aparnaratheesh55/sunbird-cb-ext/internal/telemetry"
)

// RecordStore is the read side of the work-order storage.
// FindWorkOrderByID returns (nil, nil) when the work order is absent.
type RecordStore interface {
	FindWorkOrderByID(id string) (*models.WorkOrderRecord, error)
	FindWorkAllocationsByIDIn(ids []string) ([]models.WorkAllocationRecord, error)
}

// MappingStore is the write side of the derived mapping index. UpsertAll
// must be idempotent.
type MappingStore interface {
	UpsertAll(rows []models.UserWorkOrderMapping) error
}

// Pipeline consumes notifications from the partition queues and processes
// each one synchronously within its partition worker. It maintains no
// cross-message state; all shared clients are thread-safe by contract.
type Pipeline struct {
	cfg      *config.PipelineConfig
	topic    string
	conn     *rabbitmq.Connection
	records  RecordStore
	mappings MappingStore
	sink     sink.EventSink
	redactor *redact.Redactor
	builder  *telemetry.Builder
	reporter ErrorReporter
	logger   *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	tagBase  string
	started  atomic.Bool
}

// NewPipeline creates a pipeline instance with dependencies
func NewPipeline(
	cfg *config.PipelineConfig,
	topic string,
	conn *rabbitmq.Connection,
	records RecordStore,
	mappings MappingStore,
	eventSink sink.EventSink,
	redactor *redact.Redactor,
	builder *telemetry.Builder,
	reporter ErrorReporter,
	logger *zap.Logger,
) *Pipeline {
	ctx, cancel := context.WithCancel(context.Background())
	return &Pipeline{
		cfg:      cfg,
		topic:    topic,
		conn:     conn,
		records:  records,
		mappings: mappings,
		sink:     eventSink,
		redactor: redactor,
		builder:  builder,
		reporter: reporter,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		tagBase:  fmt.Sprintf("workorder-enricher-%d", time.Now().Unix()),
	}
}

// Start registers one consumer per partition queue. Each partition is
// drained by a dedicated goroutine in delivery order; no ordering exists
// across partitions.
func (p *Pipeline) Start() error {
	if p.cfg.SourceQueue == "" {
		return fmt.Errorf("source queue is required")
	}
	if p.topic == "" {
		return fmt.Errorf("telemetry topic is required")
	}

	if err := p.conn.SetQoS(p.cfg.PrefetchCount); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	for partition, queue := range p.cfg.PartitionQueues() {
		if err := p.startConsuming(queue, partition); err != nil {
			return err
		}
	}

	p.started.Store(true)
	p.logger.Info("Pipeline started and consuming messages",
		zap.String("source_queue", p.cfg.SourceQueue),
		zap.Int("partitions", p.cfg.PartitionCount),
		zap.String("telemetry_topic", p.topic),
	)
	return nil
}

// startConsuming starts consuming messages from one partition queue
func (p *Pipeline) startConsuming(queue string, partition int) error {
	tag := fmt.Sprintf("%s-%d", p.tagBase, partition)

	messages, err := p.conn.ConsumeMessages(queue, tag)
	if err != nil {
		return fmt.Errorf("failed to start consuming from queue %s (queue may not exist): %w", queue, err)
	}

	p.logger.Info("Partition consumer registered",
		zap.String("queue", queue),
		zap.String("consumer_tag", tag),
	)

	go p.processMessages(queue, partition, messages)

	return nil
}

// Stop gracefully stops the pipeline. In-flight messages finish before
// their worker exits.
func (p *Pipeline) Stop() error {
	p.logger.Info("Stopping pipeline",
		zap.String("source_queue", p.cfg.SourceQueue),
	)
	p.started.Store(false)
	p.cancel()

	if p.conn != nil {
		if ch := p.conn.GetChannel(); ch != nil {
			for partition := 0; partition < p.cfg.PartitionCount; partition++ {
				tag := fmt.Sprintf("%s-%d", p.tagBase, partition)
				if err := ch.Cancel(tag, false); err != nil {
					p.logger.Error("Failed to cancel consumer",
						zap.String("consumer_tag", tag),
						zap.Error(err),
					)
				}
			}
		}
	}

	p.logger.Info("Pipeline stopped")
	return nil
}

// processMessages drains one partition queue until shutdown, restarting the
// consumer if the delivery channel closes underneath it
func (p *Pipeline) processMessages(queue string, partition int, messages <-chan amqp.Delivery) {
	for {
		select {
		case <-p.ctx.Done():
			p.logger.Info("Pipeline context cancelled, stopping partition worker",
				zap.String("queue", queue),
			)
			return
		case msg, ok := <-messages:
			if !ok {
				p.logger.Warn("Message channel closed, attempting to restart partition consumer...",
					zap.String("queue", queue),
				)
				for p.started.Load() {
					select {
					case <-p.ctx.Done():
						return
					default:
					}

					time.Sleep(2 * time.Second)

					if !p.conn.IsHealthy() {
						p.logger.Debug("Connection not healthy yet, waiting...",
							zap.String("queue", queue),
						)
						continue
					}

					if err := p.startConsuming(queue, partition); err != nil {
						p.logger.Error("Failed to restart partition consumer, will retry",
							zap.String("queue", queue),
							zap.Error(err),
						)
						time.Sleep(5 * time.Second)
						continue
					}

					// A replacement goroutine is now draining this queue
					p.logger.Info("Restarted partition consumer after channel close",
						zap.String("queue", queue),
					)
					return
				}
				return
			}
			consumer.ProcessMessage(p.logger, queue, msg, p)
		}
	}
}

// HandleEvent implements consumer.EventHandler for one notification. It
// never returns an error: every failure is logged (or reported on the side
// channel) and the message is dropped, so one bad message cannot stall the
// partition.
func (p *Pipeline) HandleEvent(body []byte) error {
	var notification models.WorkOrderNotification
	if err := json.Unmarshal(body, &notification); err != nil {
		p.logger.Error("Malformed work order notification, dropping",
			zap.Error(err),
		)
		return nil
	}
	if notification.WorkOrderID == "" {
		p.logger.Error("Work order notification without workorderId, dropping")
		return nil
	}

	p.handle(notification.WorkOrderID)
	return nil
}

// handle runs the enrichment flow for one work order id
func (p *Pipeline) handle(workOrderID string) {
	logger := p.logger.With(zap.String("work_order_id", workOrderID))

	record, err := p.records.FindWorkOrderByID(workOrderID)
	if err != nil {
		logger.Error("Failed to load work order", zap.Error(err))
		return
	}
	if record == nil {
		// Normal outcome for late or out-of-order notifications
		logger.Info("Work order not found, skipping")
		return
	}

	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(record.Data), &doc); err != nil {
		logger.Error("Malformed work order document, dropping", zap.Error(err))
		return
	}

	if userIDs := docStringSlice(doc, "userIds"); len(userIDs) > 0 {
		allocations, ok := p.enrichWithAllocations(doc, userIDs, logger)
		if !ok {
			return
		}
		p.refreshMappings(doc, allocations, logger)
	}

	redacted := p.redactor.Redact(doc)
	event := p.builder.Build(redacted)

	if err := p.sink.Publish(p.topic, event); err != nil {
		logger.Error("Failed to publish telemetry event",
			zap.String("mid", event.MID),
			zap.Error(err),
		)
		return
	}

	logger.Info("Published telemetry event",
		zap.String("mid", event.MID),
		zap.String("state", event.EData.State),
	)
}

// enrichWithAllocations loads the allocations for userIDs and sets "users"
// on the document. Per-record parse failures are logged and skipped; a
// failed batch lookup aborts the run (false return).
func (p *Pipeline) enrichWithAllocations(
	doc map[string]interface{},
	userIDs []string,
	logger *zap.Logger,
) ([]models.WorkAllocation, bool) {
	records, err := p.records.FindWorkAllocationsByIDIn(userIDs)
	if err != nil {
		logger.Error("Failed to load work allocations", zap.Error(err))
		return nil, false
	}

	allocations := make([]models.WorkAllocation, 0, len(records))
	users := make([]interface{}, 0, len(records))
	for _, record := range records {
		var alloc models.WorkAllocation
		if err := json.Unmarshal([]byte(record.Data), &alloc); err != nil {
			logger.Error("Malformed work allocation document, skipping record",
				zap.String("work_allocation_record_id", record.ID),
				zap.Error(err),
			)
			continue
		}

		// Embed the raw document so unknown allocation fields survive into
		// the event payload; redaction runs on the merged document later
		var allocDoc map[string]interface{}
		if err := json.Unmarshal([]byte(record.Data), &allocDoc); err != nil {
			continue
		}

		allocations = append(allocations, alloc)
		users = append(users, allocDoc)
	}

	if len(users) > 0 {
		doc["users"] = users
	}
	return allocations, true
}

// refreshMappings projects and upserts the mapping index rows. Failures go
// to the side channel only: index staleness is tolerated, holding back the
// telemetry event is not.
func (p *Pipeline) refreshMappings(
	doc map[string]interface{},
	allocations []models.WorkAllocation,
	logger *zap.Logger,
) {
	rows := ProjectMappings(doc, allocations)
	if len(rows) == 0 {
		return
	}

	if err := p.mappings.UpsertAll(rows); err != nil {
		p.reporter.Report("mapping_upsert", err,
			zap.String("work_order_id", docString(doc, "id")),
			zap.Int("row_count", len(rows)),
		)
		return
	}

	logger.Info("Refreshed user work order mappings",
		zap.Int("row_count", len(rows)),
	)
}
