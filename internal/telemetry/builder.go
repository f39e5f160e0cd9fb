package telemetry

import (
	"encoding/json"

	"github.com/aparnaratheesh55/sunbird-cb-ext/internal/utils"
)

// Builder maps enriched, redacted work-order documents into telemetry
// events. Safe for concurrent use.
type Builder struct {
	envID string
}

// NewBuilder creates a Builder. envID is the configured telemetry
// environment id carried in context.pdata.id.
func NewBuilder(envID string) *Builder {
	return &Builder{envID: envID}
}

// Build constructs a fresh event from the document. Pure mapping, no I/O.
// Every input field is optional: a missing field becomes empty in the
// output, never an error. A missing or non-numeric updatedAt yields ets 0,
// marking that the source carried no timestamp.
//
// The actor id is the work-order id rather than an acting user. That
// mirrors the upstream producer's contract; downstream consumers depend on
// it, so do not change it without confirming with the system of record.
func (b *Builder) Build(doc map[string]interface{}) *Event {
	return &Event{
		EID: EventID,
		ETS: int64Field(doc, "updatedAt"),
		Ver: EventVersion,
		MID: utils.NewMessageID(MessageIDPrefix),
		Actor: Actor{
			ID:   stringField(doc, "id"),
			Type: ActorTypeUser,
		},
		Context: Context{
			Channel: stringField(doc, "deptId"),
			Env:     EnvWorkAllocation,
			Pdata: Pdata{
				ID:  b.envID,
				PID: PdataPID,
				Ver: PdataVersion,
			},
		},
		Object: Object{
			ID:   stringField(doc, "id"),
			Type: ObjectTypeWorkOrder,
		},
		EData: EData{
			State: stringField(doc, "status"),
			Props: PropertyNames,
			CbObject: CbObject{
				ID:   stringField(doc, "id"),
				Type: ObjectTypeWorkOrder,
				Ver:  CbObjectVersion,
				Name: stringField(doc, "name"),
				Org:  stringField(doc, "deptName"),
			},
			CbData: CbData{
				Data: doc,
			},
		},
	}
}

// stringField reads a string value from the document; missing or
// non-string values become ""
func stringField(doc map[string]interface{}, key string) string {
	if s, ok := doc[key].(string); ok {
		return s
	}
	return ""
}

// int64Field reads an integer value from the document, tolerating the
// numeric shapes json.Unmarshal produces
func int64Field(doc map[string]interface{}, key string) int64 {
	switch v := doc[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
	}
	return 0
}
