// Package telemetry defines the canonical outbound event envelope and the
// builder that maps an enriched work-order document into it.
package telemetry

// Envelope constants. These identify the event type and producer to the
// downstream analytics consumers and never vary per event.
const (
	EventID             = "cb_audit_event"
	EventVersion        = "1.0"
	ActorTypeUser       = "User"
	ObjectTypeWorkOrder = "WorkOrder"
	CbObjectVersion     = "1.0"
	EnvWorkAllocation   = "WAT"
	PdataPID            = "mdo-portal"
	PdataVersion        = "1.0"
	MessageIDPrefix     = "cb"
)

// PropertyNames is the fixed list reported in edata.props. It names the
// work-order fields the event carries state for; it is not derived from the
// document.
var PropertyNames = []string{"status", "name", "deptId", "deptName", "userIds", "updatedAt"}

// Event is the canonical telemetry envelope. Immutable once built;
// ownership transfers to the sink on publish.
type Event struct {
	EID     string  `json:"eid"`
	ETS     int64   `json:"ets"`
	Ver     string  `json:"ver"`
	MID     string  `json:"mid"`
	Actor   Actor   `json:"actor"`
	Context Context `json:"context"`
	Object  Object  `json:"object"`
	EData   EData   `json:"edata"`
}

type Actor struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type Context struct {
	Channel string `json:"channel"`
	Env     string `json:"env"`
	Pdata   Pdata  `json:"pdata"`
}

type Pdata struct {
	ID  string `json:"id"`
	PID string `json:"pid"`
	Ver string `json:"ver"`
}

type Object struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type EData struct {
	State    string   `json:"state"`
	Props    []string `json:"props"`
	CbObject CbObject `json:"cb_object"`
	CbData   CbData   `json:"cb_data"`
}

type CbObject struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Ver  string `json:"ver"`
	Name string `json:"name"`
	Org  string `json:"org"`
}

type CbData struct {
	Data map[string]interface{} `json:"data"`
}
