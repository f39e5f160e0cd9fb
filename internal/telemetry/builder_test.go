package telemetry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_FieldDerivation(t *testing.T) {
	t.Parallel()

	doc := map[string]interface{}{
		"id":        "wo1",
		"status":    "PUBLISHED",
		"name":      "FY Work Order",
		"deptId":    "d1",
		"deptName":  "Dept",
		"updatedAt": float64(1620000000000),
	}

	event := NewBuilder("env-prod").Build(doc)

	assert.Equal(t, EventID, event.EID)
	assert.Equal(t, EventVersion, event.Ver)
	assert.Equal(t, int64(1620000000000), event.ETS)

	// Actor id mirrors the work-order id, not an acting user
	assert.Equal(t, Actor{ID: "wo1", Type: ActorTypeUser}, event.Actor)
	assert.Equal(t, Object{ID: "wo1", Type: ObjectTypeWorkOrder}, event.Object)

	assert.Equal(t, "d1", event.Context.Channel)
	assert.Equal(t, EnvWorkAllocation, event.Context.Env)
	assert.Equal(t, Pdata{ID: "env-prod", PID: PdataPID, Ver: PdataVersion}, event.Context.Pdata)

	assert.Equal(t, "PUBLISHED", event.EData.State)
	assert.Equal(t, PropertyNames, event.EData.Props)
	assert.Equal(t, CbObject{
		ID:   "wo1",
		Type: ObjectTypeWorkOrder,
		Ver:  CbObjectVersion,
		Name: "FY Work Order",
		Org:  "Dept",
	}, event.EData.CbObject)

	// The full document is embedded verbatim
	require.NotNil(t, event.EData.CbData.Data)
	assert.Equal(t, "wo1", event.EData.CbData.Data["id"])
}

func TestBuild_MessageIDIsNamespacedAndUnique(t *testing.T) {
	t.Parallel()

	b := NewBuilder("env-prod")
	doc := map[string]interface{}{"id": "wo1"}

	first := b.Build(doc)
	second := b.Build(doc)

	assert.True(t, strings.HasPrefix(first.MID, MessageIDPrefix+"."))
	assert.True(t, strings.HasPrefix(second.MID, MessageIDPrefix+"."))
	assert.NotEqual(t, first.MID, second.MID)
}

func TestBuild_MissingTimestampDefaultsToZero(t *testing.T) {
	t.Parallel()

	event := NewBuilder("env-prod").Build(map[string]interface{}{"id": "wo1"})

	assert.Equal(t, int64(0), event.ETS)
}

func TestBuild_NonNumericTimestampDefaultsToZero(t *testing.T) {
	t.Parallel()

	event := NewBuilder("env-prod").Build(map[string]interface{}{
		"id":        "wo1",
		"updatedAt": "not-a-number",
	})

	assert.Equal(t, int64(0), event.ETS)
}

func TestBuild_MissingFieldsBecomeEmpty(t *testing.T) {
	t.Parallel()

	event := NewBuilder("env-prod").Build(map[string]interface{}{})

	assert.Empty(t, event.Actor.ID)
	assert.Empty(t, event.Object.ID)
	assert.Empty(t, event.Context.Channel)
	assert.Empty(t, event.EData.State)
	assert.Empty(t, event.EData.CbObject.Name)
	assert.Empty(t, event.EData.CbObject.Org)

	// Constants survive even on an empty document
	assert.Equal(t, EventID, event.EID)
	assert.Equal(t, ObjectTypeWorkOrder, event.Object.Type)
}
