package redact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDenylist = []string{
	"userName", "userEmail",
	"submittedFromName", "submittedFromEmail",
	"submittedToName", "submittedToEmail",
	"createdByName", "updatedByName",
}

func sampleDocument() map[string]interface{} {
	return map[string]interface{}{
		"id":            "wo1",
		"status":        "PUBLISHED",
		"createdByName": "Root Admin",
		"users": []interface{}{
			map[string]interface{}{
				"id":        "a1",
				"userId":    "u1",
				"userName":  "Jane",
				"userEmail": "jane@example.org",
				"position": map[string]interface{}{
					"submittedToName": "Manager",
					"level":           "7",
				},
			},
		},
		"meta": map[string]interface{}{
			"updatedByName": "Editor",
			"revision":      float64(3),
		},
	}
}

func TestRedact_RemovesDenylistedKeysAtAnyDepth(t *testing.T) {
	t.Parallel()

	r := New(testDenylist)
	out := r.Redact(sampleDocument())

	assertNoDeniedKeys(t, out)

	users := out["users"].([]interface{})
	require.Len(t, users, 1)
	user := users[0].(map[string]interface{})
	assert.Equal(t, "a1", user["id"])
	assert.Equal(t, "u1", user["userId"])

	position := user["position"].(map[string]interface{})
	assert.Equal(t, "7", position["level"])

	meta := out["meta"].(map[string]interface{})
	assert.Equal(t, float64(3), meta["revision"])
}

func TestRedact_Idempotent(t *testing.T) {
	t.Parallel()

	r := New(testDenylist)
	once := r.Redact(sampleDocument())
	twice := r.Redact(once)

	assert.Equal(t, once, twice)
}

func TestRedact_DoesNotModifyInput(t *testing.T) {
	t.Parallel()

	r := New(testDenylist)
	doc := sampleDocument()
	r.Redact(doc)

	// Original document keeps its denylisted keys
	assert.Equal(t, "Root Admin", doc["createdByName"])
	user := doc["users"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "Jane", user["userName"])
}

func TestRedact_PreservesDocumentWithoutDeniedKeys(t *testing.T) {
	t.Parallel()

	r := New(testDenylist)
	doc := map[string]interface{}{
		"id":     "wo2",
		"status": "DRAFT",
		"nested": map[string]interface{}{"deptId": "d1"},
	}

	assert.Equal(t, doc, r.Redact(doc))
}

func TestRedact_NilDocument(t *testing.T) {
	t.Parallel()

	r := New(testDenylist)
	assert.Nil(t, r.Redact(nil))
}

// assertNoDeniedKeys walks the document and fails if any denylisted key
// survived at any depth
func assertNoDeniedKeys(t *testing.T, value interface{}) {
	t.Helper()

	denied := map[string]struct{}{}
	for _, name := range testDenylist {
		denied[name] = struct{}{}
	}

	var walk func(interface{})
	walk = func(v interface{}) {
		switch typed := v.(type) {
		case map[string]interface{}:
			for key, nested := range typed {
				_, isDenied := denied[key]
				assert.False(t, isDenied, "denylisted key %q survived redaction", key)
				walk(nested)
			}
		case []interface{}:
			for _, elem := range typed {
				walk(elem)
			}
		}
	}
	walk(value)
}
