// Package redact removes denylisted field names from arbitrary nested
// documents before they are emitted to external systems.
package redact

// Redactor strips a configured denylist of field names from a document,
// recursively through nested objects and arrays. A name match at any depth
// is removed regardless of which parent object it lives under.
type Redactor struct {
	denylist map[string]struct{}
}

// New creates a Redactor for the given field names
func New(denylist []string) *Redactor {
	set := make(map[string]struct{}, len(denylist))
	for _, name := range denylist {
		set[name] = struct{}{}
	}
	return &Redactor{denylist: set}
}

// Redact returns a copy of doc with every denylisted key removed at any
// nesting depth. The input document is not modified. Redact is idempotent:
// applying it twice yields the same result as applying it once.
func (r *Redactor) Redact(doc map[string]interface{}) map[string]interface{} {
	if doc == nil {
		return nil
	}
	return r.redactMap(doc)
}

func (r *Redactor) redactMap(in map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for key, value := range in {
		if _, denied := r.denylist[key]; denied {
			continue
		}
		out[key] = r.redactValue(value)
	}
	return out
}

func (r *Redactor) redactValue(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		return r.redactMap(v)
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, elem := range v {
			out[i] = r.redactValue(elem)
		}
		return out
	default:
		return value
	}
}
