package forms

// FieldErrors maps a field name to a human-readable message. A validation
// pass reports every failing field at once; the first message recorded for a
// field wins.
type FieldErrors map[string]string

func (e FieldErrors) Add(field, message string) {
	if _, exists := e[field]; exists {
		return
	}
	e[field] = message
}

func (e FieldErrors) Merge(other FieldErrors) {
	for field, message := range other {
		e.Add(field, message)
	}
}
