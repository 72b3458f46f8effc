package forms

import (
	"errors"
	"strings"
	"sync"
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrSubmitInFlight  = errors.New("submit already in flight")
	ErrValidation      = errors.New("validation failed")
)

// Controller holds the editable state of one entity form: current field
// values, the error map from the last failed submit, and structural helpers
// for list-shaped fields. Submit is single-flight, so a double-triggered
// save performs exactly one effect.
type Controller struct {
	mu       sync.Mutex
	values   map[string]interface{}
	errors   FieldErrors
	inFlight bool
}

func NewController(initial map[string]interface{}) *Controller {
	values := make(map[string]interface{}, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	return &Controller{
		values: values,
		errors: FieldErrors{},
	}
}

func (c *Controller) Field(name string) interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[name]
}

func (c *Controller) ListField(name string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if list, ok := c.values[name].([]string); ok {
		return append([]string(nil), list...)
	}
	return []string{}
}

// SetField updates one field. It does not validate, but a field edited
// after a failed submit sheds its stale error immediately.
func (c *Controller) SetField(name string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[name] = value
	delete(c.errors, name)
}

// AddListItem appends a trimmed value to a list field. Empty or
// whitespace-only input is ignored.
func (c *Controller) AddListItem(field, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	list, _ := c.values[field].([]string)
	c.values[field] = append(list, value)
	delete(c.errors, field)
}

// RemoveListItem removes the element at index. A bad index refuses the
// mutation instead of corrupting the list.
func (c *Controller) RemoveListItem(field string, index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	list, _ := c.values[field].([]string)
	if index < 0 || index >= len(list) {
		return ErrIndexOutOfRange
	}
	c.values[field] = append(list[:index:index], list[index+1:]...)
	delete(c.errors, field)
	return nil
}

func (c *Controller) Errors() FieldErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(FieldErrors, len(c.errors))
	for k, v := range c.errors {
		out[k] = v
	}
	return out
}

func (c *Controller) SetErrors(errs FieldErrors) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors = make(FieldErrors, len(errs))
	for k, v := range errs {
		c.errors[k] = v
	}
}

// Snapshot returns a copy of the current field values.
func (c *Controller) Snapshot() map[string]interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]interface{}, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

// Submit validates the current values and, when clean, invokes onValid once.
// While a submit is in flight further submits return ErrSubmitInFlight
// without validating or invoking anything. A validation failure stores the
// error map and returns ErrValidation; onValid errors pass through.
func (c *Controller) Submit(validate func(map[string]interface{}) FieldErrors, onValid func(map[string]interface{}) error) error {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	c.inFlight = true
	snapshot := make(map[string]interface{}, len(c.values))
	for k, v := range c.values {
		snapshot[k] = v
	}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	var errs FieldErrors
	if validate != nil {
		errs = validate(snapshot)
	}
	if len(errs) > 0 {
		c.SetErrors(errs)
		return ErrValidation
	}

	c.SetErrors(nil)
	if onValid == nil {
		return nil
	}
	return onValid(snapshot)
}
