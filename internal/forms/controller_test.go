package forms

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestControllerSetFieldClearsError(t *testing.T) {
	c := NewController(map[string]interface{}{"title": ""})
	c.SetErrors(FieldErrors{"title": "is required", "price": "is required"})

	c.SetField("title", "Nile Cruise")

	errs := c.Errors()
	if _, ok := errs["title"]; ok {
		t.Fatalf("expected title error to be cleared, got %v", errs)
	}
	if _, ok := errs["price"]; !ok {
		t.Fatalf("expected price error to survive, got %v", errs)
	}
}

func TestControllerAddListItem(t *testing.T) {
	c := NewController(nil)
	c.AddListItem("amenities", "  Pool  ")
	c.AddListItem("amenities", "   ")
	c.AddListItem("amenities", "")
	c.AddListItem("amenities", "Spa")

	got := c.ListField("amenities")
	if len(got) != 2 || got[0] != "Pool" || got[1] != "Spa" {
		t.Fatalf("unexpected list: %v", got)
	}
}

func TestControllerRemoveListItem(t *testing.T) {
	c := NewController(map[string]interface{}{"tags": []string{"nile", "luxury", "cruise"}})

	if err := c.RemoveListItem("tags", 1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	got := c.ListField("tags")
	if len(got) != 2 || got[0] != "nile" || got[1] != "cruise" {
		t.Fatalf("unexpected list: %v", got)
	}
}

func TestControllerRemoveListItemBadIndex(t *testing.T) {
	c := NewController(map[string]interface{}{"tags": []string{"nile"}})

	for _, idx := range []int{-1, 1, 5} {
		if err := c.RemoveListItem("tags", idx); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("index %d: expected ErrIndexOutOfRange, got %v", idx, err)
		}
	}
	if got := c.ListField("tags"); len(got) != 1 {
		t.Fatalf("list must be untouched after refused mutation: %v", got)
	}
}

func TestControllerSubmitValidationFailure(t *testing.T) {
	c := NewController(map[string]interface{}{"title": ""})

	called := false
	err := c.Submit(
		func(values map[string]interface{}) FieldErrors {
			return FieldErrors{"title": "is required"}
		},
		func(values map[string]interface{}) error {
			called = true
			return nil
		},
	)

	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if called {
		t.Fatalf("onValid must not run on validation failure")
	}
	if c.Errors()["title"] != "is required" {
		t.Fatalf("expected error map to be set, got %v", c.Errors())
	}
}

func TestControllerSubmitSuccessClearsErrors(t *testing.T) {
	c := NewController(map[string]interface{}{"title": "Siwa"})
	c.SetErrors(FieldErrors{"title": "is required"})

	err := c.Submit(
		func(values map[string]interface{}) FieldErrors { return nil },
		func(values map[string]interface{}) error { return nil },
	)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(c.Errors()) != 0 {
		t.Fatalf("expected errors cleared, got %v", c.Errors())
	}
}

func TestControllerSubmitSingleFlight(t *testing.T) {
	c := NewController(map[string]interface{}{"title": "Siwa"})

	var calls int64
	release := make(chan struct{})
	started := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = c.Submit(nil, func(values map[string]interface{}) error {
			close(started)
			<-release
			atomic.AddInt64(&calls, 1)
			return nil
		})
	}()

	<-started
	// second trigger while the first effect is still pending
	err := c.Submit(nil, func(values map[string]interface{}) error {
		atomic.AddInt64(&calls, 1)
		return nil
	})
	if !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("expected ErrSubmitInFlight, got %v", err)
	}

	close(release)
	wg.Wait()

	if got := atomic.LoadInt64(&calls); got != 1 {
		t.Fatalf("expected exactly one effect invocation, got %d", got)
	}
}

func TestControllerSubmitRetryAfterError(t *testing.T) {
	c := NewController(map[string]interface{}{"title": "Siwa"})

	boom := errors.New("network down")
	err := c.Submit(nil, func(values map[string]interface{}) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected effect error to pass through, got %v", err)
	}

	// form state is intact and a resubmit is allowed
	if got := c.Field("title"); got != "Siwa" {
		t.Fatalf("field values must survive a failed effect, got %v", got)
	}
	if err := c.Submit(nil, func(values map[string]interface{}) error { return nil }); err != nil {
		t.Fatalf("resubmit after failure: %v", err)
	}
}
