package amqp

import (
	"testing"
)

func TestExpenseEventRoundTrip(t *testing.T) {
	ev := NewExpenseCreated(42, 7)

	body, err := ev.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := ExpenseEventFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Kind != EventExpenseCreated || got.ExpenseID != 42 || got.UserID != 7 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.Timestamp.IsZero() {
		t.Fatalf("timestamp should be set")
	}
}

func TestExpenseEventFromJSONInvalid(t *testing.T) {
	if _, err := ExpenseEventFromJSON([]byte("{not json")); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}

func TestNewExpenseDeleted(t *testing.T) {
	ev := NewExpenseDeleted(9, 3)
	if ev.Kind != EventExpenseDeleted {
		t.Fatalf("expected %s, got %s", EventExpenseDeleted, ev.Kind)
	}
}
