package amqp

import (
	"encoding/json"
	"time"
)

type EventKind string

const (
	EventExpenseCreated EventKind = "expense.created"
	EventExpenseDeleted EventKind = "expense.deleted"
)

// ExpenseEvent is a lightweight notification that an expense changed. It
// carries only identifiers; consumers fetch the full record from storage.
type ExpenseEvent struct {
	Kind      EventKind `json:"kind"`
	ExpenseID int64     `json:"expense_id"`
	UserID    int64     `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewExpenseCreated(expenseID, userID int64) *ExpenseEvent {
	return &ExpenseEvent{
		Kind:      EventExpenseCreated,
		ExpenseID: expenseID,
		UserID:    userID,
		Timestamp: time.Now(),
	}
}

func NewExpenseDeleted(expenseID, userID int64) *ExpenseEvent {
	return &ExpenseEvent{
		Kind:      EventExpenseDeleted,
		ExpenseID: expenseID,
		UserID:    userID,
		Timestamp: time.Now(),
	}
}

func (e *ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func ExpenseEventFromJSON(data []byte) (*ExpenseEvent, error) {
	var ev ExpenseEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
