package amqp

import (
	"encoding/json"
	"time"
)

const (
	EntityCard    = "card"
	EntityExpense = "expense"
	EntityOffer   = "offer"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// RecordChangeMessage announces a successful write. It carries only the
// record coordinates; consumers fetch the current state from the store,
// so a stale or duplicated delivery is harmless.
type RecordChangeMessage struct {
	Entity    string    `json:"entity"`
	Action    string    `json:"action"`
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRecordChangeMessage(entity, action, id, userID string) *RecordChangeMessage {
	return &RecordChangeMessage{
		Entity:    entity,
		Action:    action,
		ID:        id,
		UserID:    userID,
		Timestamp: time.Now(),
	}
}

func (m *RecordChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordChangeMessageFromJSON(data []byte) (*RecordChangeMessage, error) {
	var msg RecordChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
