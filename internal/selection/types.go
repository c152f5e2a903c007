package selection

import "time"

// Trigger says what caused an activation.
type Trigger string

const (
	TriggerClick Trigger = "click"
	TriggerLoad  Trigger = "load"
)

// Activation is one recorded highlight change for a client.
type Activation struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	ItemID    string    `json:"item_id"`
	Trigger   Trigger   `json:"trigger"`
	Path      string    `json:"path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Selection is the persisted value under one key for one client.
type Selection struct {
	ClientID  string    `json:"client_id"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
