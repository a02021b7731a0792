package models

import (
	"encoding/json"
	"time"
)

// services stay raw so a malformed one can be dropped on its own
type AccessoryData struct {
	Aid      *int              `json:"aid"`
	Services []json.RawMessage `json:"services"`
}

type ServiceData struct {
	Type            string               `json:"type"`
	Characteristics []CharacteristicData `json:"characteristics"`
}

type CharacteristicData struct {
	Description string   `json:"description"`
	Iid         *int     `json:"iid"`
	Value       any      `json:"value"`
	Perms       []string `json:"perms"`

	// whether the "value" key was present at all (a null value still counts)
	HasValue bool `json:"-"`
}

func (c *CharacteristicData) UnmarshalJSON(data []byte) error {
	type plain CharacteristicData
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	_, p.HasValue = keys["value"]

	*c = CharacteristicData(p)
	return nil
}

// the body sent with PUT /characteristics
type CharacteristicWriteRequest struct {
	Characteristics []CharacteristicWrite `json:"characteristics"`
}

type CharacteristicWrite struct {
	Aid   int `json:"aid"`
	Iid   int `json:"iid"`
	Value any `json:"value"`
}

// the result of writing a characteristic (or fanning a write out over several)
type WriteOutcome int

const (
	// no service exposes the attribute, nothing was sent
	WriteNoTarget WriteOutcome = iota
	WriteSucceeded
	// the hub answered with a 4xx, the request was not retried
	WriteRejected
	// every attempt failed with a server error or transport failure
	WriteExhausted
)

func (o WriteOutcome) OK() bool {
	return o == WriteSucceeded
}

func (o WriteOutcome) String() string {
	switch o {
	case WriteSucceeded:
		return "succeeded"
	case WriteRejected:
		return "rejected"
	case WriteExhausted:
		return "exhausted"
	default:
		return "no target"
	}
}

// Worse returns whichever outcome is more severe.
func (o WriteOutcome) Worse(other WriteOutcome) WriteOutcome {
	if other > o {
		return other
	}
	return o
}

// a flattened view of an accessory, used by the repo and the dump output
type AccessorySummary struct {
	Aid        int            `json:"aid" yaml:"aid"`
	Name       string         `json:"name,omitempty" yaml:"name,omitempty"`
	Services   []string       `json:"services" yaml:"services"`
	Attributes map[string]any `json:"attributes" yaml:"attributes"`
}

// a row of the reachability ledger
type AccessoryStatus struct {
	Aid               int
	Name              string
	Unreachable       bool
	LastWriteOutcome  string
	LastAttribute     string
	LastUpdateTime    *time.Time
	RefreshGeneration string
}
