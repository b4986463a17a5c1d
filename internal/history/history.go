// Package history records restart invocations so an operator can answer
// "when was the scraper last relaunched, and did the pull work" after the
// fact. Records are append-only audit rows.
package history

import (
	"context"
	"encoding/json"
	"time"
)

// Step is the outcome of one step of the restart sequence.
type Step struct {
	Name     string        `json:"name"`
	Output   string        `json:"output,omitempty"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Record is one restart invocation.
type Record struct {
	At       time.Time `json:"at"`
	Host     string    `json:"host"`
	PID      int       `json:"pid"`      // launched child PID, 0 when launch failed
	Launched bool      `json:"launched"` // whether the launch step succeeded
	Steps    []Step    `json:"steps"`
}

// Failed returns the names of steps that recorded an error.
func (r Record) Failed() []string {
	var out []string
	for _, s := range r.Steps {
		if s.Error != "" {
			out = append(out, s.Name)
		}
	}
	return out
}

// Store persists and queries restart records.
type Store interface {
	Append(ctx context.Context, r Record) error
	Recent(ctx context.Context, limit int) ([]Record, error)
	Close() error
}

// MarshalSteps encodes steps as the JSON text stored in the steps column.
func MarshalSteps(steps []Step) (string, error) {
	b, err := json.Marshal(steps)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// UnmarshalSteps decodes a steps column. An empty value yields nil.
func UnmarshalSteps(s string) ([]Step, error) {
	if s == "" {
		return nil, nil
	}
	var steps []Step
	if err := json.Unmarshal([]byte(s), &steps); err != nil {
		return nil, err
	}
	return steps, nil
}
