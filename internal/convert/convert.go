// Package convert translates between board snapshots and store records.
package convert

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-tangra/go-tangra-mainboard/internal/board"
	"github.com/go-tangra/go-tangra-mainboard/internal/store"
)

// BoardToRecord converts a constructed board into a store record.
func BoardToRecord(id string, m *board.Mainboard, registeredAt time.Time) (*store.BoardRecord, error) {
	snap := m.Snapshot()

	jsonBytes, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal board snapshot: %w", err)
	}

	return &store.BoardRecord{
		ID:             id,
		FormFactor:     m.FormFactor,
		ComponentCount: len(m.Components()),
		KindCount:      len(m.VerifyComponents()),
		RegisteredAt:   registeredAt,
		BoardJSON:      string(jsonBytes),
	}, nil
}

// RecordToSnapshot decodes the stored snapshot JSON of a record.
// Integer spec values come back as float64, as JSON carries one number
// type; callers comparing against a freshly constructed board must
// account for that.
func RecordToSnapshot(rec *store.BoardRecord) (*board.Snapshot, error) {
	var snap board.Snapshot
	if err := json.Unmarshal([]byte(rec.BoardJSON), &snap); err != nil {
		return nil, fmt.Errorf("unmarshal board snapshot: %w", err)
	}
	return &snap, nil
}
