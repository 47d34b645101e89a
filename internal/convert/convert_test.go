package convert_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-tangra/go-tangra-mainboard/internal/board"
	"github.com/go-tangra/go-tangra-mainboard/internal/convert"
)

func TestBoardToRecord(t *testing.T) {
	m := board.New("E-ATX")
	now := time.Now().UTC()

	rec, err := convert.BoardToRecord("b-1", m, now)
	require.NoError(t, err)

	assert.Equal(t, "b-1", rec.ID)
	assert.Equal(t, "E-ATX", rec.FormFactor)
	assert.Equal(t, 45, rec.ComponentCount)
	assert.Equal(t, 18, rec.KindCount)
	assert.True(t, rec.RegisteredAt.Equal(now))
	assert.NotEmpty(t, rec.BoardJSON)
}

func TestRecordToSnapshot_RoundTrip(t *testing.T) {
	m := board.New("ATX")
	rec, err := convert.BoardToRecord("b-1", m, time.Now().UTC())
	require.NoError(t, err)

	snap, err := convert.RecordToSnapshot(rec)
	require.NoError(t, err)

	assert.Equal(t, "ATX", snap.FormFactor)
	require.Len(t, snap.Groups, 18)

	total := 0
	for _, g := range snap.Groups {
		total += len(g.Components)
		for _, c := range g.Components {
			assert.Equal(t, board.StatusOperational, c.Status)
		}
	}
	assert.Equal(t, 45, total)

	// JSON has one number type: integer spec values decode as float64.
	cpu := snap.Groups[0]
	require.Equal(t, "cpu_socket", cpu.Name)
	require.Len(t, cpu.Components, 1)
	assert.Equal(t, float64(1700), cpu.Components[0].Specs["pins"])
}

func TestRecordToSnapshot_BadJSON(t *testing.T) {
	m := board.New("ATX")
	rec, err := convert.BoardToRecord("b-1", m, time.Now().UTC())
	require.NoError(t, err)

	rec.BoardJSON = "{not json"
	_, err = convert.RecordToSnapshot(rec)
	assert.Error(t, err)
}
