package client_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-tangra/go-tangra-mainboard/internal/board"
	"github.com/go-tangra/go-tangra-mainboard/internal/client"
	"github.com/go-tangra/go-tangra-mainboard/internal/config"
	"github.com/go-tangra/go-tangra-mainboard/internal/server"
	"github.com/go-tangra/go-tangra-mainboard/internal/store"
)

// newTestEnv serves the real registry API over httptest and returns a client
// pointed at it.
func newTestEnv(t *testing.T, apiSecret string) *client.Client {
	t.Helper()

	db, err := store.New(filepath.Join(t.TempDir(), "boards.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		Listen:     "127.0.0.1:0",
		FormFactor: "ATX",
		ApiSecret:  apiSecret,
	}
	srv := server.New(cfg, db, "test", log.NewStdLogger(&testLog{t}), nil)

	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	return client.New(ts.URL, apiSecret)
}

type testLog struct{ t *testing.T }

func (l *testLog) Write(p []byte) (int, error) {
	l.t.Log(string(p))
	return len(p), nil
}

func TestComponents(t *testing.T) {
	c := newTestEnv(t, "")

	list, err := c.Components(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "ATX", list.FormFactor)
	assert.Equal(t, 45, list.Count)
	assert.Len(t, list.Components, 45)
	for _, comp := range list.Components {
		assert.Equal(t, board.StatusOperational, comp.Status)
	}
}

func TestStatus(t *testing.T) {
	c := newTestEnv(t, "")

	sm, err := c.Status(context.Background(), "E-ATX")
	require.NoError(t, err)
	assert.Equal(t, "E-ATX", sm.FormFactor)
	assert.Len(t, sm.Statuses, 18)
}

func TestBoardLifecycle(t *testing.T) {
	c := newTestEnv(t, "secret-key")
	ctx := context.Background()

	reg, err := c.RegisterBoard(ctx, "E-ATX")
	require.NoError(t, err)
	assert.Equal(t, 45, reg.ComponentCount)
	assert.Equal(t, 18, reg.KindCount)

	detail, err := c.GetBoard(ctx, reg.ID)
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, "E-ATX", detail.Board.FormFactor)
	assert.Len(t, detail.Board.Groups, 18)

	list, err := c.ListBoards(ctx, "", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, list.TotalCount)

	require.NoError(t, c.DeleteBoard(ctx, reg.ID))

	gone, err := c.GetBoard(ctx, reg.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestAuthRejected(t *testing.T) {
	c := newTestEnv(t, "secret-key")

	unauth := client.New(c.Endpoint(), "")
	_, err := unauth.Components(context.Background(), "")
	assert.Error(t, err)
}

func TestGetHealth(t *testing.T) {
	c := newTestEnv(t, "")

	h, err := c.GetHealth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", h.Status)
}
