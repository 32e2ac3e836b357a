package game

import (
	"fmt"
	"testing"

	"github.com/scythe504/imposter-backend/internal"
	"github.com/scythe504/imposter-backend/internal/words"
	"github.com/stretchr/testify/require"
)

func testBank(t *testing.T) *words.Bank {
	t.Helper()
	b, err := words.New([]internal.WordEntry{
		{Word: "Cat", Category: "Animals"},
		{Word: "Pizza", Category: "Food"},
		{Word: "Paris", Category: "Places"},
	})
	require.NoError(t, err)
	return b
}

// newLobby returns a lobby hosted by "p1" with n connected players p1..pn.
func newLobby(t *testing.T, n int) *Room {
	t.Helper()
	r := NewRoom("ABCD", "p1", "Player1", nil, testBank(t))
	for i := 2; i <= n; i++ {
		require.NoError(t, r.AddPlayer(fmt.Sprintf("p%d", i), fmt.Sprintf("Player%d", i), nil))
	}
	return r
}

// startedRoom returns a room of n players in WORD_REVEAL using catalog words.
func startedRoom(t *testing.T, n int) *Room {
	t.Helper()
	r := newLobby(t, n)
	res, err := r.StartGame("p1")
	require.NoError(t, err)
	require.Equal(t, KindRoundStarted, res.Kind)
	return r
}

// advanceTo steps a started room forward until it reaches phase.
func advanceTo(t *testing.T, r *Room, phase internal.GamePhase) {
	t.Helper()
	for r.Phase() != phase {
		_, err := r.AdvancePhase(r.HostID())
		require.NoError(t, err)
	}
}

func boolPtr(b bool) *bool { return &b }
func intPtr(n int) *int    { return &n }
