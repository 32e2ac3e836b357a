package game

import (
	"testing"

	"github.com/scythe504/imposter-backend/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateSettings(t *testing.T) {
	r := newLobby(t, 3)

	_, err := r.UpdateSettings("p2", internal.SettingsPatch{HideCategoryFromImposter: boolPtr(true)})
	assert.ErrorIs(t, err, ErrUnauthorized)

	for _, n := range []int{0, 6, -1} {
		_, err := r.UpdateSettings("p1", internal.SettingsPatch{RequiredWordsPerPlayer: intPtr(n)})
		assert.ErrorIs(t, err, ErrInvalidSettings, "n=%d", n)
	}
	assert.Equal(t, internal.DefaultSettings(), r.Settings(), "rejected patches change nothing")

	got, err := r.UpdateSettings("p1", internal.SettingsPatch{
		CustomWordsEnabled:     boolPtr(true),
		RequiredWordsPerPlayer: intPtr(5),
	})
	require.NoError(t, err)
	assert.Equal(t, internal.Settings{
		CustomWordsEnabled:     true,
		IncludeDefaultWords:    true,
		RequiredWordsPerPlayer: 5,
	}, got)

	_, err = r.StartGame("p1")
	require.NoError(t, err)
	_, err = r.UpdateSettings("p1", internal.SettingsPatch{HideCategoryFromImposter: boolPtr(true)})
	assert.ErrorIs(t, err, ErrWrongPhase)
}

func TestStartGame_Preconditions(t *testing.T) {
	r := newLobby(t, 2)
	_, err := r.StartGame("p1")
	assert.ErrorIs(t, err, ErrNotEnoughPlayers)
	assert.Equal(t, internal.PhaseLobby, r.Phase())

	require.NoError(t, r.AddPlayer("p3", "Player3", nil))
	_, err = r.StartGame("p2")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = r.StartGame("p1")
	require.NoError(t, err)
	_, err = r.StartGame("p1")
	assert.ErrorIs(t, err, ErrGameInProgress)
}

func TestStartGame_DefaultWords(t *testing.T) {
	r := startedRoom(t, 4)

	assert.Equal(t, internal.PhaseWordReveal, r.Phase())
	word, category := r.Word()
	assert.Contains(t, []string{"Cat", "Pizza", "Paris"}, word)
	assert.NotEmpty(t, category)
	assert.Empty(t, r.WordSubmittedBy())
	assert.Contains(t, r.ConnectedIDs(), r.ImposterID())
}

func TestStartGame_RoundStartPayload(t *testing.T) {
	r := newLobby(t, 3)
	_, err := r.UpdateSettings("p1", internal.SettingsPatch{HideCategoryFromImposter: boolPtr(true)})
	require.NoError(t, err)

	res, err := r.StartGame("p1")
	require.NoError(t, err)
	require.NotNil(t, res.Round)
	assert.ElementsMatch(t, []string{"p1", "p2", "p3"}, res.Round.Recipients)

	word, category := r.Word()
	for _, id := range res.Round.Recipients {
		view := res.Round.For(id)
		if id == r.ImposterID() {
			assert.True(t, view.IsImposter)
			assert.Empty(t, view.Word)
			assert.Empty(t, view.Category)
			continue
		}
		assert.False(t, view.IsImposter)
		assert.Equal(t, word, view.Word)
		assert.Equal(t, category, view.Category)
	}
}

func TestRoundStart_ImposterSeesCategoryUnlessHidden(t *testing.T) {
	rs := RoundStart{Word: "Cat", Category: "Animals", ImposterID: "imp", WordSubmittedBy: "Bob"}

	view := rs.For("imp")
	assert.Empty(t, view.Word)
	assert.Empty(t, view.WordSubmittedBy)
	assert.Equal(t, "Animals", view.Category)

	rs.HideCategory = true
	assert.Empty(t, rs.For("imp").Category)
	assert.Equal(t, "Bob", rs.For("other").WordSubmittedBy)
}

func TestImposterSelectionIsUniform(t *testing.T) {
	const trials = 1000
	counts := map[string]int{}
	for i := 0; i < trials; i++ {
		r := startedRoom(t, 3)
		counts[r.ImposterID()]++
	}
	require.Len(t, counts, 3)
	for id, n := range counts {
		assert.InDelta(t, trials/3, n, 90, "imposter %s picked %d times", id, n)
	}
}

func TestAdvancePhase_DefaultOrder(t *testing.T) {
	r := startedRoom(t, 3)

	_, err := r.AdvancePhase("p2")
	assert.ErrorIs(t, err, ErrUnauthorized)

	for _, want := range []internal.GamePhase{
		internal.PhaseHinting1,
		internal.PhaseHinting2,
		internal.PhaseVoting,
	} {
		res, err := r.AdvancePhase("p1")
		require.NoError(t, err)
		assert.Equal(t, KindPhaseChanged, res.Kind)
		assert.Equal(t, want, res.Phase)
		assert.Equal(t, want, res.PhaseChanged().Phase)
	}

	res, err := r.AdvancePhase("p1")
	require.NoError(t, err)
	assert.Equal(t, KindResults, res.Kind)
	require.NotNil(t, res.Results)
	assert.Equal(t, internal.PhaseResults, r.Phase())

	_, err = r.AdvancePhase("p1")
	assert.ErrorIs(t, err, ErrNoFurtherPhase)
}

func TestAdvancePhase_FromLobby(t *testing.T) {
	r := newLobby(t, 3)
	_, err := r.AdvancePhase("p1")
	assert.ErrorIs(t, err, ErrWrongPhase)
	assert.Equal(t, internal.PhaseLobby, r.Phase())
}

func TestVotesClearedBetweenRounds(t *testing.T) {
	r := startedRoom(t, 3)
	advanceTo(t, r, internal.PhaseVoting)
	_, err := r.CastVote("p1", "p2")
	require.NoError(t, err)

	_, err = r.AdvancePhase("p1")
	require.NoError(t, err)
	_, err = r.PlayAgain("p1")
	require.NoError(t, err)
	advanceTo(t, r, internal.PhaseVoting)
	assert.Empty(t, r.Votes())
}

func customRoom(t *testing.T, includeDefaults bool) *Room {
	t.Helper()
	r := newLobby(t, 3)
	_, err := r.UpdateSettings("p1", internal.SettingsPatch{
		CustomWordsEnabled:     boolPtr(true),
		IncludeDefaultWords:    boolPtr(includeDefaults),
		RequiredWordsPerPlayer: intPtr(1),
	})
	require.NoError(t, err)
	res, err := r.StartGame("p1")
	require.NoError(t, err)
	require.Equal(t, KindPhaseChanged, res.Kind)
	require.Equal(t, internal.PhaseWordSubmission, res.Phase)
	require.NotNil(t, res.Submission)
	assert.Equal(t, 3, res.Submission.TotalCount)
	assert.Zero(t, res.Submission.SubmittedCount)
	return r
}

func TestAdvancePhase_NoWordsAvailable(t *testing.T) {
	r := customRoom(t, false)

	_, err := r.AdvancePhase("p1")
	assert.ErrorIs(t, err, ErrNoWordsAvailable)
	assert.Equal(t, internal.PhaseWordSubmission, r.Phase())
	assert.Empty(t, r.ImposterID())
}

func TestAdvancePhase_CustomWordAuthorIsNeverImposter(t *testing.T) {
	for i := 0; i < 200; i++ {
		r := customRoom(t, false)
		_, err := r.SubmitWords("p2", []string{"Lighthouse"})
		require.NoError(t, err)

		res, err := r.AdvancePhase("p1")
		require.NoError(t, err)
		require.Equal(t, KindRoundStarted, res.Kind)
		require.Equal(t, internal.PhaseWordReveal, res.Phase)

		word, category := r.Word()
		assert.Equal(t, "Lighthouse", word)
		assert.Equal(t, internal.CustomCategory, category)
		assert.Equal(t, "Player2", r.WordSubmittedBy())
		assert.NotEqual(t, "p2", r.ImposterID())
	}
}

func TestAdvancePhase_CustomPoolIncludesDefaults(t *testing.T) {
	r := customRoom(t, true)

	res, err := r.AdvancePhase("p1")
	require.NoError(t, err)
	assert.Equal(t, KindRoundStarted, res.Kind)
	word, _ := r.Word()
	assert.Contains(t, []string{"Cat", "Pizza", "Paris"}, word)
	assert.Empty(t, r.WordSubmittedBy())
}

func TestPlayAgain(t *testing.T) {
	r := startedRoom(t, 3)

	_, err := r.PlayAgain("p1")
	assert.ErrorIs(t, err, ErrWrongPhase)

	advanceTo(t, r, internal.PhaseResults)
	imposter := r.ImposterID()
	assert.Equal(t, internal.ImposterEscapedPoints, r.Scores()[imposter], "nobody voted so the imposter escapes")

	_, err = r.PlayAgain("p2")
	assert.ErrorIs(t, err, ErrUnauthorized)

	res, err := r.PlayAgain("p1")
	require.NoError(t, err)
	assert.Equal(t, KindRoundStarted, res.Kind)
	assert.Equal(t, internal.PhaseWordReveal, r.Phase())
	assert.Equal(t, internal.ImposterEscapedPoints, r.Scores()[imposter], "scores carry across rounds")
	assert.Empty(t, r.Votes())
}

func TestPlayAgain_DropsDisconnectedAndNeedsThree(t *testing.T) {
	r := startedRoom(t, 4)
	advanceTo(t, r, internal.PhaseResults)
	r.RemovePlayer("p4")

	_, err := r.PlayAgain("p1")
	require.NoError(t, err)
	assert.False(t, r.HasPlayer("p4"))
	_, scored := r.Scores()["p4"]
	assert.False(t, scored)

	advanceTo(t, r, internal.PhaseResults)
	r.RemovePlayer("p3")
	_, err = r.PlayAgain("p1")
	assert.ErrorIs(t, err, ErrNotEnoughPlayers)
	assert.True(t, r.HasPlayer("p3"), "failed calls change nothing")
}

func TestPlayAgain_ReusesCustomPool(t *testing.T) {
	r := customRoom(t, false)
	_, err := r.SubmitWords("p3", []string{"Volcano"})
	require.NoError(t, err)
	advanceTo(t, r, internal.PhaseResults)

	res, err := r.PlayAgain("p1")
	require.NoError(t, err)
	assert.Equal(t, internal.PhaseWordReveal, res.Phase, "no second submission phase")
	word, _ := r.Word()
	assert.Equal(t, "Volcano", word)
	assert.NotEqual(t, "p3", r.ImposterID())
}

func TestReturnToLobby(t *testing.T) {
	r := startedRoom(t, 4)
	advanceTo(t, r, internal.PhaseResults)
	r.RemovePlayer("p4")

	_, err := r.ReturnToLobby("p2")
	assert.ErrorIs(t, err, ErrUnauthorized)

	res, err := r.ReturnToLobby("p1")
	require.NoError(t, err)
	assert.Equal(t, KindPhaseChanged, res.Kind)
	assert.Equal(t, internal.PhaseLobby, r.Phase())
	assert.Empty(t, r.ImposterID())
	word, category := r.Word()
	assert.Empty(t, word)
	assert.Empty(t, category)
	assert.False(t, r.HasPlayer("p4"))
	assert.Equal(t, map[string]int{"p1": 0, "p2": 0, "p3": 0}, r.Scores())
	assert.Empty(t, r.CustomWordPool())
}
