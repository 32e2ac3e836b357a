package game

import (
	"github.com/scythe504/imposter-backend/internal"
)

// =============================================================================
// GAME FLOW - LOBBY & ROUND LIFECYCLE
// =============================================================================

// UpdateSettings applies a partial settings change. Host only, lobby only.
func (r *Room) UpdateSettings(actorID string, patch internal.SettingsPatch) (internal.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if actorID != r.hostID {
		return r.settings, ErrUnauthorized
	}
	if r.phase != internal.PhaseLobby {
		return r.settings, ErrWrongPhase
	}
	if n := patch.RequiredWordsPerPlayer; n != nil &&
		(*n < internal.MinWordsPerPlayer || *n > internal.MaxWordsPerPlayer) {
		return r.settings, ErrInvalidSettings
	}

	if patch.HideCategoryFromImposter != nil {
		r.settings.HideCategoryFromImposter = *patch.HideCategoryFromImposter
	}
	if patch.CustomWordsEnabled != nil {
		r.settings.CustomWordsEnabled = *patch.CustomWordsEnabled
	}
	if patch.IncludeDefaultWords != nil {
		r.settings.IncludeDefaultWords = *patch.IncludeDefaultWords
	}
	if patch.RequiredWordsPerPlayer != nil {
		r.settings.RequiredWordsPerPlayer = *patch.RequiredWordsPerPlayer
	}

	r.log.Infof("[UpdateSettings] %+v", r.settings)
	return r.settings, nil
}

// StartGame begins a round from the lobby. With custom words on the room
// enters WORD_SUBMISSION; otherwise a catalog word and imposter are drawn
// straight away.
func (r *Room) StartGame(actorID string) (PhaseResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if actorID != r.hostID {
		return PhaseResult{}, ErrUnauthorized
	}
	if r.phase != internal.PhaseLobby {
		return PhaseResult{}, ErrGameInProgress
	}
	if r.connectedCountLocked() < internal.MinPlayersToStart {
		r.log.Debugf("[StartGame] not enough players (%d/%d)", r.connectedCountLocked(), internal.MinPlayersToStart)
		return PhaseResult{}, ErrNotEnoughPlayers
	}

	r.votes = make(map[string]string)
	next, _ := r.phase.Next(r.settings.CustomWordsEnabled)

	if next == internal.PhaseWordSubmission {
		r.resetWordPoolLocked()
		r.phase = next
		r.log.Infof("[StartGame] collecting %d words per player", r.settings.RequiredWordsPerPlayer)
		res := r.phaseResultLocked(KindPhaseChanged)
		status := r.submissionStatusLocked()
		res.Submission = &status
		return res, nil
	}

	r.selectDefaultRoundLocked()
	r.phase = next
	r.log.Infof("[StartGame] round started, category=%s", r.category)
	res := r.phaseResultLocked(KindRoundStarted)
	res.Round = r.roundStartLocked()
	return res, nil
}

// PlayAgain starts a new round straight from RESULTS, keeping scores.
// Disconnected players are dropped. An existing custom pool is reused
// without another submission phase.
func (r *Room) PlayAgain(actorID string) (PhaseResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if actorID != r.hostID {
		return PhaseResult{}, ErrUnauthorized
	}
	if r.phase != internal.PhaseResults {
		return PhaseResult{}, ErrWrongPhase
	}
	if r.connectedCountLocked() < internal.MinPlayersToStart {
		return PhaseResult{}, ErrNotEnoughPlayers
	}

	r.dropDisconnectedLocked()
	r.votes = make(map[string]string)

	if len(r.customWordPool) > 0 {
		// The pool is non-empty so selection cannot fail.
		_ = r.selectCustomRoundLocked()
	} else {
		r.selectDefaultRoundLocked()
	}
	r.phase = internal.PhaseWordReveal

	r.log.Infof("[PlayAgain] new round, players=%d custom=%v", len(r.players), len(r.customWordPool) > 0)
	res := r.phaseResultLocked(KindRoundStarted)
	res.Round = r.roundStartLocked()
	return res, nil
}

// ReturnToLobby ends the game: round state, the word pool and disconnected
// players are dropped and every score goes back to zero.
func (r *Room) ReturnToLobby(actorID string) (PhaseResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if actorID != r.hostID {
		return PhaseResult{}, ErrUnauthorized
	}

	r.word = ""
	r.category = ""
	r.imposterID = ""
	r.votes = make(map[string]string)
	r.resetWordPoolLocked()
	r.dropDisconnectedLocked()
	for id := range r.scores {
		r.scores[id] = 0
	}
	r.phase = internal.PhaseLobby

	r.log.Infof("[ReturnToLobby] back in lobby with %d players", len(r.players))
	return r.phaseResultLocked(KindPhaseChanged), nil
}
