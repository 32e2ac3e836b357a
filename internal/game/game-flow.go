package game

import (
	"math/rand"

	"github.com/scythe504/imposter-backend/internal"
)

// =============================================================================
// GAME FLOW - PHASE PROGRESSION
// =============================================================================

// AdvancePhase moves the round one step forward. Leaving WORD_SUBMISSION
// draws the word from the custom pool, entering VOTING clears votes, and
// entering RESULTS tallies and scores the round.
func (r *Room) AdvancePhase(actorID string) (PhaseResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if actorID != r.hostID {
		return PhaseResult{}, ErrUnauthorized
	}
	if r.phase == internal.PhaseLobby {
		return PhaseResult{}, ErrWrongPhase
	}
	next, ok := r.phase.Next(r.settings.CustomWordsEnabled)
	if !ok {
		return PhaseResult{}, ErrNoFurtherPhase
	}

	if r.phase == internal.PhaseWordSubmission {
		if err := r.selectCustomRoundLocked(); err != nil {
			r.log.Debugf("[AdvancePhase] cannot leave %s: %v", r.phase, err)
			return PhaseResult{}, err
		}
		r.phase = next
		r.log.Infof("[AdvancePhase] %s -> %s, word drawn from custom pool", internal.PhaseWordSubmission, next)
		res := r.phaseResultLocked(KindRoundStarted)
		res.Round = r.roundStartLocked()
		return res, nil
	}

	prev := r.phase
	r.phase = next
	r.log.Infof("[AdvancePhase] %s -> %s", prev, next)

	switch next {
	case internal.PhaseVoting:
		r.votes = make(map[string]string)
	case internal.PhaseResults:
		results := r.resultsLocked()
		res := r.phaseResultLocked(KindResults)
		res.Results = results
		return res, nil
	}
	return r.phaseResultLocked(KindPhaseChanged), nil
}

// =============================================================================
// WORD & IMPOSTER SELECTION
// =============================================================================

// selectDefaultRoundLocked draws a catalog word and a uniformly random
// connected imposter.
func (r *Room) selectDefaultRoundLocked() {
	r.word, r.category = r.words.Random()
	r.wordSubmittedBy = ""
	r.imposterID = pickImposter(r.connectedLocked(), "")
}

// selectCustomRoundLocked draws from the submitted words, plus the catalog if
// the room includes defaults. The word's author cannot be the imposter unless
// nobody else is connected.
func (r *Room) selectCustomRoundLocked() error {
	pool := make([]internal.WordEntry, 0, len(r.customWordPool))
	pool = append(pool, r.customWordPool...)
	if r.settings.IncludeDefaultWords {
		pool = append(pool, r.words.All()...)
	}
	if len(pool) == 0 {
		return ErrNoWordsAvailable
	}

	entry := pool[rand.Intn(len(pool))]
	r.word = entry.Word
	r.category = entry.Category
	if r.category == "" {
		r.category = internal.CustomCategory
	}
	r.wordSubmittedBy = entry.SubmittedByName
	r.imposterID = pickImposter(r.connectedLocked(), entry.SubmittedBy)
	return nil
}

func pickImposter(connected []*internal.Player, excludeID string) string {
	candidates := make([]*internal.Player, 0, len(connected))
	for _, p := range connected {
		if excludeID != "" && p.Id == excludeID {
			continue
		}
		candidates = append(candidates, p)
	}
	if len(candidates) == 0 {
		candidates = connected
	}
	if len(candidates) == 0 {
		return ""
	}
	return candidates[rand.Intn(len(candidates))].Id
}
