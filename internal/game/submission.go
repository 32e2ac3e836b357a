package game

import (
	"slices"
	"strings"

	"github.com/scythe504/imposter-backend/internal"
)

// SubmitWords stores a player's custom words for this round. Re-submitting
// replaces the player's earlier entries.
func (r *Room) SubmitWords(playerID string, submitted []string) (internal.SubmissionStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != internal.PhaseWordSubmission {
		return internal.SubmissionStatus{}, ErrWrongPhase
	}
	player := r.findLocked(playerID)
	if player == nil || !player.Connected {
		return internal.SubmissionStatus{}, ErrPlayerNotFound
	}
	if len(submitted) != r.settings.RequiredWordsPerPlayer {
		return internal.SubmissionStatus{}, ErrInvalidWordCount
	}
	trimmed := make([]string, 0, len(submitted))
	for _, w := range submitted {
		w = strings.TrimSpace(w)
		if w == "" {
			return internal.SubmissionStatus{}, ErrEmptyWord
		}
		trimmed = append(trimmed, w)
	}

	r.customWordPool = slices.DeleteFunc(r.customWordPool, func(e internal.WordEntry) bool {
		return e.SubmittedBy == playerID
	})
	for _, w := range trimmed {
		r.customWordPool = append(r.customWordPool, internal.WordEntry{
			Word:            w,
			Category:        internal.CustomCategory,
			SubmittedBy:     playerID,
			SubmittedByName: player.Name,
		})
	}
	r.wordSubmissions[playerID] = trimmed

	status := r.submissionStatusLocked()
	r.log.Infof("[SubmitWords] %s (%s) submitted %d words, %d/%d done",
		playerID, player.Name, len(trimmed), status.SubmittedCount, status.TotalCount)
	return status, nil
}

// SubmissionStatus lists which connected players have submitted words.
func (r *Room) SubmissionStatus() internal.SubmissionStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.submissionStatusLocked()
}

func (r *Room) submissionStatusLocked() internal.SubmissionStatus {
	status := internal.SubmissionStatus{Players: []internal.PlayerSubmission{}}
	for _, p := range r.players {
		if !p.Connected {
			continue
		}
		_, done := r.wordSubmissions[p.Id]
		status.Players = append(status.Players, internal.PlayerSubmission{
			PlayerID:  p.Id,
			Name:      p.Name,
			Submitted: done,
		})
		status.TotalCount++
		if done {
			status.SubmittedCount++
		}
	}
	return status
}

// resetWordPoolLocked clears every custom word and submission record.
func (r *Room) resetWordPoolLocked() {
	r.customWordPool = nil
	r.wordSubmissions = make(map[string][]string)
	r.wordSubmittedBy = ""
}
