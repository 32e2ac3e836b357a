package game

import (
	"cmp"
	"slices"

	"github.com/scythe504/imposter-backend/internal"
)

// Tally is the outcome of counting one round's votes.
type Tally struct {
	Counts         map[string]int
	Accused        []string
	IsTie          bool
	ImposterCaught bool
	ScoreChanges   map[string]int
}

// TallyVotes counts votes per target. The accused are every target tied for
// the most votes. A single accused imposter is caught and each voter who
// named them earns a point; a tie or a wrong accusation gives the imposter
// three points.
func TallyVotes(votes map[string]string, imposterID string) Tally {
	t := Tally{
		Counts:       make(map[string]int),
		Accused:      []string{},
		ScoreChanges: make(map[string]int),
	}
	for _, target := range votes {
		t.Counts[target]++
	}

	maxVotes := 0
	for target, n := range t.Counts {
		switch {
		case n > maxVotes:
			maxVotes = n
			t.Accused = append(t.Accused[:0], target)
		case n == maxVotes:
			t.Accused = append(t.Accused, target)
		}
	}
	slices.Sort(t.Accused)

	t.IsTie = len(t.Accused) > 1
	t.ImposterCaught = !t.IsTie && len(t.Accused) == 1 && t.Accused[0] == imposterID

	if t.ImposterCaught {
		for voter, target := range votes {
			if target == imposterID {
				t.ScoreChanges[voter] += internal.ImposterCaughtPoints
			}
		}
	} else if imposterID != "" {
		t.ScoreChanges[imposterID] += internal.ImposterEscapedPoints
	}
	return t
}

// applyScoresLocked adds a tally's changes to the ledger. Ids no longer in
// the ledger are skipped.
func (r *Room) applyScoresLocked(changes map[string]int) {
	for id, delta := range changes {
		if _, ok := r.scores[id]; ok {
			r.scores[id] += delta
		}
	}
}

// resultsLocked tallies the current votes, applies the score changes and
// builds the results payload.
func (r *Room) resultsLocked() *internal.ResultsData {
	t := TallyVotes(r.votes, r.imposterID)
	r.applyScoresLocked(t.ScoreChanges)

	votes := make(map[string]string, len(r.votes))
	summary := make([]internal.VoteSummary, 0, len(r.votes))
	for _, p := range r.players {
		target, ok := r.votes[p.Id]
		if !ok {
			continue
		}
		votes[p.Id] = target
		summary = append(summary, internal.VoteSummary{
			VoterID:    p.Id,
			VoterName:  p.Name,
			TargetID:   target,
			TargetName: r.nameLocked(target),
		})
	}

	r.log.Infof("[TallyVotes] accused=%v tie=%v caught=%v changes=%v",
		t.Accused, t.IsTie, t.ImposterCaught, t.ScoreChanges)

	return &internal.ResultsData{
		Votes:           votes,
		Counts:          t.Counts,
		Accused:         t.Accused,
		IsTie:           t.IsTie,
		ImposterID:      r.imposterID,
		ImposterName:    r.nameLocked(r.imposterID),
		ImposterCaught:  t.ImposterCaught,
		Word:            r.word,
		Category:        r.category,
		WordSubmittedBy: r.wordSubmittedBy,
		ScoreChanges:    t.ScoreChanges,
		VoteSummary:     summary,
		Leaderboard:     r.leaderboardLocked(),
		Players:         r.rosterLocked(),
	}
}

// Leaderboard returns players sorted by score, highest first. Equal scores
// share a position and keep roster order.
func (r *Room) Leaderboard() []internal.LeaderboardEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.leaderboardLocked()
}

func (r *Room) leaderboardLocked() []internal.LeaderboardEntry {
	entries := make([]internal.LeaderboardEntry, 0, len(r.players))
	for _, p := range r.players {
		score, ok := r.scores[p.Id]
		if !ok {
			continue
		}
		entries = append(entries, internal.LeaderboardEntry{
			PlayerID: p.Id,
			Name:     p.Name,
			Score:    score,
		})
	}

	slices.SortStableFunc(entries, func(a, b internal.LeaderboardEntry) int {
		return cmp.Compare(b.Score, a.Score)
	})
	for i := range entries {
		if i > 0 && entries[i].Score == entries[i-1].Score {
			entries[i].Position = entries[i-1].Position
			continue
		}
		entries[i].Position = i + 1
	}
	return entries
}
