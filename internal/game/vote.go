package game

import (
	"github.com/scythe504/imposter-backend/internal"
)

// CastVote records voterID's accusation, replacing any earlier vote.
// Targets only need to exist in the roster; a disconnected placeholder is a
// valid target.
func (r *Room) CastVote(voterID, targetID string) (internal.VoteProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != internal.PhaseVoting {
		return internal.VoteProgress{}, ErrWrongPhase
	}
	if voter := r.findLocked(voterID); voter == nil || !voter.Connected {
		return internal.VoteProgress{}, ErrPlayerNotFound
	}
	if r.findLocked(targetID) == nil {
		return internal.VoteProgress{}, ErrInvalidTarget
	}
	if voterID == targetID {
		return internal.VoteProgress{}, ErrSelfVote
	}

	r.votes[voterID] = targetID
	r.log.Debugf("[CastVote] %s -> %s (%d/%d)", voterID, targetID, len(r.votes), r.connectedCountLocked())
	return r.voteProgressLocked(), nil
}

// VoteProgress reports how many votes are in versus connected players.
func (r *Room) VoteProgress() internal.VoteProgress {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.voteProgressLocked()
}

func (r *Room) voteProgressLocked() internal.VoteProgress {
	return internal.VoteProgress{
		VoteCount:     len(r.votes),
		ExpectedVotes: r.connectedCountLocked(),
	}
}
