package game

import (
	"github.com/scythe504/imposter-backend/internal"
)

// ResultKind tags which payload a phase-changing operation produced.
type ResultKind int

const (
	// KindPhaseChanged: broadcast the new phase to everyone.
	KindPhaseChanged ResultKind = iota + 1
	// KindRoundStarted: a word and imposter were drawn; send each connected
	// player their personalised RoundStart.
	KindRoundStarted
	// KindResults: the round was tallied; broadcast Results.
	KindResults
)

func (k ResultKind) String() string {
	switch k {
	case KindPhaseChanged:
		return "phase_changed"
	case KindRoundStarted:
		return "round_started"
	case KindResults:
		return "results"
	}
	return "unknown"
}

// PhaseResult is returned by StartGame, AdvancePhase, PlayAgain and
// ReturnToLobby. Exactly the fields matching Kind are set, plus the roster.
type PhaseResult struct {
	Kind       ResultKind
	Phase      internal.GamePhase
	Round      *RoundStart
	Results    *internal.ResultsData
	Submission *internal.SubmissionStatus
	Players    []internal.PlayerSnapshot
	HostID     string
}

// PhaseChanged builds the broadcast payload for KindPhaseChanged.
func (p PhaseResult) PhaseChanged() internal.PhaseChangedData {
	return internal.PhaseChangedData{
		Phase:   p.Phase,
		Players: p.Players,
		HostID:  p.HostID,
	}
}

// RoundStart holds the secret round state. It must never be sent as is;
// use For to build each recipient's view.
type RoundStart struct {
	Phase           internal.GamePhase
	Word            string
	Category        string
	ImposterID      string
	WordSubmittedBy string
	HideCategory    bool
	Recipients      []string
	Players         []internal.PlayerSnapshot
	HostID          string
}

// For returns the payload for one player: the imposter gets no word, and no
// category either when the room hides it.
func (rs RoundStart) For(playerID string) internal.RoundStartData {
	isImposter := playerID == rs.ImposterID
	data := internal.RoundStartData{
		Phase:           rs.Phase,
		Word:            rs.Word,
		Category:        rs.Category,
		IsImposter:      isImposter,
		WordSubmittedBy: rs.WordSubmittedBy,
		Players:         rs.Players,
		HostID:          rs.HostID,
	}
	if isImposter {
		data.Word = ""
		data.WordSubmittedBy = ""
		if rs.HideCategory {
			data.Category = ""
		}
	}
	return data
}

func (r *Room) roundStartLocked() *RoundStart {
	return &RoundStart{
		Phase:           r.phase,
		Word:            r.word,
		Category:        r.category,
		ImposterID:      r.imposterID,
		WordSubmittedBy: r.wordSubmittedBy,
		HideCategory:    r.settings.HideCategoryFromImposter,
		Recipients:      r.connectedIDsLocked(),
		Players:         r.rosterLocked(),
		HostID:          r.hostID,
	}
}

func (r *Room) phaseResultLocked(kind ResultKind) PhaseResult {
	return PhaseResult{
		Kind:    kind,
		Phase:   r.phase,
		Players: r.rosterLocked(),
		HostID:  r.hostID,
	}
}

func (r *Room) connectedIDsLocked() []string {
	ids := make([]string, 0, len(r.players))
	for _, p := range r.players {
		if p.Connected {
			ids = append(ids, p.Id)
		}
	}
	return ids
}

// RoundFor rebuilds a player's personalised round view, e.g. after a rejoin.
// It reports false outside an active round.
func (r *Room) RoundFor(playerID string) (internal.RoundStartData, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.phase.InRound() || r.imposterID == "" {
		return internal.RoundStartData{}, false
	}
	return r.roundStartLocked().For(playerID), true
}
