package internal

// phaseOrder is the fixed forward order of a round.
var phaseOrder = []GamePhase{
	PhaseLobby,
	PhaseWordSubmission,
	PhaseWordReveal,
	PhaseHinting1,
	PhaseHinting2,
	PhaseVoting,
	PhaseResults,
}

func (p GamePhase) String() string {
	return string(p)
}

func (p GamePhase) Valid() bool {
	return p.index() >= 0
}

func (p GamePhase) index() int {
	for i, phase := range phaseOrder {
		if phase == p {
			return i
		}
	}
	return -1
}

// Next returns the phase that follows p. WORD_SUBMISSION is only reachable
// from LOBBY when custom words are on; RESULTS has no successor.
func (p GamePhase) Next(customWords bool) (GamePhase, bool) {
	switch p {
	case PhaseLobby:
		if customWords {
			return PhaseWordSubmission, true
		}
		return PhaseWordReveal, true
	case PhaseResults:
		return "", false
	}
	idx := p.index()
	if idx < 0 || idx >= len(phaseOrder)-1 {
		return "", false
	}
	return phaseOrder[idx+1], true
}

// Before reports whether p comes strictly earlier than other in a round.
func (p GamePhase) Before(other GamePhase) bool {
	return p.index() < other.index()
}

// InRound reports whether a word and imposter are live in phase p.
func (p GamePhase) InRound() bool {
	return p != PhaseLobby && p != PhaseWordSubmission && p.Valid()
}
