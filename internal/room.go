package internal

// RoomSnapshot is the full public view of a room sent on create, join and
// rejoin. It never carries the word or the imposter.
type RoomSnapshot struct {
	Code             string            `json:"room_code"`
	Phase            GamePhase         `json:"phase"`
	HostID           string            `json:"host_id"`
	Players          []PlayerSnapshot  `json:"players"`
	Settings         Settings          `json:"settings"`
	VoteProgress     *VoteProgress     `json:"vote_progress,omitempty"`
	SubmissionStatus *SubmissionStatus `json:"submission_status,omitempty"`
}

type VoteProgress struct {
	VoteCount     int `json:"vote_count"`
	ExpectedVotes int `json:"expected_votes"`
}

type PlayerSubmission struct {
	PlayerID  string `json:"player_id"`
	Name      string `json:"name"`
	Submitted bool   `json:"submitted"`
}

type SubmissionStatus struct {
	Players        []PlayerSubmission `json:"players"`
	SubmittedCount int                `json:"submitted_count"`
	TotalCount     int                `json:"total_count"`
}

// ConnectedCount counts players with a live connection.
func (s RoomSnapshot) ConnectedCount() int {
	count := 0
	for _, p := range s.Players {
		if p.Connected {
			count++
		}
	}
	return count
}

func (s RoomSnapshot) Player(id string) (PlayerSnapshot, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return PlayerSnapshot{}, false
}
