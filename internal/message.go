package internal

import "encoding/json"

type Message[T any] struct {
	Type      string `json:"type"`
	RequestID string `json:"request_id,omitempty"`
	Data      T      `json:"data"`
}

// Inbound request types.
const (
	MsgCreateRoom     = "create_room"
	MsgJoinRoom       = "join_room"
	MsgRejoinRoom     = "rejoin_room"
	MsgUpdateSettings = "update_settings"
	MsgTransferHost   = "transfer_host"
	MsgStartGame      = "start_game"
	MsgSubmitWords    = "submit_words"
	MsgAdvancePhase   = "advance_phase"
	MsgCastVote       = "cast_vote"
	MsgPlayAgain      = "play_again"
	MsgReturnToLobby  = "return_to_lobby"
)

// Outbound event types.
const (
	EventAck              = "ack"
	EventRoomState        = "room_state"
	EventPlayerJoined     = "player_joined"
	EventPlayerLeft       = "player_left"
	EventSettingsUpdated  = "settings_updated"
	EventHostChanged      = "host_changed"
	EventRoundStarted     = "round_started"
	EventPhaseChanged     = "phase_changed"
	EventSubmissionStatus = "submission_status"
	EventVoteUpdate       = "vote_update"
	EventResults          = "results"
)

type RawRequest = Message[json.RawMessage]

type CreateRoomRequest struct {
	PlayerName string  `json:"player_name"`
	Avatar     *Avatar `json:"avatar,omitempty"`
}

type JoinRoomRequest struct {
	RoomCode   string  `json:"room_code"`
	PlayerName string  `json:"player_name"`
	Avatar     *Avatar `json:"avatar,omitempty"`
}

type TransferHostRequest struct {
	PlayerID string `json:"player_id"`
}

type SubmitWordsRequest struct {
	Words []string `json:"words"`
}

type CastVoteRequest struct {
	TargetID string `json:"target_id"`
}

type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type AckData struct {
	OK       bool       `json:"ok"`
	Error    *ErrorInfo `json:"error,omitempty"`
	PlayerID string     `json:"player_id,omitempty"`
	Room     any        `json:"room,omitempty"`
}

type RosterData struct {
	Players []PlayerSnapshot `json:"players"`
	HostID  string           `json:"host_id"`
}

type PlayerLeftData struct {
	PlayerID         string            `json:"player_id"`
	Name             string            `json:"name"`
	Players          []PlayerSnapshot  `json:"players"`
	HostID           string            `json:"host_id"`
	SubmissionStatus *SubmissionStatus `json:"submission_status,omitempty"`
}

// RoundStartData is personalised per recipient: the imposter never receives
// the word, and loses the category too when the room hides it.
type RoundStartData struct {
	Phase           GamePhase        `json:"phase"`
	Word            string           `json:"word,omitempty"`
	Category        string           `json:"category,omitempty"`
	IsImposter      bool             `json:"is_imposter"`
	WordSubmittedBy string           `json:"word_submitted_by,omitempty"`
	Players         []PlayerSnapshot `json:"players"`
	HostID          string           `json:"host_id"`
}

type PhaseChangedData struct {
	Phase   GamePhase        `json:"phase"`
	Players []PlayerSnapshot `json:"players"`
	HostID  string           `json:"host_id"`
}

type VoteSummary struct {
	VoterID    string `json:"voter_id"`
	VoterName  string `json:"voter"`
	TargetID   string `json:"target_id"`
	TargetName string `json:"target"`
}

type LeaderboardEntry struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Position int    `json:"position"`
}

type ResultsData struct {
	Votes           map[string]string  `json:"votes"`
	Counts          map[string]int     `json:"counts"`
	Accused         []string           `json:"accused"`
	IsTie           bool               `json:"is_tie"`
	ImposterID      string             `json:"imposter_id"`
	ImposterName    string             `json:"imposter_name"`
	ImposterCaught  bool               `json:"imposter_caught"`
	Word            string             `json:"word"`
	Category        string             `json:"category"`
	WordSubmittedBy string             `json:"word_submitted_by,omitempty"`
	ScoreChanges    map[string]int     `json:"score_changes"`
	VoteSummary     []VoteSummary      `json:"vote_summary"`
	Leaderboard     []LeaderboardEntry `json:"leaderboard"`
	Players         []PlayerSnapshot   `json:"players"`
}
