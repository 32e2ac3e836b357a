package internal

import (
	"time"
)

const (
	MaxPlayersPerRoom     = 12
	MinPlayersToStart     = 3
	MinWordsPerPlayer     = 1
	MaxWordsPerPlayer     = 5
	DefaultWordsPerPlayer = 2
	MaxNameLength         = 20
	RoomCodeLength        = 4
	DefaultCleanupDelay   = 5 * time.Minute
	CustomCategory        = "Custom"
	ImposterCaughtPoints  = 1
	ImposterEscapedPoints = 3
)

type GamePhase string

const (
	PhaseLobby          GamePhase = "LOBBY"
	PhaseWordSubmission GamePhase = "WORD_SUBMISSION"
	PhaseWordReveal     GamePhase = "WORD_REVEAL"
	PhaseHinting1       GamePhase = "HINTING_1"
	PhaseHinting2       GamePhase = "HINTING_2"
	PhaseVoting         GamePhase = "VOTING"
	PhaseResults        GamePhase = "RESULTS"
)

// WordEntry is one candidate word, either from the default catalog or
// submitted by a player.
type WordEntry struct {
	Word            string `json:"word"`
	Category        string `json:"category"`
	SubmittedBy     string `json:"submitted_by,omitempty"`
	SubmittedByName string `json:"submitted_by_name,omitempty"`
}

// Settings are the per-room round options. They can only change in the lobby.
type Settings struct {
	HideCategoryFromImposter bool `json:"hide_category_from_imposter"`
	CustomWordsEnabled       bool `json:"custom_words_enabled"`
	IncludeDefaultWords      bool `json:"include_default_words"`
	RequiredWordsPerPlayer   int  `json:"required_words_per_player"`
}

func DefaultSettings() Settings {
	return Settings{
		IncludeDefaultWords:    true,
		RequiredWordsPerPlayer: DefaultWordsPerPlayer,
	}
}

// SettingsPatch carries a partial settings update; nil fields are left alone.
type SettingsPatch struct {
	HideCategoryFromImposter *bool `json:"hide_category_from_imposter,omitempty"`
	CustomWordsEnabled       *bool `json:"custom_words_enabled,omitempty"`
	IncludeDefaultWords      *bool `json:"include_default_words,omitempty"`
	RequiredWordsPerPlayer   *int  `json:"required_words_per_player,omitempty"`
}

type Response struct {
	StatusCode    int   `json:"status_code"`
	RespStartTime int64 `json:"resp_time_start_ms"`
	RespEndTime   int64 `json:"resp_time_end_ms"`
	NetRespTime   int64 `json:"net_resp_time_ms"`
	Data          any   `json:"data"`
}
