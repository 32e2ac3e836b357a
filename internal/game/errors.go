package game

import "errors"

var (
	ErrGameInProgress   = errors.New("game already in progress")
	ErrRoomFull         = errors.New("room is full")
	ErrNameTaken        = errors.New("name already taken")
	ErrInvalidName      = errors.New("invalid player name")
	ErrNotEnoughPlayers = errors.New("need at least 3 connected players")
	ErrNoFurtherPhase   = errors.New("no further phase")
	ErrWrongPhase       = errors.New("action not allowed in current phase")
	ErrNoWordsAvailable = errors.New("no words available")
	ErrInvalidWordCount = errors.New("wrong number of words")
	ErrEmptyWord        = errors.New("words cannot be blank")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrInvalidTarget    = errors.New("invalid vote target")
	ErrSelfVote         = errors.New("cannot vote for yourself")
	ErrInvalidPlayer    = errors.New("invalid player")
	ErrAlreadyHost      = errors.New("player is already the host")
	ErrInvalidSettings  = errors.New("invalid settings")
	ErrRoomNotFound     = errors.New("room not found")
	ErrUnauthorized     = errors.New("only the host can do that")
	ErrRegistryClosed   = errors.New("room registry is shut down")
)

// ErrorCode maps an engine error to the stable code sent to clients.
func ErrorCode(err error) string {
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return "internal_error"
}

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrGameInProgress, "game_in_progress"},
	{ErrRoomFull, "room_full"},
	{ErrNameTaken, "name_taken"},
	{ErrInvalidName, "invalid_name"},
	{ErrNotEnoughPlayers, "not_enough_players"},
	{ErrNoFurtherPhase, "no_further_phase"},
	{ErrWrongPhase, "wrong_phase"},
	{ErrNoWordsAvailable, "no_words_available"},
	{ErrInvalidWordCount, "invalid_word_count"},
	{ErrEmptyWord, "empty_word"},
	{ErrPlayerNotFound, "player_not_found"},
	{ErrInvalidTarget, "invalid_target"},
	{ErrSelfVote, "self_vote"},
	{ErrInvalidPlayer, "invalid_player"},
	{ErrAlreadyHost, "already_host"},
	{ErrInvalidSettings, "invalid_settings"},
	{ErrRoomNotFound, "room_not_found"},
	{ErrUnauthorized, "unauthorized"},
	{ErrRegistryClosed, "registry_closed"},
}
