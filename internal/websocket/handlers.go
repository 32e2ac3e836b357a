package websocket

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/scythe504/imposter-backend/internal"
	"github.com/scythe504/imposter-backend/internal/game"
)

var (
	errBadRequest  = errors.New("malformed request")
	errUnknownType = errors.New("unknown message type")
	errRateLimited = errors.New("too many requests")
)

func errorCode(err error) string {
	switch {
	case errors.Is(err, errBadRequest):
		return "bad_request"
	case errors.Is(err, errUnknownType):
		return "unknown_type"
	case errors.Is(err, errRateLimited):
		return "rate_limited"
	}
	return game.ErrorCode(err)
}

type handlerFunc func(h *Hub, c *Client, req internal.RawRequest) error

var handlers = map[string]handlerFunc{
	internal.MsgCreateRoom:     handleCreateRoom,
	internal.MsgJoinRoom:       handleJoinRoom,
	internal.MsgRejoinRoom:     handleRejoinRoom,
	internal.MsgUpdateSettings: handleUpdateSettings,
	internal.MsgTransferHost:   handleTransferHost,
	internal.MsgStartGame:      handleStartGame,
	internal.MsgSubmitWords:    handleSubmitWords,
	internal.MsgAdvancePhase:   handleAdvancePhase,
	internal.MsgCastVote:       handleCastVote,
	internal.MsgPlayAgain:      handlePlayAgain,
	internal.MsgReturnToLobby:  handleReturnToLobby,
}

// dispatch routes one request. Handlers ack success themselves so the ack
// reaches the caller before any broadcast; failures are acked here.
func (h *Hub) dispatch(c *Client, req internal.RawRequest) {
	handle, ok := handlers[req.Type]
	if !ok {
		c.ackError(req.RequestID, errUnknownType)
		return
	}
	if err := handle(h, c, req); err != nil {
		c.log.WithField("type", req.Type).Debugf("[Dispatch] rejected: %v", err)
		c.ackError(req.RequestID, err)
	}
}

func decode(req internal.RawRequest, v any) error {
	if len(req.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(req.Data, v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

// currentRoom resolves the caller's room from the registry rather than
// anything the client claims.
func (h *Hub) currentRoom(c *Client) (*game.Room, error) {
	room, ok := h.registry.RoomOf(c.id)
	if !ok {
		return nil, game.ErrRoomNotFound
	}
	return room, nil
}

func roster(room *game.Room) internal.RosterData {
	snap := room.Snapshot()
	return internal.RosterData{Players: snap.Players, HostID: snap.HostID}
}

// =============================================================================
// LOBBY REQUESTS
// =============================================================================

func handleCreateRoom(h *Hub, c *Client, req internal.RawRequest) error {
	var body internal.CreateRoomRequest
	if err := decode(req, &body); err != nil {
		return err
	}
	room, err := h.registry.CreateRoom(c.id, body.PlayerName, body.Avatar)
	if err != nil {
		return err
	}
	c.log.WithField("room", room.Code()).Info("[CreateRoom] room created")
	c.ack(req.RequestID, internal.AckData{PlayerID: c.id, Room: room.Snapshot()})
	return nil
}

func handleJoinRoom(h *Hub, c *Client, req internal.RawRequest) error {
	var body internal.JoinRoomRequest
	if err := decode(req, &body); err != nil {
		return err
	}
	room, err := h.registry.JoinRoom(body.RoomCode, c.id, body.PlayerName, body.Avatar)
	if err != nil {
		return err
	}
	c.ack(req.RequestID, internal.AckData{PlayerID: c.id, Room: room.Snapshot()})
	h.broadcast(room, internal.Message[any]{Type: internal.EventPlayerJoined, Data: roster(room)})
	return nil
}

// handleRejoinRoom reclaims a disconnected seat mid-game. The rejoining
// player also gets their personal round view back.
func handleRejoinRoom(h *Hub, c *Client, req internal.RawRequest) error {
	var body internal.JoinRoomRequest
	if err := decode(req, &body); err != nil {
		return err
	}
	room, err := h.registry.RejoinRoom(body.RoomCode, c.id, body.PlayerName)
	if err != nil {
		return err
	}
	c.ack(req.RequestID, internal.AckData{PlayerID: c.id, Room: room.Snapshot()})
	h.broadcast(room, internal.Message[any]{Type: internal.EventPlayerJoined, Data: roster(room)})
	if view, ok := room.RoundFor(c.id); ok {
		h.sendTo(c.id, internal.Message[internal.RoundStartData]{Type: internal.EventRoundStarted, Data: view})
	}
	return nil
}

func handleUpdateSettings(h *Hub, c *Client, req internal.RawRequest) error {
	var patch internal.SettingsPatch
	if err := decode(req, &patch); err != nil {
		return err
	}
	room, err := h.currentRoom(c)
	if err != nil {
		return err
	}
	settings, err := room.UpdateSettings(c.id, patch)
	if err != nil {
		return err
	}
	c.ack(req.RequestID, internal.AckData{})
	h.broadcast(room, internal.Message[any]{Type: internal.EventSettingsUpdated, Data: settings})
	return nil
}

func handleTransferHost(h *Hub, c *Client, req internal.RawRequest) error {
	var body internal.TransferHostRequest
	if err := decode(req, &body); err != nil {
		return err
	}
	room, err := h.currentRoom(c)
	if err != nil {
		return err
	}
	if err := room.TransferHost(c.id, body.PlayerID); err != nil {
		return err
	}
	c.ack(req.RequestID, internal.AckData{})
	h.broadcast(room, internal.Message[any]{Type: internal.EventHostChanged, Data: roster(room)})
	return nil
}

// =============================================================================
// ROUND REQUESTS
// =============================================================================

// phaseHandler adapts the host-only transitions that all return a
// PhaseResult.
func phaseHandler(op func(*game.Room, string) (game.PhaseResult, error)) handlerFunc {
	return func(h *Hub, c *Client, req internal.RawRequest) error {
		room, err := h.currentRoom(c)
		if err != nil {
			return err
		}
		res, err := op(room, c.id)
		if err != nil {
			return err
		}
		c.ack(req.RequestID, internal.AckData{})
		h.deliver(room, res)
		return nil
	}
}

var (
	handleStartGame     = phaseHandler((*game.Room).StartGame)
	handleAdvancePhase  = phaseHandler((*game.Room).AdvancePhase)
	handlePlayAgain     = phaseHandler((*game.Room).PlayAgain)
	handleReturnToLobby = phaseHandler((*game.Room).ReturnToLobby)
)

func handleSubmitWords(h *Hub, c *Client, req internal.RawRequest) error {
	var body internal.SubmitWordsRequest
	if err := decode(req, &body); err != nil {
		return err
	}
	room, err := h.currentRoom(c)
	if err != nil {
		return err
	}
	status, err := room.SubmitWords(c.id, body.Words)
	if err != nil {
		return err
	}
	c.ack(req.RequestID, internal.AckData{})
	h.broadcast(room, internal.Message[any]{Type: internal.EventSubmissionStatus, Data: status})
	return nil
}

func handleCastVote(h *Hub, c *Client, req internal.RawRequest) error {
	var body internal.CastVoteRequest
	if err := decode(req, &body); err != nil {
		return err
	}
	room, err := h.currentRoom(c)
	if err != nil {
		return err
	}
	progress, err := room.CastVote(c.id, body.TargetID)
	if err != nil {
		return err
	}
	c.ack(req.RequestID, internal.AckData{})
	h.broadcast(room, internal.Message[any]{Type: internal.EventVoteUpdate, Data: progress})
	return nil
}
