package game

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/scythe504/imposter-backend/internal"
	"github.com/scythe504/imposter-backend/internal/utils"
	"github.com/scythe504/imposter-backend/internal/words"
	"github.com/sirupsen/logrus"
)

// codeAlphabet leaves out I and O so codes read unambiguously.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ"

// Registry owns every live room. Lock order is always Registry.mu before
// Room.mu; rooms never call back into the registry while locked.
type Registry struct {
	mu      sync.RWMutex
	rooms   map[string]*Room
	members map[string]string // connection id -> room code
	closed  bool

	bank         *words.Bank
	cleanupDelay time.Duration
	log          *logrus.Entry
}

type RegistryOption func(*Registry)

// WithCleanupDelay sets how long an empty room survives before deletion.
func WithCleanupDelay(d time.Duration) RegistryOption {
	return func(r *Registry) {
		if d > 0 {
			r.cleanupDelay = d
		}
	}
}

func WithLogger(log *logrus.Entry) RegistryOption {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

func NewRegistry(bank *words.Bank, opts ...RegistryOption) *Registry {
	r := &Registry{
		rooms:        make(map[string]*Room),
		members:      make(map[string]string),
		bank:         bank,
		cleanupDelay: internal.DefaultCleanupDelay,
		log:          logrus.WithField("component", "registry"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// =============================================================================
// ROOM CREATION & LOOKUP
// =============================================================================

// GenerateCode returns a code no live room uses.
func (r *Registry) GenerateCode() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.generateCodeLocked()
}

func (r *Registry) generateCodeLocked() string {
	buf := make([]byte, internal.RoomCodeLength)
	for {
		for i := range buf {
			buf[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
		}
		code := string(buf)
		if _, taken := r.rooms[code]; !taken {
			return code
		}
	}
}

// CreateRoom registers a new room with hostID as its only player.
func (r *Registry) CreateRoom(hostID, hostName string, avatar *internal.Avatar) (*Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrRegistryClosed
	}
	if _, ok := r.members[hostID]; ok {
		return nil, ErrInvalidPlayer
	}
	if !utils.ValidName(utils.NormalizeName(hostName), internal.MaxNameLength) {
		return nil, ErrInvalidName
	}

	code := r.generateCodeLocked()
	room := NewRoom(code, hostID, hostName, avatar, r.bank)
	r.rooms[code] = room
	r.members[hostID] = code

	r.log.WithField("room", code).Infof("[CreateRoom] created by %s, live rooms=%d", hostID, len(r.rooms))
	return room, nil
}

// GetRoom looks a room up by code, ignoring case and surrounding spaces.
func (r *Registry) GetRoom(code string) (*Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[utils.NormalizeCode(code)]
	return room, ok
}

// JoinRoom adds a player to the room with the given code.
func (r *Registry) JoinRoom(code, playerID, name string, avatar *internal.Avatar) (*Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[utils.NormalizeCode(code)]
	if !ok {
		return nil, ErrRoomNotFound
	}
	if _, ok := r.members[playerID]; ok {
		return nil, ErrInvalidPlayer
	}
	if err := room.AddPlayer(playerID, name, avatar); err != nil {
		return nil, err
	}
	r.members[playerID] = room.Code()
	return room, nil
}

// RejoinRoom binds a new connection to a disconnected seat in a running game.
func (r *Registry) RejoinRoom(code, playerID, name string) (*Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[utils.NormalizeCode(code)]
	if !ok {
		return nil, ErrRoomNotFound
	}
	if _, ok := r.members[playerID]; ok {
		return nil, ErrInvalidPlayer
	}
	if err := room.Rejoin(playerID, name); err != nil {
		return nil, err
	}
	r.members[playerID] = room.Code()
	return room, nil
}

// RoomOf resolves the room a connection currently belongs to.
func (r *Registry) RoomOf(playerID string) (*Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	code, ok := r.members[playerID]
	if !ok {
		return nil, false
	}
	room, ok := r.rooms[code]
	return room, ok
}

// JoinableRoom returns the code of a lobby with a free seat, if any. Codes
// are checked in sorted order so the answer is stable.
func (r *Registry) JoinableRoom() (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codes := make([]string, 0, len(r.rooms))
	for code := range r.rooms {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		if r.rooms[code].Joinable() {
			return code, true
		}
	}
	return "", false
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// =============================================================================
// DISCONNECTS & CLEANUP
// =============================================================================

// RemovePlayerFromAll handles a dropped connection. It returns the room the
// player was in and a copy of the player as they left, or false if the id
// was in no room. An emptied room gets its cleanup timer armed.
func (r *Registry) RemovePlayerFromAll(playerID string) (*Room, *internal.Player, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var candidates []*Room
	if code, ok := r.members[playerID]; ok {
		if room, ok := r.rooms[code]; ok {
			candidates = append(candidates, room)
		}
	}
	delete(r.members, playerID)
	if len(candidates) == 0 {
		for _, room := range r.rooms {
			candidates = append(candidates, room)
		}
	}

	for _, room := range candidates {
		player, empty, ok := room.removePlayer(playerID)
		if !ok {
			continue
		}
		if empty {
			r.scheduleCleanupLocked(room)
		}
		return room, player, true
	}
	return nil, nil, false
}

// ScheduleCleanup (re)arms deletion of the room with the given code. A
// pending timer is replaced, never stacked.
func (r *Registry) ScheduleCleanup(code string) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if room, ok := r.rooms[utils.NormalizeCode(code)]; ok {
		r.scheduleCleanupLocked(room)
	}
}

func (r *Registry) scheduleCleanupLocked(room *Room) {
	if r.closed {
		return
	}
	room.scheduleCleanup(r.cleanupDelay, func() { r.expire(room) })
}

// expire deletes room if it is still registered and still has nobody
// connected. A reconnect that won the race keeps the room alive.
func (r *Registry) expire(room *Room) {
	r.mu.Lock()
	defer r.mu.Unlock()

	code := room.Code()
	if current, ok := r.rooms[code]; !ok || current != room {
		return
	}
	if !room.closeIfEmpty() {
		r.log.WithField("room", code).Debug("[ScheduleCleanup] room repopulated, keeping it")
		return
	}

	delete(r.rooms, code)
	for id, c := range r.members {
		if c == code {
			delete(r.members, id)
		}
	}
	r.log.WithField("room", code).Infof("[ScheduleCleanup] deleted empty room, live rooms=%d", len(r.rooms))
}

// Shutdown stops every pending cleanup timer and refuses new rooms.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	for _, room := range r.rooms {
		room.CancelCleanup()
	}
	r.log.Infof("[Shutdown] registry closed with %d live rooms", len(r.rooms))
}
