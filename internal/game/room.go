package game

import (
	"slices"
	"sync"

	"github.com/scythe504/imposter-backend/internal"
	"github.com/scythe504/imposter-backend/internal/utils"
	"github.com/scythe504/imposter-backend/internal/words"
	"github.com/sirupsen/logrus"
)

// =============================================================================
// ROOM STATE
// =============================================================================

// Room is one game instance. Every exported method is a single atomic step
// under mu; a failing call leaves the room unchanged.
type Room struct {
	mu sync.Mutex

	code    string
	phase   internal.GamePhase
	players []*internal.Player
	hostID  string

	word            string
	category        string
	imposterID      string
	wordSubmittedBy string
	votes           map[string]string
	scores          map[string]int

	settings        internal.Settings
	customWordPool  []internal.WordEntry
	wordSubmissions map[string][]string

	cleanup *cleanupTimer
	closed  bool

	words *words.Bank
	log   *logrus.Entry
}

// NewRoom creates a room in the lobby with host as its only player.
func NewRoom(code, hostID, hostName string, hostAvatar *internal.Avatar, bank *words.Bank) *Room {
	r := &Room{
		code:            code,
		phase:           internal.PhaseLobby,
		hostID:          hostID,
		votes:           make(map[string]string),
		scores:          make(map[string]int),
		settings:        internal.DefaultSettings(),
		wordSubmissions: make(map[string][]string),
		words:           bank,
		log:             logrus.WithFields(logrus.Fields{"component": "room", "room": code}),
	}
	r.players = append(r.players, newPlayer(hostID, hostName, hostAvatar))
	r.scores[hostID] = 0
	return r
}

func newPlayer(id, name string, avatar *internal.Avatar) *internal.Player {
	p := &internal.Player{
		Id:        id,
		Name:      utils.NormalizeName(name),
		Connected: true,
	}
	if avatar != nil {
		a := *avatar
		p.Avatar = &a
	}
	return p
}

// =============================================================================
// ROSTER
// =============================================================================

// AddPlayer appends a connected player. Only allowed in the lobby.
func (r *Room) AddPlayer(id, name string, avatar *internal.Avatar) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRoomNotFound
	}
	if r.phase != internal.PhaseLobby {
		return ErrGameInProgress
	}
	if len(r.players) >= internal.MaxPlayersPerRoom {
		return ErrRoomFull
	}
	name = utils.NormalizeName(name)
	if !utils.ValidName(name, internal.MaxNameLength) {
		return ErrInvalidName
	}
	if r.findLocked(id) != nil {
		return ErrInvalidPlayer
	}
	for _, p := range r.players {
		if utils.SameName(p.Name, name) {
			return ErrNameTaken
		}
	}

	r.players = append(r.players, newPlayer(id, name, avatar))
	r.scores[id] = 0

	// A lobby emptied by evictions keeps a stale host id; the first arrival takes over.
	if host := r.findLocked(r.hostID); host == nil || !host.Connected {
		r.hostID = id
	}
	r.cancelCleanupLocked()

	r.log.Infof("[AddPlayer] added player %s (%s), players=%d", id, name, len(r.players))
	return nil
}

// RemovePlayer handles a disconnect and reports whether no connected player
// remains. Unknown ids are a no-op.
func (r *Room) RemovePlayer(id string) bool {
	_, empty, _ := r.removePlayer(id)
	return empty
}

func (r *Room) removePlayer(id string) (*internal.Player, bool, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := slices.IndexFunc(r.players, func(p *internal.Player) bool { return p.Id == id })
	if idx == -1 {
		return nil, false, false
	}

	player := r.players[idx]
	player.Connected = false
	delete(r.votes, id)

	if id == r.hostID {
		if next := r.firstConnectedLocked(); next != nil {
			r.hostID = next.Id
			r.log.Infof("[RemovePlayer] host %s left, promoted %s (%s)", id, next.Id, next.Name)
		}
	}

	if r.phase == internal.PhaseLobby {
		r.players = slices.Delete(r.players, idx, idx+1)
		delete(r.scores, id)
		delete(r.wordSubmissions, id)
	}

	connected := r.connectedCountLocked()
	r.log.Infof("[RemovePlayer] player %s (%s) disconnected, phase=%s connected=%d",
		id, player.Name, r.phase, connected)

	return player.Clone(), connected == 0, true
}

// Rejoin re-binds a disconnected mid-round placeholder to a new connection id.
// Votes, scores, imposter, host and word attribution follow the player.
func (r *Room) Rejoin(newID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRoomNotFound
	}
	if r.findLocked(newID) != nil {
		return ErrInvalidPlayer
	}

	var placeholder *internal.Player
	for _, p := range r.players {
		if !utils.SameName(p.Name, name) {
			continue
		}
		if p.Connected {
			return ErrNameTaken
		}
		placeholder = p
		break
	}
	if placeholder == nil {
		return ErrPlayerNotFound
	}

	oldID := placeholder.Id
	placeholder.Id = newID
	placeholder.Connected = true

	if score, ok := r.scores[oldID]; ok {
		delete(r.scores, oldID)
		r.scores[newID] = score
	}
	if target, ok := r.votes[oldID]; ok {
		delete(r.votes, oldID)
		r.votes[newID] = target
	}
	for voter, target := range r.votes {
		if target == oldID {
			r.votes[voter] = newID
		}
	}
	if submitted, ok := r.wordSubmissions[oldID]; ok {
		delete(r.wordSubmissions, oldID)
		r.wordSubmissions[newID] = submitted
	}
	for i := range r.customWordPool {
		if r.customWordPool[i].SubmittedBy == oldID {
			r.customWordPool[i].SubmittedBy = newID
		}
	}
	if r.imposterID == oldID {
		r.imposterID = newID
	}
	if r.hostID == oldID {
		r.hostID = newID
	}
	if host := r.findLocked(r.hostID); host == nil || !host.Connected {
		r.hostID = newID
	}
	r.cancelCleanupLocked()

	r.log.Infof("[Rejoin] player %s (%s) reclaimed seat of %s", newID, placeholder.Name, oldID)
	return nil
}

// TransferHost hands the host role to another connected player in the lobby.
func (r *Room) TransferHost(actorID, newHostID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if actorID != r.hostID {
		return ErrUnauthorized
	}
	if r.phase != internal.PhaseLobby {
		return ErrWrongPhase
	}
	target := r.findLocked(newHostID)
	if target == nil || !target.Connected {
		return ErrInvalidPlayer
	}
	if newHostID == r.hostID {
		return ErrAlreadyHost
	}

	r.hostID = newHostID
	r.log.Infof("[TransferHost] host %s -> %s (%s)", actorID, newHostID, target.Name)
	return nil
}

// =============================================================================
// READ VIEWS
// =============================================================================

func (r *Room) Code() string {
	return r.code
}

func (r *Room) Phase() internal.GamePhase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

func (r *Room) HostID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hostID
}

func (r *Room) ImposterID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.imposterID
}

func (r *Room) Word() (word, category string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.word, r.category
}

func (r *Room) WordSubmittedBy() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.wordSubmittedBy
}

func (r *Room) Settings() internal.Settings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settings
}

// Players returns copies of the roster in join order.
func (r *Room) Players() []*internal.Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*internal.Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, p.Clone())
	}
	return out
}

func (r *Room) Votes() map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]string, len(r.votes))
	for k, v := range r.votes {
		out[k] = v
	}
	return out
}

func (r *Room) Scores() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]int, len(r.scores))
	for k, v := range r.scores {
		out[k] = v
	}
	return out
}

func (r *Room) CustomWordPool() []internal.WordEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.customWordPool)
}

func (r *Room) HasPlayer(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findLocked(id) != nil
}

// Joinable reports whether AddPlayer could currently succeed for a fresh name.
func (r *Room) Joinable() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.closed && r.phase == internal.PhaseLobby && len(r.players) < internal.MaxPlayersPerRoom
}

func (r *Room) ConnectedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.connectedCountLocked()
}

// ConnectedIDs lists connected player ids in roster order.
func (r *Room) ConnectedIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.connectedIDsLocked()
}

// Snapshot returns the public room view. The word and imposter are never
// included.
func (r *Room) Snapshot() internal.RoomSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Room) snapshotLocked() internal.RoomSnapshot {
	s := internal.RoomSnapshot{
		Code:     r.code,
		Phase:    r.phase,
		HostID:   r.hostID,
		Players:  r.rosterLocked(),
		Settings: r.settings,
	}
	switch r.phase {
	case internal.PhaseVoting:
		vp := r.voteProgressLocked()
		s.VoteProgress = &vp
	case internal.PhaseWordSubmission:
		ss := r.submissionStatusLocked()
		s.SubmissionStatus = &ss
	}
	return s
}

func (r *Room) rosterLocked() []internal.PlayerSnapshot {
	out := make([]internal.PlayerSnapshot, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, internal.CreatePlayerSnapshot(p, r.scores[p.Id], p.Id == r.hostID))
	}
	return out
}

func (r *Room) findLocked(id string) *internal.Player {
	for _, p := range r.players {
		if p.Id == id {
			return p
		}
	}
	return nil
}

func (r *Room) connectedLocked() []*internal.Player {
	out := make([]*internal.Player, 0, len(r.players))
	for _, p := range r.players {
		if p.Connected {
			out = append(out, p)
		}
	}
	return out
}

func (r *Room) connectedCountLocked() int {
	count := 0
	for _, p := range r.players {
		if p.Connected {
			count++
		}
	}
	return count
}

func (r *Room) firstConnectedLocked() *internal.Player {
	for _, p := range r.players {
		if p.Connected {
			return p
		}
	}
	return nil
}

func (r *Room) nameLocked(id string) string {
	if p := r.findLocked(id); p != nil {
		return p.Name
	}
	return ""
}

// dropDisconnectedLocked evicts every disconnected player along with their
// score, vote and submission record.
func (r *Room) dropDisconnectedLocked() {
	kept := r.players[:0]
	for _, p := range r.players {
		if p.Connected {
			kept = append(kept, p)
			continue
		}
		delete(r.scores, p.Id)
		delete(r.votes, p.Id)
		delete(r.wordSubmissions, p.Id)
	}
	clear(r.players[len(kept):])
	r.players = kept
}
