package internal

// Avatar is an optional icon + color pair picked on the join screen.
type Avatar struct {
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type Player struct {
	Id        string  `json:"id"`
	Name      string  `json:"name"`
	Connected bool    `json:"connected"`
	Avatar    *Avatar `json:"avatar,omitempty"`
}

// PlayerSnapshot is the public roster view of a player, score included.
type PlayerSnapshot struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Connected bool    `json:"connected"`
	Avatar    *Avatar `json:"avatar,omitempty"`
	Score     int     `json:"score"`
	IsHost    bool    `json:"is_host"`
}

func (p *Player) Clone() *Player {
	c := *p
	if p.Avatar != nil {
		a := *p.Avatar
		c.Avatar = &a
	}
	return &c
}

func CreatePlayerSnapshot(p *Player, score int, isHost bool) PlayerSnapshot {
	s := PlayerSnapshot{
		ID:        p.Id,
		Name:      p.Name,
		Connected: p.Connected,
		Score:     score,
		IsHost:    isHost,
	}
	if p.Avatar != nil {
		a := *p.Avatar
		s.Avatar = &a
	}
	return s
}
