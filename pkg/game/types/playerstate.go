package types

// Player is a member of the roster. Players are fixed once the game starts.
type Player struct {
	Name    string   `json:"name"`
	Phrases []string `json:"phrases"`
	Team    Team     `json:"team"`
}

// Copy returns a deep copy of the player
func (p *Player) Copy() *Player {
	return &Player{
		Name:    p.Name,
		Phrases: append([]string(nil), p.Phrases...),
		Team:    p.Team,
	}
}

// Equal returns true if the player is equal to the other player
func (p *Player) Equal(other *Player) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.Name != other.Name || p.Team != other.Team || len(p.Phrases) != len(other.Phrases) {
		return false
	}
	for i := range p.Phrases {
		if p.Phrases[i] != other.Phrases[i] {
			return false
		}
	}
	return true
}
