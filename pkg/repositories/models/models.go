package models

import (
	"time"

	gametypes "github.com/cbodonnell/fishbowl/pkg/game/types"
)

type Lobby struct {
	ID        string                `json:"id"`
	Config    gametypes.LobbyConfig `json:"config"`
	CreatedAt time.Time             `json:"created_at"`
}
