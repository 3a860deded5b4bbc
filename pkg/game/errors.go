package game

import (
	"errors"
	"fmt"
)

// ErrGameNotFound is returned for actions on a lobby without a live game.
type ErrGameNotFound struct {
	LobbyID string
}

func (e *ErrGameNotFound) Error() string {
	return fmt.Sprintf("no game in progress for lobby %s", e.LobbyID)
}

func IsGameNotFound(err error) bool {
	var target *ErrGameNotFound
	return errors.As(err, &target)
}
