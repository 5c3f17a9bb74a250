// Package punch derives the next legal punch direction from the most recent
// stored event and validates proposed punches against it.
package punch

import (
	"errors"

	"github.com/simmons/punch/internal/models"
)

// ErrStateMismatch indicates a proposed punch direction that disagrees with
// the next expected direction for the project.
var ErrStateMismatch = errors.New("punch direction conflicts with current state")

// NextDirection determines the next expected punch direction from the most
// recent in/out event, or nil when the project has none. Note events and
// earlier history are irrelevant.
func NextDirection(last *models.Event) models.Direction {
	if last == nil {
		return models.DirectionIn
	}
	if last.Type == models.EventIn {
		return models.DirectionOut
	}
	return models.DirectionIn
}

// Validate checks a proposed punch against the current state. The caller
// must hold whatever serialization point makes this check atomic with the
// subsequent event append; otherwise two concurrent punches can both pass.
func Validate(proposed models.Direction, last *models.Event) error {
	if proposed != NextDirection(last) {
		return ErrStateMismatch
	}
	return nil
}
