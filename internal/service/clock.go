package service

import (
	"time"

	"schoolhub-backend/internal/utils"
)

// Clock supplies the current calendar date. Injected so that returns,
// renewals and the overdue sweep stay deterministic in tests.
type Clock interface {
	Today() time.Time
}

type systemClock struct{}

func (systemClock) Today() time.Time {
	return utils.Midnight(time.Now())
}

func NewSystemClock() Clock {
	return systemClock{}
}
