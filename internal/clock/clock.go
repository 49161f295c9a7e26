package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock abstracts time so services can be tested against a fixed now.
type Clock interface {
	Now() time.Time
}

var Module = fx.Provide(NewSystemClock)

type SystemClock struct{}

func NewSystemClock() Clock {
	return SystemClock{}
}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
