package clock

import (
	"time"

	"homestay/shared/timezone"
)

// Clock abstracts time so hold expiry can be simulated in tests.
type Clock interface {
	Now() time.Time
}

type clockImpl struct {
}

// Now implements Clock.
func (c *clockImpl) Now() time.Time {
	return timezone.Now()
}

func New() Clock {
	return &clockImpl{}
}
