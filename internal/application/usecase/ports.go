// internal/application/usecase/ports.go
package usecase

import (
	"context"
	"time"

	"github.com/your-org/cart-service/internal/domain/cart"
)

// Invoker calls remote functions by target name.
type Invoker interface {
	// InvokeEvent delivers payload without waiting for the target to run.
	InvokeEvent(ctx context.Context, target string, payload any) error
	// Invoke calls target and returns its raw response, or nil when it produced none.
	Invoke(ctx context.Context, target string, payload any) ([]byte, error)
}

// Clock provides current time (for testability).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// Lifecycle carries the expiry window and time source shared by the cart use cases.
// The zero value uses cart.DefaultTTL and the system clock.
type Lifecycle struct {
	TTL   time.Duration
	Clock Clock
}

func (l Lifecycle) now() time.Time {
	if l.Clock == nil {
		return systemClock{}.Now()
	}
	return l.Clock.Now()
}

func (l Lifecycle) ttl() time.Duration {
	if l.TTL <= 0 {
		return cart.DefaultTTL
	}
	return l.TTL
}
