package commands

import (
	"context"
	"time"

	"github.com/linkmax/lnkmx/internal/logging"
	"github.com/linkmax/lnkmx/pkg/interfaces"
)

// DefaultCommandTimeout bounds a page command unless the handler sets its own.
const DefaultCommandTimeout = 30 * time.Second

// commandContext derives the execution context of one command. A nil ctx
// becomes context.Background; a non-positive timeout adds no deadline.
func commandContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// EnsureLogger falls back to the no-op logger.
func EnsureLogger(logger interfaces.Logger) interfaces.Logger {
	if logger != nil {
		return logger
	}
	return logging.NoOp()
}
