package async

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"
)

// Dispatch executes a handler function asynchronously with proper context and panic recovery
//
// Parameters:
//   - ctx: Original context (values will be preserved, but cancellation won't affect the async handler)
//   - name: Task name attached to every log record of the handler
//   - handler: Function to execute asynchronously
//
// Behavior:
//   - Creates a new background context with preserved logger
//   - Executes handler in a new goroutine, nobody waits for it
//   - Recovers from panics and logs them
//   - Logs errors returned by handler
func Dispatch(ctx context.Context, name string, handler func(ctx context.Context) error) {
	newCtx := newBackgroundContext(ctx, name)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				logger := ctxlog.From(newCtx)
				logger.Error("panic in async handler",
					"recover", r,
					"stack", string(stack))
			}
		}()

		if err := handler(newCtx); err != nil {
			logger := ctxlog.From(newCtx)
			logger.Error("error in async handler", "error", err)
		}
	}()
}

// newBackgroundContext creates a new background context preserving the logger,
// tagged with the task name
func newBackgroundContext(ctx context.Context, name string) context.Context {
	logger := ctxlog.From(ctx).With("task", name)
	return ctxlog.With(context.Background(), logger)
}
