package pagescmd

import (
	"errors"
	"time"

	command "github.com/goliatone/go-command"
	"github.com/linkmax/lnkmx/internal/commands"
	"github.com/linkmax/lnkmx/internal/pages"
	"github.com/linkmax/lnkmx/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the page command handlers.
type HandlerSet struct {
	Reorder  *ReorderBlocksHandler
	Add      *AddBlockHandler
	Remove   *RemoveBlockHandler
	Schedule *ScheduleBlockHandler
}

// All returns the handlers in registration order.
func (s *HandlerSet) All() []any {
	if s == nil {
		return nil
	}
	return []any{s.Reorder, s.Add, s.Remove, s.Schedule}
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	timeout      time.Duration
	reorderOpts  []commands.HandlerOption[ReorderBlocksCommand]
	addOpts      []commands.HandlerOption[AddBlockCommand]
	removeOpts   []commands.HandlerOption[RemoveBlockCommand]
	scheduleOpts []commands.HandlerOption[ScheduleBlockCommand]
}

// WithTimeout applies timeout to every page command handler.
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *options) {
		cfg.timeout = timeout
	}
}

func WithReorderHandlerOptions(opts ...commands.HandlerOption[ReorderBlocksCommand]) Option {
	return func(cfg *options) {
		cfg.reorderOpts = append(cfg.reorderOpts, opts...)
	}
}

func WithAddHandlerOptions(opts ...commands.HandlerOption[AddBlockCommand]) Option {
	return func(cfg *options) {
		cfg.addOpts = append(cfg.addOpts, opts...)
	}
}

func WithRemoveHandlerOptions(opts ...commands.HandlerOption[RemoveBlockCommand]) Option {
	return func(cfg *options) {
		cfg.removeOpts = append(cfg.removeOpts, opts...)
	}
}

func WithScheduleHandlerOptions(opts ...commands.HandlerOption[ScheduleBlockCommand]) Option {
	return func(cfg *options) {
		cfg.scheduleOpts = append(cfg.scheduleOpts, opts...)
	}
}

// RegisterPageCommands builds the page editor handlers and registers them with
// reg when it is not nil.
func RegisterPageCommands(reg CommandRegistry, service pages.Service, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("page command registration: service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "pages")

	set := &HandlerSet{
		Reorder: NewReorderBlocksHandler(service, logger,
			append([]commands.HandlerOption[ReorderBlocksCommand]{timeoutOption[ReorderBlocksCommand](cfg.timeout)}, cfg.reorderOpts...)...),
		Add: NewAddBlockHandler(service, logger, gates,
			append([]commands.HandlerOption[AddBlockCommand]{timeoutOption[AddBlockCommand](cfg.timeout)}, cfg.addOpts...)...),
		Remove: NewRemoveBlockHandler(service, logger,
			append([]commands.HandlerOption[RemoveBlockCommand]{timeoutOption[RemoveBlockCommand](cfg.timeout)}, cfg.removeOpts...)...),
		Schedule: NewScheduleBlockHandler(service, logger, gates,
			append([]commands.HandlerOption[ScheduleBlockCommand]{timeoutOption[ScheduleBlockCommand](cfg.timeout)}, cfg.scheduleOpts...)...),
	}

	if reg != nil {
		for _, handler := range set.All() {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}

func timeoutOption[T command.Message](timeout time.Duration) commands.HandlerOption[T] {
	if timeout == 0 {
		return nil
	}
	return commands.WithTimeout[T](timeout)
}
