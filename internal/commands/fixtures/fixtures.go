package fixtures

// RecordingRegistry captures registered page command handlers. When Err is
// set, registration fails after FailAfter successful calls.
type RecordingRegistry struct {
	Handlers  []any
	Err       error
	FailAfter int
}

func NewRecordingRegistry() *RecordingRegistry {
	return &RecordingRegistry{Handlers: []any{}}
}

// RegisterCommand records handler or returns the configured error.
func (r *RecordingRegistry) RegisterCommand(handler any) error {
	if r.Err != nil && len(r.Handlers) >= r.FailAfter {
		return r.Err
	}
	r.Handlers = append(r.Handlers, handler)
	return nil
}
