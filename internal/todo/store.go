package todo

import (
	"io"

	"github.com/charmbracelet/log"
)

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithIDGenerator sets the id source. The default is a "T" counter.
func WithIDGenerator(ids IDGenerator) StoreOption {
	return func(s *Store) {
		if ids != nil {
			s.ids = ids
		}
	}
}

// WithLogger sets the logger commands are reported to.
func WithLogger(logger *log.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRejectBlankEdits makes a save with a blank trimmed buffer behave like
// a cancel, so task text never becomes empty.
func WithRejectBlankEdits(enabled bool) StoreOption {
	return func(s *Store) {
		s.rejectBlankEdits = enabled
	}
}

// Store owns the session state and applies commands to it one at a time.
// It is not safe for concurrent use; the TUI drives it from the update loop.
type Store struct {
	state            State
	ids              IDGenerator
	logger           *log.Logger
	rejectBlankEdits bool
}

// NewStore returns an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		ids:    NewCounter(DefaultIDPrefix),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dispatch applies cmd and returns the new state.
func (s *Store) Dispatch(cmd Command) State {
	if !cmd.Op.Valid() {
		s.logger.Warn("Ignoring unknown command", "op", cmd.Op)
		return s.State()
	}

	if s.rejectBlankEdits && s.isBlankSave(cmd) {
		s.logger.Debug("Rejecting blank edit", "id", cmd.ID)
		cmd = Command{Op: OpCancelEdit}
	}

	before := len(s.state.Tasks)
	s.state = Apply(s.state, cmd, s.ids)

	fields := []any{"op", cmd.Op, "tasks", len(s.state.Tasks)}
	if cmd.ID != "" {
		fields = append(fields, "id", cmd.ID)
	}
	switch {
	case cmd.Op == OpAdd && len(s.state.Tasks) > before:
		s.logger.Info("Task added", append(fields, "new_id", s.state.Tasks[len(s.state.Tasks)-1].ID)...)
	case cmd.Op == OpDelete && len(s.state.Tasks) < before:
		s.logger.Info("Task deleted", fields...)
	default:
		s.logger.Debug("Command applied", fields...)
	}
	return s.State()
}

func (s *Store) isBlankSave(cmd Command) bool {
	if cmd.Op != OpSaveEdit || s.state.Editing == nil {
		return false
	}
	if _, ok := s.state.Find(cmd.ID); !ok {
		return false
	}
	return isBlank(s.state.Editing.Buffer)
}

// State returns a copy of the current state.
func (s *Store) State() State {
	return s.state.Clone()
}

// Find returns the task with the given id.
func (s *Store) Find(id string) (Task, bool) {
	return s.state.Find(id)
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.state.Tasks)
}
