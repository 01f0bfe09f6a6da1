// Package todo holds the in-memory task list and the handlers that change it.
package todo

import "strings"

// Task represents a single entry in the list.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Edit is the transient edit mode: the task being edited and its scratch text.
type Edit struct {
	ID     string `json:"id"`
	Buffer string `json:"buffer"`
}

// State is the full task list state.
type State struct {
	Tasks   []Task `json:"tasks"`
	Draft   string `json:"draft"`
	Editing *Edit  `json:"editing,omitempty"`
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := State{Draft: s.Draft}
	if s.Tasks != nil {
		out.Tasks = make([]Task, len(s.Tasks))
		copy(out.Tasks, s.Tasks)
	}
	if s.Editing != nil {
		e := *s.Editing
		out.Editing = &e
	}
	return out
}

// Find returns the task with the given id.
func (s State) Find(id string) (Task, bool) {
	if i := s.index(id); i >= 0 {
		return s.Tasks[i], true
	}
	return Task{}, false
}

// IsEditing reports whether the task with the given id is in edit mode.
func (s State) IsEditing(id string) bool {
	return s.Editing != nil && s.Editing.ID == id
}

// Summary returns the total and completed task counts.
func Summary(s State) (total, done int) {
	for _, t := range s.Tasks {
		if t.Completed {
			done++
		}
	}
	return len(s.Tasks), done
}

func (s State) index(id string) int {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
