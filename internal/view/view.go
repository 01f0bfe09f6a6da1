// Package view projects task list state into a screen and renders it.
package view

import "github.com/nibzard/tasklist-go/internal/todo"

// Title is the heading shown above the form.
const Title = "Task Manager"

// EmptyMessage is shown when the list has no tasks.
const EmptyMessage = "No tasks yet. Add one to get started!"

// Row is one list entry. It is either Viewing or Editing.
type Row interface {
	TaskID() string
	isRow()
}

// Viewing is a normal row: checkbox, text, edit and delete controls.
type Viewing struct {
	Task todo.Task
}

// Editing is a row in edit mode: text input bound to Buffer plus save and cancel controls.
type Editing struct {
	Task   todo.Task
	Buffer string
}

func (r Viewing) TaskID() string { return r.Task.ID }
func (r Editing) TaskID() string { return r.Task.ID }

func (Viewing) isRow() {}
func (Editing) isRow() {}

// Screen is the visual tree for one state.
type Screen struct {
	Title        string
	Draft        string
	Rows         []Row
	Empty        bool
	EmptyMessage string
	Total        int
	Done         int
}

// Project builds the screen for s. Equal states yield equal screens.
func Project(s todo.State) Screen {
	total, done := todo.Summary(s)
	screen := Screen{
		Title: Title,
		Draft: s.Draft,
		Rows:  make([]Row, 0, len(s.Tasks)),
		Empty: len(s.Tasks) == 0,
		Total: total,
		Done:  done,
	}
	if screen.Empty {
		screen.EmptyMessage = EmptyMessage
	}
	for _, task := range s.Tasks {
		if s.IsEditing(task.ID) {
			screen.Rows = append(screen.Rows, Editing{Task: task, Buffer: s.Editing.Buffer})
			continue
		}
		screen.Rows = append(screen.Rows, Viewing{Task: task})
	}
	return screen
}
