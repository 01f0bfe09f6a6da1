// Package todo holds the in-memory task list and the handlers that change it.
//
// All state lives in a single State value:
//
//	State{
//	  Tasks:   []Task{{ID: "T1", Text: "Buy milk", Completed: false}},
//	  Draft:   "",                                 // unsubmitted new-task text
//	  Editing: &Edit{ID: "T1", Buffer: "Buy oat"}, // nil when nothing is edited
//	}
//
// # Handlers
//
// Handlers are pure functions from the current State (plus input) to the
// next State. They never mutate their argument and never return errors:
//
//   - SetDraft replaces the draft text
//   - AddTask appends a task when the trimmed draft is non-blank
//   - DeleteTask removes a task and clears edit mode if it pointed at it
//   - ToggleComplete flips the completed flag
//   - BeginEdit, UpdateEditBuffer, SaveEdit, CancelEdit drive edit mode
//
// Operations on an unknown id are silent no-ops.
//
// # Commands
//
// A Command is the serialized form of one handler call. Store.Dispatch
// applies commands one at a time; the script package replays them from JSON.
//
// # Identifiers
//
// Ids come from an IDGenerator. Counter yields "T1", "T2", ... and UUIDs
// yields random version 4 UUIDs. Ids are never reused within a session.
package todo
