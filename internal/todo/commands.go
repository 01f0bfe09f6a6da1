package todo

import "strings"

// SetDraft replaces the new-task draft verbatim.
func SetDraft(s State, text string) State {
	out := s.Clone()
	out.Draft = text
	return out
}

// AddTask appends a task built from the trimmed draft and clears the draft.
// A blank draft leaves the state unchanged, and no id is drawn for it.
func AddTask(s State, draft string, ids IDGenerator) State {
	if isBlank(draft) {
		return s.Clone()
	}
	out := s.Clone()
	out.Tasks = append(out.Tasks, Task{
		ID:   ids.NextID(),
		Text: strings.TrimSpace(draft),
	})
	out.Draft = ""
	return out
}

// DeleteTask removes the task with the given id. Deleting the task in
// edit mode also exits edit mode.
func DeleteTask(s State, id string) State {
	out := s.Clone()
	i := out.index(id)
	if i < 0 {
		return out
	}
	out.Tasks = append(out.Tasks[:i], out.Tasks[i+1:]...)
	if out.IsEditing(id) {
		out.Editing = nil
	}
	return out
}

// ToggleComplete flips the completed flag of the task with the given id.
func ToggleComplete(s State, id string) State {
	out := s.Clone()
	if i := out.index(id); i >= 0 {
		out.Tasks[i].Completed = !out.Tasks[i].Completed
	}
	return out
}

// BeginEdit puts the task with the given id in edit mode, seeding the
// buffer with its current text. Any previous edit mode is replaced.
func BeginEdit(s State, id string) State {
	out := s.Clone()
	i := out.index(id)
	if i < 0 {
		return out
	}
	out.Editing = &Edit{ID: id, Buffer: out.Tasks[i].Text}
	return out
}

// UpdateEditBuffer replaces the edit buffer verbatim. Without an active
// edit there is no buffer and the state is unchanged.
func UpdateEditBuffer(s State, text string) State {
	out := s.Clone()
	if out.Editing != nil {
		out.Editing.Buffer = text
	}
	return out
}

// SaveEdit writes the trimmed edit buffer into the task with the given id
// and exits edit mode. A blank result is written as is.
func SaveEdit(s State, id string) State {
	out := s.Clone()
	if out.Editing == nil {
		return out
	}
	i := out.index(id)
	if i < 0 {
		return out
	}
	out.Tasks[i].Text = strings.TrimSpace(out.Editing.Buffer)
	out.Editing = nil
	return out
}

// CancelEdit exits edit mode without touching any task.
func CancelEdit(s State) State {
	out := s.Clone()
	out.Editing = nil
	return out
}
