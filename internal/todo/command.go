package todo

// Op names a handler.
type Op string

const (
	OpSetDraft   Op = "set_draft"
	OpAdd        Op = "add"
	OpDelete     Op = "delete"
	OpToggle     Op = "toggle"
	OpBeginEdit  Op = "begin_edit"
	OpUpdateEdit Op = "update_edit"
	OpSaveEdit   Op = "save_edit"
	OpCancelEdit Op = "cancel_edit"
)

// Ops lists every known op in a stable order.
func Ops() []Op {
	return []Op{OpSetDraft, OpAdd, OpDelete, OpToggle, OpBeginEdit, OpUpdateEdit, OpSaveEdit, OpCancelEdit}
}

// Valid reports whether op names a handler.
func (op Op) Valid() bool {
	for _, known := range Ops() {
		if op == known {
			return true
		}
	}
	return false
}

// Command is one user action. ID is used by delete, toggle, begin_edit and
// save_edit; Text by set_draft, add and update_edit. An add without Text
// submits the current draft; with Text it first replaces the draft, so it
// behaves like set_draft followed by add.
type Command struct {
	Op   Op     `json:"op"`
	ID   string `json:"id,omitempty"`
	Text string `json:"text,omitempty"`
}

// Apply runs the handler named by cmd.Op. Unknown ops leave the state unchanged.
func Apply(s State, cmd Command, ids IDGenerator) State {
	switch cmd.Op {
	case OpSetDraft:
		return SetDraft(s, cmd.Text)
	case OpAdd:
		if cmd.Text != "" {
			s = SetDraft(s, cmd.Text)
		}
		return AddTask(s, s.Draft, ids)
	case OpDelete:
		return DeleteTask(s, cmd.ID)
	case OpToggle:
		return ToggleComplete(s, cmd.ID)
	case OpBeginEdit:
		return BeginEdit(s, cmd.ID)
	case OpUpdateEdit:
		return UpdateEditBuffer(s, cmd.Text)
	case OpSaveEdit:
		return SaveEdit(s, cmd.ID)
	case OpCancelEdit:
		return CancelEdit(s)
	default:
		return s.Clone()
	}
}
