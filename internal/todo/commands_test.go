package todo

import (
	"fmt"
	"strings"
	"testing"
)

func addAll(t *testing.T, ids IDGenerator, texts ...string) State {
	t.Helper()
	s := State{}
	for _, text := range texts {
		s = AddTask(s, text, ids)
	}
	return s
}

func TestAddTask(t *testing.T) {
	tests := []struct {
		name      string
		draft     string
		wantAdded bool
		wantText  string
	}{
		{"plain text", "Buy milk", true, "Buy milk"},
		{"trims whitespace", "  Buy milk \t", true, "Buy milk"},
		{"empty", "", false, ""},
		{"spaces only", "   ", false, ""},
		{"tabs and newlines", "\t\n ", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := SetDraft(State{}, tt.draft)
			got := AddTask(s, s.Draft, NewCounter("T"))

			if !tt.wantAdded {
				if len(got.Tasks) != 0 {
					t.Fatalf("Tasks: got %d, want 0", len(got.Tasks))
				}
				if got.Draft != tt.draft {
					t.Errorf("Draft: got %q, want %q retained", got.Draft, tt.draft)
				}
				return
			}
			if len(got.Tasks) != 1 {
				t.Fatalf("Tasks: got %d, want 1", len(got.Tasks))
			}
			task := got.Tasks[0]
			if task.Text != tt.wantText {
				t.Errorf("Text: got %q, want %q", task.Text, tt.wantText)
			}
			if task.Completed {
				t.Error("new task should not be completed")
			}
			if task.ID == "" {
				t.Error("new task should have an id")
			}
			if got.Draft != "" {
				t.Errorf("Draft: got %q, want cleared", got.Draft)
			}
		})
	}
}

func TestAddTaskCountAndDistinctIDs(t *testing.T) {
	inputs := []string{"a", " ", "b", "", "c", "\t", "d", "e"}
	nonBlank := 5

	for _, gen := range []struct {
		name string
		ids  IDGenerator
	}{
		{"counter", NewCounter("T")},
		{"uuid", UUIDs{}},
	} {
		t.Run(gen.name, func(t *testing.T) {
			s := addAll(t, gen.ids, inputs...)
			if len(s.Tasks) != nonBlank {
				t.Fatalf("Tasks: got %d, want %d", len(s.Tasks), nonBlank)
			}
			seen := make(map[string]bool)
			for _, task := range s.Tasks {
				if seen[task.ID] {
					t.Errorf("duplicate id %q", task.ID)
				}
				seen[task.ID] = true
			}
		})
	}
}

func TestAddTaskPreservesInsertionOrder(t *testing.T) {
	s := addAll(t, NewCounter("T"), "first", "second", "third")
	want := []string{"first", "second", "third"}
	for i, task := range s.Tasks {
		if task.Text != want[i] {
			t.Errorf("Tasks[%d]: got %q, want %q", i, task.Text, want[i])
		}
	}
}

func TestAddTaskDoesNotDrawIDForBlankDraft(t *testing.T) {
	ids := NewCounter("T")
	s := AddTask(State{}, "  ", ids)
	s = AddTask(s, "real", ids)
	if s.Tasks[0].ID != "T1" {
		t.Errorf("ID: got %q, want T1", s.Tasks[0].ID)
	}
}

func TestHandlersDoNotMutateInput(t *testing.T) {
	s := addAll(t, NewCounter("T"), "a", "b")
	s = BeginEdit(s, "T1")
	before := fmt.Sprintf("%+v %+v", s.Tasks, *s.Editing)

	_ = ToggleComplete(s, "T1")
	_ = DeleteTask(s, "T2")
	_ = UpdateEditBuffer(s, "changed")
	_ = SaveEdit(s, "T1")
	_ = AddTask(s, "c", NewCounter("X"))

	after := fmt.Sprintf("%+v %+v", s.Tasks, *s.Editing)
	if before != after {
		t.Errorf("input state mutated:\nbefore %s\nafter  %s", before, after)
	}
}

func TestToggleComplete(t *testing.T) {
	s := addAll(t, NewCounter("T"), "a", "b")

	once := ToggleComplete(s, "T1")
	if !once.Tasks[0].Completed {
		t.Error("T1 should be completed after one toggle")
	}
	if once.Tasks[1].Completed {
		t.Error("T2 should be untouched")
	}

	twice := ToggleComplete(once, "T1")
	if twice.Tasks[0].Completed != s.Tasks[0].Completed {
		t.Error("toggle twice should restore the original value")
	}

	missing := ToggleComplete(s, "nope")
	if fmt.Sprint(missing.Tasks) != fmt.Sprint(s.Tasks) {
		t.Errorf("unknown id changed tasks: %v", missing.Tasks)
	}
}

func TestDeleteTask(t *testing.T) {
	s := addAll(t, NewCounter("T"), "a", "b", "c", "d")

	t.Run("removes exactly the matching task", func(t *testing.T) {
		got := DeleteTask(s, "T2")
		if len(got.Tasks) != 3 {
			t.Fatalf("Tasks: got %d, want 3", len(got.Tasks))
		}
		want := []string{"T1", "T3", "T4"}
		for i, task := range got.Tasks {
			if task.ID != want[i] {
				t.Errorf("Tasks[%d]: got %s, want %s", i, task.ID, want[i])
			}
		}
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		got := DeleteTask(s, "T99")
		if fmt.Sprint(got.Tasks) != fmt.Sprint(s.Tasks) {
			t.Errorf("Tasks changed: %v", got.Tasks)
		}
	})

	t.Run("deleting the edited task exits edit mode", func(t *testing.T) {
		editing := BeginEdit(s, "T3")
		got := DeleteTask(editing, "T3")
		if got.Editing != nil {
			t.Errorf("Editing: got %+v, want nil", got.Editing)
		}
	})

	t.Run("deleting another task keeps edit mode", func(t *testing.T) {
		editing := BeginEdit(s, "T3")
		got := DeleteTask(editing, "T1")
		if !got.IsEditing("T3") {
			t.Errorf("Editing: got %+v, want T3", got.Editing)
		}
	})
}

func TestEditLifecycle(t *testing.T) {
	s := addAll(t, NewCounter("T"), "Buy milk")

	t.Run("begin seeds buffer with task text", func(t *testing.T) {
		got := BeginEdit(s, "T1")
		if got.Editing == nil || got.Editing.ID != "T1" || got.Editing.Buffer != "Buy milk" {
			t.Errorf("Editing: got %+v", got.Editing)
		}
	})

	t.Run("begin then cancel leaves text unchanged", func(t *testing.T) {
		got := BeginEdit(s, "T1")
		got = UpdateEditBuffer(got, "something else")
		got = CancelEdit(got)
		if got.Editing != nil {
			t.Error("cancel should exit edit mode")
		}
		if got.Tasks[0].Text != "Buy milk" {
			t.Errorf("Text: got %q, want Buy milk", got.Tasks[0].Text)
		}
	})

	t.Run("begin update save writes trimmed buffer", func(t *testing.T) {
		got := BeginEdit(s, "T1")
		got = UpdateEditBuffer(got, "  Buy oat milk  ")
		if got.Editing.Buffer != "  Buy oat milk  " {
			t.Errorf("Buffer should be stored verbatim, got %q", got.Editing.Buffer)
		}
		got = SaveEdit(got, "T1")
		if got.Editing != nil {
			t.Error("save should exit edit mode")
		}
		if got.Tasks[0].Text != "Buy oat milk" {
			t.Errorf("Text: got %q, want Buy oat milk", got.Tasks[0].Text)
		}
	})

	t.Run("save writes blank result through", func(t *testing.T) {
		got := BeginEdit(s, "T1")
		got = UpdateEditBuffer(got, "   ")
		got = SaveEdit(got, "T1")
		if got.Tasks[0].Text != "" {
			t.Errorf("Text: got %q, want empty", got.Tasks[0].Text)
		}
	})

	t.Run("begin on another task replaces edit mode", func(t *testing.T) {
		two := AddTask(s, "Walk dog", NewCounter("X"))
		got := BeginEdit(two, "T1")
		got = BeginEdit(got, two.Tasks[1].ID)
		if got.Editing.ID != two.Tasks[1].ID || got.Editing.Buffer != "Walk dog" {
			t.Errorf("Editing: got %+v", got.Editing)
		}
	})

	t.Run("begin on unknown id is a no-op", func(t *testing.T) {
		got := BeginEdit(s, "nope")
		if got.Editing != nil {
			t.Errorf("Editing: got %+v, want nil", got.Editing)
		}
	})

	t.Run("update without edit mode is a no-op", func(t *testing.T) {
		got := UpdateEditBuffer(s, "x")
		if got.Editing != nil {
			t.Errorf("Editing: got %+v, want nil", got.Editing)
		}
	})

	t.Run("save without edit mode is a no-op", func(t *testing.T) {
		got := SaveEdit(s, "T1")
		if got.Tasks[0].Text != "Buy milk" {
			t.Errorf("Text: got %q", got.Tasks[0].Text)
		}
	})

	t.Run("save with unknown id is a no-op", func(t *testing.T) {
		editing := BeginEdit(s, "T1")
		got := SaveEdit(editing, "nope")
		if !got.IsEditing("T1") {
			t.Errorf("Editing: got %+v, want T1 retained", got.Editing)
		}
		if got.Tasks[0].Text != "Buy milk" {
			t.Errorf("Text: got %q", got.Tasks[0].Text)
		}
	})

	t.Run("cancel without edit mode is harmless", func(t *testing.T) {
		got := CancelEdit(s)
		if got.Editing != nil || len(got.Tasks) != 1 {
			t.Errorf("unexpected state %+v", got)
		}
	})
}

func TestExampleScenario(t *testing.T) {
	ids := NewCounter("T")
	s := State{}

	s = SetDraft(s, "Buy milk")
	s = AddTask(s, s.Draft, ids)
	if len(s.Tasks) != 1 || s.Tasks[0].Text != "Buy milk" || s.Tasks[0].Completed {
		t.Fatalf("after add: %+v", s.Tasks)
	}
	id := s.Tasks[0].ID

	s = ToggleComplete(s, id)
	if !s.Tasks[0].Completed {
		t.Fatal("after toggle: want completed")
	}

	s = BeginEdit(s, id)
	s = UpdateEditBuffer(s, "Buy oat milk")
	s = SaveEdit(s, id)
	if s.Tasks[0].Text != "Buy oat milk" {
		t.Errorf("after save: text %q", s.Tasks[0].Text)
	}
	if !s.Tasks[0].Completed {
		t.Error("after save: completed should be kept")
	}

	s = DeleteTask(s, id)
	if len(s.Tasks) != 0 {
		t.Errorf("after delete: %+v", s.Tasks)
	}
}

func TestApply(t *testing.T) {
	ids := NewCounter("T")
	s := State{}
	steps := []Command{
		{Op: OpSetDraft, Text: "draft"},
		{Op: OpAdd, Text: "one"},
		{Op: OpAdd, Text: "two"},
		{Op: OpToggle, ID: "T2"},
		{Op: OpBeginEdit, ID: "T1"},
		{Op: OpUpdateEdit, Text: "uno"},
		{Op: OpSaveEdit, ID: "T1"},
		{Op: OpBeginEdit, ID: "T2"},
		{Op: OpCancelEdit},
		{Op: OpDelete, ID: "T2"},
		{Op: "bogus", ID: "T1"},
	}
	for _, cmd := range steps {
		s = Apply(s, cmd, ids)
	}

	if len(s.Tasks) != 1 {
		t.Fatalf("Tasks: got %d, want 1", len(s.Tasks))
	}
	if s.Tasks[0].Text != "uno" {
		t.Errorf("Text: got %q, want uno", s.Tasks[0].Text)
	}
	if s.Editing != nil {
		t.Errorf("Editing: got %+v, want nil", s.Editing)
	}
}

func TestApplyAddSubmitsDraft(t *testing.T) {
	tests := []struct {
		name      string
		draft     string
		text      string
		wantTasks []string
		wantDraft string
	}{
		{"no text submits draft", "Buy milk", "", []string{"Buy milk"}, ""},
		{"text replaces draft", "old", "new", []string{"new"}, ""},
		{"blank text is kept as draft", "old", "   ", nil, "   "},
		{"empty draft adds nothing", "", "", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Apply(State{Draft: tt.draft}, Command{Op: OpAdd, Text: tt.text}, NewCounter("T"))

			var got []string
			for _, task := range s.Tasks {
				got = append(got, task.Text)
			}
			if strings.Join(got, ",") != strings.Join(tt.wantTasks, ",") {
				t.Errorf("Tasks: got %q, want %q", got, tt.wantTasks)
			}
			if s.Draft != tt.wantDraft {
				t.Errorf("Draft: got %q, want %q", s.Draft, tt.wantDraft)
			}
		})
	}
}

func TestOpValid(t *testing.T) {
	for _, op := range Ops() {
		if !op.Valid() {
			t.Errorf("%s should be valid", op)
		}
	}
	if Op("rename").Valid() {
		t.Error("rename should not be valid")
	}
}

func TestSummary(t *testing.T) {
	s := addAll(t, NewCounter("T"), "a", "b", "c")
	s = ToggleComplete(s, "T2")
	total, done := Summary(s)
	if total != 3 || done != 1 {
		t.Errorf("Summary: got (%d, %d), want (3, 1)", total, done)
	}
}
