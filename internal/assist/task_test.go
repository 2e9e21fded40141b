package assist

import "testing"

func TestTaskInstruction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		task Task
		want string
	}{
		{TaskGrammar, "Fix the grammar: "},
		{TaskCoherent, "Make this text coherent: "},
		{TaskSimpler, "Rewrite to make this easier to understand: "},
		{TaskParaphrase, "Paraphrase this: "},
		{TaskFormal, "Write this more formally: "},
		{TaskNeutral, "Write in a more neutral way: "},
		// Unknown tasks fall back to the grammar instruction.
		{Task("shakespeare"), "Fix the grammar: "},
		{Task(""), "Fix the grammar: "},
	}

	for _, tc := range tests {
		if got := tc.task.Instruction(); got != tc.want {
			t.Errorf("Instruction(%q): got %q, want %q", tc.task, got, tc.want)
		}
	}
}

func TestTaskPrompt(t *testing.T) {
	t.Parallel()

	got := TaskGrammar.Prompt("He go to school.")
	want := "Fix the grammar: He go to school."
	if got != want {
		t.Fatalf("Prompt: got %q, want %q", got, want)
	}

	got = TaskParaphrase.Prompt("the cat sat")
	want = "Paraphrase this: the cat sat"
	if got != want {
		t.Fatalf("Prompt: got %q, want %q", got, want)
	}
}

func TestKnown(t *testing.T) {
	t.Parallel()

	for _, task := range Tasks() {
		if !Known(task) {
			t.Errorf("Known(%q): got false, want true", task)
		}
	}
	if Known(Task("pirate")) {
		t.Error("Known(pirate): got true, want false")
	}
}

func TestTasksStable(t *testing.T) {
	t.Parallel()

	tasks := Tasks()
	if len(tasks) != 6 {
		t.Fatalf("Tasks: got %d entries, want 6", len(tasks))
	}
	if tasks[0] != TaskParaphrase {
		t.Fatalf("Tasks[0]: got %q, want %q", tasks[0], TaskParaphrase)
	}
	for _, task := range tasks {
		if task.Label() == "" {
			t.Errorf("Label(%q): empty", task)
		}
	}
}
