// Package assist implements the two writing-assistant operations: whole-text
// rewriting under a task instruction, and short continuation suggestions.
// Both are stateless; model execution is delegated through the Generator
// interface and every generation parameter is forwarded as given.
package assist

import (
	"context"

	"github.com/quill-lm/quill/internal/hub"
)

// Task identifies one rewrite instruction.
type Task string

const (
	TaskGrammar    Task = "grammar"
	TaskCoherent   Task = "coherent"
	TaskSimpler    Task = "simpler"
	TaskParaphrase Task = "paraphrase"
	TaskFormal     Task = "formal"
	TaskNeutral    Task = "neutral"
)

// Tasks lists every known task in presentation order.
func Tasks() []Task {
	return []Task{
		TaskParaphrase,
		TaskCoherent,
		TaskSimpler,
		TaskGrammar,
		TaskFormal,
		TaskNeutral,
	}
}

// Instruction returns the prompt prefix for the task. Unknown tasks fall
// back to the grammar instruction rather than failing; the fallback is part
// of the operation's contract.
func (t Task) Instruction() string {
	switch t {
	case TaskCoherent:
		return "Make this text coherent: "
	case TaskSimpler:
		return "Rewrite to make this easier to understand: "
	case TaskParaphrase:
		return "Paraphrase this: "
	case TaskFormal:
		return "Write this more formally: "
	case TaskNeutral:
		return "Write in a more neutral way: "
	default:
		return "Fix the grammar: "
	}
}

// Prompt builds the model prompt for one text fragment.
func (t Task) Prompt(text string) string {
	return t.Instruction() + text
}

// Label returns a short human-readable name for pickers.
func (t Task) Label() string {
	switch t {
	case TaskCoherent:
		return "Make coherent"
	case TaskSimpler:
		return "Simplify"
	case TaskParaphrase:
		return "Paraphrase"
	case TaskFormal:
		return "More formal"
	case TaskNeutral:
		return "More neutral"
	default:
		return "Fix grammar"
	}
}

// Known reports whether t is one of the declared tasks.
func Known(t Task) bool {
	switch t {
	case TaskGrammar, TaskCoherent, TaskSimpler, TaskParaphrase, TaskFormal, TaskNeutral:
		return true
	default:
		return false
	}
}

// Generator runs one batched inference call and returns the decoded
// sequences in input-major, sequence-minor order. *hub.Handle satisfies it.
type Generator interface {
	Generate(ctx context.Context, inputs []string, params hub.Params) ([]string, error)
}
