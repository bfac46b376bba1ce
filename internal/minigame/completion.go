package minigame

import (
	"sync"

	"github.com/abhisek/attacq/internal/tier"
)

// Source records what resolved a mini-game.
type Source string

const (
	SourceButton  Source = "button"
	SourceMessage Source = "message"
	SourceTimeout Source = "timeout"
	SourceCancel  Source = "cancel"
)

// Outcome is the resolved result of a mini-game.
type Outcome struct {
	Tier   tier.ID
	Source Source
}

// Completion resolves at most once. Later attempts are ignored.
type Completion struct {
	once    sync.Once
	done    chan struct{}
	outcome Outcome
}

// NewCompletion returns an unresolved Completion.
func NewCompletion() *Completion {
	return &Completion{done: make(chan struct{})}
}

// Complete resolves the completion. It reports whether this call did so.
func (c *Completion) Complete(t tier.ID, src Source) bool {
	resolved := false
	c.once.Do(func() {
		c.outcome = Outcome{Tier: t, Source: src}
		close(c.done)
		resolved = true
	})
	return resolved
}

// Done is closed once the completion resolves.
func (c *Completion) Done() <-chan struct{} {
	return c.done
}

// Outcome returns the outcome and whether the completion has resolved.
func (c *Completion) Outcome() (Outcome, bool) {
	select {
	case <-c.done:
		return c.outcome, true
	default:
		return Outcome{}, false
	}
}
