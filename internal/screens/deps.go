// Package screens holds the collaborators shared by the TUI screens.
//
// The quiz controller is not safe for concurrent use. Screens call it only
// from Update, which Bubble Tea runs on a single goroutine; commands that
// run in the background touch only the mini-game dispatcher.
package screens

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/abhisek/attacq/internal/badges"
	"github.com/abhisek/attacq/internal/minigame"
	"github.com/abhisek/attacq/internal/quiz"
)

// Deps are the collaborators every screen may use.
type Deps struct {
	Quiz   *quiz.Controller
	Badges *badges.Catalog

	// Games is nil when mini-games are disabled.
	Games *minigame.Dispatcher

	// PreloadCount mini-game fragments are warmed when the home screen loads.
	PreloadCount int

	// ForceExtended opens straight into extended mode once.
	ForceExtended bool

	Rand *rand.Rand
	Log  *zap.Logger
}

// WithDefaults fills optional fields.
func (d Deps) WithDefaults() Deps {
	if d.Badges == nil {
		d.Badges = badges.Default()
	}
	if d.Rand == nil {
		d.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	return d
}
