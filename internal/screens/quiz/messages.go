package quiz

import (
	"time"

	"github.com/abhisek/attacq/internal/minigame"
)

// beginMsg starts the first round once the screen is on the stack.
type beginMsg struct{}

// gameLaunchedMsg is sent when a mini-game fragment has loaded (or failed).
type gameLaunchedMsg struct {
	Run *minigame.Run
	Err error
}

// gameDoneMsg is sent once a mini-game run completes, by any trigger.
type gameDoneMsg struct {
	Run     *minigame.Run
	Outcome minigame.Outcome
}

// gameTickMsg drives the mini-game countdown.
type gameTickMsg time.Time

// noticeExpiredMsg clears a transient notice if it is still the current one.
type noticeExpiredMsg struct {
	seq int
}
