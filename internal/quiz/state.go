package quiz

import (
	"github.com/abhisek/attacq/internal/badges"
	"github.com/abhisek/attacq/internal/config"
	"github.com/abhisek/attacq/internal/tier"
)

// Phase is the controller's position in the round life cycle.
type Phase int

const (
	PhaseNotStarted     Phase = iota // No round has begun
	PhaseInRound                     // Serving questions
	PhaseMiniGame                    // Question sequence suspended by a mini-game
	PhaseAwaitingReveal              // Round finished, result hidden
	PhaseRevealed                    // Result shown, restart allowed
	PhaseOveruse                     // Too many restarts; terminal until reload
	PhaseEnded                       // Extended round revealed; terminal
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseInRound:
		return "in-round"
	case PhaseMiniGame:
		return "mini-game"
	case PhaseAwaitingReveal:
		return "awaiting-reveal"
	case PhaseRevealed:
		return "revealed"
	case PhaseOveruse:
		return "overuse"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Mode selects the question bank and reward rules.
type Mode int

const (
	ModeNormal   Mode = iota
	ModeExtended      // "rogue mode": longer rounds, no badges, no retries
)

func (m Mode) String() string {
	if m == ModeExtended {
		return "extended"
	}
	return "normal"
}

// Rules are the round, reward and restart parameters.
type Rules struct {
	QuestionsPerRound int
	ExtendedQuestions int
	RoundIncrement    int
	BadgeThreshold    int
	PlayCap           int
	MaxRestarts       int
	MiniGameChance    float64
	MiniGamesEnabled  bool
}

// DefaultRules returns the standard rule set.
func DefaultRules() Rules {
	return RulesFromConfig(config.DefaultConfig())
}

// RulesFromConfig extracts the rules from application config.
func RulesFromConfig(cfg config.Config) Rules {
	q := cfg.Quiz
	return Rules{
		QuestionsPerRound: q.QuestionsPerRound,
		ExtendedQuestions: q.ExtendedQuestions,
		RoundIncrement:    q.RoundIncrement,
		BadgeThreshold:    q.BadgeThreshold,
		PlayCap:           q.PlayCap,
		MaxRestarts:       q.MaxRestarts,
		MiniGameChance:    q.MiniGameChance,
		MiniGamesEnabled:  cfg.MiniGames.Enabled,
	}
}

// AnswerResult reports the effect of one answer.
type AnswerResult struct {
	// Points awarded for the chosen option.
	Points int

	// Interrupt is set when a mini-game should run before the next question.
	Interrupt bool

	// RoundComplete is set when the answer finished the round.
	RoundComplete bool
}

// RoundResult is what the player sees on reveal.
type RoundResult struct {
	RoundID   string
	Mode      Mode
	Points    int
	MaxPoints int
	Ratio     float64
	Tier      tier.Result

	// Persisted state after this round. Zero in extended mode.
	Tally     tier.Tally
	PlayCount int
	HeldBadge tier.ID

	// Awarded is the badge granted by this round, if any.
	Awarded *badges.Badge

	// PlayCapReached is set when the play cap was hit without a badge; the
	// next restart wipes progress.
	PlayCapReached bool
}

// RestartOutcome describes what Restart did.
type RestartOutcome int

const (
	// OutcomeNewRound started a longer round.
	OutcomeNewRound RestartOutcome = iota

	// OutcomeReset wiped progress; the session starts over from scratch.
	OutcomeReset

	// OutcomeOveruse refused the restart; the overuse screen is terminal.
	OutcomeOveruse
)

func (o RestartOutcome) String() string {
	switch o {
	case OutcomeNewRound:
		return "new-round"
	case OutcomeReset:
		return "reset"
	case OutcomeOveruse:
		return "overuse"
	default:
		return "unknown"
	}
}
