// Package quiz drives a quiz session: question sequencing, scoring, reveal
// gating, badge awards and the restart rules.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/attacq/internal/badges"
	"github.com/abhisek/attacq/internal/questions"
	"github.com/abhisek/attacq/internal/store"
	"github.com/abhisek/attacq/internal/tier"
)

var (
	ErrNotRevealed      = errors.New("results have not been revealed")
	ErrNoRetries        = errors.New("extended mode has no retries")
	ErrMiniGamePending  = errors.New("a mini-game is in progress")
	ErrInvalidOption    = errors.New("invalid option")
	ErrWrongState       = errors.New("not allowed in the current phase")
	ErrMissingQuestions = errors.New("question provider is required")
	ErrMissingProgress  = errors.New("progress store is required")
)

// ProgressStore persists progress between sessions.
type ProgressStore interface {
	Load(ctx context.Context) (store.Progress, error)
	RecordRound(ctx context.Context, tally tier.Tally, playCount int, award *store.Award) error
	SetExtendedActive(ctx context.Context, active bool) error
	Reset(ctx context.Context) error
	ResetAll(ctx context.Context, includeEarned bool) error
}

// Deps are the controller's collaborators.
type Deps struct {
	Questions questions.Provider
	Progress  ProgressStore
	Badges    *badges.Catalog
	Lookup    tier.LookupFunc
	Rand      *rand.Rand
	Log       *zap.Logger
}

// Controller owns one quiz session and the persisted progress.
type Controller struct {
	questions questions.Provider
	repo      ProgressStore
	catalog   *badges.Catalog
	lookup    tier.LookupFunc
	rng       *rand.Rand
	log       *zap.Logger
	rules     Rules

	phase             Phase
	mode              Mode
	roundID           string
	questionsPerRound int
	ordered           []questions.Question
	current           int
	points            int
	restartCount      int
	roundsCompleted   int

	pending    tier.Result
	pendingMax int
	pendingPct float64
	last       *RoundResult

	progress store.Progress
}

// New creates a controller. The question provider and progress store are
// required, and the starter bank must not be empty.
func New(deps Deps, rules Rules) (*Controller, error) {
	if deps.Questions == nil {
		return nil, ErrMissingQuestions
	}
	if deps.Progress == nil {
		return nil, ErrMissingProgress
	}
	if len(deps.Questions.StarterQuestions()) == 0 || len(deps.Questions.FullQuestions()) == 0 {
		return nil, questions.ErrEmptyBank
	}
	if deps.Lookup == nil {
		deps.Lookup = tier.Lookup
	}
	if deps.Badges == nil {
		deps.Badges = badges.Default()
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}

	c := &Controller{
		questions: deps.Questions,
		repo:      deps.Progress,
		catalog:   deps.Badges,
		lookup:    deps.Lookup,
		rng:       deps.Rand,
		log:       deps.Log,
		rules:     rules,
		progress:  store.Progress{Tally: tier.NewTally()},
	}
	c.Reload()
	return c, nil
}

// Reload returns the session to its initial, not-started state without
// touching persisted progress.
func (c *Controller) Reload() {
	c.phase = PhaseNotStarted
	c.mode = ModeNormal
	c.roundID = ""
	c.questionsPerRound = c.rules.QuestionsPerRound
	c.ordered = nil
	c.current = 0
	c.points = 0
	c.restartCount = 0
	c.roundsCompleted = 0
	c.last = nil
}

// LoadProgress refreshes the cached persisted progress.
func (c *Controller) LoadProgress(ctx context.Context) (store.Progress, error) {
	p, err := c.repo.Load(ctx)
	if err != nil {
		return c.progress, err
	}
	c.progress = p
	return p, nil
}

// Start begins the first round in the given mode.
func (c *Controller) Start(ctx context.Context, mode Mode) error {
	if c.phase != PhaseNotStarted {
		return fmt.Errorf("start: %w (%s)", ErrWrongState, c.phase)
	}
	p, err := c.LoadProgress(ctx)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}

	c.mode = mode
	c.restartCount = 0
	bank := c.questions.StarterQuestions()
	c.questionsPerRound = c.rules.QuestionsPerRound

	if mode == ModeExtended {
		bank = c.questions.FullQuestions()
		c.questionsPerRound = c.rules.ExtendedQuestions
		if err := c.repo.SetExtendedActive(ctx, true); err != nil {
			return fmt.Errorf("start: %w", err)
		}
		c.progress.ExtendedActive = true
	} else if p.ExtendedActive {
		if err := c.repo.SetExtendedActive(ctx, false); err != nil {
			return fmt.Errorf("start: %w", err)
		}
		c.progress.ExtendedActive = false
	}

	return c.beginRound(bank)
}

func (c *Controller) beginRound(bank []questions.Question) error {
	qs, err := questions.Sample(bank, c.questionsPerRound, c.rng)
	if err != nil {
		return err
	}
	c.ordered = qs
	c.current = 0
	c.points = 0
	c.last = nil
	c.roundID = uuid.NewString()
	c.phase = PhaseInRound

	c.log.Info("round started",
		zap.String("round", c.roundID),
		zap.Stringer("mode", c.mode),
		zap.Int("questions", len(qs)),
		zap.Int("restarts", c.restartCount),
	)
	return nil
}

// Current returns the question being shown.
func (c *Controller) Current() (questions.Question, bool) {
	if (c.phase != PhaseInRound && c.phase != PhaseMiniGame) || c.current >= len(c.ordered) {
		return questions.Question{}, false
	}
	return c.ordered[c.current], true
}

// Answer scores option i of the current question and advances.
func (c *Controller) Answer(ctx context.Context, i int) (AnswerResult, error) {
	switch c.phase {
	case PhaseInRound:
	case PhaseMiniGame:
		return AnswerResult{}, ErrMiniGamePending
	default:
		return AnswerResult{}, fmt.Errorf("answer: %w (%s)", ErrWrongState, c.phase)
	}

	q := c.ordered[c.current]
	if i < 0 || i >= len(q.Options) {
		return AnswerResult{}, fmt.Errorf("%w: %d of %d", ErrInvalidOption, i, len(q.Options))
	}

	res := AnswerResult{Points: q.Options[i].Points}
	c.points += res.Points
	c.current++

	c.log.Debug("answered",
		zap.String("round", c.roundID),
		zap.Int("index", c.current),
		zap.Int("points", res.Points),
	)

	if c.current >= len(c.ordered) {
		c.finishRound()
		res.RoundComplete = true
		return res, nil
	}

	if c.shouldInterrupt() {
		c.phase = PhaseMiniGame
		res.Interrupt = true
		c.log.Info("mini-game interruption", zap.String("round", c.roundID))
	}
	return res, nil
}

// shouldInterrupt applies only right after the first question of a round,
// and only once a round has been completed this session.
func (c *Controller) shouldInterrupt() bool {
	if !c.rules.MiniGamesEnabled || c.roundsCompleted == 0 || c.current != 1 {
		return false
	}
	return c.rng.Float64() < c.rules.MiniGameChance
}

// maxPointsPerQuestion is the best single-option score the bank offers.
func (c *Controller) maxPointsPerQuestion() int {
	if b, ok := c.questions.(interface{ MaxPoints() int }); ok {
		return b.MaxPoints()
	}
	best := 0
	for _, q := range c.ordered {
		best = max(best, q.MaxPoints())
	}
	return best
}

// finishRound scores the round against the full round length, so a round
// clamped by a short bank cannot score higher than a complete one.
func (c *Controller) finishRound() {
	maxPts := c.questionsPerRound * c.maxPointsPerQuestion()
	var ratio float64
	if maxPts > 0 {
		ratio = float64(c.points) / float64(maxPts)
	}

	c.pending = c.lookup(ratio)
	c.pendingMax = maxPts
	c.pendingPct = ratio
	c.roundsCompleted++
	c.phase = PhaseAwaitingReveal

	c.log.Info("round complete",
		zap.String("round", c.roundID),
		zap.Int("points", c.points),
		zap.Int("max", maxPts),
		zap.String("tier", string(c.pending.Tier)),
	)
}

// ResumeFromMiniGame continues the question sequence where it paused.
func (c *Controller) ResumeFromMiniGame() error {
	if c.phase != PhaseMiniGame {
		return fmt.Errorf("resume: %w (%s)", ErrWrongState, c.phase)
	}
	c.phase = PhaseInRound
	return nil
}

// Reveal shows the round result. In normal mode it records the tally and
// play count and may award a badge, all in one write. Revealing again
// returns the same result without writing.
func (c *Controller) Reveal(ctx context.Context) (*RoundResult, error) {
	if (c.phase == PhaseRevealed || c.phase == PhaseEnded) && c.last != nil {
		return c.last, nil
	}
	if c.phase != PhaseAwaitingReveal {
		return nil, fmt.Errorf("reveal: %w (%s)", ErrWrongState, c.phase)
	}

	res := &RoundResult{
		RoundID:   c.roundID,
		Mode:      c.mode,
		Points:    c.points,
		MaxPoints: c.pendingMax,
		Ratio:     c.pendingPct,
		Tier:      c.pending,
	}

	if c.mode == ModeExtended {
		c.phase = PhaseEnded
		c.last = res
		return res, nil
	}

	p, err := c.LoadProgress(ctx)
	if err != nil {
		return nil, fmt.Errorf("reveal: %w", err)
	}

	t := c.pending.Tier
	tally := p.Tally.Clone()
	tally[t]++
	playCount := p.PlayCount + 1

	var award *store.Award
	if !p.HasBadge() && tally[t] == c.rules.BadgeThreshold {
		if b, ok := c.catalog.RandomForTier(t, c.rng); ok {
			award = &store.Award{Tier: t, BadgeID: b.ID}
			res.Awarded = &b
		} else {
			c.log.Warn("no badge pool for tier", zap.String("tier", string(t)))
		}
	}

	if err := c.repo.RecordRound(ctx, tally, playCount, award); err != nil {
		return nil, fmt.Errorf("reveal: %w", err)
	}

	c.progress.Tally = tally
	c.progress.PlayCount = playCount
	if award != nil {
		c.progress.Badge = award.Tier
		c.progress.ExtendedUnlocked = true
		c.progress.Earned = appendUnique(c.progress.Earned, award.BadgeID)
		c.log.Info("badge awarded", zap.String("tier", string(t)), zap.String("badge", award.BadgeID))
	}

	res.Tally = tally.Clone()
	res.PlayCount = playCount
	res.HeldBadge = c.progress.Badge
	res.PlayCapReached = !c.progress.HasBadge() && playCount >= c.rules.PlayCap

	c.phase = PhaseRevealed
	c.last = res
	return res, nil
}

// Restart applies the restart rules once results are revealed: wipe
// progress when a badge is held or the play cap is reached, refuse with
// the overuse screen after too many restarts, and otherwise begin a longer
// round from the full bank.
func (c *Controller) Restart(ctx context.Context) (RestartOutcome, error) {
	if c.mode == ModeExtended {
		return 0, ErrNoRetries
	}
	if c.phase == PhaseOveruse {
		return OutcomeOveruse, fmt.Errorf("restart: %w (%s)", ErrWrongState, c.phase)
	}
	if c.phase != PhaseRevealed {
		return 0, ErrNotRevealed
	}

	c.restartCount++

	if c.progress.HasBadge() || c.progress.PlayCount >= c.rules.PlayCap {
		if err := c.repo.Reset(ctx); err != nil {
			c.restartCount--
			return 0, fmt.Errorf("restart: %w", err)
		}
		c.log.Info("progress wiped on restart",
			zap.String("badge", string(c.progress.Badge)),
			zap.Int("plays", c.progress.PlayCount),
		)
		c.progress.Tally = tier.NewTally()
		c.progress.Badge = ""
		c.progress.PlayCount = 0
		c.Reload()
		return OutcomeReset, nil
	}

	if c.restartCount > c.rules.MaxRestarts {
		c.phase = PhaseOveruse
		c.log.Warn("restart refused", zap.Int("restarts", c.restartCount))
		return OutcomeOveruse, nil
	}

	c.questionsPerRound += c.rules.RoundIncrement
	if err := c.beginRound(c.questions.FullQuestions()); err != nil {
		return 0, fmt.Errorf("restart: %w", err)
	}
	return OutcomeNewRound, nil
}

// ReplayExtended starts another extended round after one has ended.
func (c *Controller) ReplayExtended(ctx context.Context) error {
	if c.mode != ModeExtended || c.phase != PhaseEnded {
		return fmt.Errorf("replay: %w (%s)", ErrWrongState, c.phase)
	}
	if err := c.repo.SetExtendedActive(ctx, true); err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	c.questionsPerRound = c.rules.ExtendedQuestions
	return c.beginRound(c.questions.FullQuestions())
}

// ResetAll clears round progress and the extended-mode flags, keeping the
// earned badge collection, and returns to the initial state.
func (c *Controller) ResetAll(ctx context.Context) error {
	if err := c.repo.ResetAll(ctx, false); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	c.Reload()
	if _, err := c.LoadProgress(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	return nil
}

func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.phase }

// Mode returns the current mode.
func (c *Controller) Mode() Mode { return c.mode }

// RoundID identifies the current round.
func (c *Controller) RoundID() string { return c.roundID }

// Index is the number of questions answered this round.
func (c *Controller) Index() int { return c.current }

// Len is the number of questions in the current round.
func (c *Controller) Len() int { return len(c.ordered) }

// QuestionsPerRound is the requested round length, which grows on restart.
func (c *Controller) QuestionsPerRound() int { return c.questionsPerRound }

// Points is the running score for the round.
func (c *Controller) Points() int { return c.points }

// RestartCount is the number of restarts this session.
func (c *Controller) RestartCount() int { return c.restartCount }

// RoundsCompleted is the number of rounds finished this session.
func (c *Controller) RoundsCompleted() int { return c.roundsCompleted }

// LastResult is the most recently revealed result.
func (c *Controller) LastResult() *RoundResult { return c.last }

// Progress returns the cached persisted progress.
func (c *Controller) Progress() store.Progress { return c.progress }

// Rules returns the active rule set.
func (c *Controller) Rules() Rules { return c.rules }
