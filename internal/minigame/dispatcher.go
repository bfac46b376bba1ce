package minigame

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"path"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/abhisek/attacq/internal/fragcache"
	"github.com/abhisek/attacq/internal/fragment"
	"github.com/abhisek/attacq/internal/tier"
)

// DefaultGrace is added to a game's time limit before it is forced to end.
const DefaultGrace = 5 * time.Second

// CompleteMessage is the structured message type a fragment sends when done.
const CompleteMessage = "microgame-complete"

var (
	// ErrUnknownGame is returned when no descriptor exists for an id.
	ErrUnknownGame = errors.New("unknown mini-game")

	// ErrBadMessage is returned by Deliver for malformed completion messages.
	ErrBadMessage = errors.New("malformed completion message")
)

// buttonTiers maps button positions to outcomes. Positions past the end
// clamp to the last tier.
var buttonTiers = []tier.ID{tier.T1, tier.T2, tier.T3, tier.T4}

// Dispatcher launches mini-games from a registry, loading their markup
// through the fragment cache.
type Dispatcher struct {
	registry Registry
	cache    *fragcache.Cache
	grace    time.Duration
	log      *zap.Logger

	group singleflight.Group
}

// NewDispatcher creates a Dispatcher. A non-positive grace uses DefaultGrace.
func NewDispatcher(registry Registry, cache *fragcache.Cache, grace time.Duration, log *zap.Logger) *Dispatcher {
	if grace <= 0 {
		grace = DefaultGrace
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		registry: registry,
		cache:    cache,
		grace:    grace,
		log:      log,
	}
}

// Key returns the cache key for a game's fragment.
func Key(d Descriptor) string {
	return fragcache.Bust(path.Join("games", d.File), d.Version)
}

// Pick chooses a game uniformly at random.
func (d *Dispatcher) Pick(rng *rand.Rand) (string, bool) {
	ids := d.registry.IDs()
	if len(ids) == 0 {
		return "", false
	}
	if rng != nil {
		return ids[rng.IntN(len(ids))], true
	}
	return ids[rand.IntN(len(ids))], true
}

// Launch loads and starts the mini-game id. Concurrent launches of the same
// id while one is being prepared receive the same Run.
func (d *Dispatcher) Launch(ctx context.Context, id string) (*Run, error) {
	desc, ok := d.registry.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGame, id)
	}

	ch := d.group.DoChan(id, func() (any, error) {
		d.log.Info("loading", zap.String("game", id))
		markup, err := d.cache.FetchCached(context.WithoutCancel(ctx), Key(desc))
		if err != nil {
			d.log.Error("load failed", zap.String("game", id), zap.Error(err))
			return nil, fmt.Errorf("load %s: %w", id, err)
		}
		frag, err := fragment.Parse(markup)
		if err != nil {
			return nil, err
		}
		if frag.Title == "" {
			frag.Title = desc.Title
		}
		return d.start(desc, frag), nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Run), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (d *Dispatcher) start(desc Descriptor, frag *fragment.Fragment) *Run {
	r := &Run{
		Game:       desc,
		Fragment:   frag,
		completion: NewCompletion(),
		timeout:    desc.TimeLimit + d.grace,
		log:        d.log.With(zap.String("game", desc.ID)),
	}
	r.mu.Lock()
	r.timer = time.AfterFunc(r.timeout, func() {
		if r.complete(tier.T1, SourceTimeout) {
			r.log.Warn("timed out", zap.Duration("after", r.timeout))
		}
	})
	r.mu.Unlock()
	return r
}

// Preload warms the cache with the first n games in registry order.
func (d *Dispatcher) Preload(n int) int {
	ids := d.registry.IDs()
	if n < len(ids) {
		ids = ids[:n]
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		if desc, ok := d.registry.Lookup(id); ok {
			keys = append(keys, Key(desc))
		}
	}
	return d.cache.Preload(keys)
}

// Run is one launched mini-game.
type Run struct {
	Game     Descriptor
	Fragment *fragment.Fragment

	completion *Completion
	timeout    time.Duration
	log        *zap.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// Timeout is how long after launch the game is forced to end.
func (r *Run) Timeout() time.Duration { return r.timeout }

// WarnAfter is when a "time running out" notice should appear.
func (r *Run) WarnAfter() time.Duration {
	w := r.Game.TimeLimit * 8 / 10
	if w < 2*time.Second {
		w = 2 * time.Second
	}
	return w
}

// Done is closed once the game resolves.
func (r *Run) Done() <-chan struct{} { return r.completion.Done() }

// Outcome returns the resolved outcome, if any.
func (r *Run) Outcome() (Outcome, bool) { return r.completion.Outcome() }

// Choose resolves the game from a button press at index i.
func (r *Run) Choose(i int) bool {
	if i < 0 {
		i = 0
	}
	if i >= len(buttonTiers) {
		i = len(buttonTiers) - 1
	}
	return r.complete(buttonTiers[i], SourceButton)
}

type completeMsg struct {
	Type  string `json:"type"`
	Score string `json:"score"`
}

// Deliver resolves the game from a structured completion message such as
// {"type":"microgame-complete","score":"scholar"}. Messages of any other
// type are ignored.
func (r *Run) Deliver(raw []byte) (bool, error) {
	var msg completeMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		return false, fmt.Errorf("%w: %v", ErrBadMessage, err)
	}
	if msg.Type != CompleteMessage {
		return false, nil
	}
	t, ok := tier.FromMiniGameScore(msg.Score)
	if !ok {
		return false, fmt.Errorf("%w: unknown score %q", ErrBadMessage, msg.Score)
	}
	return r.complete(t, SourceMessage), nil
}

// Cancel ends the game with the default outcome.
func (r *Run) Cancel() bool {
	return r.complete(tier.T1, SourceCancel)
}

func (r *Run) complete(t tier.ID, src Source) bool {
	if !r.completion.Complete(t, src) {
		r.log.Debug("duplicate completion ignored", zap.String("source", string(src)))
		return false
	}
	r.mu.Lock()
	if r.timer != nil {
		r.timer.Stop()
	}
	r.mu.Unlock()
	r.log.Info("completed", zap.String("tier", string(t)), zap.String("source", string(src)))
	return true
}
