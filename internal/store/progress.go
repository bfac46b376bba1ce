package store

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"go.uber.org/zap"

	"github.com/abhisek/attacq/internal/tier"
)

// Persisted progress keys.
const (
	KeyTally            = "tierTally"
	KeyBadge            = "tierBadge"
	KeyPlayCount        = "tierPlayCount"
	KeyEarnedBadges     = "earnedBadges"
	KeyExtendedUnlocked = "rogueModeUnlocked"
	KeyExtendedActive   = "rogueModeActive"
)

var allKeys = []string{
	KeyTally,
	KeyBadge,
	KeyPlayCount,
	KeyEarnedBadges,
	KeyExtendedUnlocked,
	KeyExtendedActive,
}

const flagTrue = "true"

// Progress is the persisted quiz state across sessions.
type Progress struct {
	Tally            tier.Tally
	Badge            tier.ID // empty when no badge is held
	PlayCount        int
	Earned           []string
	ExtendedUnlocked bool
	ExtendedActive   bool
}

// HasBadge reports whether a badge tier is currently held.
func (p Progress) HasBadge() bool {
	return p.Badge != ""
}

// ProgressRepo reads and writes Progress through a KV.
type ProgressRepo struct {
	kv  KV
	log *zap.Logger
}

// NewProgressRepo wraps kv.
func NewProgressRepo(kv KV, log *zap.Logger) *ProgressRepo {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProgressRepo{kv: kv, log: log}
}

// Load reads the current progress. Malformed values load as their defaults.
func (r *ProgressRepo) Load(ctx context.Context) (Progress, error) {
	vals, err := r.kv.Get(ctx, allKeys...)
	if err != nil {
		return Progress{}, fmt.Errorf("load progress: %w", err)
	}

	p := Progress{Tally: tier.NewTally()}

	if raw, ok := vals[KeyTally]; ok {
		var t tier.Tally
		if err := json.Unmarshal([]byte(raw), &t); err != nil {
			r.log.Warn("corrupt tally, using empty", zap.String("raw", raw), zap.Error(err))
		} else {
			p.Tally = t.Clone()
		}
	}

	if raw, ok := vals[KeyBadge]; ok {
		if id := tier.ID(raw); id.Valid() {
			p.Badge = id
		} else {
			r.log.Warn("unknown badge tier ignored", zap.String("raw", raw))
		}
	}

	if raw, ok := vals[KeyPlayCount]; ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			r.log.Warn("corrupt play count, using 0", zap.String("raw", raw))
		} else {
			p.PlayCount = n
		}
	}

	p.Earned = r.decodeEarned(vals[KeyEarnedBadges])
	p.ExtendedUnlocked = vals[KeyExtendedUnlocked] == flagTrue
	p.ExtendedActive = vals[KeyExtendedActive] == flagTrue
	return p, nil
}

func (r *ProgressRepo) decodeEarned(raw string) []string {
	if raw == "" {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		r.log.Warn("corrupt earned badges, using empty", zap.String("raw", raw), zap.Error(err))
		return nil
	}
	return ids
}

// Award is a badge granted at the end of a round.
type Award struct {
	Tier    tier.ID
	BadgeID string
}

// RecordRound stores the tally and play count together. When award is
// non-nil the same write records the badge tier, adds the badge to the
// earned collection and unlocks extended mode.
func (r *ProgressRepo) RecordRound(ctx context.Context, tally tier.Tally, playCount int, award *Award) error {
	raw, err := json.Marshal(tally.Clone())
	if err != nil {
		return fmt.Errorf("encode tally: %w", err)
	}
	values := map[string]string{
		KeyTally:     string(raw),
		KeyPlayCount: strconv.Itoa(playCount),
	}

	if award != nil {
		vals, err := r.kv.Get(ctx, KeyEarnedBadges)
		if err != nil {
			return fmt.Errorf("load earned badges: %w", err)
		}
		earned := r.decodeEarned(vals[KeyEarnedBadges])
		if !slices.Contains(earned, award.BadgeID) {
			earned = append(earned, award.BadgeID)
		}
		rawEarned, err := json.Marshal(earned)
		if err != nil {
			return fmt.Errorf("encode earned badges: %w", err)
		}
		values[KeyBadge] = string(award.Tier)
		values[KeyEarnedBadges] = string(rawEarned)
		values[KeyExtendedUnlocked] = flagTrue
	}

	return r.kv.SetMany(ctx, values)
}

// SetExtendedActive sets or clears the extended-mode marker.
func (r *ProgressRepo) SetExtendedActive(ctx context.Context, active bool) error {
	if active {
		return r.kv.SetMany(ctx, map[string]string{KeyExtendedActive: flagTrue})
	}
	return r.kv.Delete(ctx, KeyExtendedActive)
}

// Reset clears the tally, badge and play count. Earned badges and the
// extended-mode flags survive.
func (r *ProgressRepo) Reset(ctx context.Context) error {
	if err := r.kv.Delete(ctx, KeyTally, KeyBadge, KeyPlayCount); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}

// ResetAll clears the round state and the extended-mode flags. The earned
// collection is cleared only when includeEarned is set.
func (r *ProgressRepo) ResetAll(ctx context.Context, includeEarned bool) error {
	keys := []string{KeyTally, KeyBadge, KeyPlayCount, KeyExtendedUnlocked, KeyExtendedActive}
	if includeEarned {
		keys = append(keys, KeyEarnedBadges)
	}
	if err := r.kv.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("reset all progress: %w", err)
	}
	return nil
}
