package badges

import (
	"math/rand/v2"

	"github.com/abhisek/attacq/internal/tier"
)

// Catalog holds the per-tier badge pools and personalities.
type Catalog struct {
	pools         map[tier.ID][]Badge
	personalities map[tier.ID]Personality
	byID          map[string]Badge
	total         int
}

// NewCatalog builds a catalog from the given pools. Badge tiers are set
// from the pool they belong to.
func NewCatalog(pools map[tier.ID][]Badge, personalities map[tier.ID]Personality) *Catalog {
	c := &Catalog{
		pools:         make(map[tier.ID][]Badge, len(pools)),
		personalities: personalities,
		byID:          make(map[string]Badge),
	}
	for t, pool := range pools {
		cp := make([]Badge, len(pool))
		for i, b := range pool {
			b.Tier = t
			cp[i] = b
			c.byID[b.ID] = b
		}
		c.pools[t] = cp
		c.total += len(cp)
	}
	return c
}

// Default returns the official ATTACQ catalog.
func Default() *Catalog {
	return NewCatalog(officialBadges, officialPersonalities)
}

// Pool returns the badges available for a tier.
func (c *Catalog) Pool(t tier.ID) []Badge {
	return c.pools[t]
}

// Personality returns the personality for a tier.
func (c *Catalog) Personality(t tier.ID) (Personality, bool) {
	p, ok := c.personalities[t]
	return p, ok
}

// RandomForTier picks a badge uniformly from the tier's pool.
// Returns false if the tier has no badges.
func (c *Catalog) RandomForTier(t tier.ID, rng *rand.Rand) (Badge, bool) {
	pool := c.pools[t]
	if len(pool) == 0 {
		return Badge{}, false
	}
	var i int
	if rng != nil {
		i = rng.IntN(len(pool))
	} else {
		i = rand.IntN(len(pool))
	}
	return pool[i], true
}

// ByID finds a badge by its identifier.
func (c *Catalog) ByID(id string) (Badge, bool) {
	b, ok := c.byID[id]
	return b, ok
}

// Total returns the number of badges across all tiers.
func (c *Catalog) Total() int {
	return c.total
}

// Progress computes collection progress for the given earned badge IDs.
// Unknown and duplicate IDs are ignored.
func (c *Catalog) Progress(earned []string) Progress {
	seen := make(map[string]bool, len(earned))
	for _, id := range earned {
		if _, ok := c.byID[id]; ok {
			seen[id] = true
		}
	}
	p := Progress{Earned: len(seen), Total: c.total}
	if c.total > 0 {
		p.Percentage = int(float64(p.Earned)/float64(c.total)*100 + 0.5)
	}
	return p
}
