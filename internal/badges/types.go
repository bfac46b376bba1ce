package badges

import "github.com/abhisek/attacq/internal/tier"

// Badge is a cosmetic reward tied to a tier.
type Badge struct {
	ID          string
	Tier        tier.ID
	Title       string
	Artwork     string
	ThreatLevel string
	Description string
}

// Personality describes the character behind a tier.
type Personality struct {
	Emoji  string
	Title  string
	Traits []string
}

// Progress summarizes how much of the badge collection has been earned.
type Progress struct {
	Earned     int
	Total      int
	Percentage int
}
