package tier

import "strings"

// ID identifies one of the five trust tiers.
type ID string

const (
	T1 ID = "T1"
	T2 ID = "T2"
	T3 ID = "T3"
	T4 ID = "T4"
	TX ID = "TX"
)

// All returns every tier in tally display order.
func All() []ID {
	return []ID{T1, T2, T3, T4, TX}
}

// Valid reports whether id is one of the five known tiers.
func (id ID) Valid() bool {
	switch id {
	case T1, T2, T3, T4, TX:
		return true
	}
	return false
}

// Label returns the display label for the tier.
func (id ID) Label() string {
	switch id {
	case T4:
		return "The Synthetic Saint"
	case T3:
		return "The AI Scholar"
	case T2:
		return "The Creative Tinkerer"
	case T1:
		return "The Browser Baby"
	case TX:
		return "The Digital Supervillain"
	default:
		return string(id)
	}
}

// Icon returns the emoji shown in tally tables.
func (id ID) Icon() string {
	switch id {
	case T4:
		return "🛡️"
	case T3:
		return "🧠"
	case T2:
		return "🤖"
	case T1:
		return "👶"
	case TX:
		return "💀"
	default:
		return "?"
	}
}

// ThreatLevel returns the one-line threat assessment for the tier.
func (id ID) ThreatLevel() string {
	switch id {
	case T4:
		return "Less risky than airplane mode"
	case T3:
		return "Mildly suspicious librarian"
	case T2:
		return "Cat near keyboard"
	case T1:
		return "Puppy chewing a cable"
	case TX:
		return "Human embodiment of ransomware"
	default:
		return ""
	}
}

// Description returns the long-form verdict for the tier.
func (id ID) Description() string {
	switch id {
	case T4:
		return "Ethical to the point of suspicion. You'd probably report yourself for jaywalking in GTA."
	case T3:
		return "Cautious, knowledgeable, and occasionally dangerous... if you're an overdue book."
	case T2:
		return "Likely safe, but if left alone too long, might accidentally order 500 pizzas or launch a meme campaign."
	case T1:
		return "You're harmlessly chaotic, usually more confused than malicious. Needs constant AI babysitting."
	case TX:
		return "Probably uses dark mode out of moral alignment. Immediately revokes your admin privileges."
	default:
		return ""
	}
}

// Result is the outcome of a tier lookup.
type Result struct {
	Tier ID
	Text string
}

// LookupFunc maps a score ratio in [0,1] to a tier result.
type LookupFunc func(ratio float64) Result

// Lookup is the default tier table. Higher ratios mean more trustworthy
// answers; the lowest band is the adversarial tier.
func Lookup(ratio float64) Result {
	var id ID
	switch {
	case ratio >= 0.8:
		id = T4
	case ratio >= 0.6:
		id = T3
	case ratio >= 0.4:
		id = T2
	case ratio >= 0.2:
		id = T1
	default:
		id = TX
	}
	return Result{
		Tier: id,
		Text: id.Icon() + " " + id.Label() + "\nThreat Level: " + id.ThreatLevel() + "\n" + id.Description(),
	}
}

// miniGameScores maps mini-game score strings to tiers. Mini-games report
// one of four personas; the adversarial tier is never a mini-game outcome.
var miniGameScores = map[string]ID{
	"baby":     T1,
	"tinkerer": T2,
	"scholar":  T3,
	"saint":    T4,
}

// FromMiniGameScore converts a mini-game score string (persona name or tier
// ID) into a tier. Unknown scores report false.
func FromMiniGameScore(score string) (ID, bool) {
	s := strings.TrimSpace(score)
	if id := ID(strings.ToUpper(s)); id.Valid() {
		return id, true
	}
	id, ok := miniGameScores[strings.ToLower(s)]
	return id, ok
}
