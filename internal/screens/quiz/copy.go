package quiz

import (
	"math/rand/v2"

	"github.com/abhisek/attacq/internal/tier"
)

// progressQuips rotate under the progress bar, one per question index.
var progressQuips = []string{
	"Advance for a shot at AI clearance. Or a spot on the watchlist.",
	"One step closer to the mainframe. Or the blacklist.",
	"Keep going. The model is watching.",
	"Your answers are being logged for future robot overlords.",
	"Almost there. Hope you like digital ankle monitors.",
	"Proceed with caution. AI trust is a fragile thing.",
	"Every keypress brings you closer to the singularity, or a security review.",
	"Saint or supervillain? The quiz will decide.",
	"The model never forgets. Neither do we.",
	"This is not a test. (Okay, it is.)",
}

// congrats is shown when a round finishes, before the reveal.
var congrats = []string{
	"You finished without being flagged by Interpol. Progress!",
	"You have officially been judged by an algorithm and somehow survived.",
	"Well done, future overlord. Or obedient spreadsheet user.",
	"Congratulations: we now know exactly how dangerous you are.",
	"The AI is printing your trust certificate on invisible paper.",
	"You have been categorized and profiled. Cheers!",
	"A questionable achievement, but an achievement nonetheless.",
	"No prize. Just self-awareness and mild government scrutiny.",
}

// restartWarnings answer a restart attempted before the reveal.
var restartWarnings = []string{
	"Patience, human! The AI hasn't finished judging you yet.",
	"You can't escape your fate that easily. Reveal your results first!",
	"Nice try! Even AI needs closure before a restart.",
	"Results first, existential crisis later.",
	"Reveal your fate before you tempt it again!",
	"No speedrunning the quiz! Results come before retries.",
}

// leaveWarnings answer Esc before the reveal, a few times at most.
var leaveWarnings = []string{
	"You can't leave yet! The AI still has secrets to reveal...",
	"Trying to escape before your fate is revealed? Not so fast!",
	"The suspense is killing us too. Reveal your results first!",
}

// overuseScreens replace the restart after too many retries.
var overuseScreens = []struct {
	Icon, Title, Body string
}{
	{"🤖🚨", "AI Safety Alert", "You've restarted more times than an ethics committee rewrites its guidelines. Apply for a security clearance, or take a nap."},
	{"🛑🔐", "Access Denied", "Your restart privileges are under review. Step away from the keyboard and let the AI cool down."},
	{"👀🤔", "Suspicious Activity Detected", "Either you're a perfectionist or you're training for the AI Olympics. The robots are watching."},
	{"💾🦾", "Quiz Overload", "You've triggered the digital equivalent of a fire drill. Please proceed to the nearest exit."},
	{"🧠🔒", "AI Trust Tier: Infinite Loop", "You've achieved the rare 'Quiz Addict' status. The AI is now questioning your access privileges."},
}

// answerQuip reacts to the points of the option just chosen.
func answerQuip(points int) string {
	switch {
	case points >= 4:
		return "Squeaky clean. Suspiciously so."
	case points == 3:
		return "Sensible. The compliance team nods."
	case points == 2:
		return "Hmm. The audit log grows."
	case points == 1:
		return "The SOC just felt a disturbance."
	default:
		return "Somewhere, a firewall flinched."
	}
}

// gameVerdict captions a mini-game outcome.
func gameVerdict(t tier.ID) string {
	switch t {
	case tier.T4:
		return "Flawless. The mini-game files you under 'trusted'."
	case tier.T3:
		return "Solid instincts. Mostly."
	case tier.T2:
		return "You clicked something. It was fine. Probably."
	default:
		return "The mini-game shrugs and files you under 'baby'."
	}
}

func pick[T any](rng *rand.Rand, xs []T) T {
	return xs[rng.IntN(len(xs))]
}
