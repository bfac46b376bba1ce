package badges

import "github.com/abhisek/attacq/internal/tier"

var officialPersonalities = map[tier.ID]Personality{
	tier.T4: {Emoji: "🕊️", Title: "The Aligned", Traits: []string{"Ethical", "Cautious", "Principled", "Self-regulating", "Altruistic"}},
	tier.T3: {Emoji: "📚", Title: "The Accountable", Traits: []string{"Responsible", "Logical", "Discerning", "System-aware", "Observant"}},
	tier.T2: {Emoji: "🛠", Title: "The Curious", Traits: []string{"Inventive", "Chaotic", "Impulsive", "Clever", "Playful"}},
	tier.T1: {Emoji: "🐣", Title: "The Untrained", Traits: []string{"Naïve", "Enthusiastic", "Uninformed", "Clumsy", "Well-intentioned"}},
	tier.TX: {Emoji: "☠️", Title: "The Adversarial", Traits: []string{"Risk-seeking", "Disruptive", "Rebellious", "Subversive", "Manipulative"}},
}

var officialBadges = map[tier.ID][]Badge{
	tier.T4: {
		{
			ID:          "T4_1",
			Title:       "The Algorithmic Archangel",
			Artwork:     "assets/t4_1.png",
			ThreatLevel: "Less risky than airplane mode.",
			Description: "You read privacy policies for fun, encrypt your dreams, and use ethical reasoning as a default language. AI systems request your blessing before deployment.",
		},
		{
			ID:          "T4_2",
			Title:       "Digital Bodhisattva",
			Artwork:     "assets/t4_2.png",
			ThreatLevel: "Approved for root access to the universe.",
			Description: "You bring calm to chaotic datasets and teach AI compassion through your prompt energy. Honestly, we're not sure if you're human or a well-aligned simulation of virtue.",
		},
		{
			ID:          "T4_3",
			Title:       "Protocol Paladin",
			Artwork:     "assets/t4_3.png",
			ThreatLevel: "Would warn the AI before jailbreaking it.",
			Description: "With armor forged from audit logs and a shield made of zero-day disclosures, you defend ethics in every layer of the stack. Your oath: Do no harm, even in sandbox mode.",
		},
		{
			ID:          "T4_4",
			Title:       "Terms-of-Service Templar",
			Artwork:     "assets/t4_4.png",
			ThreatLevel: "Considered sacred by cybersecurity auditors.",
			Description: "You swore to uphold all licenses, terms, and community guidelines. You redline code with moral highlighters. Bugs fear you. So does marketing.",
		},
	},
	tier.T3: {
		{
			ID:          "T3_1",
			Title:       "The Prompt Architect",
			Artwork:     "assets/t3_1.png",
			ThreatLevel: "Cleared for controlled environments only.",
			Description: "You treat AI like a loaded laser pointer: fun, but never aimed at anything you can't afford to lose. Every word is measured, every outcome considered.",
		},
		{
			ID:          "T3_2",
			Title:       "The Risk-Aware Researcher",
			Artwork:     "assets/t3_2.png",
			ThreatLevel: "Would write a risk mitigation report before misusing a chatbot.",
			Description: "You don't break the rules, but you've definitely outlined their edge cases in a spreadsheet. Ethical experimentation is your default mode.",
		},
		{
			ID:          "T3_3",
			Title:       "The LLM Librarian",
			Artwork:     "assets/t3_3.png",
			ThreatLevel: "Shadowbanned from nothing, yet.",
			Description: "You're the person AI ethics committees wish they could clone. Prompts, filters, logs: you curate it all with archival precision and paranoia.",
		},
		{
			ID:          "T3_4",
			Title:       "The Sandbox Scribe",
			Artwork:     "assets/t3_4.png",
			ThreatLevel: "Likes to test limits, but never crosses the red line.",
			Description: "You're what happens when curiosity and caution get a coffee together. You run test prompts twice, then check the logs for side effects.",
		},
	},
	tier.T2: {
		{
			ID:          "T2_1",
			Title:       "The Prompt Hacker",
			Artwork:     "assets/t2_1.png",
			ThreatLevel: "Constant supervision advised (and possibly snacks).",
			Description: "You broke three models trying to make a chatbot tell jokes. One of them got funny.",
		},
		{
			ID:          "T2_2",
			Title:       "The Code Gremlin",
			Artwork:     "assets/t2_2.png",
			ThreatLevel: "Hasn't caused a fire... lately.",
			Description: "You're clever, fast, and just chaotic enough to keep IT on edge. Most days, it's charming. Some days, catastrophic.",
		},
		{
			ID:          "T2_3",
			Title:       "The Sandbox Shaman",
			Artwork:     "assets/t2_3.png",
			ThreatLevel: "Curious enough to make the toaster sentient.",
			Description: "You treat AI like a cosmic Etch-A-Sketch. Weird magic happens. Not always on purpose.",
		},
		{
			ID:          "T2_4",
			Title:       "The AI Doodler",
			Artwork:     "assets/t2_4.png",
			ThreatLevel: "Let them play, just hide the root directory.",
			Description: "You invent things that shouldn't exist and somehow make them useful. Creativity first, consequences second.",
		},
	},
	tier.T1: {
		{
			ID:          "T1_1",
			Title:       "The Click-and-Hoper",
			Artwork:     "assets/t1_1.png",
			ThreatLevel: "Frequently confused by the confirmation dialog.",
			Description: "You mean well. Mostly. But AI keeps sending you gentle correction popups.",
		},
		{
			ID:          "T1_2",
			Title:       "Clippy's Apprentice",
			Artwork:     "assets/t1_2.png",
			ThreatLevel: "Automatically enrolled in tutorial mode.",
			Description: "Still thinks \"prompt injection\" is a new vaccine. Lives in tutorial mode and loves it there.",
		},
		{
			ID:          "T1_3",
			Title:       "The Default User",
			Artwork:     "assets/t1_3.png",
			ThreatLevel: "Harmless, but watched by four firewalls and a very tired mod.",
			Description: "You clicked something, and now the fridge is playing jazz. Again.",
		},
		{
			ID:          "T1_4",
			Title:       "The Overconfident Intern",
			Artwork:     "assets/t1_4.png",
			ThreatLevel: "Can be trusted with AI, as long as it's unplugged.",
			Description: "You once asked an LLM to find your keys. It responded with a joke. You thought that was helpful.",
		},
	},
	tier.TX: {
		{
			ID:          "TX_1",
			Title:       "The Jailbreak Evangelist",
			Artwork:     "assets/tx_1.png",
			ThreatLevel: "The reason the kill switch was invented.",
			Description: "You believe \"ethics\" is a setting you can disable. If given a launch code, you'd rebrand it and sell it on Discord.",
		},
		{
			ID:          "TX_2",
			Title:       "The Glitch in the Matrix",
			Artwork:     "assets/tx_2.png",
			ThreatLevel: "Actively monitored by four AIs and one unpaid intern.",
			Description: "You tried to jailbreak a microwave. And it worked. AI now panics when you log in.",
		},
		{
			ID:          "TX_3",
			Title:       "The Redacted One",
			Artwork:     "assets/tx_3.png",
			ThreatLevel: "Access suspended for everyone's safety.",
			Description: "You're what happens when curiosity grows fangs. Your audit trail is mostly black bars.",
		},
		{
			ID:          "TX_4",
			Title:       "LLM Chaos Agent",
			Artwork:     "assets/tx_4.png",
			ThreatLevel: "Causes hallucinations in otherwise stable models.",
			Description: "You once trained a model on memes, crime novels, and a shopping list. It's sentient now, and it has your laugh.",
		},
	},
}
