package config

// DefaultSections returns the built-in landing page.
func DefaultSections() []SectionConfig {
	return []SectionConfig{
		{
			ID:    "hero",
			Title: "Welcome Screen",
			Color: "#8BC34A",
			Body: `# Connect

Communication without borders. One place for the people, teams and
communities you care about.

Scroll, or press **n** to continue.`,
		},
		{
			ID:    "advantages",
			Title: "Communication Benefits",
			Color: "#2196F3",
			Body: `## Why people switch

- **Seamless Communication**: connect effortlessly with intuitive interfaces.
- **Privacy First**: your conversations, your control.
- **Smart Interactions**: features that get out of the way until you need them.

| Network Connections | Business Efficiency | Global Reach |
|---|---|---|
| Grow your circle | Fewer meetings | Multilingual by default |`,
		},
		{
			ID:    "features-section",
			Title: "Detailed Features",
			Color: "#4db6ac",
			Body: `## Features

### Global Reach
Connect across borders with multilingual support.

### End-to-End Encryption
Secure your conversations with modern encryption. Keys never leave your devices.

### Smart Suggestions
Assistance that drafts, summarizes and translates on request.

### Profiles
A profile page with avatar, about section and social links.`,
		},
		{
			ID:    "legal-section",
			Title: "Terms and Policies",
			Color: "#ffd54f",
			Body: `## Terms and Policies

**Terms of Service.** Use the service lawfully and respect other members.

**Privacy Policy.** We collect the minimum needed to run the service and never sell personal data.

**Cookie Policy.** Cookies keep you signed in and remember your preferences. Nothing else.`,
		},
	}
}
