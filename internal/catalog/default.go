package catalog

// cost is a helper for building optional option costs in the default catalog.
func cost(v float64) *float64 { return &v }

// Default returns the built-in step catalog used when no steps file is
// configured. The shape mirrors the hosted catalog: intro, goal selection,
// add-on selection, query entry, then the model gate rendered as a custom
// step by the TUI.
func Default() *Catalog {
	return &Catalog{Steps: []StepDefinition{
		{
			Title:     "Welcome",
			Kind:      KindIntro,
			Narrative: "UltrAI sends your query to several AI models at once, has them review each other's drafts, and synthesizes a single combined answer.",
		},
		{
			Title:     "What are you working on?",
			Kind:      KindSingleSelect,
			Narrative: "Pick the goal that best matches your query. This tunes the analysis pattern.",
			Options: []OptionDefinition{
				{Label: "Research a topic", Icon: "🔍", Description: "Broad factual synthesis"},
				{Label: "Draft a document", Icon: "✍️", Description: "Writing with cross-model review"},
				{Label: "Make a decision", Icon: "⚖️", Description: "Structured pros and cons"},
				{Label: "Review code or text", Icon: "🧐", Description: "Critique-oriented analysis"},
			},
		},
		{
			Title:     "Add-ons",
			Kind:      KindMultiSelect,
			Narrative: "Optional extras applied to the final synthesis. Priced per run.",
			Options: []OptionDefinition{
				{Label: "Citation formatting", Cost: cost(0.05), Icon: "📚"},
				{Label: "Confidence scoring", Cost: cost(0.10), Icon: "📊"},
				{Label: "Plain-language summary", Cost: cost(0.00), Icon: "🗒️", Description: "Explicitly free"},
				{Label: "Keep my data private", Icon: "🔒", Description: "No cost, always honored"},
			},
		},
		{
			Title:     "Your query",
			Kind:      KindFreeText,
			Narrative: "Describe what you want the models to analyze. Press ctrl+e to open your $EDITOR.",
		},
		{
			Title:     "Choose your models",
			Kind:      KindCustom,
			Narrative: "Select at least two models. Presets: 1 premium, 2 speed, 3 budget.",
		},
	}}
}
