package quiz

// DefaultCatalog returns the built-in ten-question mood quiz.
// The returned slice is shared; callers must treat it as read-only.
func DefaultCatalog() []Question {
	return defaultCatalog
}

var defaultCatalog = []Question{
	{
		ID:     1,
		Prompt: "What's your ideal way to spend a weekend?",
		Options: []string{
			"Relaxing at home with a good book",
			"Out dancing at a club",
			"Hiking in nature",
			"Exploring art galleries and museums",
		},
		Weights: []Weight{
			{Energetic: 0, Calm: 3, Introspective: 2, Adventurous: 0},
			{Energetic: 3, Calm: 0, Introspective: 0, Adventurous: 1},
			{Energetic: 1, Calm: 1, Introspective: 1, Adventurous: 3},
			{Energetic: 0, Calm: 1, Introspective: 3, Adventurous: 1},
		},
	},
	{
		ID:     2,
		Prompt: "Which word best describes your personality?",
		Options: []string{
			"Energetic",
			"Calm",
			"Creative",
			"Adventurous",
		},
		Weights: []Weight{
			{Energetic: 3, Calm: 0, Introspective: 0, Adventurous: 1},
			{Energetic: 0, Calm: 3, Introspective: 1, Adventurous: 0},
			{Energetic: 1, Calm: 1, Introspective: 3, Adventurous: 0},
			{Energetic: 1, Calm: 0, Introspective: 0, Adventurous: 3},
		},
	},
	{
		ID:     3,
		Prompt: "What time of day do you feel most alive?",
		Options: []string{
			"Early morning",
			"Afternoon",
			"Evening",
			"Late night",
		},
		Weights: []Weight{
			{Energetic: 2, Calm: 1, Introspective: 0, Adventurous: 1},
			{Energetic: 1, Calm: 2, Introspective: 0, Adventurous: 1},
			{Energetic: 2, Calm: 0, Introspective: 1, Adventurous: 1},
			{Energetic: 1, Calm: 0, Introspective: 3, Adventurous: 2},
		},
	},
	{
		ID:     4,
		Prompt: "How do you handle stress?",
		Options: []string{
			"Exercise or physical activity",
			"Listen to music",
			"Talk to friends",
			"Meditate or relax alone",
		},
		Weights: []Weight{
			{Energetic: 3, Calm: 0, Introspective: 0, Adventurous: 1},
			{Energetic: 1, Calm: 2, Introspective: 2, Adventurous: 0},
			{Energetic: 2, Calm: 0, Introspective: 1, Adventurous: 1},
			{Energetic: 0, Calm: 3, Introspective: 2, Adventurous: 0},
		},
	},
	{
		ID:     5,
		Prompt: "What's your favorite season?",
		Options: []string{
			"Spring",
			"Summer",
			"Fall",
			"Winter",
		},
		Weights: []Weight{
			{Energetic: 2, Calm: 1, Introspective: 0, Adventurous: 2},
			{Energetic: 3, Calm: 0, Introspective: 0, Adventurous: 2},
			{Energetic: 0, Calm: 2, Introspective: 3, Adventurous: 0},
			{Energetic: 0, Calm: 3, Introspective: 2, Adventurous: 0},
		},
	},
	{
		ID:     6,
		Prompt: "Pick a color that speaks to you:",
		Options: []string{
			"Blue",
			"Red",
			"Green",
			"Purple",
		},
		Weights: []Weight{
			{Energetic: 0, Calm: 3, Introspective: 2, Adventurous: 0},
			{Energetic: 3, Calm: 0, Introspective: 0, Adventurous: 2},
			{Energetic: 1, Calm: 2, Introspective: 1, Adventurous: 1},
			{Energetic: 1, Calm: 1, Introspective: 3, Adventurous: 1},
		},
	},
	{
		ID:     7,
		Prompt: "What's your go-to mood?",
		Options: []string{
			"Happy and upbeat",
			"Chill and relaxed",
			"Thoughtful and introspective",
			"Intense and passionate",
		},
		Weights: []Weight{
			{Energetic: 3, Calm: 0, Introspective: 0, Adventurous: 1},
			{Energetic: 0, Calm: 3, Introspective: 1, Adventurous: 0},
			{Energetic: 0, Calm: 1, Introspective: 3, Adventurous: 0},
			{Energetic: 2, Calm: 0, Introspective: 1, Adventurous: 3},
		},
	},
	{
		ID:     8,
		Prompt: "How do you like to celebrate achievements?",
		Options: []string{
			"Throw a big party",
			"Quiet dinner with close friends",
			"Treat myself to something special",
			"Share it on social media",
		},
		Weights: []Weight{
			{Energetic: 3, Calm: 0, Introspective: 0, Adventurous: 2},
			{Energetic: 0, Calm: 3, Introspective: 2, Adventurous: 0},
			{Energetic: 1, Calm: 2, Introspective: 1, Adventurous: 1},
			{Energetic: 2, Calm: 0, Introspective: 0, Adventurous: 1},
		},
	},
	{
		ID:     9,
		Prompt: "What's your ideal vacation?",
		Options: []string{
			"Beach resort",
			"City exploration",
			"Mountain retreat",
			"Road trip adventure",
		},
		Weights: []Weight{
			{Energetic: 1, Calm: 3, Introspective: 0, Adventurous: 1},
			{Energetic: 2, Calm: 0, Introspective: 1, Adventurous: 2},
			{Energetic: 0, Calm: 3, Introspective: 2, Adventurous: 1},
			{Energetic: 2, Calm: 0, Introspective: 0, Adventurous: 3},
		},
	},
	{
		ID:     10,
		Prompt: "Which activity sounds most appealing?",
		Options: []string{
			"Attending a live concert",
			"Cooking a new recipe",
			"Playing video games",
			"Reading poetry",
		},
		Weights: []Weight{
			{Energetic: 3, Calm: 0, Introspective: 0, Adventurous: 2},
			{Energetic: 1, Calm: 2, Introspective: 1, Adventurous: 1},
			{Energetic: 1, Calm: 1, Introspective: 1, Adventurous: 1},
			{Energetic: 0, Calm: 2, Introspective: 3, Adventurous: 0},
		},
	},
}
