package safety

// RouletteAssessmentQuestions is the full, ordered question set.
var RouletteAssessmentQuestions = []AssessmentQuestion{
	{
		ID:               "roulette-time-perception",
		Question:         "When playing roulette, how aware are you of the time passing?",
		Category:         "behavior",
		RouletteSpecific: true,
		Options: []AssessmentOption{
			{Value: 1, Text: "I always track time and stick to my planned session length", RiskLevel: RiskLow},
			{Value: 2, Text: "I usually notice time but sometimes play longer than intended", RiskLevel: RiskMedium},
			{Value: 3, Text: "Time seems to fly by when I'm playing roulette", RiskLevel: RiskHigh},
			{Value: 4, Text: "I lose complete track of time during roulette sessions", RiskLevel: RiskHigh},
		},
	},
	{
		ID:               "house-edge-understanding",
		Question:         "How well do you understand the house edge in roulette?",
		Category:         "control",
		RouletteSpecific: true,
		Options: []AssessmentOption{
			{Value: 1, Text: "I fully understand that the house always has a mathematical advantage", RiskLevel: RiskLow},
			{Value: 2, Text: "I know the house has an edge but sometimes think I can overcome it", RiskLevel: RiskMedium},
			{Value: 3, Text: "I believe I can find systems to beat the house edge", RiskLevel: RiskHigh},
			{Value: 4, Text: "I think roulette can be beaten with the right strategy", RiskLevel: RiskHigh},
		},
	},
	{
		ID:               "betting-patterns",
		Question:         "How would you describe your betting patterns in roulette?",
		Category:         "behavior",
		RouletteSpecific: true,
		Options: []AssessmentOption{
			{Value: 1, Text: "I stick to predetermined bet sizes and patterns", RiskLevel: RiskLow},
			{Value: 2, Text: "I mostly stick to my plan but sometimes adjust based on results", RiskLevel: RiskMedium},
			{Value: 3, Text: "I frequently change my betting strategy during play", RiskLevel: RiskHigh},
			{Value: 4, Text: "I chase losses by increasing bet sizes or changing strategies", RiskLevel: RiskHigh},
		},
	},
	{
		ID:               "emotional-response",
		Question:         "How do you typically feel after losing several spins in a row at roulette?",
		Category:         "emotion",
		RouletteSpecific: true,
		Options: []AssessmentOption{
			{Value: 1, Text: "I accept it as normal variance and continue with my strategy", RiskLevel: RiskLow},
			{Value: 2, Text: "I feel frustrated but stick to my predetermined limits", RiskLevel: RiskMedium},
			{Value: 3, Text: "I feel compelled to keep playing to recover the losses", RiskLevel: RiskHigh},
			{Value: 4, Text: "I feel angry and increase my bets to win back quickly", RiskLevel: RiskHigh},
		},
	},
	{
		ID:               "system-beliefs",
		Question:         "What do you think about betting systems in roulette (Martingale, D'Alembert, etc.)?",
		Category:         "control",
		RouletteSpecific: true,
		Options: []AssessmentOption{
			{Value: 1, Text: "I understand they don't change the mathematical odds", RiskLevel: RiskLow},
			{Value: 2, Text: "I know they don't work long-term but find them entertaining", RiskLevel: RiskMedium},
			{Value: 3, Text: "I think some systems can improve your chances if used correctly", RiskLevel: RiskHigh},
			{Value: 4, Text: "I believe I can develop or find a winning system", RiskLevel: RiskHigh},
		},
	},
}

// QuickCheckQuestions is the three-question subset for the fast assessment.
var QuickCheckQuestions = RouletteAssessmentQuestions[:3]

// QuestionsForVariant returns the question sequence for a quiz variant.
// Unknown variants get the comprehensive set.
func QuestionsForVariant(variant string) []AssessmentQuestion {
	if variant == "quick-check" {
		return QuickCheckQuestions
	}
	return RouletteAssessmentQuestions
}
