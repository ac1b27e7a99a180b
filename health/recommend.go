package health

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"chronopulse/feature"
)

// Labels the classifier can produce.
const (
	LabelNoDisorder = "No Disorder"
	LabelInsomnia   = "Insomnia"
	LabelSleepApnea = "Sleep Apnea"
)

const fallbackRecommendation = "Your health metrics look good! Keep up the healthy habits"

var printer = message.NewPrinter(language.English)

type rule struct {
	matches func(label string, score float64, in feature.RawInput) bool
	text    string
}

// The rule table is static and ordered; all matching rules fire in table
// order, duplicates collapse, and the fallback guarantees a non-empty set.
var rules = []rule{
	{
		matches: func(_ string, _ float64, in feature.RawInput) bool { return in.SleepDuration < 7 },
		text:    "Aim for 7-9 hours of sleep per night for optimal health",
	},
	{
		matches: func(_ string, _ float64, in feature.RawInput) bool { return in.SleepDuration > 9 },
		text:    "Regularly sleeping more than 9 hours can disturb your rhythm; keep a consistent wake time",
	},
	{
		matches: func(_ string, _ float64, in feature.RawInput) bool { return in.QualityOfSleep < 6 },
		text:    "Focus on improving sleep quality by maintaining a consistent sleep schedule",
	},
	{
		matches: func(_ string, _ float64, in feature.RawInput) bool { return in.StressLevel > 6 },
		text:    "Practice stress management techniques such as meditation, yoga, or deep breathing",
	},
	{
		matches: func(_ string, _ float64, in feature.RawInput) bool { return in.PhysicalActivityLevel < 30 },
		text:    "Increase physical activity to at least 30 minutes of moderate exercise daily",
	},
	{
		matches: func(_ string, _ float64, in feature.RawInput) bool { return in.DailySteps < 5000 },
		text:    printer.Sprintf("Try to achieve at least %d-%d steps per day", 7000, 10000),
	},
	{
		matches: func(_ string, _ float64, in feature.RawInput) bool { return in.HeartRate > 90 },
		text:    "Monitor your heart rate and consult a doctor if it remains consistently elevated",
	},
	{
		matches: func(_ string, _ float64, in feature.RawInput) bool {
			return in.SystolicBP > 130 || in.DiastolicBP > 85
		},
		text: "Your blood pressure is elevated; please consult a healthcare provider",
	},
	{
		matches: func(label string, _ float64, _ feature.RawInput) bool { return label == LabelInsomnia },
		text:    "Limit caffeine and screen time in the evening and keep a fixed bedtime",
	},
	{
		matches: func(label string, _ float64, _ feature.RawInput) bool { return label == LabelSleepApnea },
		text:    "Discuss a sleep study with your doctor; sleep apnea is treatable",
	},
	{
		matches: func(label string, _ float64, in feature.RawInput) bool {
			return label == LabelSleepApnea &&
				(in.BMICategory == "Obese" || in.BMICategory == "Overweight")
		},
		text: "Gradual weight loss can significantly reduce sleep apnea severity",
	},
	{
		matches: func(_ string, score float64, _ feature.RawInput) bool { return score < 40 },
		text:    "Your overall wellness score is low; consider a check-up to review sleep and lifestyle together",
	},
}

// Recommend maps (predicted label, health score, raw inputs) to an ordered,
// deduplicated, never-empty list of recommendations.
func Recommend(label string, score float64, in feature.RawInput) []string {
	var out []string
	seen := make(map[string]bool)
	for _, r := range rules {
		if !r.matches(label, score, in) {
			continue
		}
		if seen[r.text] {
			continue
		}
		seen[r.text] = true
		out = append(out, r.text)
	}
	if len(out) == 0 {
		out = append(out, fallbackRecommendation)
	}
	return out
}
