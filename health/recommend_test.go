package health

import (
	"strings"
	"testing"
)

func TestRecommendNeverEmpty(t *testing.T) {
	labels := []string{LabelNoDisorder, LabelInsomnia, LabelSleepApnea}
	scores := []float64{0, 25, 50, 75, 100}

	for _, label := range labels {
		for _, score := range scores {
			recs := Recommend(label, score, moderateInput())
			if len(recs) == 0 {
				t.Fatalf("empty recommendations for label=%q score=%v", label, score)
			}
		}
	}
}

func TestRecommendNoDuplicates(t *testing.T) {
	in := moderateInput()
	in.SleepDuration = 3
	in.QualityOfSleep = 3
	in.StressLevel = 10
	in.PhysicalActivityLevel = 10
	in.DailySteps = 2000
	in.HeartRate = 100
	in.SystolicBP = 150
	in.DiastolicBP = 95

	recs := Recommend(LabelInsomnia, 10, in)
	seen := make(map[string]bool)
	for _, rec := range recs {
		if seen[rec] {
			t.Fatalf("duplicate recommendation %q", rec)
		}
		seen[rec] = true
	}
}

func TestRecommendHealthyFallsBack(t *testing.T) {
	recs := Recommend(LabelNoDisorder, 80, moderateInput())
	if len(recs) != 1 || recs[0] != fallbackRecommendation {
		t.Fatalf("expected fallback only, got %v", recs)
	}
}

func TestRecommendStressAndDurationEntries(t *testing.T) {
	in := moderateInput()
	in.SleepDuration = 3
	in.StressLevel = 10

	recs := Recommend(LabelInsomnia, 20, in)

	var hasDuration, hasStress bool
	for _, rec := range recs {
		if strings.Contains(rec, "7-9 hours") {
			hasDuration = true
		}
		if strings.Contains(rec, "stress management") {
			hasStress = true
		}
	}
	if !hasDuration || !hasStress {
		t.Fatalf("expected duration- and stress-specific entries, got %v", recs)
	}
}

func TestRecommendApneaWeightEntry(t *testing.T) {
	in := moderateInput()
	in.BMICategory = "Obese"

	recs := Recommend(LabelSleepApnea, 50, in)

	var hasWeight bool
	for _, rec := range recs {
		if strings.Contains(rec, "weight loss") {
			hasWeight = true
		}
	}
	if !hasWeight {
		t.Fatalf("expected weight-loss entry for obese apnea case, got %v", recs)
	}
}

func TestRecommendStepFormatting(t *testing.T) {
	in := moderateInput()
	in.DailySteps = 2000

	recs := Recommend(LabelNoDisorder, 70, in)

	var hasSteps bool
	for _, rec := range recs {
		if strings.Contains(rec, "7,000-10,000") {
			hasSteps = true
		}
	}
	if !hasSteps {
		t.Fatalf("expected formatted step target, got %v", recs)
	}
}

func TestRecommendDeterministic(t *testing.T) {
	in := moderateInput()
	in.StressLevel = 9

	first := Recommend(LabelInsomnia, 30, in)
	second := Recommend(LabelInsomnia, 30, in)
	if len(first) != len(second) {
		t.Fatalf("non-deterministic recommendations: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("non-deterministic order: %v vs %v", first, second)
		}
	}
}
