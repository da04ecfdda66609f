package report

import (
	"math"
	"testing"

	"insurecost/insurance"
)

func sampleRecords() []insurance.PredictionRecord {
	return []insurance.PredictionRecord{
		{ID: 1, Name: "Ani", Age: 19, Sex: 0, BMI: 27.9, Children: 0, Smoker: 1, PredictedCharges: 25000},
		{ID: 2, Name: "Budi", Age: 30, Sex: 1, BMI: 25.0, Children: 0, Smoker: 0, PredictedCharges: 4000},
		{ID: 3, Name: "Citra", Age: 46, Sex: 0, BMI: 33.4, Children: 1, Smoker: 0, PredictedCharges: 8000},
		{ID: 4, Name: "Dedi", Age: 62, Sex: 1, BMI: 26.3, Children: 0, Smoker: 1, PredictedCharges: 36000},
		{ID: 5, Name: "Eka", Age: 33, Sex: 1, BMI: 22.7, Children: 0, Smoker: 0, PredictedCharges: 5000},
	}
}

func TestSexMeanMatchesIndependentAggregation(t *testing.T) {
	records := sampleRecords()
	summary := Summarize(records, NewLocale("en"))

	sums := map[int]float64{}
	counts := map[int]int{}
	for _, r := range records {
		sums[r.Sex] += r.PredictedCharges
		counts[r.Sex]++
	}
	if len(summary.Sex.Groups) != len(counts) {
		t.Fatalf("expected %d groups, got %d", len(counts), len(summary.Sex.Groups))
	}
	total := 0
	for code, n := range counts {
		stat, ok := summary.Sex.Find(code)
		if !ok {
			t.Fatalf("missing group %d", code)
		}
		want := sums[code] / float64(n)
		if math.Abs(stat.MeanCharges-want) > 1e-9 {
			t.Fatalf("group %d: expected mean %f, got %f", code, want, stat.MeanCharges)
		}
		if stat.Count != n {
			t.Fatalf("group %d: expected count %d, got %d", code, n, stat.Count)
		}
		total += stat.Count
	}
	if total != len(records) {
		t.Fatalf("counts sum to %d, want %d", total, len(records))
	}
}

func TestSharesSumToHundred(t *testing.T) {
	summary := Summarize(sampleRecords(), NewLocale("en"))
	for name, g := range map[string]GroupSummary{"sex": summary.Sex, "smoker": summary.Smoker} {
		meanShare, countShare := 0.0, 0.0
		for _, s := range g.Groups {
			meanShare += s.MeanShare
			countShare += s.CountShare
		}
		if math.Abs(meanShare-100) > 1e-9 || math.Abs(countShare-100) > 1e-9 {
			t.Fatalf("%s shares: mean %f count %f", name, meanShare, countShare)
		}
	}
}

func TestGroupLabelsAndOrder(t *testing.T) {
	summary := Summarize(sampleRecords(), NewLocale("en"))
	if summary.Sex.Groups[0].Label != "Female" || summary.Sex.Groups[1].Label != "Male" {
		t.Fatalf("unexpected sex labels: %+v", summary.Sex.Groups)
	}
	if summary.Smoker.Groups[0].Label != "Non-smoker" || summary.Smoker.Groups[1].Label != "Smoker" {
		t.Fatalf("unexpected smoker labels: %+v", summary.Smoker.Groups)
	}

	id := Summarize(sampleRecords(), NewLocale("id-ID"))
	if id.Sex.Groups[1].Label != "Laki-laki" || id.Smoker.Groups[0].Label != "Non-Perokok" {
		t.Fatalf("unexpected indonesian labels: %+v %+v", id.Sex.Groups, id.Smoker.Groups)
	}
}

func TestSingleGroupOnlyReportsPresentCategory(t *testing.T) {
	records := []insurance.PredictionRecord{
		{ID: 1, Age: 40, Sex: 1, Smoker: 0, PredictedCharges: 7000},
		{ID: 2, Age: 41, Sex: 1, Smoker: 0, PredictedCharges: 9000},
	}
	summary := Summarize(records, NewLocale("en"))
	if len(summary.Sex.Groups) != 1 {
		t.Fatalf("expected one sex group, got %+v", summary.Sex.Groups)
	}
	stat := summary.Sex.Groups[0]
	if stat.MeanCharges != 8000 || stat.MeanShare != 100 || stat.CountShare != 100 {
		t.Fatalf("unexpected stat: %+v", stat)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil, NewLocale("en"))
	if summary.Total != 0 || len(summary.Sex.Groups) != 0 || len(summary.AgeHistogram.Counts) != 0 {
		t.Fatalf("expected zero summary, got %+v", summary)
	}
}

func TestFormatPremium(t *testing.T) {
	if got := NewLocale("en").FormatPremium(1234567.891); got != "Rp 1,234,567.89" {
		t.Fatalf("unexpected english format: %s", got)
	}
	if got := NewLocale("id").FormatPremium(1234567.891); got != "Rp 1.234.567,89" {
		t.Fatalf("unexpected indonesian format: %s", got)
	}
	if got := NewLocale("not a tag!").FormatPremium(5); got != "Rp 5.00" {
		t.Fatalf("unexpected fallback format: %s", got)
	}
}

func TestNegativeMeanLeavesMeanShareUnset(t *testing.T) {
	records := []insurance.PredictionRecord{
		{ID: 1, Age: 18, Sex: 0, Smoker: 0, PredictedCharges: -2577.92},
		{ID: 2, Age: 60, Sex: 1, Smoker: 1, PredictedCharges: 40000},
	}
	summary := Summarize(records, NewLocale("en"))
	for _, s := range summary.Sex.Groups {
		if s.MeanShare != 0 {
			t.Fatalf("expected no mean share with a negative mean, got %+v", s)
		}
		if s.CountShare != 50 {
			t.Fatalf("count share should still be set, got %+v", s)
		}
	}
	if female, _ := summary.Sex.Find(0); female.MeanCharges != -2577.92 {
		t.Fatalf("mean should be reported as is, got %f", female.MeanCharges)
	}
}

func TestByCountOrdersMostFrequentFirst(t *testing.T) {
	summary := Summarize(sampleRecords(), NewLocale("en"))
	byCount := summary.Sex.ByCount()
	// sample has 3 male, 2 female
	if byCount[0].Code != 1 || byCount[1].Code != 0 {
		t.Fatalf("expected male first, got %+v", byCount)
	}
	if summary.Sex.Groups[0].Code != 0 {
		t.Fatal("ByCount must not reorder the summary")
	}

	tied := Summarize([]insurance.PredictionRecord{
		{ID: 1, Age: 30, Sex: 1, Smoker: 1, PredictedCharges: 1},
		{ID: 2, Age: 31, Sex: 0, Smoker: 0, PredictedCharges: 1},
	}, NewLocale("en"))
	if got := tied.Smoker.ByCount(); got[0].Code != 0 {
		t.Fatalf("ties should keep code order, got %+v", got)
	}
}
