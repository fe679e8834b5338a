package engine

import (
	"math"
	"testing"

	"perfscore/pkg/schema"
)

func usageRow(durations map[string]float64) schema.MonitoringRow {
	return schema.MonitoringRow{PersonName: "x", ActivityDurations: durations, Source: schema.DatasetInternet}
}

func TestSalesBaseScore(t *testing.T) {
	cases := []struct {
		total, want float64
	}{
		{0, 20},
		{1, 30},
		{999_999, 30},
		{1_000_000, 50},
		{2_500_000, 65},
		{3_000_000, 75},
		{4_500_000, 85},
		{5_000_000, 90},
		{12_000_000, 90},
	}
	for _, c := range cases {
		if got := SalesBaseScore(c.total); got != c.want {
			t.Fatalf("SalesBaseScore(%v) = %v, want %v", c.total, got, c.want)
		}
	}
}

func TestSalesScoreDeterministicAndBounded(t *testing.T) {
	for _, total := range []float64{0, 10, 500_000, 1_000_000, 2_500_000, 3_333_333.33, 5_000_000, 9_999_999} {
		first := SalesScore(total)
		if again := SalesScore(total); again != first {
			t.Fatalf("SalesScore(%v) not deterministic: %v then %v", total, first, again)
		}

		base := SalesBaseScore(total)
		lo := math.Max(MinSalesScore, base-salesJitterSpan)
		hi := math.Min(MaxSalesScore, base+salesJitterSpan)
		if first < lo || first > hi {
			t.Fatalf("SalesScore(%v) = %v outside [%v, %v]", total, first, lo, hi)
		}
		if math.Abs(first*100-math.Round(first*100)) > 1e-6 {
			t.Fatalf("SalesScore(%v) = %v is not rounded to 2 decimals", total, first)
		}
	}
}

func TestMailEfficiency(t *testing.T) {
	cases := []struct {
		mail, total, want float64
	}{
		{45, 480, 70},
		{50, 480, 90},
		{60, 480, 90},
		{150, 480, 75},
		{200, 480, 50},
		{300, 480, 30},
		{0, 0, NeutralMailScore},
	}
	for _, c := range cases {
		if got := MailEfficiency(c.mail, c.total); got != c.want {
			t.Fatalf("MailEfficiency(%v, %v) = %v, want %v", c.mail, c.total, got, c.want)
		}
	}
}

func TestMailEfficiencyWithSales(t *testing.T) {
	cases := []struct {
		mail, total, sales, want float64
	}{
		{45, 480, 2_500_000, 80},
		{60, 480, 3_500_000, 100},
		{60, 480, 2_000_000, 90},
		{150, 480, 3_000_001, 90},
		{0, 0, 5_000_000, NeutralMailScore},
	}
	for _, c := range cases {
		if got := MailEfficiencyWithSales(c.mail, c.total, c.sales); got != c.want {
			t.Fatalf("MailEfficiencyWithSales(%v, %v, %v) = %v, want %v", c.mail, c.total, c.sales, got, c.want)
		}
	}
}

func TestChatRiskScore(t *testing.T) {
	cases := []struct {
		minutes, want float64
	}{
		{0, 100},
		{15, 80},
		{30, 80},
		{45, 60},
		{90, 40},
		{121, 20},
	}
	for _, c := range cases {
		if got := ChatRiskScore(c.minutes); got != c.want {
			t.Fatalf("ChatRiskScore(%v) = %v, want %v", c.minutes, got, c.want)
		}
	}
}

func TestInternetProductivity(t *testing.T) {
	rows := []schema.MonitoringRow{
		usageRow(map[string]float64{schema.LabelMail: 60, schema.LabelWorkWeb: 120, schema.LabelGames: 60, schema.LabelTotalTime: 480}),
	}
	if got := InternetProductivity(rows, NeutralInternetScore); !almostEqual(got, 37.5) {
		t.Fatalf("InternetProductivity = %v, want 37.5", got)
	}

	noTotal := []schema.MonitoringRow{
		usageRow(map[string]float64{schema.LabelMail: 30}),
		usageRow(map[string]float64{schema.LabelGames: 30}),
	}
	if got := InternetProductivity(noTotal, NeutralInternetScore); !almostEqual(got, 50) {
		t.Fatalf("InternetProductivity without total = %v, want 50", got)
	}

	over := []schema.MonitoringRow{usageRow(map[string]float64{schema.LabelWorkWeb: 600, schema.LabelTotalTime: 480})}
	if got := InternetProductivity(over, NeutralInternetScore); got != 100 {
		t.Fatalf("InternetProductivity must cap at 100, got %v", got)
	}

	if got := InternetProductivity(nil, NeutralInternetScore); got != NeutralInternetScore {
		t.Fatalf("InternetProductivity without rows = %v, want neutral", got)
	}
}

func TestActivityMinutes(t *testing.T) {
	rows := []schema.MonitoringRow{
		usageRow(map[string]float64{schema.LabelChat: 10}),
		usageRow(map[string]float64{schema.LabelChat: 5.5, schema.LabelMail: 1}),
		{PersonName: "empty"},
	}
	if got := ActivityMinutes(rows, schema.LabelChat); !almostEqual(got, 15.5) {
		t.Fatalf("ActivityMinutes = %v, want 15.5", got)
	}
}
