package engine

import (
	"hash/fnv"
	"math"
	"math/rand"
	"strconv"

	"perfscore/pkg/schema"
)

// Score bounds and neutral defaults. Missing monitoring data means "no
// record found", so it scores neutral rather than zero.
const (
	MinSalesScore = 20.0
	MaxSalesScore = 95.0

	NeutralMailScore     = 50.0
	NeutralInternetScore = 60.0
	NeutralRelativeScore = 50.0
	salesJitterSpan      = 5.0
)

// salesBrackets is checked top-down; the first bracket total reaches wins.
var salesBrackets = []struct {
	min   float64
	score float64
}{
	{5_000_000, 90},
	{4_000_000, 85},
	{3_000_000, 75},
	{2_000_000, 65},
	{1_000_000, 50},
}

// ProductiveInternetLabels and UnproductiveInternetLabels partition the
// internet activities used by InternetProductivity. Uncategorized time
// counts toward the reported total only.
var (
	ProductiveInternetLabels = []string{
		schema.LabelMail, schema.LabelISSykora, schema.LabelSykoraShop,
		schema.LabelWorkWeb, schema.LabelAI,
	}
	UnproductiveInternetLabels = []string{
		schema.LabelChat, schema.LabelGames, schema.LabelNonWorkWeb, schema.LabelJobSearch,
	}
)

// SalesBaseScore returns the bracket score of a yearly sales total.
func SalesBaseScore(total float64) float64 {
	for _, b := range salesBrackets {
		if total >= b.min {
			return b.score
		}
	}
	if total > 0 {
		return 30
	}
	return MinSalesScore
}

// SalesScore is the bracket score plus a jitter in [-5, +5] seeded by the
// total itself, clamped to [20, 95] and rounded to 2 decimals. Equal totals
// always get equal scores.
func SalesScore(total float64) float64 {
	score := SalesBaseScore(total) + salesJitter(total)
	return round2(clamp(score, MinSalesScore, MaxSalesScore))
}

func salesJitter(total float64) float64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strconv.FormatFloat(total, 'f', 2, 64)))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))
	return rng.Float64()*2*salesJitterSpan - salesJitterSpan
}

// MailEfficiency scores the share of tracked time spent in mail:
// 10–25% is optimal (90), below 10% too little communication (70),
// then 75 up to 35%, 50 up to 50%, 30 above. No tracked time is neutral.
func MailEfficiency(mailMinutes, totalMinutes float64) float64 {
	if totalMinutes <= 0 {
		return NeutralMailScore
	}
	ratio := mailMinutes / totalMinutes * 100
	switch {
	case ratio < 10:
		return 70
	case ratio <= 25:
		return 90
	case ratio <= 35:
		return 75
	case ratio <= 50:
		return 50
	default:
		return 30
	}
}

// MailEfficiencyWithSales adds the high-performer bonus to MailEfficiency:
// +15 above 3,000,000 in sales, +10 above 2,000,000, capped at 100.
// The neutral score gets no bonus.
func MailEfficiencyWithSales(mailMinutes, totalMinutes, totalSales float64) float64 {
	score := MailEfficiency(mailMinutes, totalMinutes)
	if totalMinutes <= 0 {
		return score
	}
	switch {
	case totalSales > 3_000_000:
		score += 15
	case totalSales > 2_000_000:
		score += 10
	}
	return math.Min(score, 100)
}

// ChatRiskScore inverts chat/meeting-tool usage into a score: no usage is
// best (100), then 80 up to 30 minutes, 60 up to 60, 40 up to 120, else 20.
func ChatRiskScore(minutes float64) float64 {
	switch {
	case minutes <= 0:
		return 100
	case minutes <= 30:
		return 80
	case minutes <= 60:
		return 60
	case minutes <= 120:
		return 40
	default:
		return 20
	}
}

// InternetProductivity returns 100 × productive / total over all rows of
// one employee. The total is the reported total time, or productive plus
// unproductive time when the report has none. No time at all returns neutral.
func InternetProductivity(rows []schema.MonitoringRow, neutral float64) float64 {
	productive := sumLabels(rows, ProductiveInternetLabels)
	unproductive := sumLabels(rows, UnproductiveInternetLabels)
	total := sumLabels(rows, []string{schema.LabelTotalTime})
	if total <= 0 {
		total = productive + unproductive
	}
	if total <= 0 {
		return neutral
	}
	return math.Min(100, 100*productive/total)
}

// ActivityMinutes sums one label across rows.
func ActivityMinutes(rows []schema.MonitoringRow, label string) float64 {
	return sumLabels(rows, []string{label})
}

func sumLabels(rows []schema.MonitoringRow, labels []string) float64 {
	var sum float64
	for _, r := range rows {
		for _, label := range labels {
			sum += r.Minutes(label)
		}
	}
	return sum
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
