package engine

import (
	"math"

	"perfscore/pkg/schema"
)

// Default raw usage for employees without monitoring rows.
const (
	DefaultInternetUsage = 20.0
	DefaultAppUsage      = 30.0
)

// InternetUsageLabels is the internet time counted as browsing, unproductive
// activities included.
var InternetUsageLabels = []string{
	schema.LabelWorkWeb, schema.LabelNonWorkWeb, schema.LabelGames,
	schema.LabelJobSearch, schema.LabelChat, schema.LabelUncategorized,
}

// ProductiveAppLabels is the application time counted as productive work.
var ProductiveAppLabels = []string{
	schema.LabelHeliosGreen, schema.LabelImos, schema.LabelPrograms, schema.LabelFloorPlans,
}

// Direction tells RelativeScore which way is better.
type Direction int

const (
	// Inverse: less usage than the benchmark is better.
	Inverse Direction = iota
	// Direct: more usage than the benchmark is better.
	Direct
)

// UsageSample is one employee's input to ComputeBenchmarks.
type UsageSample struct {
	TotalSales   float64
	Internet     []schema.MonitoringRow
	Applications []schema.MonitoringRow
}

// UsageDefaults are the raw usage values of employees with no rows.
type UsageDefaults struct {
	Internet float64
	App      float64
}

// DefaultUsage returns the built-in fallbacks.
func DefaultUsage() UsageDefaults {
	return UsageDefaults{Internet: DefaultInternetUsage, App: DefaultAppUsage}
}

// SalesWeight is max(1, totalSales / 1,000,000).
func SalesWeight(totalSales float64) float64 {
	return math.Max(1, totalSales/1_000_000)
}

// RawInternetUsage is the percentage of tracked internet time spent in
// InternetUsageLabels. The bool is false when rows hold no tracked time.
func RawInternetUsage(rows []schema.MonitoringRow) (float64, bool) {
	return usageShare(rows, InternetUsageLabels)
}

// RawAppUsage is the percentage of tracked application time spent in
// ProductiveAppLabels. The bool is false when rows hold no tracked time.
func RawAppUsage(rows []schema.MonitoringRow) (float64, bool) {
	return usageShare(rows, ProductiveAppLabels)
}

func usageShare(rows []schema.MonitoringRow, labels []string) (float64, bool) {
	part := sumLabels(rows, labels)
	total := sumLabels(rows, []string{schema.LabelTotalTime})
	if total <= 0 {
		total = part
	}
	if total <= 0 {
		return 0, false
	}
	return math.Min(100, 100*part/total), true
}

// ComputeBenchmarks returns the sales-weighted mean raw usage over samples:
// Σ(weight·raw) / Σ(weight), weight = SalesWeight. Samples without rows
// contribute their minimum weight and the default usage. No samples yield
// a zero Benchmark.
func ComputeBenchmarks(samples []UsageSample, defaults UsageDefaults) schema.Benchmark {
	var weightSum, internetSum, appSum float64
	for _, s := range samples {
		w := SalesWeight(s.TotalSales)

		internet, ok := RawInternetUsage(s.Internet)
		if !ok {
			internet = defaults.Internet
		}
		app, ok := RawAppUsage(s.Applications)
		if !ok {
			app = defaults.App
		}

		weightSum += w
		internetSum += w * internet
		appSum += w * app
	}

	if weightSum == 0 {
		return schema.Benchmark{}
	}
	return schema.Benchmark{
		Internet:  internetSum / weightSum,
		App:       appSum / weightSum,
		Employees: len(samples),
	}
}

// RelativeScore compares raw usage to the benchmark on a 0–100 scale:
//   - Inverse: 100 × benchmark / max(raw, 1)
//   - Direct:  100 × raw / benchmark
//
// Usage exactly at the benchmark scores 100. A non-positive benchmark has
// nothing to compare against and scores neutral in both directions. For
// Inverse this intentionally departs from the formula, which would give 0.
func RelativeScore(raw, benchmark float64, dir Direction) float64 {
	if benchmark <= 0 {
		return NeutralRelativeScore
	}
	var score float64
	switch dir {
	case Inverse:
		score = 100 * benchmark / math.Max(raw, 1)
	default:
		score = 100 * raw / benchmark
	}
	return clamp(score, 0, 100)
}
