package engine

import (
	"testing"

	"perfscore/pkg/schema"
)

func TestSalesWeight(t *testing.T) {
	cases := []struct {
		sales, want float64
	}{
		{0, 1},
		{500_000, 1},
		{1_000_000, 1},
		{3_000_000, 3},
		{2_500_000, 2.5},
	}
	for _, c := range cases {
		if got := SalesWeight(c.sales); !almostEqual(got, c.want) {
			t.Fatalf("SalesWeight(%v) = %v, want %v", c.sales, got, c.want)
		}
	}
}

func TestRawUsage(t *testing.T) {
	internet := []schema.MonitoringRow{
		usageRow(map[string]float64{schema.LabelWorkWeb: 60, schema.LabelNonWorkWeb: 60, schema.LabelMail: 100, schema.LabelTotalTime: 480}),
	}
	if got, ok := RawInternetUsage(internet); !ok || !almostEqual(got, 25) {
		t.Fatalf("RawInternetUsage = (%v, %v), want (25, true)", got, ok)
	}
	if _, ok := RawInternetUsage(nil); ok {
		t.Fatalf("RawInternetUsage without rows must report no data")
	}

	apps := []schema.MonitoringRow{
		usageRow(map[string]float64{schema.LabelHeliosGreen: 120, schema.LabelImos: 120, schema.LabelMail: 60, schema.LabelTotalTime: 480}),
	}
	if got, ok := RawAppUsage(apps); !ok || !almostEqual(got, 50) {
		t.Fatalf("RawAppUsage = (%v, %v), want (50, true)", got, ok)
	}

	noTotal := []schema.MonitoringRow{usageRow(map[string]float64{schema.LabelPrograms: 30})}
	if got, ok := RawAppUsage(noTotal); !ok || !almostEqual(got, 100) {
		t.Fatalf("RawAppUsage without total = (%v, %v), want (100, true)", got, ok)
	}
}

func internetSample(sales, usageMinutes float64) UsageSample {
	return UsageSample{
		TotalSales: sales,
		Internet: []schema.MonitoringRow{
			usageRow(map[string]float64{schema.LabelWorkWeb: usageMinutes, schema.LabelTotalTime: 480}),
		},
	}
}

func TestComputeBenchmarks(t *testing.T) {
	samples := []UsageSample{
		internetSample(1_000_000, 48),  // 10%, weight 1
		internetSample(3_000_000, 144), // 30%, weight 3
	}
	b := ComputeBenchmarks(samples, DefaultUsage())
	if !almostEqual(b.Internet, 25) {
		t.Fatalf("internet benchmark = %v, want 25", b.Internet)
	}
	if !almostEqual(b.App, DefaultAppUsage) {
		t.Fatalf("app benchmark = %v, want default %v", b.App, DefaultAppUsage)
	}
	if b.Employees != 2 {
		t.Fatalf("expected 2 employees, got %d", b.Employees)
	}

	if empty := ComputeBenchmarks(nil, DefaultUsage()); empty != (schema.Benchmark{}) {
		t.Fatalf("expected a zero benchmark, got %+v", empty)
	}
}

func TestComputeBenchmarksWeightMonotonic(t *testing.T) {
	prev := ComputeBenchmarks([]UsageSample{internetSample(1_000_000, 48), internetSample(3_000_000, 144)}, DefaultUsage())
	for _, sales := range []float64{4_000_000, 6_000_000, 10_000_000} {
		b := ComputeBenchmarks([]UsageSample{internetSample(1_000_000, 48), internetSample(sales, 144)}, DefaultUsage())
		if b.Internet <= prev.Internet {
			t.Fatalf("raising the heavier user's sales to %v did not pull the benchmark up: %v <= %v", sales, b.Internet, prev.Internet)
		}
		w := SalesWeight(sales)
		if want := (10 + w*30) / (1 + w); !almostEqual(b.Internet, want) {
			t.Fatalf("benchmark = %v, want %v", b.Internet, want)
		}
		prev = b
	}
}

func TestComputeBenchmarksCustomDefaults(t *testing.T) {
	b := ComputeBenchmarks([]UsageSample{{TotalSales: 0}}, UsageDefaults{Internet: 40, App: 10})
	if !almostEqual(b.Internet, 40) || !almostEqual(b.App, 10) {
		t.Fatalf("unexpected benchmark: %+v", b)
	}
}

func TestRelativeScore(t *testing.T) {
	cases := []struct {
		raw, bench float64
		dir        Direction
		want       float64
	}{
		{25, 25, Inverse, 100},
		{25, 25, Direct, 100},
		{50, 25, Inverse, 50},
		{50, 25, Direct, 100},
		{10, 40, Direct, 25},
		{0, 20, Inverse, 100},
		{30, 0, Inverse, NeutralRelativeScore},
		{30, 0, Direct, NeutralRelativeScore},
	}
	for _, c := range cases {
		if got := RelativeScore(c.raw, c.bench, c.dir); !almostEqual(got, c.want) {
			t.Fatalf("RelativeScore(%v, %v, %v) = %v, want %v", c.raw, c.bench, c.dir, got, c.want)
		}
	}
}
