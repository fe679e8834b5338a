package schema

import "time"

// Dataset identifies one of the monitoring sources.
type Dataset string

const (
	DatasetInternet     Dataset = "internet"
	DatasetApplications Dataset = "applications"
)

// SalesRow is one row of the sales ledger, in file order. City marker rows
// are SalesRows too; the CityMapper tells them apart.
type SalesRow struct {
	Name         string             `json:"name"`
	MonthlySales map[string]float64 `json:"monthlySales"`
	StoredTotal  float64            `json:"storedTotal"`
	HasTotal     bool               `json:"hasTotal"`
	SourceRow    int                `json:"sourceRow"`
}

// EmployeeRecord represents one employee as listed in the sales ledger.
// Records are created once per sales load and never mutated afterwards.
type EmployeeRecord struct {
	Name         string             `json:"name"`
	CanonicalKey string             `json:"canonicalKey"`
	Workplace    string             `json:"workplace"`
	MonthlySales map[string]float64 `json:"monthlySales"`
	TotalSales   float64            `json:"totalSales"`
	SalesScore   float64            `json:"score"`
	Terminated   bool               `json:"terminated"`
}

// MonitoringRow is one row of a monitoring dataset: one person, one period.
type MonitoringRow struct {
	PersonName        string             `json:"personName"`
	ActivityDurations map[string]float64 `json:"activityDurations"` // minutes
	Source            Dataset            `json:"source"`
	SourceFile        string             `json:"sourceFile"`
	SourceRow         int                `json:"sourceRow"`
	Date              *time.Time         `json:"date,omitempty"`
}

// Minutes returns the parsed duration for label, or 0 when the row has none.
func (r MonitoringRow) Minutes(label string) float64 {
	if r.ActivityDurations == nil {
		return 0
	}
	return r.ActivityDurations[label]
}

// NameMapping maps every observed name variant to one canonical key.
type NameMapping map[string]string

// Benchmark holds the sales-weighted usage baselines of one analysis session.
type Benchmark struct {
	Internet  float64 `json:"internetBenchmark"`
	App       float64 `json:"appBenchmark"`
	Employees int     `json:"employees"`
}

// DiagnosticKind classifies a non-fatal inconsistency found during a session.
type DiagnosticKind string

const (
	DiagSalesTotalMismatch DiagnosticKind = "sales_total_mismatch"
	DiagDuplicateEmployee  DiagnosticKind = "duplicate_employee"
	DiagDatasetMissing     DiagnosticKind = "dataset_missing"
	DiagNoEmployees        DiagnosticKind = "no_employees"
	DiagParseWarning       DiagnosticKind = "parse_warning"
)

// Diagnostic is returned alongside results instead of being raised.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Subject string         `json:"subject,omitempty"`
	Message string         `json:"message"`
}
