package report

import (
	"io"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"perfscore/pkg/engine"
	"perfscore/pkg/schema"
)

// Input holds the already-parsed rows of one data load. A nil monitoring
// slice means the dataset was not supplied at all.
type Input struct {
	Sales        []schema.SalesRow
	Internet     []schema.MonitoringRow
	Applications []schema.MonitoringRow
	// Diagnostics carried over from the loaders (parse warnings).
	Diagnostics []schema.Diagnostic
}

// Options are the settings of one analysis session.
type Options struct {
	CityTokens        []string
	IncludeTerminated bool
	Tolerance         float64
	Weights           engine.Weights
	Usage             engine.UsageDefaults
	Logger            *slog.Logger
}

// DefaultOptions returns the built-in session settings.
func DefaultOptions() Options {
	return Options{
		CityTokens: engine.DefaultCityTokens,
		Tolerance:  engine.DefaultSalesTolerance,
		Weights:    engine.DefaultWeights(),
		Usage:      engine.DefaultUsage(),
	}
}

// EmployeeResult is one employee's resolved data and scores.
type EmployeeResult struct {
	Employee            schema.EmployeeRecord `json:"employee"`
	Scores              engine.ScoreBundle    `json:"scores"`
	InternetVariants    []string              `json:"internetVariants"`
	ApplicationVariants []string              `json:"applicationVariants"`
	HasInternetData     bool                  `json:"hasInternetData"`
	HasAppData          bool                  `json:"hasAppData"`
	RawInternetUsage    float64               `json:"rawInternetUsage"`
	RawAppUsage         float64               `json:"rawAppUsage"`
	MailMinutes         float64               `json:"mailMinutes"`
	ChatMinutes         float64               `json:"chatMinutes"`
	TrackedMinutes      float64               `json:"trackedMinutes"`
}

// CitySummary aggregates the employees of one workplace.
type CitySummary struct {
	City           string  `json:"city"`
	Employees      int     `json:"employees"`
	TotalSales     float64 `json:"totalSales"`
	AverageOverall float64 `json:"averageOverall"`
}

// Summary contains session-wide aggregates.
type Summary struct {
	Employees        int           `json:"employees"`
	WithInternetData int           `json:"withInternetData"`
	WithAppData      int           `json:"withAppData"`
	TotalSales       float64       `json:"totalSales"`
	AverageOverall   float64       `json:"averageOverall"`
	Cities           []CitySummary `json:"cities"`
}

// Analysis is the immutable result of one session. A reload or a settings
// change runs Analyze again and replaces it wholesale.
type Analysis struct {
	SessionID   uuid.UUID            `json:"sessionId"`
	CreatedAt   time.Time            `json:"createdAt"`
	Employees   []EmployeeResult     `json:"employees"`
	Benchmark   schema.Benchmark     `json:"benchmark"`
	Resolution  engine.ResolverStats `json:"resolution"`
	Summary     Summary              `json:"summary"`
	Diagnostics []schema.Diagnostic  `json:"diagnostics"`

	resolver      *engine.Resolver
	cities        *engine.CityMapping
	internetNames []string
	appNames      []string
}

// Analyze runs the whole pipeline once: city mapping, employee records,
// identity resolution, benchmarks, then per-employee scores. It never fails;
// problems end up in Diagnostics.
func Analyze(in Input, opts Options) *Analysis {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.CityTokens == nil {
		opts.CityTokens = engine.DefaultCityTokens
	}

	a := &Analysis{
		SessionID:   uuid.New(),
		CreatedAt:   time.Now(),
		Diagnostics: append([]schema.Diagnostic(nil), in.Diagnostics...),
	}
	logger = logger.With("session_id", a.SessionID.String())

	ledgerNames := make([]string, len(in.Sales))
	for i, row := range in.Sales {
		ledgerNames[i] = row.Name
	}
	a.cities = engine.BuildCityMapping(ledgerNames, opts.CityTokens)

	employees, diags := engine.BuildEmployees(in.Sales, a.cities, opts.Tolerance)
	a.Diagnostics = append(a.Diagnostics, diags...)
	if !opts.IncludeTerminated {
		employees = withoutTerminated(employees)
	}
	if len(employees) == 0 {
		a.Diagnostics = append(a.Diagnostics, schema.Diagnostic{
			Kind:    schema.DiagNoEmployees,
			Message: "sales ledger holds no employees",
		})
	}
	if in.Internet == nil {
		a.Diagnostics = append(a.Diagnostics, missingDataset(schema.DatasetInternet))
	}
	if in.Applications == nil {
		a.Diagnostics = append(a.Diagnostics, missingDataset(schema.DatasetApplications))
	}

	names := make([]string, len(employees))
	for i, e := range employees {
		names[i] = e.Name
	}
	a.internetNames = nameSet(in.Internet)
	a.appNames = nameSet(in.Applications)
	a.resolver = engine.BuildResolver(names, a.internetNames, a.appNames)
	a.Resolution = a.resolver.Stats()
	logger.Debug("identity resolution done",
		"sales_names", a.Resolution.SalesNames,
		"monitoring_names", a.Resolution.MonitoringNames,
		"mapped", a.Resolution.Mapped,
		"unmapped", len(a.Resolution.Unmapped),
	)

	// Phase one: gather rows and compute the session benchmark.
	internetRows := make([][]schema.MonitoringRow, len(employees))
	appRows := make([][]schema.MonitoringRow, len(employees))
	samples := make([]engine.UsageSample, len(employees))
	a.Employees = make([]EmployeeResult, len(employees))
	for i, e := range employees {
		res := &a.Employees[i]
		res.Employee = e
		res.InternetVariants, internetRows[i] = a.rowsFor(e, in.Internet, a.internetNames)
		res.ApplicationVariants, appRows[i] = a.rowsFor(e, in.Applications, a.appNames)
		samples[i] = engine.UsageSample{
			TotalSales:   e.TotalSales,
			Internet:     internetRows[i],
			Applications: appRows[i],
		}
	}
	a.Benchmark = engine.ComputeBenchmarks(samples, opts.Usage)

	// Phase two: score every employee against that benchmark.
	for i := range a.Employees {
		scoreEmployee(&a.Employees[i], internetRows[i], appRows[i], a.Benchmark, opts)
	}
	a.Summary = summarize(a.Employees)

	for _, d := range a.Diagnostics {
		logger.Warn("diagnostic", "kind", string(d.Kind), "subject", d.Subject, "message", d.Message)
	}
	logger.Info("analysis complete",
		"employees", len(a.Employees),
		"internet_benchmark", a.Benchmark.Internet,
		"app_benchmark", a.Benchmark.App,
		"diagnostics", len(a.Diagnostics),
	)
	return a
}

// rowsFor collects an employee's rows of one dataset. A row belongs to the
// employee when the name mapping resolves it to the employee's key, or when
// the query-time matcher accepts a name the mapping gave to nobody else.
func (a *Analysis) rowsFor(e schema.EmployeeRecord, rows []schema.MonitoringRow, names []string) ([]string, []schema.MonitoringRow) {
	if len(rows) == 0 {
		return []string{}, nil
	}

	found := a.resolver.FindVariants(e.Name, names)
	variants := make([]string, 0, len(found))
	accepted := make(map[string]bool, len(found))
	for _, v := range found {
		// A name the mapping gave to another employee stays with that employee.
		if a.resolver.IsKnown(v) && a.resolver.Resolve(v) != e.CanonicalKey {
			continue
		}
		accepted[v] = true
		variants = append(variants, v)
	}
	for _, n := range names {
		if !accepted[n] && a.resolver.Resolve(n) == e.CanonicalKey {
			accepted[n] = true
			variants = append(variants, n)
		}
	}

	var out []schema.MonitoringRow
	for _, r := range rows {
		if accepted[r.PersonName] {
			out = append(out, r)
		}
	}
	return variants, out
}

func scoreEmployee(res *EmployeeResult, internet, apps []schema.MonitoringRow, bench schema.Benchmark, opts Options) {
	e := res.Employee
	res.MailMinutes = engine.ActivityMinutes(internet, schema.LabelMail)
	res.ChatMinutes = engine.ActivityMinutes(internet, schema.LabelChat)
	res.TrackedMinutes = engine.ActivityMinutes(internet, schema.LabelTotalTime)

	b := engine.ScoreBundle{
		Sales:                e.SalesScore,
		Mail:                 engine.MailEfficiencyWithSales(res.MailMinutes, res.TrackedMinutes, e.TotalSales),
		ChatRisk:             engine.ChatRiskScore(res.ChatMinutes),
		InternetProductivity: engine.InternetProductivity(internet, engine.NeutralInternetScore),
		RelativeInternet:     engine.NeutralRelativeScore,
		RelativeApp:          engine.NeutralRelativeScore,
	}

	if raw, ok := engine.RawInternetUsage(internet); ok {
		res.HasInternetData = true
		res.RawInternetUsage = raw
		b.RelativeInternet = engine.RelativeScore(raw, bench.Internet, engine.Inverse)
	}
	if raw, ok := engine.RawAppUsage(apps); ok {
		res.HasAppData = true
		res.RawAppUsage = raw
		b.RelativeApp = engine.RelativeScore(raw, bench.App, engine.Direct)
	}

	b.Overall = opts.Weights.Combine(b)
	res.Scores = b
}

func summarize(results []EmployeeResult) Summary {
	s := Summary{Employees: len(results)}
	byCity := make(map[string]*CitySummary)
	var order []string

	for _, r := range results {
		if r.HasInternetData {
			s.WithInternetData++
		}
		if r.HasAppData {
			s.WithAppData++
		}
		s.TotalSales += r.Employee.TotalSales
		s.AverageOverall += r.Scores.Overall

		city := r.Employee.Workplace
		cs, ok := byCity[city]
		if !ok {
			cs = &CitySummary{City: city}
			byCity[city] = cs
			order = append(order, city)
		}
		cs.Employees++
		cs.TotalSales += r.Employee.TotalSales
		cs.AverageOverall += r.Scores.Overall
	}

	if s.Employees > 0 {
		s.AverageOverall = round2(s.AverageOverall / float64(s.Employees))
	}
	for _, city := range order {
		cs := byCity[city]
		cs.AverageOverall = round2(cs.AverageOverall / float64(cs.Employees))
		s.Cities = append(s.Cities, *cs)
	}
	return s
}

// Ranked returns the employees ordered by overall score, best first.
// Equal scores keep ledger order.
func (a *Analysis) Ranked() []EmployeeResult {
	out := append([]EmployeeResult(nil), a.Employees...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Scores.Overall > out[j].Scores.Overall
	})
	return out
}

// Employee looks up the result of the employee name resolves to.
func (a *Analysis) Employee(name string) (EmployeeResult, bool) {
	key := a.resolver.Resolve(name)
	for _, r := range a.Employees {
		if r.Employee.CanonicalKey == key {
			return r, true
		}
	}
	return EmployeeResult{}, false
}

// FindVariants returns the names of a monitoring dataset that belong to name.
func (a *Analysis) FindVariants(name string, ds schema.Dataset) []string {
	switch ds {
	case schema.DatasetInternet:
		return a.resolver.FindVariants(name, a.internetNames)
	case schema.DatasetApplications:
		return a.resolver.FindVariants(name, a.appNames)
	}
	return []string{}
}

// CanonicalName returns the ledger spelling of the employee name belongs to.
func (a *Analysis) CanonicalName(name string) string {
	return a.resolver.CanonicalName(name)
}

// CityOf returns the workplace of name, resolving monitoring spellings to
// the ledger name first.
func (a *Analysis) CityOf(name string) string {
	if city := a.cities.CityOf(name); city != engine.UnknownCity {
		return city
	}
	return a.cities.CityOf(a.resolver.CanonicalName(name))
}

// Resolver exposes the session's identity resolver.
func (a *Analysis) Resolver() *engine.Resolver {
	return a.resolver
}

func withoutTerminated(employees []schema.EmployeeRecord) []schema.EmployeeRecord {
	out := employees[:0:0]
	for _, e := range employees {
		if !e.Terminated {
			out = append(out, e)
		}
	}
	return out
}

func missingDataset(ds schema.Dataset) schema.Diagnostic {
	return schema.Diagnostic{
		Kind:    schema.DiagDatasetMissing,
		Subject: string(ds),
		Message: "no " + string(ds) + " dataset loaded; its scores fall back to neutral defaults",
	}
}

func nameSet(rows []schema.MonitoringRow) []string {
	seen := make(map[string]bool, len(rows))
	names := []string{}
	for _, r := range rows {
		if !seen[r.PersonName] {
			seen[r.PersonName] = true
			names = append(names, r.PersonName)
		}
	}
	return names
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
