package engine

import (
	"fmt"
	"math"

	"perfscore/pkg/schema"
)

// DefaultSalesTolerance is the largest accepted gap between a stored total
// and the sum of the monthly amounts.
const DefaultSalesTolerance = 1.0

// DetectSalesConflict compares a ledger row's stored total with the sum of
// its months. The derived sum always wins; a disagreement beyond tolerance
// is reported, never raised.
func DetectSalesConflict(row schema.SalesRow, sum, tolerance float64) (schema.Diagnostic, bool) {
	if !row.HasTotal {
		return schema.Diagnostic{}, false
	}
	if tolerance < 0 {
		tolerance = DefaultSalesTolerance
	}
	if math.Abs(row.StoredTotal-sum) <= tolerance {
		return schema.Diagnostic{}, false
	}
	return schema.Diagnostic{
		Kind:    schema.DiagSalesTotalMismatch,
		Subject: row.Name,
		Message: fmt.Sprintf("row %d: stored total %.2f differs from monthly sum %.2f", row.SourceRow, row.StoredTotal, sum),
	}, true
}

// BuildEmployees turns ledger rows into EmployeeRecords, skipping city
// markers. Workplaces come from cities; totals are the monthly sums.
// Employees whose names normalize to an already seen key are reported as
// duplicates and kept, since the two cannot be told apart.
func BuildEmployees(rows []schema.SalesRow, cities *CityMapping, tolerance float64) ([]schema.EmployeeRecord, []schema.Diagnostic) {
	var diags []schema.Diagnostic
	employees := make([]schema.EmployeeRecord, 0, len(rows))
	seen := make(map[string]bool, len(rows))

	for _, row := range rows {
		if cities.IsCityMarker(row.Name) {
			continue
		}
		key := schema.NormalizeName(row.Name)
		if key == "" {
			continue
		}

		monthly := make(map[string]float64, len(schema.MonthKeys))
		var sum float64
		for _, month := range schema.MonthKeys {
			v := row.MonthlySales[month]
			monthly[month] = v
			sum += v
		}

		if d, ok := DetectSalesConflict(row, sum, tolerance); ok {
			diags = append(diags, d)
		}
		if seen[key] {
			diags = append(diags, schema.Diagnostic{
				Kind:    schema.DiagDuplicateEmployee,
				Subject: row.Name,
				Message: fmt.Sprintf("row %d: %q normalizes to %q like an earlier row", row.SourceRow, row.Name, key),
			})
		}
		seen[key] = true

		employees = append(employees, schema.EmployeeRecord{
			Name:         row.Name,
			CanonicalKey: key,
			Workplace:    cities.CityOf(row.Name),
			MonthlySales: monthly,
			TotalSales:   sum,
			SalesScore:   SalesScore(sum),
			Terminated:   schema.IsTerminated(row.Name),
		})
	}
	return employees, diags
}
