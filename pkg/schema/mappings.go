package schema

import (
	"strings"
)

// Canonical field names produced by header inference.
const (
	FieldName  = "name"
	FieldTotal = "total"
	FieldDate  = "date"
)

// MonthKeys are the twelve canonical month keys of EmployeeRecord.MonthlySales.
var MonthKeys = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// monthAliases maps normalized month headers (Czech and English) to MonthKeys.
// Month headers are matched exactly only: "cerven" is a prefix of "cervenec".
var monthAliases = map[string]string{
	"leden": "january", "january": "january", "jan": "january",
	"unor": "february", "february": "february", "feb": "february",
	"brezen": "march", "march": "march", "mar": "march",
	"duben": "april", "april": "april", "apr": "april",
	"kveten": "may", "may": "may",
	"cerven": "june", "june": "june", "jun": "june",
	"cervenec": "july", "july": "july", "jul": "july",
	"srpen": "august", "august": "august", "aug": "august",
	"zari": "september", "september": "september", "sep": "september", "sept": "september",
	"rijen": "october", "october": "october", "oct": "october",
	"listopad": "november", "november": "november", "nov": "november",
	"prosinec": "december", "december": "december", "dec": "december",
}

// HeaderMappings maps normalized header names to canonical field names.
var HeaderMappings = map[string]string{
	// Person
	"jmeno":          FieldName,
	"celejmeno":      FieldName,
	"jmenoaprijmeni": FieldName,
	"prijmeniajmeno": FieldName,
	"name":           FieldName,
	"fullname":       FieldName,
	"osoba":          FieldName,
	"person":         FieldName,
	"uzivatel":       FieldName,
	"user":           FieldName,
	"zamestnanec":    FieldName,
	"employee":       FieldName,
	"prodejce":       FieldName,
	"obchodnik":      FieldName,
	"pracovnik":      FieldName,

	// Stored yearly total
	"celkem":    FieldTotal,
	"celkemrok": FieldTotal,
	"soucet":    FieldTotal,
	"total":     FieldTotal,
	"sum":       FieldTotal,
	"yeartotal": FieldTotal,

	// Reporting period
	"datum":  FieldDate,
	"date":   FieldDate,
	"obdobi": FieldDate,
	"period": FieldDate,
	"den":    FieldDate,
	"day":    FieldDate,
}

// substringMappings maps substrings to canonical field names for fuzzy inference.
// Order matters: more specific substrings should come before generic ones.
var substringMappings = []struct {
	Substring string
	Target    string
}{
	{"jmeno", FieldName},
	{"name", FieldName},
	{"osoba", FieldName},
	{"uzivatel", FieldName},
	{"zamestnan", FieldName},
	{"employee", FieldName},
	{"datum", FieldDate},
	{"date", FieldDate},
	{"obdobi", FieldDate},
	{"celkem", FieldTotal},
	{"total", FieldTotal},
}

// Activity labels as they appear in the monitoring reports.
const (
	LabelMail          = "Mail"
	LabelChat          = "Chat"
	LabelISSykora      = "IS Sykora"
	LabelSykoraShop    = "SykoraShop"
	LabelWorkWeb       = "Web k praci"
	LabelGames         = "Hry"
	LabelNonWorkWeb    = "Nepracovni weby"
	LabelTotalTime     = "Čas celkem"
	LabelUncategorized = "Nezařazené"
	LabelAI            = "Umela inteligence"
	LabelJobSearch     = "hladanie prace"
	LabelHeliosGreen   = "Helios Green"
	LabelImos          = "Imos - program"
	LabelPrograms      = "Programy"
	LabelFloorPlans    = "Půdorysy"
	LabelInternet      = "Internet"
)

// InternetLabels is the activity vocabulary of the internet dataset.
var InternetLabels = []string{
	LabelMail, LabelChat, LabelISSykora, LabelSykoraShop, LabelWorkWeb, LabelGames,
	LabelNonWorkWeb, LabelTotalTime, LabelUncategorized, LabelAI, LabelJobSearch,
}

// ApplicationLabels is the activity vocabulary of the applications dataset.
var ApplicationLabels = []string{
	LabelHeliosGreen, LabelImos, LabelPrograms, LabelFloorPlans,
	LabelMail, LabelChat, LabelInternet, LabelTotalTime,
}

// Labels returns the activity vocabulary of a dataset.
func Labels(ds Dataset) []string {
	switch ds {
	case DatasetInternet:
		return InternetLabels
	case DatasetApplications:
		return ApplicationLabels
	}
	return nil
}

// InferMappings takes a list of headers and returns a map of header -> target.
// Targets are FieldName, FieldTotal, FieldDate, a month key, or an activity
// label of ds (pass an empty Dataset for the sales ledger).
//   1. Normalize header (lowercase, strip diacritics and separators)
//   2. Month aliases and activity labels (exact only)
//   3. Exact match against HeaderMappings
//   4. Substring match
//   5. No match -> leave unmapped
func InferMappings(headers []string, ds Dataset) map[string]string {
	result := make(map[string]string, len(headers))
	usedTargets := make(map[string]bool)

	activities := make(map[string]string)
	for _, label := range Labels(ds) {
		activities[normalizeHeader(label)] = label
	}

	for _, header := range headers {
		normalized := normalizeHeader(header)
		if normalized == "" {
			continue
		}

		if label, ok := activities[normalized]; ok {
			if !usedTargets[label] {
				result[header] = label
				usedTargets[label] = true
			}
			continue
		}

		if ds == "" {
			if month, ok := monthAliases[normalized]; ok {
				if !usedTargets[month] {
					result[header] = month
					usedTargets[month] = true
				}
				continue
			}
		}

		if target, ok := HeaderMappings[normalized]; ok {
			if !usedTargets[target] {
				result[header] = target
				usedTargets[target] = true
				continue
			}
		}

		for _, sm := range substringMappings {
			if strings.Contains(normalized, sm.Substring) && !usedTargets[sm.Target] {
				result[header] = sm.Target
				usedTargets[sm.Target] = true
				break
			}
		}
	}

	return result
}

// normalizeHeader lowercases a header, strips diacritics, whitespace,
// underscores, hyphens and periods.
func normalizeHeader(header string) string {
	s := stripDiacritics(strings.ToLower(strings.TrimSpace(header)))
	return strings.NewReplacer(" ", "", "_", "", "-", "", ".", "").Replace(s)
}
