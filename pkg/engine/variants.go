package engine

import (
	"unicode/utf8"

	"perfscore/pkg/schema"
)

// Variant lookup thresholds. Stricter than the mapping cascade: these run
// on every query against a whole dataset.
const (
	variantRatioThreshold = 0.85
	initialRuleRatio      = 0.95
	surnameRuleRatio      = 0.90
	minSurnameRuleLen     = 3
)

// Variant rule names.
const (
	RuleExact      = "exact"
	RuleInitial    = "initial"
	RuleSurname    = "surname"
	RuleSimilarity = "similarity"
)

// Variant is a dataset name accepted as belonging to a target name.
type Variant struct {
	Name  string  `json:"name"`
	Ratio float64 `json:"ratio"`
	Rule  string  `json:"rule"`
}

// FindVariants returns the names of dataset, in dataset order and without
// duplicates, that MatchVariants accepts for name. An employee with no
// monitoring data gets an empty result.
func FindVariants(name string, dataset []string) []string {
	matches := MatchVariants(name, dataset)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Name)
	}
	return out
}

// MatchVariants applies the query-time rules to every distinct name of dataset:
//  1. exact: equal normalized keys (or simplified forms); no gender check
//  2. initial: target is abbreviated ("Novák A."), same surname, candidate's
//     given name starts with the initial; no gender check
//  3. surname: candidate carries no full given name, same surname of at
//     least 3 letters, no contradicting initial
//  4. similarity: edit-distance ratio of the simplified forms >= 0.85 and the
//     same surname token
//
// Rules 3 and 4 are dropped when the gender heuristic vetoes the pair.
func MatchVariants(name string, dataset []string) []Variant {
	target := Describe(name)
	if target.Parts.Key == "" {
		return nil
	}

	seen := make(map[string]bool, len(dataset))
	var out []Variant
	for _, candName := range dataset {
		if seen[candName] {
			continue
		}
		seen[candName] = true

		cand := Describe(candName)
		if cand.Parts.Key == "" {
			continue
		}
		if v, ok := matchVariant(target, cand); ok {
			out = append(out, v)
		}
	}
	return out
}

func matchVariant(t, c NameInfo) (Variant, bool) {
	if t.Parts.Key == c.Parts.Key || (t.Simplified != "" && t.Simplified == c.Simplified) {
		return Variant{Name: c.Raw, Ratio: 1.0, Rule: RuleExact}, true
	}
	if initialMatch(t, c) {
		return Variant{Name: c.Raw, Ratio: initialRuleRatio, Rule: RuleInitial}, true
	}
	if genderVeto(t, c) {
		return Variant{}, false
	}
	if surnameRule(t, c) {
		return Variant{Name: c.Raw, Ratio: surnameRuleRatio, Rule: RuleSurname}, true
	}

	if foldSurname(t) != foldSurname(c) {
		return Variant{}, false
	}
	ratio := Similarity(t.Simplified, c.Simplified)
	if ratio >= variantRatioThreshold {
		return Variant{Name: c.Raw, Ratio: ratio, Rule: RuleSimilarity}, true
	}
	return Variant{}, false
}

// surnameRule covers the reverse direction of initialMatch: the dataset
// holds the short form ("Novák" or "Novák A.") and the target the full name.
func surnameRule(t, c NameInfo) bool {
	if len(c.Parts.Tokens) >= 2 && !c.Parts.Abbreviated {
		return false
	}
	if utf8.RuneCountInString(c.Parts.Surname) < minSurnameRuleLen || c.Parts.Surname != t.Parts.Surname {
		return false
	}
	return !c.Parts.Abbreviated || t.Parts.Initial == "" || c.Parts.Initial == t.Parts.Initial
}

func foldSurname(n NameInfo) string {
	return schema.SimplifyName(n.Parts.Surname)
}
