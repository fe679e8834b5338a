package engine

import (
	"strings"
	"unicode/utf8"

	"perfscore/pkg/schema"
)

// AcceptThreshold is the minimum tier score for a monitoring name to enter
// the mapping. The surname-only tier scores below it and only breaks ties.
const AcceptThreshold = 60

// minSurnameOnlyLen is the shortest surname the surname-only tier trusts.
const minSurnameOnlyLen = 6

// NameInfo is a name together with everything the matching tiers look at.
type NameInfo struct {
	Raw        string
	Parts      schema.NameParts
	Simplified string
	Signature  string
	Gender     schema.Gender
}

// Describe precomputes the matching view of a raw name.
func Describe(raw string) NameInfo {
	return NameInfo{
		Raw:        raw,
		Parts:      schema.ParseName(raw),
		Simplified: schema.SimplifyName(raw),
		Signature:  schema.SurnameAndInitial(raw),
		Gender:     schema.InferGender(raw),
	}
}

// genderVeto reports whether a and b are of different known genders.
func genderVeto(a, b NameInfo) bool {
	if a.Gender == schema.GenderUnknown || b.Gender == schema.GenderUnknown {
		return false
	}
	return a.Gender != b.Gender
}

// MatchTier is one rule of the resolution cascade. Fuzzy tiers are subject
// to the gender veto.
type MatchTier struct {
	Name  string
	Score int
	Fuzzy bool
	Match func(target, candidate NameInfo) bool
}

// Tier names, also used as keys of ResolverStats.ByTier.
const (
	TierExact     = "exact"
	TierInitial   = "initial"
	TierSignature = "signature"
	TierPartial   = "partial"
	TierSurname   = "surname"
)

// DefaultTiers is the cascade in priority order; the first match wins.
var DefaultTiers = []MatchTier{
	{Name: TierExact, Score: 100, Match: exactMatch},
	{Name: TierInitial, Score: 95, Match: initialMatch},
	{Name: TierSignature, Score: 80, Fuzzy: true, Match: signatureMatch},
	{Name: TierPartial, Score: 60, Fuzzy: true, Match: partialMatch},
	{Name: TierSurname, Score: 40, Fuzzy: true, Match: surnameOnlyMatch},
}

func exactMatch(t, c NameInfo) bool {
	return t.Parts.Key != "" && t.Parts.Key == c.Parts.Key
}

// initialMatch handles ledger abbreviations: "Novák A." vs "Novák Alena".
func initialMatch(t, c NameInfo) bool {
	if !t.Parts.Abbreviated || len(c.Parts.Tokens) < 2 {
		return false
	}
	return t.Parts.Surname == c.Parts.Surname && t.Parts.Initial == c.Parts.Initial
}

func signatureMatch(t, c NameInfo) bool {
	return t.Signature != "" && t.Signature == c.Signature
}

// partialMatch checks that the surname and initial of the shorter signature
// both occur in the other name.
func partialMatch(t, c NameInfo) bool {
	short, long := t, c
	if utf8.RuneCountInString(c.Signature) < utf8.RuneCountInString(t.Signature) {
		short, long = c, t
	}
	if short.Parts.Surname == "" {
		return false
	}
	if !strings.Contains(long.Parts.Normalized, short.Parts.Surname) {
		return false
	}
	return short.Parts.Initial == "" || strings.Contains(long.Parts.Normalized, short.Parts.Initial)
}

func surnameOnlyMatch(t, c NameInfo) bool {
	surname := t.Parts.Surname
	return utf8.RuneCountInString(surname) >= minSurnameOnlyLen &&
		strings.Contains(c.Parts.Normalized, surname)
}

// ScoreMatch runs the cascade and returns the score and name of the first
// accepting tier, or 0 and "" when none accepts.
func ScoreMatch(tiers []MatchTier, target, candidate NameInfo) (int, string) {
	vetoed := genderVeto(target, candidate)
	for _, tier := range tiers {
		if tier.Fuzzy && vetoed {
			continue
		}
		if tier.Match(target, candidate) {
			return tier.Score, tier.Name
		}
	}
	return 0, ""
}

// ResolverStats summarizes one mapping construction.
type ResolverStats struct {
	SalesNames      int            `json:"salesNames"`
	MonitoringNames int            `json:"monitoringNames"`
	Mapped          int            `json:"mapped"`
	ByTier          map[string]int `json:"byTier"`
	Unmapped        []string       `json:"unmapped"`
}

// Resolver maps every observed name variant to the canonical key of one
// sales employee. It is built once per data load and read-only afterwards.
type Resolver struct {
	mapping      schema.NameMapping
	displayNames map[string]string // canonical key -> ledger name
	salesKeys    []string
	tiers        []MatchTier
	threshold    int
	stats        ResolverStats
}

type assignment struct {
	key   string
	score int
	tier  string
}

// BuildResolver constructs the name mapping. Every sales name maps to its own
// canonical key; for each sales employee the best-scoring monitoring name
// with a score of at least AcceptThreshold maps to that employee too. When
// two employees claim the same monitoring name the higher score keeps it,
// and on a tie the earlier ledger row does.
func BuildResolver(salesNames []string, monitoringNameSets ...[]string) *Resolver {
	return BuildResolverWithTiers(DefaultTiers, AcceptThreshold, salesNames, monitoringNameSets...)
}

// BuildResolverWithTiers is BuildResolver with a custom cascade.
func BuildResolverWithTiers(tiers []MatchTier, threshold int, salesNames []string, monitoringNameSets ...[]string) *Resolver {
	r := &Resolver{
		mapping:      make(schema.NameMapping, len(salesNames)*2),
		displayNames: make(map[string]string, len(salesNames)),
		tiers:        tiers,
		threshold:    threshold,
		stats:        ResolverStats{ByTier: make(map[string]int)},
	}

	assigned := make(map[string]assignment)
	targets := make([]NameInfo, 0, len(salesNames))
	for _, name := range salesNames {
		key := schema.NormalizeName(name)
		if key == "" {
			continue
		}
		if _, dup := r.displayNames[key]; !dup {
			r.displayNames[key] = name
			r.salesKeys = append(r.salesKeys, key)
			targets = append(targets, Describe(name))
		}
		r.mapping[name] = key
		r.mapping[key] = key
		assigned[name] = assignment{key: key, score: 100, tier: TierExact}
	}
	r.stats.SalesNames = len(r.salesKeys)

	candidates := unionNames(monitoringNameSets)
	r.stats.MonitoringNames = len(candidates)
	infos := make([]NameInfo, len(candidates))
	for i, name := range candidates {
		infos[i] = Describe(name)
	}

	for _, target := range targets {
		key := target.Parts.Normalized
		best, bestScore, bestTier := -1, 0, ""
		for i, cand := range infos {
			score, tier := ScoreMatch(tiers, target, cand)
			if score > bestScore {
				best, bestScore, bestTier = i, score, tier
			}
		}
		if best < 0 || bestScore < threshold {
			continue
		}

		name := candidates[best]
		if prev, ok := assigned[name]; ok && prev.score >= bestScore {
			continue
		}
		assigned[name] = assignment{key: key, score: bestScore, tier: bestTier}
		r.mapping[name] = key
	}

	for _, name := range candidates {
		a, ok := assigned[name]
		if !ok {
			r.stats.Unmapped = append(r.stats.Unmapped, name)
			continue
		}
		r.stats.Mapped++
		r.stats.ByTier[a.tier]++
	}

	return r
}

// unionNames merges name sets, dropping blanks and duplicates, keeping
// first-seen order.
func unionNames(sets [][]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, set := range sets {
		for _, name := range set {
			name = strings.TrimSpace(name)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// Resolve returns the canonical key for any observed name. Names the
// mapping does not know resolve to their own normalized form.
func (r *Resolver) Resolve(name string) string {
	if key, ok := r.mapping[name]; ok {
		return key
	}
	key := schema.NormalizeName(name)
	if mapped, ok := r.mapping[key]; ok {
		return mapped
	}
	return key
}

// IsKnown reports whether name resolves to a sales employee.
func (r *Resolver) IsKnown(name string) bool {
	_, ok := r.displayNames[r.Resolve(name)]
	return ok
}

// CanonicalName returns the ledger spelling of the employee name resolves
// to, or name itself when it belongs to no sales employee.
func (r *Resolver) CanonicalName(name string) string {
	if display, ok := r.displayNames[r.Resolve(name)]; ok {
		return display
	}
	return name
}

// FindVariants returns the names of dataset that belong to name, using the
// ratio-based matcher in MatchVariants.
func (r *Resolver) FindVariants(name string, dataset []string) []string {
	return FindVariants(name, dataset)
}

// Mapping returns a copy of the name mapping.
func (r *Resolver) Mapping() schema.NameMapping {
	out := make(schema.NameMapping, len(r.mapping))
	for k, v := range r.mapping {
		out[k] = v
	}
	return out
}

// SalesKeys returns the canonical keys of all sales employees in ledger order.
func (r *Resolver) SalesKeys() []string {
	return append([]string(nil), r.salesKeys...)
}

// Stats returns the construction statistics.
func (r *Resolver) Stats() ResolverStats {
	return r.stats
}
