package schema

import "strings"

// Gender is inferred from Czech/Slovak surname morphology.
type Gender string

const (
	GenderUnknown Gender = "unknown"
	GenderFemale  Gender = "female"
	GenderMale    Gender = "male"
)

// Suffix tables are checked in order, feminine first; the first matching
// suffix wins. Unaccented forms cover exports that lost their diacritics,
// except plain "-a", which masculine surnames such as Svoboda share.
var (
	femaleSuffixes = []string{"ová", "ova", "ská", "ska", "cká", "cka", "á"}
	maleSuffixes   = []string{"ský", "sky", "cký", "cky", "ý", "ák", "ak", "ek", "ík", "ik", "ec", "el", "ař", "ar", "er"}
)

// InferGender classifies a name from its first token (the surname).
// Names with no matching suffix, including most foreign ones, are unknown.
func InferGender(name string) Gender {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	if len(fields) == 0 {
		return GenderUnknown
	}
	surname := strings.Trim(fields[0], ".,")

	for _, suffix := range femaleSuffixes {
		if strings.HasSuffix(surname, suffix) {
			return GenderFemale
		}
	}
	for _, suffix := range maleSuffixes {
		if strings.HasSuffix(surname, suffix) {
			return GenderMale
		}
	}
	return GenderUnknown
}

// GenderConflict reports whether a and b have different known genders.
// An unknown gender never conflicts.
func GenderConflict(a, b string) bool {
	ga, gb := InferGender(a), InferGender(b)
	if ga == GenderUnknown || gb == GenderUnknown {
		return false
	}
	return ga != gb
}
