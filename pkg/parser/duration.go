package parser

import (
	"math"
	"strconv"
	"strings"
)

// ParseDuration converts a report duration into minutes.
//   - "H:MM:SS" -> H*60 + MM + SS/60
//   - "H:MM"    -> H*60 + MM
//   - "42.5"    -> 42.5 (already minutes)
//
// Empty cells, "NaN" and anything unparseable yield 0.
func ParseDuration(text string) float64 {
	s := strings.TrimSpace(text)
	if s == "" || strings.EqualFold(s, "nan") || s == "-" {
		return 0
	}

	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) != 2 && len(parts) != 3 {
			return 0
		}
		var fields [3]float64
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return 0
			}
			fields[i] = v
		}
		return fields[0]*60 + fields[1] + fields[2]/60
	}

	// Czech exports write decimal commas.
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
