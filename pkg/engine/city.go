package engine

import (
	"strings"

	"perfscore/pkg/schema"
)

// UnknownCity is the workplace of rows that precede any city marker.
const UnknownCity = "unknown"

// DefaultCityTokens are the section markers of the sales ledger.
var DefaultCityTokens = []string{"praha", "brno", "ostrava", "plzen"}

// CityMapping maps employee name variants to their workplace city.
type CityMapping struct {
	byName map[string]string
	cities []string
	tokens map[string]string
}

// BuildCityMapping walks the ledger names in file order. A name equal to one
// of tokens switches the current city and is not itself an employee; every
// other name is recorded, raw and simplified, under the current city.
func BuildCityMapping(names []string, tokens []string) *CityMapping {
	m := &CityMapping{
		byName: make(map[string]string, len(names)*2),
		tokens: make(map[string]string, len(tokens)),
	}
	for _, tok := range tokens {
		m.tokens[cityKey(tok)] = strings.ToLower(strings.TrimSpace(tok))
	}

	current := UnknownCity
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if city, ok := m.tokens[cityKey(name)]; ok {
			current = city
			m.addCity(city)
			continue
		}
		m.byName[name] = current
		if simplified := schema.SimplifyName(name); simplified != "" {
			m.byName[simplified] = current
		}
	}
	return m
}

func (m *CityMapping) addCity(city string) {
	for _, c := range m.cities {
		if c == city {
			return
		}
	}
	m.cities = append(m.cities, city)
}

// cityKey compares markers without case, diacritics or a trailing colon.
func cityKey(s string) string {
	return strings.TrimRight(schema.NormalizeName(s), ":")
}

// IsCityMarker reports whether name is one of the section markers.
func (m *CityMapping) IsCityMarker(name string) bool {
	_, ok := m.tokens[cityKey(name)]
	return ok
}

// CityOf returns the workplace recorded for name, trying the raw spelling
// and then its simplified form. Unrecorded names are UnknownCity.
func (m *CityMapping) CityOf(name string) string {
	if city, ok := m.byName[strings.TrimSpace(name)]; ok {
		return city
	}
	if city, ok := m.byName[schema.SimplifyName(name)]; ok {
		return city
	}
	return UnknownCity
}

// Cities returns the markers seen, in ledger order.
func (m *CityMapping) Cities() []string {
	return append([]string(nil), m.cities...)
}
