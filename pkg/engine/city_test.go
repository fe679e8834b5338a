package engine

import "testing"

func TestBuildCityMapping(t *testing.T) {
	names := []string{"Novák A.", "Praha", "Svoboda P.", "Dvořák", "BRNO", "Černá Eva", "", "Plzeň:", "Horák J."}
	m := BuildCityMapping(names, DefaultCityTokens)

	cases := []struct {
		name, want string
	}{
		{"Novák A.", UnknownCity},
		{"Svoboda P.", "praha"},
		{"Dvořák", "praha"},
		{"Černá Eva", "brno"},
		{"Cerna Eva", "brno"},
		{" Černá Eva ", "brno"},
		{"Horák J.", "plzen"},
		{"Kdokoli", UnknownCity},
	}
	for _, c := range cases {
		if got := m.CityOf(c.name); got != c.want {
			t.Fatalf("CityOf(%q) = %q, want %q", c.name, got, c.want)
		}
	}

	cities := m.Cities()
	if len(cities) != 3 || cities[0] != "praha" || cities[1] != "brno" || cities[2] != "plzen" {
		t.Fatalf("unexpected cities: %v", cities)
	}
	if !m.IsCityMarker("praha") || !m.IsCityMarker("Plzeň") || m.IsCityMarker("Svoboda P.") {
		t.Fatalf("unexpected marker classification")
	}
}

func TestBuildCityMappingCustomTokens(t *testing.T) {
	m := BuildCityMapping([]string{"Olomouc", "Novák A.", "Praha"}, []string{"Olomouc"})
	if got := m.CityOf("Novák A."); got != "olomouc" {
		t.Fatalf("CityOf = %q, want olomouc", got)
	}
	if got := m.CityOf("Praha"); got != "olomouc" {
		t.Fatalf("Praha is not a marker here and belongs to the current city, got %q", got)
	}
}
