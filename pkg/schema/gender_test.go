package schema

import "testing"

func TestInferGender(t *testing.T) {
	cases := []struct {
		name string
		want Gender
	}{
		{"Nováková", GenderFemale},
		{"NOVAKOVA Jana", GenderFemale},
		{"Černá Eva", GenderFemale},
		{"Dvorská", GenderFemale},
		{"Novák", GenderMale},
		{"Novak Jan", GenderMale},
		{"Černý", GenderMale},
		{"Kovář Pavel", GenderMale},
		{"Svoboda", GenderUnknown},
		{"Smith", GenderUnknown},
		{"", GenderUnknown},
	}
	for _, c := range cases {
		if got := InferGender(c.name); got != c.want {
			t.Fatalf("InferGender(%q) = %s, want %s", c.name, got, c.want)
		}
	}
}

func TestGenderConflict(t *testing.T) {
	if !GenderConflict("Nováková", "Novák") {
		t.Fatalf("expected Nováková and Novák to conflict")
	}
	if GenderConflict("Svoboda", "Nováková") {
		t.Fatalf("an unknown gender must not conflict")
	}
	if GenderConflict("Novák Petr", "Dvořák Jan") {
		t.Fatalf("two masculine names must not conflict")
	}
}
