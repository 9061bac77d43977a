package config

import "testing"

func TestParseStatusSet(t *testing.T) {
	cases := []struct {
		name string
		csv  string
		want []string
	}{
		{"single", "CANCELLED", []string{"CANCELLED"}},
		{"multiple", "CANCELLED,CHECKED_OUT", []string{"CANCELLED", "CHECKED_OUT"}},
		{"lowercase and spaces", " cancelled , checked_out ", []string{"CANCELLED", "CHECKED_OUT"}},
		{"empty entries dropped", "CANCELLED,,,", []string{"CANCELLED"}},
		{"empty string", "", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseStatusSet(tc.csv)
			if len(got) != len(tc.want) {
				t.Fatalf("ParseStatusSet(%q) has %d entries, want %d", tc.csv, len(got), len(tc.want))
			}
			for _, name := range tc.want {
				if !got[name] {
					t.Errorf("ParseStatusSet(%q) missing %q", tc.csv, name)
				}
			}
		})
	}
}
