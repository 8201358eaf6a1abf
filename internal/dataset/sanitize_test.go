package dataset

import "testing"

func TestSanitizeColumnName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean name", "Country", "Country"},
		{"spaces", "My Awesome Column", "My_Awesome_Column"},
		{"parens and spaces", "(Another) Awesome Column", "Another_Awesome_Column"},
		{"mixed separators", "a;b\tc\nd-e=f", "a_b_c_d_e_f"},
		{"comma", "Lat,Long", "Lat_Long"},
		{"curly braces", "{Total}", "Total"},
		{"empty", "", ""},
		{"only forbidden strip chars", "{}()", ""},
		{"only forbidden underscore chars", " ,;", "___"},
		{"adjacent spaces not collapsed", "a  b", "a__b"},
		{"underscores kept", "already_clean", "already_clean"},
		{"unicode passes through", "Temp°C", "Temp°C"},
		{"leading and trailing space", " x ", "_x_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeColumnName(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeColumnName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeColumnNameIdempotent(t *testing.T) {
	inputs := []string{
		"My Awesome Column",
		"(Another) Awesome Column",
		"a;b\tc\nd-e=f",
		"{}()",
		"",
		"no_op",
	}

	for _, input := range inputs {
		once := SanitizeColumnName(input)
		twice := SanitizeColumnName(once)
		if once != twice {
			t.Errorf("SanitizeColumnName not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestSanitizeColumnNameLeavesCleanNamesAlone(t *testing.T) {
	inputs := []string{"Year", "Total_CO2", "col1", "ALL_CAPS", "snake_case_name"}
	for _, input := range inputs {
		if got := SanitizeColumnName(input); got != input {
			t.Errorf("SanitizeColumnName(%q) = %q, want unchanged", input, got)
		}
	}
}
