package normalize

import "testing"

func TestLoginID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"dana", "dana"},
		{"DANA", "dana"},
		{"  Dana.Fields@Example.Com  ", "dana.fields@example.com"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := LoginID(tt.input); got != tt.want {
			t.Errorf("LoginID(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTeamType(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"portfolio_ii", "portfolio_ii"},
		{"Portfolio II", "portfolio_ii"},
		{"FIELD-SALES", "field_sales"},
		{"  online ", "online"},
		{"portfolio  iii", "portfolio_iii"},
	}
	for _, tt := range tests {
		if got := TeamType(tt.input); got != tt.want {
			t.Errorf("TeamType(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Dana Fields", "Dana Fields"},
		{"  Dana   Fields  ", "Dana Fields"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Name(tt.input); got != tt.want {
			t.Errorf("Name(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRole(t *testing.T) {
	if got := Role(" Admin "); got != "admin" {
		t.Errorf("Role: got %q", got)
	}
}
