package htmlsanitize

import "testing"

func TestPlainText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"Dana Fields", "Dana Fields"},
		{"<b>Dana</b> Fields", "Dana Fields"},
		{"<script>alert('xss')</script>Dana", "Dana"},
		{"  Dana  ", "Dana"},
		{`<a href="javascript:alert(1)">Dana</a>`, "Dana"},
	}
	for _, tt := range tests {
		if got := PlainText(tt.input); got != tt.want {
			t.Errorf("PlainText(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
