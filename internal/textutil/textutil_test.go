package textutil

import "testing"

func TestSanitizeToken(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"golang_q001", "golang_q001"},
		{"Rust Q12", "rust_q12"},
		{"../../etc/passwd", "etc_passwd"},
		{"system-design", "system-design"},
		{"  ", "unknown"},
		{"___", "unknown"},
	}
	for _, tc := range cases {
		if got := SanitizeToken(tc.in); got != tc.want {
			t.Errorf("SanitizeToken(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"system_design", "System Design"},
		{"docker_k8s", "Docker K8s"},
		{"sql", "SQL"},
		{"javascript", "JavaScript"},
		{"golang", "Golang"},
		{"linux", "Linux"},
		{"", "Unknown"},
		{"__", "Unknown"},
	}
	for _, tc := range cases {
		if got := DisplayName(tc.in); got != tc.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTernary(t *testing.T) {
	if got := Ternary(true, "a", "b"); got != "a" {
		t.Errorf("Ternary(true) = %q", got)
	}
	if got := Ternary(false, 1, 2); got != 2 {
		t.Errorf("Ternary(false) = %d", got)
	}
}
