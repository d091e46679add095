package pipeline

import "testing"

func TestLanguageName(t *testing.T) {
	if got := LanguageName("cpp"); got != "C++" {
		t.Fatalf("got %q", got)
	}
	if got := LanguageName("golang"); got != "Go" {
		t.Fatalf("got %q", got)
	}
	if got := LanguageName("Python3"); got != "Python3" {
		t.Fatalf("got %q", got)
	}
	// unknown codes pass through unchanged
	if got := LanguageName("brainfolk"); got != "brainfolk" {
		t.Fatalf("got %q", got)
	}
}

func TestStripOrdinalPrefix(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"14. Longest Common Prefix", "Longest Common Prefix"},
		{"  2. Add Two Numbers  ", "Add Two Numbers"},
		{"Two Sum", "Two Sum"},
		{"  Two Sum  ", "Two Sum"},
		{"", ""},
		{"Climbing Stairs 70", "Climbing Stairs 70"},
	}
	for _, tc := range cases {
		if got := StripOrdinalPrefix(tc.input); got != tc.want {
			t.Fatalf("StripOrdinalPrefix(%q)=%q want %q", tc.input, got, tc.want)
		}
	}
}

func TestDetectLanguage(t *testing.T) {
	cases := []struct {
		name string
		code string
		want string
	}{
		{"cpp include", "#include <vector>\nint main() {}", "C++"},
		{"java class", "public class Solution {\n}", "Java"},
		{"python def", "def solve(nums):\n    pass", "Python"},
		{"go package", "package main\n\nfunc main() {}", "Go"},
		{"rust fn", "fn main() { let mut x = 0; }", "Rust"},
		{"php tag", "<?php echo 1;", "PHP"},
		{"no match", "SELECT 1", "Unknown"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectLanguage(tc.code); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}
