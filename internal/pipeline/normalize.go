package pipeline

import (
	"regexp"
	"strings"
)

var languageNames = map[string]string{
	"c":          "C",
	"cpp":        "C++",
	"csharp":     "C#",
	"java":       "Java",
	"python":     "Python",
	"python3":    "Python3",
	"javascript": "JavaScript",
	"typescript": "TypeScript",
	"golang":     "Go",
	"rust":       "Rust",
	"kotlin":     "Kotlin",
	"swift":      "Swift",
	"ruby":       "Ruby",
	"scala":      "Scala",
	"php":        "PHP",
	"dart":       "Dart",
	"racket":     "Racket",
	"erlang":     "Erlang",
	"elixir":     "Elixir",
}

// LanguageName maps a raw language identifier to its display name. Unknown
// identifiers pass through unchanged.
func LanguageName(code string) string {
	if name, ok := languageNames[strings.ToLower(strings.TrimSpace(code))]; ok {
		return name
	}
	return code
}

type languageSignature struct {
	label string
	re    *regexp.Regexp
}

// Ordered: first match wins, so the least ambiguous signatures come first.
var languageSignatures = []languageSignature{
	{"PHP", regexp.MustCompile(`<\?php`)},
	{"C++", regexp.MustCompile(`#include\s*[<"]`)},
	{"C#", regexp.MustCompile(`\busing\s+System\b`)},
	{"Java", regexp.MustCompile(`\bpublic\s+(final\s+)?class\b`)},
	{"Go", regexp.MustCompile(`\bpackage\s+\w+|\bfunc\s+\w+\s*\([^)]*\)\s*[\w\[\]*]*\s*\{`)},
	{"Rust", regexp.MustCompile(`\bfn\s+\w+\s*\(|\blet\s+mut\b`)},
	{"Kotlin", regexp.MustCompile(`\bfun\s+\w+\s*\(`)},
	{"Swift", regexp.MustCompile(`\bfunc\s+\w+\s*\([^)]*\)\s*->`)},
	{"TypeScript", regexp.MustCompile(`:\s*(number|string|boolean)\b|\binterface\s+\w+\s*\{`)},
	{"Python", regexp.MustCompile(`\bdef\s+\w+\s*\(|\bclass\s+\w+\s*:`)},
	{"JavaScript", regexp.MustCompile(`\bfunction\s+\w*\s*\(|=>|\bconst\s+\w+\s*=`)},
	{"Ruby", regexp.MustCompile(`(?m)\bdef\s+\w+\s*$|^\s*end\s*$`)},
}

// DetectLanguage guesses the language from the shape of the code. Used only
// when no language label was discoverable by other means.
func DetectLanguage(code string) string {
	for _, sig := range languageSignatures {
		if sig.re.MatchString(code) {
			return sig.label
		}
	}
	return "Unknown"
}

var ordinalPrefix = regexp.MustCompile(`^\s*\d+\.\s*(.+)$`)

// StripOrdinalPrefix removes a leading "<n>. " ordinal from a display title.
func StripOrdinalPrefix(title string) string {
	if title == "" {
		return title
	}
	if m := ordinalPrefix.FindStringSubmatch(title); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(title)
}
