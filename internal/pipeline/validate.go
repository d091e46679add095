package pipeline

import (
	"regexp"
	"strings"
	"unicode"
)

// Shape signatures shared by common language families. Kept as package-level
// tables so the detection rules can evolve without touching control flow.
var codeShapePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\{[\s\S]+\}`),
	regexp.MustCompile(`\[[\s\S]*\]`),
	regexp.MustCompile(`\b(if|else|elif|for|while|switch|case|return)\b`),
	regexp.MustCompile(`\b(func|function|def|fn|class|struct|public|private|static|var|let|const)\b`),
	regexp.MustCompile(`=>`),
	regexp.MustCompile(`#include\b|\bimport\b|\busing\b|\brequire\b|\bpackage\b`),
}

const (
	minCodeLength      = 10
	minCodeAlphaRatio  = 0.2
	maxLabelLength     = 30
	minLabelAlphaRatio = 0.5
)

// PlausibleCode reports whether text looks like source code in any mainstream
// language. Rejects binary garbage and ASCII art while accepting terse code:
// at least one shape signature must match and at least a fifth of the runes
// must be letters.
func PlausibleCode(text string) bool {
	if len(strings.TrimSpace(text)) < minCodeLength {
		return false
	}

	shaped := false
	for _, re := range codeShapePatterns {
		if re.MatchString(text) {
			shaped = true
			break
		}
	}
	if !shaped {
		return false
	}

	return alphaRatio(text) >= minCodeAlphaRatio
}

// PlausibleLanguageLabel reports whether text could be a language display name.
// Labels are short single-line words, not sentences or code fragments.
func PlausibleLanguageLabel(text string) bool {
	if text == "" || len([]rune(text)) > maxLabelLength {
		return false
	}
	if strings.ContainsAny(text, "\n\r\t") {
		return false
	}
	return alphaRatio(text) > minLabelAlphaRatio
}

func alphaRatio(s string) float64 {
	runes := []rune(s)
	if len(runes) == 0 {
		return 0
	}
	letters := 0
	for _, r := range runes {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return float64(letters) / float64(len(runes))
}
