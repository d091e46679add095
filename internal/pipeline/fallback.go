package pipeline

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"leetfolio/internal"
)

// PageLoader produces the rendered submission page. It is a closure so the
// settle delay runs before the DOM is actually read.
type PageLoader func() (*goquery.Document, error)

// Ordered locator lists per field, most specific first. Package-level so the
// scraping rules can be tuned as the upstream markup drifts.
var (
	titleSelectors = []string{
		`[data-cy="question-title"]`,
		`div.text-title-large a`,
		`h4 a[href*="/problems/"]`,
		`a[href^="/problems/"]`,
	}
	codeSelectors = []string{
		`div.view-lines`,
		`pre code`,
		`div.ace_content`,
		`code`,
		`pre`,
	}
	languageSelectors = []string{
		`[data-cy="lang-select"]`,
		`button[id^="headlessui-listbox-button"] span`,
		`div.language-select span`,
		`span[class*="language"]`,
	}
)

// FallbackExtractor scans the rendered page when the structured query failed
// or returned corrupted output. No remote calls beyond loading the page.
type FallbackExtractor struct {
	settle time.Duration
	load   PageLoader
}

type PageExtract struct {
	Title    string
	Code     string
	Language string
}

func NewFallbackExtractor(settle time.Duration, load PageLoader) *FallbackExtractor {
	return &FallbackExtractor{settle: settle, load: load}
}

func (f *FallbackExtractor) Extract() (*PageExtract, error) {
	// One-shot suspension so asynchronous rendering can settle.
	if f.settle > 0 {
		time.Sleep(f.settle)
	}

	doc, err := f.load()
	if err != nil {
		return nil, internal.Failf(internal.KindPageStructure, "load page: %v", err)
	}

	title := firstText(doc, titleSelectors, nil)
	if title == "" {
		return nil, internal.Failf(internal.KindPageStructure, "page structure missing title")
	}

	code := firstText(doc, codeSelectors, PlausibleCode)
	if code == "" {
		return nil, internal.Failf(internal.KindPageStructure, "page structure missing code")
	}

	language := firstText(doc, languageSelectors, PlausibleLanguageLabel)
	if language == "" {
		language = DetectLanguage(code)
	}

	return &PageExtract{Title: title, Code: code, Language: language}, nil
}

// firstText walks the locator list and returns the first candidate with
// non-empty text that passes accept (when given). Rejected candidates do not
// stop the scan.
func firstText(doc *goquery.Document, selectors []string, accept func(string) bool) string {
	for _, sel := range selectors {
		found := ""
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := strings.TrimSpace(s.Text())
			if text == "" {
				return true
			}
			if accept != nil && !accept(text) {
				return true
			}
			found = text
			return false
		})
		if found != "" {
			return found
		}
	}
	return ""
}
