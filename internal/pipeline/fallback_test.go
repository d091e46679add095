package pipeline

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"leetfolio/internal"
)

func docLoader(t *testing.T, html string) PageLoader {
	t.Helper()
	return func() (*goquery.Document, error) {
		return goquery.NewDocumentFromReader(strings.NewReader(html))
	}
}

func TestFallbackExtract(t *testing.T) {
	html := `
<div data-cy="question-title">14. Longest Common Prefix</div>
<div data-cy="lang-select">Java</div>
<pre></pre>
<pre><code>public class Solution { public int run() { return 1; } }</code></pre>`

	fb := NewFallbackExtractor(0, docLoader(t, html))
	page, err := fb.Extract()
	if err != nil {
		t.Fatal(err)
	}
	if page.Title != "14. Longest Common Prefix" {
		t.Fatalf("title=%q", page.Title)
	}
	if !strings.Contains(page.Code, "public class Solution") {
		t.Fatalf("code=%q", page.Code)
	}
	if page.Language != "Java" {
		t.Fatalf("language=%q", page.Language)
	}
}

func TestFallbackSkipsInvalidCodeCandidate(t *testing.T) {
	// First code locator yields short garbage; scan must continue to the
	// next locator instead of stopping.
	html := `
<a href="/problems/two-sum/">Two Sum</a>
<div class="view-lines">ad</div>
<pre><code>def twoSum(nums, target):
    return [0, 1]</code></pre>`

	fb := NewFallbackExtractor(0, docLoader(t, html))
	page, err := fb.Extract()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(page.Code, "def twoSum") {
		t.Fatalf("code=%q", page.Code)
	}
}

func TestFallbackDetectsLanguageWhenNoLabel(t *testing.T) {
	html := `
<a href="/problems/two-sum/">Two Sum</a>
<pre><code>def twoSum(nums, target):
    return [0, 1]</code></pre>`

	fb := NewFallbackExtractor(0, docLoader(t, html))
	page, err := fb.Extract()
	if err != nil {
		t.Fatal(err)
	}
	if page.Language != "Python" {
		t.Fatalf("language=%q", page.Language)
	}
}

func TestFallbackMissingTitle(t *testing.T) {
	fb := NewFallbackExtractor(0, docLoader(t, `<pre><code>func main() { run() }</code></pre>`))
	_, err := fb.Extract()
	if internal.KindOf(err) != internal.KindPageStructure {
		t.Fatalf("err=%v", err)
	}
	if !strings.Contains(err.Error(), "missing title") {
		t.Fatalf("err=%v", err)
	}
}

func TestFallbackMissingCode(t *testing.T) {
	fb := NewFallbackExtractor(0, docLoader(t, `<a href="/problems/two-sum/">Two Sum</a><pre>ad</pre>`))
	_, err := fb.Extract()
	if internal.KindOf(err) != internal.KindPageStructure {
		t.Fatalf("err=%v", err)
	}
	if !strings.Contains(err.Error(), "missing code") {
		t.Fatalf("err=%v", err)
	}
}
