package capture

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"leetfolio/internal"
	"leetfolio/internal/config"
	"leetfolio/internal/leetcode"
	"leetfolio/internal/pipeline"
	"leetfolio/internal/storage"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

const submissionPage = `
<a href="/problems/two-sum/">1. Two Sum</a>
<div data-cy="lang-select">Python</div>
<pre><code>def twoSum(nums, target):
    return [0, 1]</code></pre>`

type failingSource struct{}

func (failingSource) SubmissionDetails(context.Context, string) (*leetcode.SubmissionDetails, error) {
	return nil, internal.Failf(internal.KindUpstreamUnavailable, "submission query returned status 502")
}

func testHandler(t *testing.T, src pipeline.SubmissionSource, rt roundTripFunc) (*Handler, *storage.ProblemSet) {
	t.Helper()
	cfg, _ := config.Load()
	cfg.FallbackSettleMs = 0

	set := storage.NewProblemSet(storage.NewMemoryKV(), nil)
	orch := pipeline.NewOrchestrator(src, 0, nil)
	h := NewHandler(cfg, orch, set, nil)
	h.httpClient = &http.Client{Transport: rt}
	return h, set
}

func TestHandlePing(t *testing.T) {
	h, _ := testHandler(t, failingSource{}, nil)
	resp := h.Handle(context.Background(), Request{Kind: KindPing})
	if !resp.Success || resp.Data != "ready" {
		t.Fatalf("resp=%+v", resp)
	}
}

func TestHandleUnknownKind(t *testing.T) {
	h, _ := testHandler(t, failingSource{}, nil)
	resp := h.Handle(context.Background(), Request{Kind: "bogus"})
	if resp.Success || !strings.Contains(resp.Error, "bogus") {
		t.Fatalf("resp=%+v", resp)
	}
}

func TestHandleCaptureViaFallback(t *testing.T) {
	h, set := testHandler(t, failingSource{}, func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(submissionPage)),
			Header:     make(http.Header),
		}, nil
	})

	resp := h.Handle(context.Background(), Request{
		Kind:    KindCapture,
		PageURL: "https://leetcode.com/problems/two-sum/submissions/123456789/",
	})
	if !resp.Success {
		t.Fatalf("resp=%+v", resp)
	}

	problems, err := set.ListProblems()
	if err != nil {
		t.Fatal(err)
	}
	if len(problems) != 1 {
		t.Fatalf("len=%d", len(problems))
	}
	if problems[0].Name != "Two Sum" || problems[0].Language != "Python" {
		t.Fatalf("stored=%+v", problems[0])
	}
	if problems[0].SubmissionLink != "/submissions/detail/123456789/" {
		t.Fatalf("link=%q", problems[0].SubmissionLink)
	}
}

func TestHandleCaptureBothStagesFail(t *testing.T) {
	h, set := testHandler(t, failingSource{}, func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`<p>redesigned page</p>`)),
			Header:     make(http.Header),
		}, nil
	})

	resp := h.Handle(context.Background(), Request{
		Kind:    KindCapture,
		PageURL: "https://leetcode.com/problems/two-sum/submissions/123456789/",
	})
	if resp.Success {
		t.Fatalf("resp=%+v", resp)
	}
	if !strings.Contains(resp.Error, "status 502") || !strings.Contains(resp.Error, "missing title") {
		t.Fatalf("error=%q", resp.Error)
	}

	problems, _ := set.ListProblems()
	if len(problems) != 0 {
		t.Fatalf("len=%d", len(problems))
	}
}
