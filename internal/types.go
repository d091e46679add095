package internal

import "time"

// ExtractedRecord is the normalized output of one capture attempt, produced by
// the extraction pipeline and handed to the store's AddProblem.
type ExtractedRecord struct {
	Name           string `json:"name"`
	Code           string `json:"code"`
	Language       string `json:"language"`
	SubmissionLink string `json:"submissionLink"`
}

// ProblemRecord is one persisted problem inside the aggregate. Order is dense
// and zero-based: problems[i].Order == i holds after every mutation.
type ProblemRecord struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	SubmissionLink string    `json:"submissionLink"`
	Code           string    `json:"code"`
	Language       string    `json:"language"`
	CapturedAt     time.Time `json:"capturedAt"`
	Order          int       `json:"order"`
}

type SetInfo struct {
	Title       string `json:"title"`
	SubmittedBy string `json:"submittedBy"`
}

// Aggregate is the single persisted object holding all problem-set state.
type Aggregate struct {
	Info     SetInfo         `json:"info"`
	Problems []ProblemRecord `json:"problems"`
}
