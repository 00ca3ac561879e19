package models

// CategoryWeight is one entry of a resource's grading policy.
type CategoryWeight struct {
	Category string
	Weight   float64
}

// SubsectionScore is the raw graded total of a single subsection.
type SubsectionScore struct {
	Category string
	Earned   float64
	Possible float64
}

// CompletionResult is a single learner row of a completion page.
type CompletionResult struct {
	Username string
	Percent  float64
}

// CompletionPage is one page returned by the completion aggregation source.
type CompletionPage struct {
	Results     []CompletionResult
	HasNextPage bool
}
