package tccs

// BatchStatus describes the phase of a batch run.
type BatchStatus string

// Batch run phases reported through BatchProgress.
const (
	BatchLoading    BatchStatus = "loading"
	BatchProcessing BatchStatus = "processing"
	BatchDone       BatchStatus = "done"
	BatchError      BatchStatus = "error"
)

// BatchProgress reports progress during a batch run.
// Current counts completed items (successes and failures) and never
// decreases within a run.
type BatchProgress struct {
	Current int
	Total   int
	Title   string
	Status  BatchStatus
	Failed  int
}

// BatchProgressFunc is called as batch items complete.
type BatchProgressFunc func(BatchProgress)

// BatchFailure records an article that could not be processed.
type BatchFailure struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Error string `json:"error"`
}

// BatchResult summarizes a batch run.
type BatchResult struct {
	TotalArticles  int            `json:"totalArticles"`
	SuccessCount   int            `json:"successCount"`
	FailedArticles []BatchFailure `json:"failedArticles"`
}
