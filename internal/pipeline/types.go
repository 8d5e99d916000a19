package pipeline

// Record is one validated interview row. The three bound fields are always
// numeric after validation; Extra carries any unbound trailing columns
// through untouched.
type Record struct {
	InterviewNumber  float64  `json:"interview_number"`
	ItemsCollected   float64  `json:"items_collected"`
	NewItems         float64  `json:"new_items"`
	CumulativeUnique float64  `json:"cumulative_unique_items"`
	Extra            []string `json:"extra,omitempty"`
}

// Dataset is the validated, ordered table produced by one pipeline run.
// It exists only for the lifetime of the run; nothing is shared or merged
// across runs.
type Dataset struct {
	// Label is the unit name the instance was parameterized with
	// ("concepts", "themes", ...). Presentation only.
	Label string `json:"label"`

	// Header is the original header row, kept for display. Column binding
	// is positional and ignores these names.
	Header []string `json:"header"`

	// Records are sorted ascending by InterviewNumber. Ties keep their
	// post-filter relative order.
	Records []Record `json:"records"`

	// DroppedRows counts input rows discarded because a bound column did
	// not coerce to a number.
	DroppedRows int `json:"dropped_rows"`
}

// Summary holds the four scalar metrics computed over the final row set.
// Means keep full precision; rendering to one decimal place is the
// presentation layer's job.
type Summary struct {
	TotalInterviews         int     `json:"total_interviews"`
	TotalUniqueItems        int     `json:"total_unique_items"`
	AvgItemsPerInterview    float64 `json:"avg_items_per_interview"`
	AvgNewItemsPerInterview float64 `json:"avg_new_items_per_interview"`
}

// Result is the full output payload of one pipeline run.
type Result struct {
	Dataset Dataset `json:"dataset"`
	Summary Summary `json:"summary"`
}

// Options parameterizes a pipeline instance. The same pipeline serves both
// the "concepts" and "themes" presentations; only the label differs.
type Options struct {
	// Label is the unit name used in headers and series titles.
	// Empty means "items".
	Label string

	// Comma is the field delimiter. Zero means ','.
	Comma rune
}

func (o Options) label() string {
	if o.Label == "" {
		return "items"
	}
	return o.Label
}

func (o Options) comma() rune {
	if o.Comma == 0 {
		return ','
	}
	return o.Comma
}
