package models

// Candidate is a deliverable clip extracted from one search result.
type Candidate struct {
	Title string `json:"title"`
	// SourceURL links to the original post, even when ClipURL came from a
	// fallback field.
	SourceURL string `json:"url"`
	ClipURL   string `json:"gif"`
}

// Recipient identifies the chat a candidate is delivered to.
type Recipient int64

// DeliveryOutcome is the terminal state of one delivery sequence.
type DeliveryOutcome int

const (
	// Exhausted means no candidate was delivered and the fallback ran.
	Exhausted DeliveryOutcome = iota
	// Success means exactly one candidate was delivered.
	Success
)

// String returns the outcome name used in logs.
func (o DeliveryOutcome) String() string {
	switch o {
	case Success:
		return "success"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}
