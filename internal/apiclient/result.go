package apiclient

// Status is the outcome tag of a mutating call.
type Status int

const (
	StatusRejected Status = iota
	StatusSucceeded
)

func (s Status) String() string {
	if s == StatusSucceeded {
		return "succeeded"
	}
	return "rejected"
}

// Result describes an answered mutation. Message is display text only.
type Result struct {
	Status     Status
	Message    string
	ID         string
	HTTPStatus int
}

func (r Result) OK() bool {
	return r.Status == StatusSucceeded
}
