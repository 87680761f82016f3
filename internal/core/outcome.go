package core

// Outcome is the result category of a single-review reply request.
type Outcome string

const (
	OutcomeSuccess            Outcome = "success"
	OutcomePermissionDenied   Outcome = "permission_denied"
	OutcomeInvalidRequest     Outcome = "invalid_request"
	OutcomeNotFound           Outcome = "not_found"
	OutcomeConflict           Outcome = "conflict"
	OutcomePersistenceFailure Outcome = "persistence_failure"
)

// Human-readable messages reported alongside each outcome.
const (
	MsgSuccess            = "Reply posted."
	MsgPermissionDenied   = "Permission denied."
	MsgInvalidRequest     = "Invalid request."
	MsgNotFound           = "Review not found."
	MsgConflict           = "This review already has a reply."
	MsgPersistenceFailure = "Could not save reply."
)

// Result is the structured outcome of a single-review request.
type Result struct {
	Outcome Outcome `json:"outcome"`
	Message string  `json:"message"`
}

// NewResult pairs an outcome with its standard message.
func NewResult(o Outcome) Result {
	var msg string
	switch o {
	case OutcomeSuccess:
		msg = MsgSuccess
	case OutcomePermissionDenied:
		msg = MsgPermissionDenied
	case OutcomeInvalidRequest:
		msg = MsgInvalidRequest
	case OutcomeNotFound:
		msg = MsgNotFound
	case OutcomeConflict:
		msg = MsgConflict
	default:
		msg = MsgPersistenceFailure
	}
	return Result{Outcome: o, Message: msg}
}

// OK reports whether the request posted a reply.
func (r Result) OK() bool {
	return r.Outcome == OutcomeSuccess
}

// ItemOutcome records what happened to one review during a batch run.
type ItemOutcome struct {
	ReviewID int64   `json:"reviewId"`
	Outcome  Outcome `json:"outcome"`
}

// BatchResult is the aggregate result of a batch run. GeneratedCount is the
// number of replies created; Items lists every processed candidate in order.
type BatchResult struct {
	GeneratedCount int           `json:"generatedCount"`
	Items          []ItemOutcome `json:"items"`
}
