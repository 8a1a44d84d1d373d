package handler

import "errors"

// Kind distinguishes the failures a caller can branch on.
type Kind int

const (
	// InvalidArgument means required input was missing. Never retried.
	InvalidArgument Kind = iota + 1
	// UpstreamFailure covers transport, auth, rate-limit and timeout
	// conditions of the completion API.
	UpstreamFailure
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "InvalidArgument"
	case UpstreamFailure:
		return "UpstreamFailure"
	default:
		return "Unknown"
	}
}

// Caller-facing messages. They never carry upstream detail.
const (
	MsgMissingBarcode       = "The request must include a 'barcode' value."
	MsgAssistantUnavailable = "The assistant could not be reached. Please try again later."
)

// Error is returned by Handle. Error() yields only the fixed caller-facing
// message; the underlying cause is available through errors.Unwrap for
// server-side logging.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

func invalidArgument(cause error) *Error {
	return &Error{Kind: InvalidArgument, Message: MsgMissingBarcode, cause: cause}
}

func upstreamFailure(cause error) *Error {
	return &Error{Kind: UpstreamFailure, Message: MsgAssistantUnavailable, cause: cause}
}

// KindOf returns the kind of err, or 0 if err is not a handler error.
func KindOf(err error) Kind {
	var herr *Error
	if errors.As(err, &herr) {
		return herr.Kind
	}
	return 0
}

// IsKind reports whether err is a handler error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
