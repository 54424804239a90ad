package domain

import "fmt"

// RemoteError is the failure shape of every remote operation. Message is the
// human-readable text carried by the remote side and may be empty when the
// failure never reached it (transport errors, undecodable bodies).
type RemoteError struct {
	Message string
	Cause   error
}

func (e *RemoteError) Error() string {
	switch {
	case e.Message != "" && e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	case e.Message != "":
		return e.Message
	case e.Cause != nil:
		return e.Cause.Error()
	default:
		return "remote error"
	}
}

func (e *RemoteError) Unwrap() error { return e.Cause }
