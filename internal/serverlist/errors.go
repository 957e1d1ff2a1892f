package serverlist

import "fmt"

// TransportError reports a failed HTTP exchange: the request could not be
// built or sent, the body could not be read, or the server answered non-2xx.
type TransportError struct {
	Address string
	Status  int // 0 when no response was received
	Cause   error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("cannot fetch %s: HTTP %d", e.Address, e.Status)
	}
	return fmt.Sprintf("cannot fetch %s: %v", e.Address, e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }

// DecodeError reports a body that is not JSON or not shaped like a server list.
type DecodeError struct {
	Address string
	Reason  string
	Cause   error
}

func (e *DecodeError) Error() string {
	msg := "cannot decode server list"
	if e.Address != "" {
		msg += " from " + e.Address
	}
	msg += ": " + e.Reason
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error { return e.Cause }

// UnknownKeyError is returned by Project when no record carries Key.
type UnknownKeyError struct {
	Key string
}

func (e *UnknownKeyError) Error() string { return "invalid key" }
