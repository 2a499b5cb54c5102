package vglite

import "fmt"

// StatusCode is a rasterizer return code.
type StatusCode int32

// Status codes returned by the rasterizer.
const (
	Success StatusCode = iota
	InvalidArgument
	OutOfMemory
	NoContext
	Timeout
	OutOfResources
	GenericIOError
	NotSupport
	AlreadyExists
	NotAligned
	FlexaTimeOut
	FlexaHandshakeFail
	Multithread
)

var statusNames = [...]string{
	Success:            "SUCCESS",
	InvalidArgument:    "INVALID_ARGUMENT",
	OutOfMemory:        "OUT_OF_MEMORY",
	NoContext:          "NO_CONTEXT",
	Timeout:            "TIMEOUT",
	OutOfResources:     "OUT_OF_RESOURCES",
	GenericIOError:     "GENERIC_IO",
	NotSupport:         "NOT_SUPPORT",
	AlreadyExists:      "ALREADY_EXISTS",
	NotAligned:         "NOT_ALIGNED",
	FlexaTimeOut:       "FLEXA_TIME_OUT",
	FlexaHandshakeFail: "FLEXA_HANDSHAKE_FAIL",
	Multithread:        "MULTI_THREAD_FAIL",
}

// String returns the driver name of the code.
func (c StatusCode) String() string {
	if c >= 0 && int(c) < len(statusNames) {
		return statusNames[c]
	}
	return fmt.Sprintf("STATUS(%d)", int32(c))
}

// Status is the error returned by a Backend call that did not succeed.
type Status struct {
	Code StatusCode
	// Op names the failing call, such as "blit" or "allocate".
	Op string
}

// Error implements error.
func (s *Status) Error() string {
	if s.Op == "" {
		return "vglite: " + s.Code.String()
	}
	return "vglite: " + s.Op + ": " + s.Code.String()
}

// Is reports whether target is a *Status with the same code, so that
// errors.Is(err, &Status{Code: NotSupport}) matches regardless of Op.
func (s *Status) Is(target error) bool {
	t, ok := target.(*Status)
	return ok && t.Code == s.Code
}

// Check returns a *Status for op, or nil when code is Success.
func Check(op string, code StatusCode) error {
	if code == Success {
		return nil
	}
	return &Status{Code: code, Op: op}
}
