package apperr

import "errors"

// ErrNotFound marks a record that is absent or expired. The two cases
// are indistinguishable by contract.
var ErrNotFound = errors.New("not found")

// InvalidInputError is a client-caused request problem. Always maps to
// 400 and is never retried.
type InvalidInputError struct {
	Message string
	Err     error
}

func (e *InvalidInputError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *InvalidInputError) Unwrap() error { return e.Err }

func NewInvalidInput(msg string) *InvalidInputError {
	return &InvalidInputError{Message: msg}
}

func NewInvalidInputWrap(msg string, err error) *InvalidInputError {
	return &InvalidInputError{Message: msg, Err: err}
}

// CorruptError marks a stored record that failed to decode. A record
// that was stored successfully should always decode, so this signals a
// writer/reader codec mismatch and is surfaced as a server error.
type CorruptError struct {
	Key string
	Err error
}

func (e *CorruptError) Error() string {
	return "corrupt record " + e.Key + ": " + e.Err.Error()
}

func (e *CorruptError) Unwrap() error { return e.Err }

func NewCorrupt(key string, err error) *CorruptError {
	return &CorruptError{Key: key, Err: err}
}

// UpstreamError marks a failure of the generation collaborator (LLM or
// search): no usable content, blocked response, or an exhausted
// tool-call budget.
type UpstreamError struct {
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func NewUpstream(msg string) *UpstreamError {
	return &UpstreamError{Message: msg}
}

func NewUpstreamWrap(msg string, err error) *UpstreamError {
	return &UpstreamError{Message: msg, Err: err}
}

// StoreError marks an unreachable KV backend. Transient; callers must
// not confuse it with ErrNotFound.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string { return "store unavailable: " + e.Err.Error() }

func (e *StoreError) Unwrap() error { return e.Err }

func NewStore(err error) *StoreError { return &StoreError{Err: err} }
