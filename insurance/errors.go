package insurance

import "fmt"

// ValidationError is a rejected form field. It is shown as a warning, not a failure.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return e.Reason
}

// InferenceError wraps a model failure together with the row that caused it.
type InferenceError struct {
	Features EncodedFeatures
	Err      error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference failed: %v", e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }

// StorageError wraps a store failure. Op is one of connect, schema, insert,
// commit, query or scan.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
