package storage

import "fmt"

// MalformedURLError reports a URL that could not be decomposed into
// scheme, container and key.
type MalformedURLError struct {
	URL    string
	Reason string
}

func (e *MalformedURLError) Error() string {
	return fmt.Sprintf("malformed URL %q: %s", e.URL, e.Reason)
}

// TransferError reports a failed fetch or push. The underlying cause is
// preserved for diagnostics.
type TransferError struct {
	URL string
	Op  string
	Err error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Op, e.URL, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}
