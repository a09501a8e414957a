package sportline

import "fmt"

// UpstreamHTTPError reports a non-2xx response from the upstream site.
type UpstreamHTTPError struct {
	Status     int
	StatusText string
}

func (e *UpstreamHTTPError) Error() string {
	return fmt.Sprintf("upstream returned %d %s", e.Status, e.StatusText)
}

// UpstreamParseError reports a body that could not be decoded as any of
// the payload shapes the upstream is known to produce.
type UpstreamParseError struct {
	Reason string
	Err    error
}

func (e *UpstreamParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream payload unusable: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("upstream payload unusable: %s", e.Reason)
}

func (e *UpstreamParseError) Unwrap() error {
	return e.Err
}
