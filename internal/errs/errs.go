// Package errs collects a sequence of fallible setup steps into a single
// error, so boot code can chain several independent registration steps and
// check once at the end; only the first failure is kept.
package errs

// Collector accumulates the first non-nil error passed to Add. Once an
// error is recorded, subsequent Adds are cheap no-ops, so call sites can
// keep chaining registration steps unconditionally.
type Collector struct {
	Err error
}

// Add records the first non-nil error among errs, if one hasn't already
// been recorded.
func (c *Collector) Add(errs ...error) {
	if c.Err != nil {
		return
	}
	for _, err := range errs {
		if err != nil {
			c.Err = err
			return
		}
	}
}

// Errored reports whether a failure has been recorded.
func (c *Collector) Errored() bool {
	return c.Err != nil
}
