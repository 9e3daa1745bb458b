package batch

import "squish/internal/naming"

// ErrorKind classifies why a task failed.
type ErrorKind string

const (
	KindNone            ErrorKind = ""
	KindNotFound        ErrorKind = "not_found"
	KindNotAFile        ErrorKind = "not_a_file"
	KindUnsupportedType ErrorKind = "unsupported_type"
	KindDecode          ErrorKind = "decode"
	KindEncode          ErrorKind = "encode"
	KindWrite           ErrorKind = "write"
	KindUnknown         ErrorKind = "unknown"
)

// ResizeRequest describes one image to resize. Immutable once built;
// one per task.
type ResizeRequest struct {
	Source string
	Width  int
	Height int
	// Format is the target extension; empty keeps the source format.
	Format string
}

// ResizeOutcome is the terminal record for one task. Produced exactly
// once, never mutated after.
type ResizeOutcome struct {
	Source      string
	Destination string
	Succeeded   bool
	// Skipped is true when an existing output satisfied the request and
	// no write was performed.
	Skipped bool
	Kind    ErrorKind
	Err     error
}

// Options configures one batch run. Exactly one of Paths and Dir supplies
// the input set.
type Options struct {
	Paths      []string
	Dir        string
	Width      int
	Height     int
	Format     string
	Recursive  bool
	Policy     naming.Policy
	Extensions []string
}

// Summary tallies a finished batch.
type Summary struct {
	Total   int
	Resized int
	Skipped int
	Failed  int
}

// Summarize folds outcomes into count-by-result totals.
func Summarize(outcomes []ResizeOutcome) Summary {
	s := Summary{Total: len(outcomes)}
	for _, out := range outcomes {
		switch {
		case out.Skipped:
			s.Skipped++
		case out.Succeeded:
			s.Resized++
		default:
			s.Failed++
		}
	}
	return s
}
