package batch

import (
	"errors"

	"squish/internal/codec"
	"squish/internal/validate"
)

// ErrWrite marks a failure to persist encoded bytes to the destination.
var ErrWrite = errors.New("write failed")

// Classify maps a task error onto its ErrorKind.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, validate.ErrNotFound):
		return KindNotFound
	case errors.Is(err, validate.ErrNotAFile):
		return KindNotAFile
	case errors.Is(err, validate.ErrUnsupportedType):
		return KindUnsupportedType
	case errors.Is(err, codec.ErrDecode):
		return KindDecode
	case errors.Is(err, codec.ErrEncode):
		return KindEncode
	case errors.Is(err, ErrWrite):
		return KindWrite
	default:
		return KindUnknown
	}
}
