package wav

// FormatError reports a malformed or unrecognized RIFF/WAVE container.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string { return "invalid wav: " + e.Reason }

// UnsupportedFormatError reports a well-formed container whose encoding
// parameters are outside what the selected output mode accepts.
type UnsupportedFormatError struct {
	Reason string
}

func (e *UnsupportedFormatError) Error() string { return "unsupported wav: " + e.Reason }

var (
	ErrNotRIFF     = &FormatError{Reason: "not RIFF"}
	ErrNotWAVE     = &FormatError{Reason: "not WAVE"}
	ErrNoFmtChunk  = &FormatError{Reason: "missing fmt chunk"}
	ErrNoDataChunk = &FormatError{Reason: "no data chunk found"}
	ErrTruncated   = &FormatError{Reason: "truncated file"}
)
