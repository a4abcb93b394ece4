package filesystem

import "errors"

// Error kinds returned (wrapped in a [PathError]) by namespace operations.
// Match them with errors.Is.
var (
	ErrNotFound      = errors.New("no such file or directory")
	ErrNotADirectory = errors.New("not a directory")
	ErrAlreadyExists = errors.New("file exists")
	ErrInvalidPath   = errors.New("invalid path")
	ErrWrongKind     = errors.New("wrong node kind")
	ErrNotEmpty      = errors.New("directory not empty")
)

// PathError records a failed namespace operation along with the path it was
// given and, when resolution stopped part way, the offending segment.
type PathError struct {
	Op      string
	Path    string
	Segment string
	Err     error
}

func (e *PathError) Error() string {
	if e.Segment != "" && e.Segment != e.Path {
		return e.Op + " " + e.Path + ": " + e.Segment + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *PathError) Unwrap() error {
	return e.Err
}
