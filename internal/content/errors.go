package content

import (
	"errors"
)

// Sentinel errors wrapped into classified errors by the fetcher and saver.
var (
	ErrRootRequired  = errors.New("root folder is required")
	ErrItemRequired  = errors.New("content item is required")
	ErrIDRequired    = errors.New("content item id is required")
	ErrNotLoaded     = errors.New("content cache has not been loaded")
	ErrTitleRequired = errors.New("content item title is required")
	ErrSummaryLength = errors.New("summary exceeds maximum length")
)

// Diagnostic records a content file that was skipped during a scan.
type Diagnostic struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

func (d Diagnostic) String() string {
	return d.Path + ": " + d.Reason
}
