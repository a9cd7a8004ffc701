package rowindex

import "errors"

// Construction-time errors. A corrupt or stale sidecar is never one of
// these — it is silently recovered by rebuilding (see Open and tryLoad).
var (
	ErrCSVOpenFailed    = errors.New("rowindex: failed to open csv file")
	ErrIndexWriteFailed = errors.New("rowindex: failed to write index sidecar")
	ErrIndexMapFailed   = errors.New("rowindex: failed to map index sidecar")
)
