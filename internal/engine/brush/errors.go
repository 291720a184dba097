package brush

import "fmt"

// BuildError reports a construction-time failure: malformed texture
// dimensions, truncated lightmap samples or a failed GPU upload. Any
// BuildError aborts renderer construction for the whole level.
type BuildError struct {
	Op   string
	Face int32 // offending face id, -1 when not face-specific
	Err  error
}

func (e *BuildError) Error() string {
	if e.Face >= 0 {
		return fmt.Sprintf("brush build %s (face %d): %v", e.Op, e.Face, e.Err)
	}
	return fmt.Sprintf("brush build %s: %v", e.Op, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// DrawError reports a GPU failure during a render pass. The pass is
// aborted and not retried; draws already submitted are not rolled back.
type DrawError struct {
	Op   string
	Code uint32 // GL error code
}

func (e *DrawError) Error() string {
	return fmt.Sprintf("brush draw %s: gl error 0x%04x", e.Op, e.Code)
}
