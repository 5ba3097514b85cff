package conv

import "github.com/terribond568545/tinygrad/internal/image"

// Backend launches convolutions against one compute target. Implementations
// allocate the output image per the grid formula, enforce Params.Validate
// before dispatch, and run every work unit to completion; the dispatch either
// completes for all units or fails as a whole.
type Backend interface {
	// Conv convolves input with weights under p and returns the output
	// image, sized (OutputColumns*TotalOutputChannels) x (Batch*OutputRows).
	Conv(input, weights *image.Image, p Params) (*image.Image, error)

	// Name returns the backend name.
	Name() string
}
