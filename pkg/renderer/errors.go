package renderer

import "errors"

var (
	ErrInvalidConfig = errors.New("renderer: invalid configuration")
	ErrSceneNotReady = errors.New("renderer: scene has not been preprocessed")
	ErrPoolClosed    = errors.New("renderer: worker pool closed unexpectedly")
)
