package loader

import (
	"go.uber.org/zap"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewGLTFLoader.
type LoaderBuilderOption func(*gltfLoader)

// WithUploader is an option builder that sets where primitive geometry is uploaded.
// Without an uploader primitives keep geometry id 0.
//
// Parameters:
//   - u: the geometry uploader
//
// Returns:
//   - LoaderBuilderOption: a function that applies the uploader option to a loader
func WithUploader(u Uploader) LoaderBuilderOption {
	return func(l *gltfLoader) {
		l.uploader = u
	}
}

// WithWorkers is an option builder that sets how many files are parsed concurrently.
//
// Parameters:
//   - n: the number of parse workers (minimum 1)
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker count to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *gltfLoader) {
		if n < 1 {
			n = 1
		}
		l.workers = n
	}
}

// WithLogger is an option builder that sets the logger.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - LoaderBuilderOption: a function that applies the logger option to a loader
func WithLogger(logger *zap.Logger) LoaderBuilderOption {
	return func(l *gltfLoader) {
		if logger != nil {
			l.logger = logger
		}
	}
}
