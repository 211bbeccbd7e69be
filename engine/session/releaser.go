package session

import (
	"go.uber.org/zap"
)

// releaseStep is one acquisition's matching release.
type releaseStep struct {
	name string
	fn   func()
}

// releaser is a scoped-ownership stack. Every acquisition pushes its release; unwinding
// runs them in reverse acquisition order and each exactly once.
type releaser struct {
	steps  []releaseStep
	logger *zap.Logger
}

func newReleaser(logger *zap.Logger) *releaser {
	return &releaser{logger: logger}
}

// push records the release of the resource acquired just before the call.
func (r *releaser) push(name string, fn func()) {
	r.steps = append(r.steps, releaseStep{name: name, fn: fn})
}

// len returns the number of pending releases.
func (r *releaser) len() int {
	return len(r.steps)
}

// unwind pops and runs every pending release, newest first.
//
// Returns:
//   - []string: the released resource names in release order
func (r *releaser) unwind() []string {
	names := make([]string, 0, len(r.steps))
	for len(r.steps) > 0 {
		last := len(r.steps) - 1
		step := r.steps[last]
		r.steps = r.steps[:last]

		step.fn()
		names = append(names, step.name)
		r.logger.Debug("resource released", zap.String("resource", step.name))
	}
	return names
}
