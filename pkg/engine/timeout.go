package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/chazu/nodeview/pkg/scene"
)

// EvalTimeout is the default limit for a single evaluation.
const EvalTimeout = 5 * time.Second

// errSuperseded is returned to callers whose evaluation was overtaken by a
// newer call to Evaluate.
var errSuperseded = errors.New("evaluation superseded by newer request")

type evalResult struct {
	scene  *scene.Scene
	errors []EvalError
	err    error
}

// await returns the result of evaluation gen, or an error once e.timeout
// passes. A goroutine that outlives its timeout keeps running in its own
// sandbox; its result is dropped.
func (e *Engine) await(ch <-chan evalResult, gen uint64) (*scene.Scene, []EvalError, error) {
	timer := time.NewTimer(e.timeout)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil, nil, fmt.Errorf("evaluation timed out after %s", e.timeout)
	case res := <-ch:
		if !e.isCurrent(gen) {
			return nil, nil, errSuperseded
		}
		return res.scene, res.errors, res.err
	}
}

func (e *Engine) isCurrent(gen uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return gen == e.generation
}
