package allure

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/andreivcodes/allure-go/types"
)

// RunTest executes fn as a tracked synchronous test. A fresh context is
// installed into the registry's execution slot for the duration; a panic
// in fn is mapped to a Failed result with the panic message and stack,
// finalized, and then re-propagated.
func RunTest(name, fullName string, fn func()) {
	DefaultRegistry().Install(NewTestContext(name, fullName))
	defer finalize(nil)
	fn()
}

// RunTestContext executes fn as a tracked cooperative test. The context's
// handle is bound into the derived context.Context and registered as the
// process-wide scope fallback, so helpers called from sub-goroutines that
// cannot see ctx still resolve it. Panics finalize the result as Failed
// and re-propagate.
func RunTestContext(ctx context.Context, name, fullName string, fn func(context.Context)) {
	h := NewHandle(NewTestContext(name, fullName))
	endScope := DefaultRegistry().BeginScope(h)
	defer endScope()
	ctx = WithHandle(ctx, h)
	defer finalize(ctx)
	fn(ctx)
}

// finalize consumes the current context, deciding the terminal status from
// any in-flight panic. Deferred by both run entry points.
func finalize(ctx context.Context) {
	r := recover()
	if tc := DefaultRegistry().Retrieve(ctx); tc != nil {
		if r != nil {
			tc.Finish(types.StatusFailed, panicMessage(r), string(debug.Stack()))
		} else {
			tc.Finish(types.StatusPassed, "", "")
		}
	}
	if r != nil {
		panic(r)
	}
}

// WithTestContext runs fn against a throwaway installed context and
// discards it without writing. Useful for documentation samples that call
// the ambient helpers outside a tracked test.
func WithTestContext(fn func()) {
	DefaultRegistry().Install(NewTestContext("example", "example"))
	defer DefaultRegistry().Retrieve(nil)
	fn()
}

func panicMessage(r any) string {
	switch v := r.(type) {
	case string:
		return v
	case error:
		return v.Error()
	default:
		return fmt.Sprintf("%v", v)
	}
}
