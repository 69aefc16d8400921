package contracts

import (
	"time"

	"github.com/google/uuid"
)

// Invocation carries the state of a single proxied call: the resolved
// method, the argument list, and a mutable result slot. It is created by
// the proxy, owned by the chain for the duration of one call, and
// discarded afterwards. Interceptors may read and rewrite arguments and
// results; the values left in the result slot after the chain unwinds are
// what the caller receives.
type Invocation struct {
	// ID uniquely identifies this call for logging and auditing.
	ID string

	// Method is the contract method being invoked.
	Method Method

	// Timestamp records when the invocation was created.
	Timestamp time.Time

	args    []any
	results []any
}

// NewInvocation creates the per-call state for a contract method.
func NewInvocation(method Method, args []any) *Invocation {
	return &Invocation{
		ID:        uuid.New().String(),
		Method:    method,
		Timestamp: time.Now().UTC(),
		args:      args,
	}
}

// Args returns the argument list. Mutations through SetArg are visible to
// links further down the chain and to the terminal call.
func (inv *Invocation) Args() []any {
	return inv.args
}

// Arg returns the i-th argument, or nil when out of range.
func (inv *Invocation) Arg(i int) any {
	if i < 0 || i >= len(inv.args) {
		return nil
	}
	return inv.args[i]
}

// SetArg replaces the i-th argument. Out-of-range indices are ignored.
func (inv *Invocation) SetArg(i int, v any) {
	if i < 0 || i >= len(inv.args) {
		return
	}
	inv.args[i] = v
}

// Results returns the current contents of the result slot. Before the
// terminal executor runs it is nil unless an interceptor short-circuited
// the chain by setting results itself.
func (inv *Invocation) Results() []any {
	return inv.results
}

// Result returns the i-th result, or nil when out of range.
func (inv *Invocation) Result(i int) any {
	if i < 0 || i >= len(inv.results) {
		return nil
	}
	return inv.results[i]
}

// SetResults overwrites the result slot. The terminal executor writes the
// real call's results here; interceptors may rewrite them on the way out
// or pre-populate them to short-circuit.
func (inv *Invocation) SetResults(results ...any) {
	inv.results = results
}
