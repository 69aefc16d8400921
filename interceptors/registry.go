package interceptors

import (
	"reflect"
	"sort"
	"sync"

	"github.com/glimte/aspect-go/contracts"
)

// Factory builds one interceptor instance for one call. Factories are
// registered instead of instances so concurrent calls never share chain
// state and injected dependencies stay call-scoped.
type Factory func() Interceptor

// Binding is an ordered attachment of an interceptor factory.
type Binding struct {
	// Order is the ascending sort key within an attachment bucket.
	Order int

	// Factory builds the interceptor instance for a call.
	Factory Factory

	seq uint64
}

// Use creates a binding with the default order.
func Use(f Factory) Binding {
	return Binding{Order: DefaultOrder, Factory: f}
}

// UseOrdered creates a binding with an explicit order.
func UseOrdered(order int, f Factory) Binding {
	return Binding{Order: order, Factory: f}
}

// Shared adapts an existing interceptor instance into a binding. The
// instance is handed to every call unchanged, so it must be stateless and
// safe for concurrent use; it also receives no dependency injection.
func Shared(i Interceptor) Binding {
	return Use(func() Interceptor { return i })
}

// SharedOrdered is Shared with an explicit order.
func SharedOrdered(order int, i Interceptor) Binding {
	return UseOrdered(order, func() Interceptor { return i })
}

type methodKey struct {
	owner reflect.Type
	name  string
}

// Registry maps attachment points to ordered interceptor bindings. It is
// the explicit registration counterpart of metadata discovery: callers
// attach bindings at setup time, and the proxy collects the applicable
// ones per call.
//
// A method attachment whose name never matches a dispatched contract
// method is simply never collected; it is ignored, not applied.
type Registry struct {
	mu             sync.RWMutex
	contractType   map[reflect.Type][]Binding
	implType       map[reflect.Type][]Binding
	contractMethod map[methodKey][]Binding
	implMethod     map[methodKey][]Binding
	seq            uint64
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		contractType:   make(map[reflect.Type][]Binding),
		implType:       make(map[reflect.Type][]Binding),
		contractMethod: make(map[methodKey][]Binding),
		implMethod:     make(map[methodKey][]Binding),
	}
}

// AttachToContract attaches bindings to every method of a contract
// interface.
func (r *Registry) AttachToContract(contract reflect.Type, bindings ...Binding) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contractType[contract] = r.insert(r.contractType[contract], bindings)
	return r
}

// AttachToImplementation attaches bindings to every contract method the
// implementation type provides.
func (r *Registry) AttachToImplementation(impl reflect.Type, bindings ...Binding) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.implType[impl] = r.insert(r.implType[impl], bindings)
	return r
}

// AttachToContractMethod attaches bindings to a single contract method.
func (r *Registry) AttachToContractMethod(contract reflect.Type, method string, bindings ...Binding) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := methodKey{owner: contract, name: method}
	r.contractMethod[key] = r.insert(r.contractMethod[key], bindings)
	return r
}

// AttachToImplementationMethod attaches bindings to a single method of the
// implementation type.
func (r *Registry) AttachToImplementationMethod(impl reflect.Type, method string, bindings ...Binding) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := methodKey{owner: impl, name: method}
	r.implMethod[key] = r.insert(r.implMethod[key], bindings)
	return r
}

// insert appends bindings with attachment sequence numbers and keeps the
// bucket sorted ascending by order, ties in attachment order.
func (r *Registry) insert(bucket []Binding, bindings []Binding) []Binding {
	for _, b := range bindings {
		r.seq++
		b.seq = r.seq
		bucket = append(bucket, b)
	}
	sort.SliceStable(bucket, func(i, j int) bool {
		return bucket[i].Order < bucket[j].Order
	})
	return bucket
}

// Collect returns the applicable bindings for one call, in execution
// order: contract type, implementation type, contract method,
// implementation method, each bucket ascending by order. The
// implementation-side buckets contribute only when the implementation has
// a method matching the contract method's name and signature. An empty
// result means no interception applies and the proxy must call straight
// through.
func (r *Registry) Collect(method contracts.Method, implType reflect.Type) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byContract := r.contractType[method.Contract]
	byContractMethod := r.contractMethod[methodKey{owner: method.Contract, name: method.Name}]

	var byImpl, byImplMethod []Binding
	if implType != nil {
		if _, ok := method.ResolveOn(implType); ok {
			byImpl = r.implType[implType]
			byImplMethod = r.implMethod[methodKey{owner: implType, name: method.Name}]
		}
	}

	total := len(byContract) + len(byImpl) + len(byContractMethod) + len(byImplMethod)
	if total == 0 {
		return nil
	}

	collected := make([]Binding, 0, total)
	collected = append(collected, byContract...)
	collected = append(collected, byImpl...)
	collected = append(collected, byContractMethod...)
	collected = append(collected, byImplMethod...)
	return collected
}
