package contracts

import (
	"context"
	"reflect"
)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// Method describes a single method of a contract interface. Descriptors are
// resolved once per proxy and reused for every call.
type Method struct {
	// Contract is the interface type the method belongs to.
	Contract reflect.Type

	// Name is the method name as declared on the contract.
	Name string

	// Type is the method's function signature (no receiver).
	Type reflect.Type

	// Index is the method's position on the contract interface.
	Index int
}

// ContractOf resolves the contract interface for T. It returns a
// *ConfigError if T is not an interface type.
func ContractOf[T any]() (reflect.Type, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Interface {
		return nil, &ConfigError{Contract: t, Reason: "contract must be an interface type"}
	}
	return t, nil
}

// MethodsOf builds the dispatch table for a contract interface, keyed by
// method name. The contract must already be validated as an interface.
func MethodsOf(contract reflect.Type) map[string]Method {
	methods := make(map[string]Method, contract.NumMethod())
	for i := 0; i < contract.NumMethod(); i++ {
		m := contract.Method(i)
		methods[m.Name] = Method{
			Contract: contract,
			Name:     m.Name,
			Type:     m.Type,
			Index:    i,
		}
	}
	return methods
}

// TakesContext reports whether the method's first parameter is a
// context.Context. The proxy prepends the call context for such methods
// when the caller omits it.
func (m Method) TakesContext() bool {
	return m.Type.NumIn() > 0 && m.Type.In(0) == contextType
}

// ReturnsError reports whether the method's last result is an error. The
// terminal executor splits that result out of the invocation's result slot
// and propagates it through the chain.
func (m Method) ReturnsError() bool {
	n := m.Type.NumOut()
	return n > 0 && m.Type.Out(n-1) == errorType
}

// ResolveOn locates the implementation-side counterpart of the method on
// implType: same name, same signature. It returns false when the
// implementation has no matching method, in which case implementation-side
// attachments contribute nothing to the call.
func (m Method) ResolveOn(implType reflect.Type) (reflect.Method, bool) {
	im, ok := implType.MethodByName(m.Name)
	if !ok {
		return reflect.Method{}, false
	}
	// Strip the receiver before comparing signatures.
	if im.Type.NumIn()-1 != m.Type.NumIn() || im.Type.NumOut() != m.Type.NumOut() {
		return reflect.Method{}, false
	}
	for i := 0; i < m.Type.NumIn(); i++ {
		if im.Type.In(i+1) != m.Type.In(i) {
			return reflect.Method{}, false
		}
	}
	for i := 0; i < m.Type.NumOut(); i++ {
		if im.Type.Out(i) != m.Type.Out(i) {
			return reflect.Method{}, false
		}
	}
	return im, true
}
