package interceptors

import (
	"errors"
	"reflect"

	"github.com/glimte/aspect-go/contracts"
)

// ErrNoProvider reports an interceptor that declares injectable fields on
// a proxy that has no dependency provider configured.
var ErrNoProvider = errors.New("no dependency provider configured")

// Provider resolves dependencies by type. It is the single boundary this
// package has into the external container; resolution is read-only.
type Provider interface {
	// ResolveRequired returns the registered instance for t, or an error
	// if nothing is registered.
	ResolveRequired(t reflect.Type) (any, error)
}

// Injector populates the injectable fields of call-scoped interceptor
// instances from a provider. Exported struct fields carrying an `inject`
// tag are resolved by their declared type:
//
//	type AuditInterceptor struct {
//		Clock  Clock        `inject:""`
//		Sink   audit.Sink   `inject:""`
//		prefix string       // untagged, left alone
//	}
//
// Injection happens on every call, before any interceptor body runs, so
// scoped registrations are always current. A failed resolution aborts the
// whole call. Every tagged field is a required dependency: a nil injector
// (no provider configured) fails the call as soon as an instance declares
// one, rather than letting a body run with the field unset.
type Injector struct {
	provider Provider
}

// NewInjector creates an injector backed by the given provider. A nil
// provider yields a nil injector, which is still safe to use: it rejects
// any interceptor that declares injectable fields.
func NewInjector(provider Provider) *Injector {
	if provider == nil {
		return nil
	}
	return &Injector{provider: provider}
}

// Inject resolves and assigns every tagged field of the interceptor.
// Interceptors that are not pointers to structs, or have no tagged
// fields, pass through untouched.
func (j *Injector) Inject(interceptor Interceptor) error {
	v := reflect.ValueOf(interceptor)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return nil
	}
	elem := v.Elem()
	if elem.Kind() != reflect.Struct {
		return nil
	}

	t := elem.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if _, tagged := field.Tag.Lookup("inject"); !tagged {
			continue
		}
		target := elem.Field(i)
		if !target.CanSet() {
			continue
		}

		if j == nil {
			return &contracts.ResolutionError{Type: field.Type, Err: ErrNoProvider}
		}

		resolved, err := j.provider.ResolveRequired(field.Type)
		if err != nil {
			return &contracts.ResolutionError{Type: field.Type, Err: err}
		}
		target.Set(reflect.ValueOf(resolved))
	}

	return nil
}
