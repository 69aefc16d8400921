package interceptors

import (
	"context"
	"reflect"
	"testing"

	"github.com/glimte/aspect-go/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type calculator interface {
	Add(a, b int) int
}

type basicCalculator struct{}

func (c *basicCalculator) Add(a, b int) int { return a + b }

type renamedCalculator struct{}

func (c *renamedCalculator) Sum(a, b int) int { return a + b }

func addMethod(t *testing.T) contracts.Method {
	t.Helper()
	contract, err := contracts.ContractOf[calculator]()
	require.NoError(t, err)
	return contracts.MethodsOf(contract)["Add"]
}

func tagged(name string) Factory {
	return func() Interceptor {
		return NewInterceptorFunc(name, func(ctx context.Context, inv *contracts.Invocation, next Handler) error {
			return next.Handle(ctx, inv)
		})
	}
}

func collectedNames(bindings []Binding) []string {
	names := make([]string, 0, len(bindings))
	for _, b := range bindings {
		names = append(names, b.Factory().Name())
	}
	return names
}

func TestRegistryCollect(t *testing.T) {
	implType := reflect.TypeOf(&basicCalculator{})

	t.Run("empty registry collects nothing", func(t *testing.T) {
		reg := NewRegistry()

		assert.Nil(t, reg.Collect(addMethod(t), implType))
	})

	t.Run("concatenates the four buckets in fixed precedence", func(t *testing.T) {
		m := addMethod(t)
		reg := NewRegistry()
		reg.AttachToImplementationMethod(implType, "Add", Use(tagged("implMethod")))
		reg.AttachToContractMethod(m.Contract, "Add", Use(tagged("contractMethod")))
		reg.AttachToImplementation(implType, Use(tagged("implType")))
		reg.AttachToContract(m.Contract, Use(tagged("contractType")))

		names := collectedNames(reg.Collect(m, implType))

		assert.Equal(t, []string{"contractType", "implType", "contractMethod", "implMethod"}, names)
	})

	t.Run("sorts each bucket ascending by order with stable ties", func(t *testing.T) {
		m := addMethod(t)
		reg := NewRegistry()
		reg.AttachToContract(m.Contract,
			UseOrdered(200, tagged("late")),
			Use(tagged("default-first")),
			UseOrdered(10, tagged("early")),
			Use(tagged("default-second")),
		)

		names := collectedNames(reg.Collect(m, implType))

		assert.Equal(t, []string{"early", "default-first", "default-second", "late"}, names)
	})

	t.Run("implementation buckets contribute nothing when the method cannot be resolved", func(t *testing.T) {
		m := addMethod(t)
		mismatched := reflect.TypeOf(&renamedCalculator{})
		reg := NewRegistry()
		reg.AttachToContract(m.Contract, Use(tagged("contractType")))
		reg.AttachToImplementation(mismatched, Use(tagged("implType")))
		reg.AttachToImplementationMethod(mismatched, "Add", Use(tagged("implMethod")))

		names := collectedNames(reg.Collect(m, mismatched))

		assert.Equal(t, []string{"contractType"}, names)
	})

	t.Run("method attachments that never match a dispatched method are ignored", func(t *testing.T) {
		m := addMethod(t)
		reg := NewRegistry()
		reg.AttachToContractMethod(m.Contract, "Subtract", Use(tagged("orphan")))

		assert.Nil(t, reg.Collect(m, implType))
	})

	t.Run("attachments on other contracts are not collected", func(t *testing.T) {
		m := addMethod(t)
		other, err := contracts.ContractOf[Handler]()
		require.NoError(t, err)
		reg := NewRegistry()
		reg.AttachToContract(other, Use(tagged("other")))

		assert.Nil(t, reg.Collect(m, implType))
	})
}

func TestSharedBinding(t *testing.T) {
	t.Run("hands the same instance to every call", func(t *testing.T) {
		instance := NewLoggingInterceptor(nil)
		b := Shared(instance)

		assert.Same(t, instance, b.Factory())
		assert.Same(t, instance, b.Factory())
		assert.Equal(t, DefaultOrder, b.Order)
	})

	t.Run("SharedOrdered keeps the explicit order", func(t *testing.T) {
		b := SharedOrdered(5, NewLoggingInterceptor(nil))

		assert.Equal(t, 5, b.Order)
	})
}
