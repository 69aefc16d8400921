// Package proxy produces the runtime stand-in that fronts a service
// implementation and routes every contract method call through the
// interception pipeline.
//
// Go has no runtime primitive for fabricating interface implementations,
// so the proxy exposes a dispatch table instead: callers invoke contract
// methods by name through Call, and the proxy performs the late-bound call
// on the backing implementation after running the applicable interceptor
// chain. A typed forwarding wrapper over Call can be written (or
// generated) per contract when a compile-time interface surface is needed.
//
//	greeter := &EnglishGreeter{}
//	p, err := proxy.New[Greeter](greeter,
//		proxy.WithRegistry[Greeter](reg),
//		proxy.WithProvider[Greeter](c),
//	)
//	results, err := p.Call(ctx, "Say", "Ann")
//
// When no interceptors apply to a method, Call invokes the implementation
// directly without building an invocation or a chain.
package proxy
