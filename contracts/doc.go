// Package contracts provides the core types shared across the interception
// pipeline.
//
// This package defines what flows through a proxied call:
//   - Method: descriptor for a single contract method
//   - Invocation: per-call state (arguments, result slot, invocation ID)
//   - The error taxonomy surfaced by the proxy and its collaborators
//
// A contract is always a Go interface type. ContractOf resolves and
// validates the interface for a type parameter; violations are reported
// as *ConfigError at setup time, never at call time.
package contracts
