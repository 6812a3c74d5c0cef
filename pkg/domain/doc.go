// Package domain contains the core vocabulary of the bridge: the primitive
// node tree, path resolution over it, serialization to plain data, and the
// mutation events announced to observers.
//
// The types here are transport-agnostic. Adapters and the dispatcher build on
// them; nothing in this package knows about wire envelopes or error codes.
package domain
