package domain

import "errors"

// ErrComponentNotFound is returned when a component name has no registered root.
var ErrComponentNotFound = errors.New("component not found")

// ErrPathNotFound is returned when a path does not resolve to a node.
var ErrPathNotFound = errors.New("path not found")

// ErrRootRemoval is returned when a removal targets a component's root node.
// Every registered component must always retain its root.
var ErrRootRemoval = errors.New("cannot remove component root")

// ErrHandlerNotFound is returned when a handler id has no registered callable.
var ErrHandlerNotFound = errors.New("handler not found")

// ErrMissingType is returned when a primitive definition lacks a type tag.
var ErrMissingType = errors.New("missing type tag")
