// Package ports defines the narrow interfaces that connect the bridge core
// to its adapters. Transports accept a RequestHandler instead of the concrete
// dispatcher so that middleware can be layered in between.
package ports
