// Package observability instruments the bridge with prometheus metrics:
// request counts and latencies per method, and published mutation events.
package observability
