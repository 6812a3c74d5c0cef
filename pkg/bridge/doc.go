// Package bridge implements the remote-manipulation protocol over live
// primitive trees: the request/response envelopes, the per-method parameter
// schemas, the stable error-code vocabulary, and the dispatcher that ties
// them to a registry.
//
// Transports stay thin: they carry envelopes to HandleRequest and deliver the
// returned envelope verbatim. Successful mutations are additionally announced
// on a subscriber hub so renderers and devtools panels can follow along.
package bridge
