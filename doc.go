/*
Package motif is a remote-manipulation bridge for live UI primitive trees.

It lets an external controller (a design tool, an AI agent, or a devtools
observer) inspect and mutate a running component tree without direct memory
access to the host process: read a tree, modify a node's props, insert or
remove a subtree, or invoke a registered interaction handler by id.

# Concept

A component is a named root of a tree of primitives (type tag, props, ordered
children, render strategy). Nodes are addressed by paths of type tags walked
from the root, first matching child first. The bridge exposes a fixed method
set with a uniform request/response envelope and a stable error-code
vocabulary; rendering, styling, and the transport that carries envelope bytes
are external collaborators wired through adapters.

# Usage

	package main

	import (
		"context"

		"github.com/openmotif/motif"
		"github.com/openmotif/motif/pkg/bridge"
		"github.com/openmotif/motif/pkg/domain"
	)

	func main() {
		b := motif.New()

		root := domain.NewPrimitiveNode("Container", map[string]any{"className": "app"}, "")
		b.RegisterComponent("app", root)

		resp := b.HandleRequest(context.Background(), bridge.Request{
			Method: "get_component_tree",
			Params: map[string]any{"name": "app"},
		})
		_ = resp // {success:true, data: serialized tree}
	}

Transports live under pkg/adapters: an HTTP server (chi), a websocket server,
an MCP server for agent tooling, and a redis publisher for the mutation-event
stream.
*/
package motif
