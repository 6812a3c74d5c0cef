package bridge

// Wire-level error codes. These are stable and never repurposed: callers
// branch on them programmatically, so renaming one is a breaking change.
const (
	CodeInvalidParams           = "INVALID_PARAMS"
	CodeComponentNotFound       = "COMPONENT_NOT_FOUND"
	CodeModificationFailed      = "MODIFICATION_FAILED"
	CodeInsertionFailed         = "INSERTION_FAILED"
	CodeRemovalFailed           = "REMOVAL_FAILED"
	CodeHandlerInvocationFailed = "HANDLER_INVOCATION_FAILED"
	CodeUnknownMethod           = "UNKNOWN_METHOD"
)

// Method names exposed by the dispatcher.
const (
	MethodGetComponentTree   = "get_component_tree"
	MethodGetComponentList   = "get_component_list"
	MethodModifyComponent    = "modify_component"
	MethodInsertComponent    = "insert_component"
	MethodRemoveComponent    = "remove_component"
	MethodInvokeMotifHandler = "invoke_motif_handler"
)

// Methods returns every method name the dispatcher understands. Transport
// adapters use this as the binding table when they register one handler per
// method (e.g. one MCP tool each).
func Methods() []string {
	return []string{
		MethodGetComponentTree,
		MethodGetComponentList,
		MethodModifyComponent,
		MethodInsertComponent,
		MethodRemoveComponent,
		MethodInvokeMotifHandler,
	}
}
