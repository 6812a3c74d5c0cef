package domain

// EventType names a structural-change announcement emitted after a
// successful mutation.
type EventType string

const (
	EventComponentModified EventType = "component_modified"
	EventComponentInserted EventType = "component_inserted"
	EventComponentRemoved  EventType = "component_removed"
)

// MutationEvent is the payload delivered to observers after a mutation.
// Exactly one of the optional fields is set depending on the event type.
// Index is a pointer so that an insert at position zero still serializes;
// it is nil for non-insert events.
type MutationEvent struct {
	ComponentName string         `json:"componentName"`
	Path          []string       `json:"path,omitempty"`
	ParentPath    []string       `json:"parentPath,omitempty"`
	Modifications map[string]any `json:"modifications,omitempty"`
	PrimitiveID   string         `json:"primitiveId,omitempty"`
	Index         *int           `json:"index,omitempty"`
}
