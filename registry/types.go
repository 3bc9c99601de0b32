package registry

// AttributeType is a named, fixed-width attribute kind (e.g. "position"
// width 2, "health" width 1).
type AttributeType struct {
	ID    int
	Name  string
	Width int
}

// ObjectClass is a named collection of attribute-type ids. Every Object
// created from a class carries exactly this set of attributes.
type ObjectClass struct {
	ID           int
	Name         string
	AttributeIDs []int
	hasAttribute map[int]bool
}

// HasAttribute reports whether attrID is a member of the class's attribute
// set.
func (c ObjectClass) HasAttribute(attrID int) bool {
	return c.hasAttribute[attrID]
}

// Action is a named, densely-id'd action. The five standard ids are
// reserved by AddStandardActions.
type Action struct {
	ID   int
	Name string
}

// Standard action ids, populated by AddStandardActions at ids 0..4.
const (
	ActionNoop      = 0
	ActionMoveLeft  = 1
	ActionMoveRight = 2
	ActionMoveUp    = 3
	ActionMoveDown  = 4
)

var standardActionNames = [...]string{
	ActionNoop:      "NOOP",
	ActionMoveLeft:  "MOVE_LEFT",
	ActionMoveRight: "MOVE_RIGHT",
	ActionMoveUp:    "MOVE_UP",
	ActionMoveDown:  "MOVE_DOWN",
}
