package registry

import (
	"github.com/GabrielRStella/QORA/attrval"
	"github.com/GabrielRStella/QORA/wstate"
)

// Registry is the type catalogue shared by an entire learner instance: the
// attribute types, object classes, and actions that every Object, State,
// Condition, and persisted document indexes into by id.
//
// Ids are assigned densely starting at 0, in registration order, and are
// never reused. Construct a Registry with New: the zero value's name maps
// are nil, so registering into it panics.
type Registry struct {
	attrTypes   []AttributeType
	attrByName  map[string]int
	classes     []ObjectClass
	classByName map[string]int
	actions     []Action
	actionByName map[string]int
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		attrByName:   make(map[string]int),
		classByName:  make(map[string]int),
		actionByName: make(map[string]int),
	}
}

// AddAttributeType registers a new attribute type of the given width and
// returns its id. Returns ErrDuplicateName if name is already registered.
func (r *Registry) AddAttributeType(name string, width int) (int, error) {
	if _, exists := r.attrByName[name]; exists {
		return 0, ErrDuplicateName
	}
	id := len(r.attrTypes)
	r.attrTypes = append(r.attrTypes, AttributeType{ID: id, Name: name, Width: width})
	r.attrByName[name] = id
	return id, nil
}

// AttributeType returns the attribute type registered at id.
func (r *Registry) AttributeType(id int) (AttributeType, error) {
	if id < 0 || id >= len(r.attrTypes) {
		return AttributeType{}, ErrUnknownID
	}
	return r.attrTypes[id], nil
}

// AttributeTypeByName returns the attribute type registered under name.
func (r *Registry) AttributeTypeByName(name string) (AttributeType, error) {
	id, ok := r.attrByName[name]
	if !ok {
		return AttributeType{}, ErrUnknownName
	}
	return r.attrTypes[id], nil
}

// AddObjectClass registers a new, initially attribute-less object class and
// returns its id. Returns ErrDuplicateName if name is already registered.
func (r *Registry) AddObjectClass(name string) (int, error) {
	if _, exists := r.classByName[name]; exists {
		return 0, ErrDuplicateName
	}
	id := len(r.classes)
	r.classes = append(r.classes, ObjectClass{ID: id, Name: name, hasAttribute: make(map[int]bool)})
	r.classByName[name] = id
	return id, nil
}

// ObjectClass returns the object class registered at id.
func (r *Registry) ObjectClass(id int) (ObjectClass, error) {
	if id < 0 || id >= len(r.classes) {
		return ObjectClass{}, ErrUnknownID
	}
	return r.classes[id], nil
}

// ObjectClassByName returns the object class registered under name.
func (r *Registry) ObjectClassByName(name string) (ObjectClass, error) {
	id, ok := r.classByName[name]
	if !ok {
		return ObjectClass{}, ErrUnknownName
	}
	return r.classes[id], nil
}

// AddAttributeToClass associates attribute type attrID with object class
// classID. Returns ErrUnknownID if either id is unregistered, or
// ErrAttributeAlreadyInClass if the pair was already associated.
func (r *Registry) AddAttributeToClass(classID, attrID int) error {
	if classID < 0 || classID >= len(r.classes) {
		return ErrUnknownID
	}
	if attrID < 0 || attrID >= len(r.attrTypes) {
		return ErrUnknownID
	}
	cls := &r.classes[classID]
	if cls.hasAttribute[attrID] {
		return ErrAttributeAlreadyInClass
	}
	cls.hasAttribute[attrID] = true
	cls.AttributeIDs = append(cls.AttributeIDs, attrID)
	return nil
}

// NewAction registers a new action and returns its id. Returns
// ErrDuplicateName if name is already registered.
func (r *Registry) NewAction(name string) (int, error) {
	if _, exists := r.actionByName[name]; exists {
		return 0, ErrDuplicateName
	}
	id := len(r.actions)
	r.actions = append(r.actions, Action{ID: id, Name: name})
	r.actionByName[name] = id
	return id, nil
}

// AddStandardActions populates the five standard actions (NOOP, MOVE_LEFT,
// MOVE_RIGHT, MOVE_UP, MOVE_DOWN) at ids 0..4. It may be called at most
// once, and only on a Registry with no actions registered yet.
func (r *Registry) AddStandardActions() error {
	if len(r.actions) != 0 {
		return ErrStandardActionsAlreadyAdded
	}
	for _, name := range standardActionNames {
		if _, err := r.NewAction(name); err != nil {
			return err
		}
	}
	return nil
}

// Action returns the action registered at id.
func (r *Registry) Action(id int) (Action, error) {
	if id < 0 || id >= len(r.actions) {
		return Action{}, ErrUnknownID
	}
	return r.actions[id], nil
}

// ActionByName returns the action registered under name.
func (r *Registry) ActionByName(name string) (Action, error) {
	id, ok := r.actionByName[name]
	if !ok {
		return Action{}, ErrUnknownName
	}
	return r.actions[id], nil
}

// CreateObject materializes an Object of the given class and object id,
// with every attribute of the class present and set to its zero vector.
func (r *Registry) CreateObject(classID, objectID int) (wstate.Object, error) {
	cls, err := r.ObjectClass(classID)
	if err != nil {
		return wstate.Object{}, err
	}
	attrs := make(map[int]attrval.Value, len(cls.AttributeIDs))
	for _, attrID := range cls.AttributeIDs {
		at, err := r.AttributeType(attrID)
		if err != nil {
			return wstate.Object{}, err
		}
		attrs[attrID] = attrval.Zero(at.Width)
	}
	return wstate.New(classID, objectID, attrs), nil
}
