package persist

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/GabrielRStella/QORA/attrval"
	"github.com/GabrielRStella/QORA/registry"
	"github.com/GabrielRStella/QORA/wstate"
)

// EncodeRegistry renders reg as a JSON document, names in id order.
func EncodeRegistry(reg *registry.Registry) ([]byte, error) {
	doc := RegistryDocument{}
	for id := 0; ; id++ {
		at, err := reg.AttributeType(id)
		if err != nil {
			break
		}
		doc.AttributeTypes = append(doc.AttributeTypes, AttributeTypeDocument{Name: at.Name, Width: at.Width})
	}
	for id := 0; ; id++ {
		cls, err := reg.ObjectClass(id)
		if err != nil {
			break
		}
		cdoc := ObjectClassDocument{Name: cls.Name}
		for _, attrID := range cls.AttributeIDs {
			at, err := reg.AttributeType(attrID)
			if err != nil {
				return nil, fmt.Errorf("%w: object_classes[%d] attribute id %d", ErrUnknownName, id, attrID)
			}
			cdoc.Attributes = append(cdoc.Attributes, at.Name)
		}
		doc.ObjectClasses = append(doc.ObjectClasses, cdoc)
	}
	for id := 0; ; id++ {
		a, err := reg.Action(id)
		if err != nil {
			break
		}
		doc.Actions = append(doc.Actions, a.Name)
	}
	return json.MarshalIndent(doc, "", " ")
}

// DecodeRegistry builds a fresh Registry from a document produced by
// EncodeRegistry. Ids are assigned densely in document order, so a
// round-tripped registry assigns the same ids as the original.
func DecodeRegistry(data []byte) (*registry.Registry, error) {
	var doc RegistryDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: registry: %v", ErrDecode, err)
	}
	reg := registry.New()
	for i, at := range doc.AttributeTypes {
		if _, err := reg.AddAttributeType(at.Name, at.Width); err != nil {
			return nil, fmt.Errorf("%w: attribute_types[%d] %q: %v", ErrDecode, i, at.Name, err)
		}
	}
	for i, cdoc := range doc.ObjectClasses {
		classID, err := reg.AddObjectClass(cdoc.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: object_classes[%d] %q: %v", ErrDecode, i, cdoc.Name, err)
		}
		for j, attrName := range cdoc.Attributes {
			at, err := reg.AttributeTypeByName(attrName)
			if err != nil {
				return nil, fmt.Errorf("%w: object_classes[%d].attributes[%d] %q", ErrUnknownName, i, j, attrName)
			}
			if err := reg.AddAttributeToClass(classID, at.ID); err != nil {
				return nil, fmt.Errorf("%w: object_classes[%d].attributes[%d] %q: %v", ErrDecode, i, j, attrName, err)
			}
		}
	}
	for i, name := range doc.Actions {
		if _, err := reg.NewAction(name); err != nil {
			return nil, fmt.Errorf("%w: actions[%d] %q: %v", ErrDecode, i, name, err)
		}
	}
	return reg, nil
}

// EncodeState renders s as a JSON document with classes and attributes
// keyed by registry name, objects in ascending id order.
func EncodeState(s wstate.State, reg *registry.Registry) ([]byte, error) {
	ids := make([]int, 0, len(s.Objects))
	for id := range s.Objects {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	doc := StateDocument{NextObjectID: s.NextObjectID}
	for _, id := range ids {
		obj := s.Objects[id]
		cls, err := reg.ObjectClass(obj.ClassID)
		if err != nil {
			return nil, fmt.Errorf("%w: objects[%d].class id %d", ErrUnknownName, id, obj.ClassID)
		}
		odoc := ObjectDocument{ID: id, Class: cls.Name, Attributes: make(map[string]attrval.Value, len(obj.Attributes))}
		for attrID, v := range obj.Attributes {
			at, err := reg.AttributeType(attrID)
			if err != nil {
				return nil, fmt.Errorf("%w: objects[%d].attributes id %d", ErrUnknownName, id, attrID)
			}
			odoc.Attributes[at.Name] = v
		}
		doc.Objects = append(doc.Objects, odoc)
	}
	return json.MarshalIndent(doc, "", " ")
}

// DecodeState rebuilds a State from a document produced by EncodeState,
// resolving class and attribute names against reg.
func DecodeState(data []byte, reg *registry.Registry) (wstate.State, error) {
	var doc StateDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return wstate.State{}, fmt.Errorf("%w: state: %v", ErrDecode, err)
	}
	s := wstate.NewState()
	for i, odoc := range doc.Objects {
		cls, err := reg.ObjectClassByName(odoc.Class)
		if err != nil {
			return wstate.State{}, fmt.Errorf("%w: objects[%d].class %q", ErrUnknownName, i, odoc.Class)
		}
		attrs := make(map[int]attrval.Value, len(odoc.Attributes))
		for name, v := range odoc.Attributes {
			at, err := reg.AttributeTypeByName(name)
			if err != nil {
				return wstate.State{}, fmt.Errorf("%w: objects[%d].attributes %q", ErrUnknownName, i, name)
			}
			attrs[at.ID] = v
		}
		if err := s.AddObject(wstate.New(cls.ID, odoc.ID, attrs)); err != nil {
			return wstate.State{}, fmt.Errorf("%w: objects[%d].id %d: %v", ErrDecode, i, odoc.ID, err)
		}
	}
	// NextObjectID may exceed the largest object id; restore it last so
	// AddObject's advancing never undercuts the stored value.
	if doc.NextObjectID > s.NextObjectID {
		s.NextObjectID = doc.NextObjectID
	}
	return s, nil
}
