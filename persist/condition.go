package persist

import (
	"fmt"

	"github.com/GabrielRStella/QORA/condition"
	"github.com/GabrielRStella/QORA/registry"
)

func encodeCondition(c condition.Condition, reg *registry.Registry, path string) (ConditionDocument, error) {
	doc := ConditionDocument{}
	for gi, g := range c.Groups {
		gdoc := RelationGroupDocument{}
		if g.OtherClassID != condition.NoOtherClass {
			cls, err := reg.ObjectClass(g.OtherClassID)
			if err != nil {
				return ConditionDocument{}, fmt.Errorf("%w: %s.groups[%d].other_class id %d", ErrUnknownName, path, gi, g.OtherClassID)
			}
			name := cls.Name
			gdoc.OtherClass = &name
		}
		for pi, p := range g.Predicates {
			at, err := reg.AttributeType(p.AttributeID)
			if err != nil {
				return ConditionDocument{}, fmt.Errorf("%w: %s.groups[%d].predicates[%d].attribute id %d", ErrUnknownName, path, gi, pi, p.AttributeID)
			}
			gdoc.Predicates = append(gdoc.Predicates, PredicateDocument{
				Attribute:  at.Name,
				IsRelative: p.IsRelative,
				IsTarget:   p.IsTarget,
				Value:      p.Value,
			})
		}
		doc.Groups = append(doc.Groups, gdoc)
	}
	return doc, nil
}

func decodeCondition(doc ConditionDocument, reg *registry.Registry, path string) (condition.Condition, error) {
	groups := make([]condition.RelationGroup, 0, len(doc.Groups))
	for gi, gdoc := range doc.Groups {
		otherClassID := condition.NoOtherClass
		if gdoc.OtherClass != nil {
			cls, err := reg.ObjectClassByName(*gdoc.OtherClass)
			if err != nil {
				return condition.Condition{}, fmt.Errorf("%w: %s.groups[%d].other_class %q", ErrUnknownName, path, gi, *gdoc.OtherClass)
			}
			otherClassID = cls.ID
		}
		predicates := make([]condition.Predicate, 0, len(gdoc.Predicates))
		for pi, pdoc := range gdoc.Predicates {
			at, err := reg.AttributeTypeByName(pdoc.Attribute)
			if err != nil {
				return condition.Condition{}, fmt.Errorf("%w: %s.groups[%d].predicates[%d].attribute %q", ErrUnknownName, path, gi, pi, pdoc.Attribute)
			}
			predicates = append(predicates, condition.Predicate{
				AttributeID: at.ID,
				IsRelative:  pdoc.IsRelative,
				IsTarget:    pdoc.IsTarget,
				Value:       pdoc.Value,
			})
		}
		groups = append(groups, condition.NewRelationGroup(otherClassID, predicates...))
	}
	return condition.NewCondition(groups...), nil
}
