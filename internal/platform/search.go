package platform

import "github.com/mj1618/desktop-mcp/internal/model"

// Condition matches a single element during a descendant search.
// Read errors inside a condition count as "does not match".
type Condition func(Element) bool

// ByAutomationID matches elements whose automation id equals id exactly.
func ByAutomationID(id string) Condition {
	return func(el Element) bool {
		v, err := el.AutomationID()
		return err == nil && v == id
	}
}

// ByName matches elements whose name equals name exactly.
func ByName(name string) Condition {
	return func(el Element) bool {
		v, err := el.Name()
		return err == nil && v == name
	}
}

// ByClassName matches elements whose class name equals cls exactly.
func ByClassName(cls string) Condition {
	return func(el Element) bool {
		v, err := el.ClassName()
		return err == nil && v == cls
	}
}

// ByControlType matches elements of the given control type.
func ByControlType(ct model.ControlType) Condition {
	return func(el Element) bool {
		v, err := el.ControlType()
		return err == nil && v == ct
	}
}

// ByControlTypes matches elements whose control type is in set.
func ByControlTypes(set []model.ControlType) Condition {
	return func(el Element) bool {
		v, err := el.ControlType()
		return err == nil && model.ContainsType(set, v)
	}
}

// And matches when every condition matches.
func And(conds ...Condition) Condition {
	return func(el Element) bool {
		for _, c := range conds {
			if !c(el) {
				return false
			}
		}
		return true
	}
}

// FindFirst returns the first descendant of scope (excluding scope itself)
// that satisfies cond, in depth-first pre-order. It returns (nil, nil) when
// nothing matches. Providers implementing DescendantFinder are delegated to.
//
// Children that fail to enumerate are skipped; only a failure to enumerate
// scope's own children is reported.
func FindFirst(scope Element, cond Condition) (Element, error) {
	if f, ok := scope.(DescendantFinder); ok {
		return f.FindFirstDescendant(cond)
	}
	children, err := scope.Children()
	if err != nil {
		return nil, err
	}
	return findIn(children, cond), nil
}

func findIn(elements []Element, cond Condition) Element {
	for _, el := range elements {
		if cond(el) {
			return el
		}
		children, err := el.Children()
		if err != nil {
			continue
		}
		if found := findIn(children, cond); found != nil {
			return found
		}
	}
	return nil
}
