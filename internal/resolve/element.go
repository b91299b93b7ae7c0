package resolve

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mj1618/desktop-mcp/internal/model"
	"github.com/mj1618/desktop-mcp/internal/platform"
	"github.com/mj1618/desktop-mcp/internal/retry"
)

// Tier is one step of element resolution. Tiers run in a fixed order and the
// first one that finds an element wins.
type Tier struct {
	Name string
	// Find returns (nil, nil) when the tier has no match.
	Find func(scope platform.Element, field string) (platform.Element, error)
}

func descendant(cond func(field string) platform.Condition) func(platform.Element, string) (platform.Element, error) {
	return func(scope platform.Element, field string) (platform.Element, error) {
		return platform.FindFirst(scope, cond(field))
	}
}

var (
	automationIDTier = Tier{Name: "automation-id", Find: descendant(platform.ByAutomationID)}
	nameTier         = Tier{Name: "name", Find: descendant(platform.ByName)}
	nameFoldTier     = Tier{Name: "name-fold", Find: descendant(nameFold)}
)

// Tiers is the element resolution order.
var Tiers = []Tier{
	automationIDTier,
	{Name: "editable-name", Find: descendant(func(f string) platform.Condition {
		return platform.And(platform.ByControlTypes(model.EditableTypes), platform.ByName(f))
	})},
	nameTier,
	{Name: "editable-name-fold", Find: descendant(func(f string) platform.Condition {
		return platform.And(platform.ByControlTypes(model.EditableTypes), nameFold(f))
	})},
	nameFoldTier,
	{Name: "interactive-contains", Find: descendant(func(f string) platform.Condition {
		return platform.And(platform.ByControlTypes(model.InteractiveTypes), nameContains(f))
	})},
	{Name: "class-name", Find: descendant(platform.ByClassName)},
	{Name: "control-type", Find: func(scope platform.Element, field string) (platform.Element, error) {
		ct, ok := model.ParseControlType(field)
		if !ok {
			return nil, nil
		}
		return platform.FindFirst(scope, platform.ByControlType(ct))
	}},
}

// ItemTiers resolves list, combo box and tree items. Items are named by
// their text, so class and control-type matching do not apply.
var ItemTiers = []Tier{automationIDTier, nameTier, nameFoldTier}

func nameContains(want string) platform.Condition {
	return func(el platform.Element) bool {
		v, err := el.Name()
		return err == nil && containsFold(v, want)
	}
}

// ElementMatch is a resolved element and the tier that found it.
type ElementMatch struct {
	Element platform.Element
	Tier    string
}

// ElementResolver finds a field inside a search scope.
type ElementResolver struct {
	Logger *zap.Logger
}

// Resolve re-runs the whole tier list on every poll iteration until an
// element is found or the policy times out.
func (r *ElementResolver) Resolve(ctx context.Context, scope platform.Element, field string, p retry.Policy) (ElementMatch, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return ElementMatch{}, ErrEmptyIdentifier
	}
	m, err := retry.Poll(ctx, p, func(context.Context) (ElementMatch, bool, error) {
		m, ok := r.Find(scope, field)
		return m, ok, nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return ElementMatch{}, err
		}
		return ElementMatch{}, fmt.Errorf("%w: %q: %w", ErrElementNotFound, field, err)
	}
	r.logger().Debug("element resolved", zap.String("field", field), zap.String("tier", m.Tier))
	return m, nil
}

// Find makes a single pass over Tiers. Provider errors inside a tier count
// as no match for that tier.
func (r *ElementResolver) Find(scope platform.Element, field string) (ElementMatch, bool) {
	return r.FindWith(Tiers, scope, field)
}

// FindWith makes a single pass over tiers.
func (r *ElementResolver) FindWith(tiers []Tier, scope platform.Element, field string) (ElementMatch, bool) {
	for _, t := range tiers {
		el, err := t.Find(scope, field)
		if err != nil {
			r.logger().Debug("resolution tier failed", zap.String("tier", t.Name), zap.Error(err))
			continue
		}
		if el != nil {
			return ElementMatch{Element: el, Tier: t.Name}, true
		}
	}
	return ElementMatch{}, false
}

func (r *ElementResolver) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}
