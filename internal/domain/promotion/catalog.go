package promotion

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// Catalog is an immutable, ordered set of promotion rules.
// Every product code is bound to at most one rule.
type Catalog struct {
	rules  []Rule
	byCode map[string]int
}

// NewCatalog validates rules and freezes them in declaration order.
func NewCatalog(rules ...Rule) (*Catalog, error) {
	c := &Catalog{
		rules:  make([]Rule, 0, len(rules)),
		byCode: make(map[string]int),
	}
	for i, r := range rules {
		if err := r.validate(); err != nil {
			return nil, fmt.Errorf("rule %q: %w", r.ID, err)
		}
		r.Codes = slices.Clone(r.Codes)
		for _, code := range r.Codes {
			prev, ok := c.byCode[code]
			if ok && prev == i {
				continue
			}
			if ok {
				return nil, fmt.Errorf("%w: %s (%s, %s)", ErrOverlappingRules, code, c.rules[prev].ID, r.ID)
			}
			c.byCode[code] = i
		}
		c.rules = append(c.rules, r)
	}
	return c, nil
}

// MustNewCatalog is like NewCatalog but panics on an invalid rule set.
func MustNewCatalog(rules ...Rule) *Catalog {
	c, err := NewCatalog(rules...)
	if err != nil {
		panic(err)
	}
	return c
}

// Default returns the shop's standard promotions.
func Default() *Catalog {
	return MustNewCatalog(
		Rule{
			ID:          TwoForOneVoucher,
			Kind:        KindPairedUnit,
			Codes:       []string{CodeVoucher},
			Description: "2-for-1: Buy 2, get 1 free",
			BonusUnits:  1,
		},
		Rule{
			ID:          BulkTShirt,
			Kind:        KindVolumeThreshold,
			Codes:       []string{CodeTShirt},
			Description: "Buy 3+, get € 1 discount",
			Threshold:   3,
			Amount:      decimal.NewFromInt(1),
		},
	)
}

// Empty returns a catalog without promotions.
func Empty() *Catalog {
	return MustNewCatalog()
}

// Rules returns the rules in declaration order.
func (c *Catalog) Rules() []Rule {
	if c == nil {
		return nil
	}
	out := make([]Rule, len(c.rules))
	for i, r := range c.rules {
		r.Codes = slices.Clone(r.Codes)
		out[i] = r
	}
	return out
}

// RulesFor returns, in declaration order, the rules whose codes contain code.
func (c *Catalog) RulesFor(code string) []Rule {
	if c == nil {
		return nil
	}
	var out []Rule
	for _, r := range c.rules {
		if r.AppliesTo(code) {
			r.Codes = slices.Clone(r.Codes)
			out = append(out, r)
		}
	}
	return out
}

// CodesWithActiveDeals is the union of every rule's codes.
// The result is sorted alphabetically, not in declaration order.
func (c *Catalog) CodesWithActiveDeals() []string {
	if c == nil {
		return nil
	}
	codes := make([]string, 0, len(c.byCode))
	for code := range c.byCode {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

func (c *Catalog) HasDeal(code string) bool {
	if c == nil {
		return false
	}
	_, ok := c.byCode[code]
	return ok
}

// Descriptions lists the description of every rule targeting code.
func (c *Catalog) Descriptions(code string) []string {
	var out []string
	for _, r := range c.RulesFor(code) {
		out = append(out, r.Description)
	}
	return out
}
