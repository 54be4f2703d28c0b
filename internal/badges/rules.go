package badges

import (
	"strings"
	"sync"
	"time"

	"github.com/jloaiza/melisearch/internal/catalog"
	"github.com/jloaiza/melisearch/internal/domain"
)

// Rule attaches a badge to products carrying a given attribute.
// With Equals empty, any value of the attribute matches; otherwise the
// attribute value must match case-insensitively.
type Rule struct {
	Badge     string `yaml:"badge"`
	Attribute string `yaml:"attribute"`
	Equals    string `yaml:"equals,omitempty"`
}

// RuleSet holds the active badge rules. It is safe for concurrent use:
// searches read it while the reloader swaps rules underneath.
type RuleSet struct {
	mu         sync.RWMutex
	rules      []Rule
	lastReload time.Time
}

// NewRuleSet creates an empty rule set (no badges).
func NewRuleSet() *RuleSet {
	return &RuleSet{}
}

// Update replaces all rules.
func (rs *RuleSet) Update(rules []Rule) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	rs.rules = rules
	rs.lastReload = time.Now()
}

// Count returns the number of active rules.
func (rs *RuleSet) Count() int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	return len(rs.rules)
}

// LastReload returns the timestamp of the last rules update.
func (rs *RuleSet) LastReload() time.Time {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	return rs.lastReload
}

// BadgesFor evaluates every rule against the record's attributes and
// returns the matching badges in rule order. Deterministic: the same
// record and rules always yield the same badges.
func (rs *RuleSet) BadgesFor(rec catalog.Record) []domain.Badge {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	var matched []domain.Badge
	for _, rule := range rs.rules {
		value, ok := catalog.AttributeValue(rec, rule.Attribute)
		if !ok {
			continue
		}
		if rule.Equals != "" && !strings.EqualFold(value, rule.Equals) {
			continue
		}
		matched = append(matched, domain.Badge(rule.Badge))
	}
	return matched
}
