// Package classify maps O*NET taxonomy element names onto the internal
// aptitude vocabulary using an ordered list of case-insensitive patterns.
//
// Rule order is part of the configuration: a name matching several patterns
// is assigned the aptitude of the earliest rule.
package classify

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/okian/delfos/internal/domain/aptitude"
)

// ErrInvalidRule is returned when a rule pattern does not compile or names an
// aptitude outside the closed set.
var ErrInvalidRule = errors.New("invalid classification rule")

// Rule pairs a pattern with the aptitude it selects.
type Rule struct {
	Pattern  string
	Aptitude aptitude.ID
}

type compiled struct {
	re       *regexp.Regexp
	aptitude aptitude.ID
}

// Classifier evaluates rules in order, first match wins. It is safe for
// concurrent use.
type Classifier struct {
	rules []compiled
}

// New compiles rules, preserving their order.
func New(rules []Rule) (*Classifier, error) {
	c := &Classifier{rules: make([]compiled, 0, len(rules))}
	for i, r := range rules {
		if !aptitude.Valid(r.Aptitude) {
			return nil, fmt.Errorf("%w: rule %d: %w", ErrInvalidRule, i, aptitude.ErrUnknownAptitude)
		}
		if r.Pattern == "" {
			return nil, fmt.Errorf("%w: rule %d: empty pattern", ErrInvalidRule, i)
		}
		re, err := regexp.Compile("(?i)" + r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d: %w", ErrInvalidRule, i, err)
		}
		c.rules = append(c.rules, compiled{re: re, aptitude: r.Aptitude})
	}
	return c, nil
}

// Default returns a classifier over DefaultRules.
func Default() *Classifier {
	c, err := New(DefaultRules())
	if err != nil {
		panic(err)
	}
	return c
}

// Classify returns the aptitude of the first matching rule. ok is false when
// no rule matches.
func (c *Classifier) Classify(elementName string) (id aptitude.ID, ok bool) {
	if elementName == "" {
		return "", false
	}
	for _, r := range c.rules {
		if r.re.MatchString(elementName) {
			return r.aptitude, true
		}
	}
	return "", false
}

// Len returns the number of rules.
func (c *Classifier) Len() int { return len(c.rules) }
