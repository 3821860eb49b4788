package propchain

import (
	"fmt"

	"github.com/a-peyrard/propchain/option"
)

type (
	condition struct {
		key      string
		operator operator
		value    string
	}

	operator struct {
		symbol string
		test   func(found bool, actual, expected string) bool
	}

	ConditionKeyBuilder struct {
		key string
	}
)

//goland:noinspection GoVarAndConstTypeMayBeOmitted
var (
	equals = operator{
		symbol: "==",
		test: func(found bool, actual, expected string) bool {
			return found && actual == expected
		},
	}

	notEquals = operator{
		symbol: "!=",
		test: func(found bool, actual, expected string) bool {
			return found && actual != expected
		},
	}

	present = operator{
		symbol: "is present",
		test: func(found bool, _, _ string) bool {
			return found
		},
	}

	missing = operator{
		symbol: "is missing",
		test: func(found bool, _, _ string) bool {
			return !found
		},
	}
)

// When starts a condition on the value the chain resolves for key at insertion time.
//
//	chain.AddFirst(devSource, propchain.When("app.profile").Equals("dev"))
func When(key string) ConditionKeyBuilder {
	return ConditionKeyBuilder{key: key}
}

func (cb ConditionKeyBuilder) Equals(value string) option.Option[AddOptions] {
	return cb.build(equals, value)
}

func (cb ConditionKeyBuilder) NotEquals(value string) option.Option[AddOptions] {
	return cb.build(notEquals, value)
}

func (cb ConditionKeyBuilder) IsPresent() option.Option[AddOptions] {
	return cb.build(present, "")
}

func (cb ConditionKeyBuilder) IsMissing() option.Option[AddOptions] {
	return cb.build(missing, "")
}

func (cb ConditionKeyBuilder) build(op operator, value string) option.Option[AddOptions] {
	return func(opts *AddOptions) {
		opts.conditions = append(
			opts.conditions,
			condition{
				key:      cb.key,
				operator: op,
				value:    value,
			},
		)
	}
}

func (c condition) String() string {
	if c.operator.symbol == present.symbol || c.operator.symbol == missing.symbol {
		return fmt.Sprintf("%s %s", c.key, c.operator.symbol)
	}
	return fmt.Sprintf("%s %s %q", c.key, c.operator.symbol, c.value)
}

func (c *Chain) validateCondition(cond condition) bool {
	actual, found := c.ResolveString(cond.key)
	return cond.operator.test(found, actual, cond.value)
}
