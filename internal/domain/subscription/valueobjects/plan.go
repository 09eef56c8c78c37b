package valueobjects

import (
	"fmt"
	"strings"
)

// Plan identifies the purchased offering.
type Plan string

const (
	PlanMonthly  Plan = "monthly"
	PlanLifetime Plan = "lifetime"
)

var ValidPlans = map[Plan]bool{
	PlanMonthly:  true,
	PlanLifetime: true,
}

// ParsePlan parses a string to Plan (case-insensitive)
func ParsePlan(value string) (Plan, error) {
	plan := Plan(strings.ToLower(strings.TrimSpace(value)))
	if !ValidPlans[plan] {
		return "", fmt.Errorf("invalid plan: %s", value)
	}
	return plan, nil
}

func (p Plan) String() string {
	return string(p)
}

// IsLifetime reports whether the plan grants perpetual access after a
// one-time payment.
func (p Plan) IsLifetime() bool {
	return p == PlanLifetime
}

// IsRecurring reports whether the plan renews on a billing period.
func (p Plan) IsRecurring() bool {
	return p == PlanMonthly
}
