package domain

import "fmt"

// Budget tracks money allocated to and consumed by a campaign.
// Remaining is derived from Total and Spent and is never set directly.
type Budget struct {
	Total     int64     `json:"total" bson:"total" validate:"gte=0"`
	Currency  string    `json:"currency" bson:"currency" validate:"oneof=USD KRW EUR JPY"`
	Spent     int64     `json:"spent" bson:"spent" validate:"gte=0"`
	Remaining int64     `json:"remaining" bson:"remaining"`
	Breakdown Breakdown `json:"breakdown" bson:"breakdown"`
}

// Breakdown splits the total by spend category. It is advisory: its sum is
// not required to stay within Total.
type Breakdown struct {
	Creative int64 `json:"creative" bson:"creative" validate:"gte=0"`
	Media    int64 `json:"media" bson:"media" validate:"gte=0"`
	Tools    int64 `json:"tools" bson:"tools" validate:"gte=0"`
	Other    int64 `json:"other" bson:"other" validate:"gte=0"`
}

// Utilization returns spent as a percentage of total, 0 for a zero total.
func (b Budget) Utilization() float64 {
	if b.Total <= 0 {
		return 0
	}
	return float64(b.Spent) / float64(b.Total) * 100
}

// Ledger applies spend and budget mutations. OverrunTolerance is the
// fraction of Total that Spent may exceed it by; zero forbids any overrun.
type Ledger struct {
	OverrunTolerance float64
}

// ApplySpend records delta additional spend on c.
func (l Ledger) ApplySpend(c *Campaign, delta int64) error {
	if delta < 0 {
		return NewError(ErrInvalidSpend, "amount", "spend amount must not be negative").
			WithDetail("amount", fmt.Sprint(delta))
	}
	next := c.Budget.Spent + delta
	if float64(next) > float64(c.Budget.Total)*(1+l.OverrunTolerance) {
		return NewError(ErrInvalidSpend, "amount", "spend exceeds campaign budget").
			WithDetail("amount", fmt.Sprint(delta)).
			WithDetail("spent", fmt.Sprint(c.Budget.Spent)).
			WithDetail("total", fmt.Sprint(c.Budget.Total))
	}
	c.Budget.Spent = next
	recomputeBudget(c)
	return nil
}

// SetBudget replaces the campaign total. The total may not drop below what
// has already been spent.
func (l Ledger) SetBudget(c *Campaign, total int64) error {
	if total < 0 {
		return NewError(ErrInvalidBudget, "total", "budget total must not be negative").
			WithDetail("total", fmt.Sprint(total))
	}
	if total < c.Budget.Spent {
		return NewError(ErrInvalidBudget, "total", "budget total is below the amount already spent").
			WithDetail("total", fmt.Sprint(total)).
			WithDetail("spent", fmt.Sprint(c.Budget.Spent))
	}
	c.Budget.Total = total
	recomputeBudget(c)
	return nil
}

func recomputeBudget(c *Campaign) {
	c.Budget.Remaining = c.Budget.Total - c.Budget.Spent
}

// Recompute returns c with every derived field refreshed: budget
// remaining, performance ratios and goal progress. It has no side effects
// and is run before every persist.
func Recompute(c Campaign) Campaign {
	recomputeBudget(&c)
	recomputeMetrics(&c)
	return c
}
