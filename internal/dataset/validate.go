package dataset

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

// ErrEmptySeries is returned when the dataset has no balances at all.
var ErrEmptySeries = errors.New("balance series is empty")

// ConsistencyError reports a month whose start balance does not carry over
// the previous month's end balance.
type ConsistencyError struct {
	Index        int
	Month        string
	Start        decimal.Decimal
	PreviousEnd  decimal.Decimal
	PreviousName string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("%s (index %d): start balance %s does not match %s end balance %s",
		e.Month, e.Index, e.Start.StringFixed(2), e.PreviousName, e.PreviousEnd.StringFixed(2))
}

// Validate checks the hand-authored balance chain. All violations are
// returned together; use multierr.Errors to inspect them one by one.
func Validate(balances []MonthlyBalance) error {
	if len(balances) == 0 {
		return ErrEmptySeries
	}

	var err error
	for i := 1; i < len(balances); i++ {
		prev, cur := balances[i-1], balances[i]
		if !cur.Start.Equal(prev.End) {
			err = multierr.Append(err, &ConsistencyError{
				Index:        i,
				Month:        cur.Month,
				Start:        cur.Start,
				PreviousEnd:  prev.End,
				PreviousName: prev.Month,
			})
		}
	}
	return err
}
