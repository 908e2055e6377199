package service

import (
	"time"

	"github.com/shopspring/decimal"
)

/* =======================================================
   Time entry lifecycle calculator. Pure: no DB, no side
   effects; the caller persists the result. Re-invoked on
   every mutation of clock times, breaks, rate, or the
   billable flag.
   ======================================================= */

// BreakInput is one break interval as the calculator sees it.
type BreakInput struct {
	Start           time.Time
	End             *time.Time // nil = still open, measured to the entry end
	DurationMinutes *int       // overrides End−Start when set
	IsPaid          bool
}

// CalcInput is the calculator's boundary contract.
type CalcInput struct {
	ClockIn            time.Time
	ClockOut           *time.Time // nil = open entry, measured to Now
	Now                time.Time
	Breaks             []BreakInput
	DailyLimit         int // hours before overtime starts
	OvertimeMultiplier decimal.Decimal
	IsBillable         bool
	HourlyRate         *decimal.Decimal
}

// CalcResult carries the derived fields, all rounded to two decimals.
type CalcResult struct {
	RegularHours   decimal.Decimal
	OvertimeHours  decimal.Decimal
	TotalHours     decimal.Decimal
	BreakHours     decimal.Decimal
	BillableAmount decimal.Decimal
}

var secondsPerHour = decimal.NewFromInt(3600)

// Recompute derives hour totals and the billable amount for one entry.
// Returns ErrInvalidInterval when the entry or any break ends before it
// starts.
func Recompute(in CalcInput) (CalcResult, error) {
	end := in.Now
	if in.ClockOut != nil {
		end = *in.ClockOut
	}
	if end.Before(in.ClockIn) {
		return CalcResult{}, ErrInvalidInterval
	}

	// open breaks are clamped to the entry end so break time never
	// exceeds the in-shift interval
	breakHours, err := unpaidBreakHours(in.Breaks, end)
	if err != nil {
		return CalcResult{}, err
	}

	rawHours := hoursBetween(in.ClockIn, end)

	total := rawHours.Sub(breakHours)
	if total.IsNegative() {
		total = decimal.Zero
	}
	total = total.Round(2)

	limit := decimal.NewFromInt(int64(in.DailyLimit))
	regular := total
	if total.GreaterThan(limit) {
		regular = limit
	}
	regular = regular.Round(2)
	// overtime is the exact remainder so regular + overtime == total holds
	overtime := total.Sub(regular)

	billable := decimal.Zero
	if in.IsBillable && in.HourlyRate != nil && !in.HourlyRate.IsZero() {
		rate := *in.HourlyRate
		billable = regular.Mul(rate).
			Add(overtime.Mul(rate).Mul(in.OvertimeMultiplier)).
			Round(2)
	}

	return CalcResult{
		RegularHours:   regular,
		OvertimeHours:  overtime,
		TotalHours:     total,
		BreakHours:     breakHours.Round(2),
		BillableAmount: billable,
	}, nil
}

// unpaidBreakHours sums unpaid break durations. A set DurationMinutes wins;
// otherwise the interval is measured, with open breaks measured to the
// entry end (clock-out when set, else now).
func unpaidBreakHours(breaks []BreakInput, entryEnd time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, b := range breaks {
		end := entryEnd
		if b.End != nil {
			end = *b.End
		}
		if end.Before(b.Start) {
			return decimal.Zero, ErrInvalidInterval
		}
		if b.IsPaid {
			continue
		}
		if b.DurationMinutes != nil {
			sum = sum.Add(decimal.NewFromInt(int64(*b.DurationMinutes)).Div(decimal.NewFromInt(60)))
			continue
		}
		sum = sum.Add(hoursBetween(b.Start, end))
	}
	return sum, nil
}

func hoursBetween(start, end time.Time) decimal.Decimal {
	return decimal.NewFromInt(int64(end.Sub(start) / time.Second)).Div(secondsPerHour)
}
