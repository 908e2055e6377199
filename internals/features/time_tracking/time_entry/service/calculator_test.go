package service_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kerjaku_backend/internals/features/time_tracking/time_entry/service"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRecomputeFullDayWithOvertime(t *testing.T) {
	clockIn := mustTime(t, "2026-03-02T09:00:00Z")
	clockOut := mustTime(t, "2026-03-02T17:30:00Z")

	res, err := service.Recompute(service.CalcInput{
		ClockIn:            clockIn,
		ClockOut:           &clockOut,
		DailyLimit:         8,
		OvertimeMultiplier: dec("1.5"),
	})
	require.NoError(t, err)

	assert.True(t, res.TotalHours.Equal(dec("8.5")), "total: %s", res.TotalHours)
	assert.True(t, res.RegularHours.Equal(dec("8")), "regular: %s", res.RegularHours)
	assert.True(t, res.OvertimeHours.Equal(dec("0.5")), "overtime: %s", res.OvertimeHours)
}

func TestRecomputeSubtractsUnpaidBreak(t *testing.T) {
	clockIn := mustTime(t, "2026-03-02T09:00:00Z")
	clockOut := mustTime(t, "2026-03-02T17:00:00Z")
	breakStart := mustTime(t, "2026-03-02T12:00:00Z")
	breakEnd := mustTime(t, "2026-03-02T12:30:00Z")

	res, err := service.Recompute(service.CalcInput{
		ClockIn:  clockIn,
		ClockOut: &clockOut,
		Breaks: []service.BreakInput{
			{Start: breakStart, End: &breakEnd, IsPaid: false},
		},
		DailyLimit:         8,
		OvertimeMultiplier: dec("1.5"),
	})
	require.NoError(t, err)

	assert.True(t, res.TotalHours.Equal(dec("7.5")), "total: %s", res.TotalHours)
	assert.True(t, res.RegularHours.Equal(dec("7.5")), "regular: %s", res.RegularHours)
	assert.True(t, res.OvertimeHours.IsZero(), "overtime: %s", res.OvertimeHours)
	assert.True(t, res.BreakHours.Equal(dec("0.5")), "break: %s", res.BreakHours)
}

func TestRecomputePaidBreaksDoNotReduceHours(t *testing.T) {
	clockIn := mustTime(t, "2026-03-02T09:00:00Z")
	clockOut := mustTime(t, "2026-03-02T17:00:00Z")
	breakStart := mustTime(t, "2026-03-02T12:00:00Z")
	breakEnd := mustTime(t, "2026-03-02T12:30:00Z")

	res, err := service.Recompute(service.CalcInput{
		ClockIn:  clockIn,
		ClockOut: &clockOut,
		Breaks: []service.BreakInput{
			{Start: breakStart, End: &breakEnd, IsPaid: true},
		},
		DailyLimit:         8,
		OvertimeMultiplier: dec("1.5"),
	})
	require.NoError(t, err)

	assert.True(t, res.TotalHours.Equal(dec("8")), "total: %s", res.TotalHours)
	assert.True(t, res.BreakHours.IsZero(), "break: %s", res.BreakHours)
}

func TestRecomputeBillableAmount(t *testing.T) {
	// rate 50.00, 8 regular + 2 overtime at 1.5x = 550.00
	clockIn := mustTime(t, "2026-03-02T08:00:00Z")
	clockOut := mustTime(t, "2026-03-02T18:00:00Z")
	rate := dec("50.00")

	res, err := service.Recompute(service.CalcInput{
		ClockIn:            clockIn,
		ClockOut:           &clockOut,
		DailyLimit:         8,
		OvertimeMultiplier: dec("1.5"),
		IsBillable:         true,
		HourlyRate:         &rate,
	})
	require.NoError(t, err)

	assert.True(t, res.RegularHours.Equal(dec("8")))
	assert.True(t, res.OvertimeHours.Equal(dec("2")))
	assert.True(t, res.BillableAmount.Equal(dec("550.00")), "billable: %s", res.BillableAmount)
}

func TestRecomputeNotBillableWithoutRate(t *testing.T) {
	clockIn := mustTime(t, "2026-03-02T09:00:00Z")
	clockOut := mustTime(t, "2026-03-02T17:00:00Z")

	res, err := service.Recompute(service.CalcInput{
		ClockIn:            clockIn,
		ClockOut:           &clockOut,
		DailyLimit:         8,
		OvertimeMultiplier: dec("1.5"),
		IsBillable:         true, // billable but no rate
	})
	require.NoError(t, err)
	assert.True(t, res.BillableAmount.IsZero())
}

func TestRecomputeInvalidInterval(t *testing.T) {
	clockIn := mustTime(t, "2026-03-02T17:00:00Z")
	clockOut := mustTime(t, "2026-03-02T09:00:00Z")

	_, err := service.Recompute(service.CalcInput{
		ClockIn:            clockIn,
		ClockOut:           &clockOut,
		DailyLimit:         8,
		OvertimeMultiplier: dec("1.5"),
	})
	assert.ErrorIs(t, err, service.ErrInvalidInterval)
}

func TestRecomputeBreakInvalidInterval(t *testing.T) {
	clockIn := mustTime(t, "2026-03-02T09:00:00Z")
	clockOut := mustTime(t, "2026-03-02T17:00:00Z")
	breakStart := mustTime(t, "2026-03-02T13:00:00Z")
	breakEnd := mustTime(t, "2026-03-02T12:00:00Z")

	_, err := service.Recompute(service.CalcInput{
		ClockIn:            clockIn,
		ClockOut:           &clockOut,
		Breaks:             []service.BreakInput{{Start: breakStart, End: &breakEnd}},
		DailyLimit:         8,
		OvertimeMultiplier: dec("1.5"),
	})
	assert.ErrorIs(t, err, service.ErrInvalidInterval)
}

func TestRecomputeOpenEntryMeasuredToNow(t *testing.T) {
	clockIn := mustTime(t, "2026-03-02T09:00:00Z")
	now := mustTime(t, "2026-03-02T13:00:00Z")

	res, err := service.Recompute(service.CalcInput{
		ClockIn:            clockIn,
		Now:                now,
		DailyLimit:         8,
		OvertimeMultiplier: dec("1.5"),
	})
	require.NoError(t, err)
	assert.True(t, res.TotalHours.Equal(dec("4")), "total: %s", res.TotalHours)
}

func TestRecomputeOpenBreakClampedToClockOut(t *testing.T) {
	// clock-out set while a break is still open: the break is measured
	// to the clock-out, not to now
	clockIn := mustTime(t, "2026-03-02T09:00:00Z")
	clockOut := mustTime(t, "2026-03-02T17:00:00Z")
	breakStart := mustTime(t, "2026-03-02T16:30:00Z")
	now := mustTime(t, "2026-03-02T20:00:00Z")

	res, err := service.Recompute(service.CalcInput{
		ClockIn:  clockIn,
		ClockOut: &clockOut,
		Now:      now,
		Breaks: []service.BreakInput{
			{Start: breakStart, IsPaid: false},
		},
		DailyLimit:         8,
		OvertimeMultiplier: dec("1.5"),
	})
	require.NoError(t, err)
	assert.True(t, res.BreakHours.Equal(dec("0.5")), "break: %s", res.BreakHours)
	assert.True(t, res.TotalHours.Equal(dec("7.5")), "total: %s", res.TotalHours)
}

func TestRecomputeExplicitBreakDurationWins(t *testing.T) {
	clockIn := mustTime(t, "2026-03-02T09:00:00Z")
	clockOut := mustTime(t, "2026-03-02T17:00:00Z")
	breakStart := mustTime(t, "2026-03-02T12:00:00Z")
	breakEnd := mustTime(t, "2026-03-02T12:10:00Z")
	minutes := 45

	res, err := service.Recompute(service.CalcInput{
		ClockIn:  clockIn,
		ClockOut: &clockOut,
		Breaks: []service.BreakInput{
			{Start: breakStart, End: &breakEnd, DurationMinutes: &minutes},
		},
		DailyLimit:         8,
		OvertimeMultiplier: dec("1.5"),
	})
	require.NoError(t, err)
	assert.True(t, res.BreakHours.Equal(dec("0.75")), "break: %s", res.BreakHours)
	assert.True(t, res.TotalHours.Equal(dec("7.25")), "total: %s", res.TotalHours)
}

func TestRecomputeBreaksLongerThanShift(t *testing.T) {
	clockIn := mustTime(t, "2026-03-02T09:00:00Z")
	clockOut := mustTime(t, "2026-03-02T09:30:00Z")
	minutes := 90

	res, err := service.Recompute(service.CalcInput{
		ClockIn:  clockIn,
		ClockOut: &clockOut,
		Breaks: []service.BreakInput{
			{Start: clockIn, End: &clockOut, DurationMinutes: &minutes},
		},
		DailyLimit:         8,
		OvertimeMultiplier: dec("1.5"),
	})
	require.NoError(t, err)
	assert.True(t, res.TotalHours.IsZero(), "total clamps at zero: %s", res.TotalHours)
	assert.True(t, res.RegularHours.IsZero())
	assert.True(t, res.OvertimeHours.IsZero())
}

func TestRecomputePartsAlwaysSumToTotal(t *testing.T) {
	clockIn := mustTime(t, "2026-03-02T09:00:00Z")
	multiplier := dec("1.5")

	// minute-grained sweep across the overtime boundary
	for minutes := 0; minutes <= 14*60; minutes += 7 {
		clockOut := clockIn.Add(time.Duration(minutes) * time.Minute)
		res, err := service.Recompute(service.CalcInput{
			ClockIn:            clockIn,
			ClockOut:           &clockOut,
			DailyLimit:         8,
			OvertimeMultiplier: multiplier,
		})
		require.NoError(t, err)

		assert.False(t, res.TotalHours.IsNegative())
		assert.True(t, res.RegularHours.Add(res.OvertimeHours).Equal(res.TotalHours),
			"%d min: %s + %s != %s", minutes, res.RegularHours, res.OvertimeHours, res.TotalHours)
		assert.True(t, res.RegularHours.LessThanOrEqual(dec("8")))
	}
}

func TestRecomputeIsIdempotent(t *testing.T) {
	clockIn := mustTime(t, "2026-03-02T09:00:00Z")
	clockOut := mustTime(t, "2026-03-02T17:23:00Z")
	rate := dec("37.25")

	in := service.CalcInput{
		ClockIn:            clockIn,
		ClockOut:           &clockOut,
		DailyLimit:         8,
		OvertimeMultiplier: dec("1.5"),
		IsBillable:         true,
		HourlyRate:         &rate,
	}

	first, err := service.Recompute(in)
	require.NoError(t, err)
	second, err := service.Recompute(in)
	require.NoError(t, err)

	assert.True(t, first.TotalHours.Equal(second.TotalHours))
	assert.True(t, first.RegularHours.Equal(second.RegularHours))
	assert.True(t, first.OvertimeHours.Equal(second.OvertimeHours))
	assert.True(t, first.BreakHours.Equal(second.BreakHours))
	assert.True(t, first.BillableAmount.Equal(second.BillableAmount))
}
