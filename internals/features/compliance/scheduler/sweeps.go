package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	alertModel "kerjaku_backend/internals/features/compliance/alert/model"
	timeEntryModel "kerjaku_backend/internals/features/time_tracking/time_entry/model"
	timeEntryService "kerjaku_backend/internals/features/time_tracking/time_entry/service"
	timesheetModel "kerjaku_backend/internals/features/time_tracking/timesheet_period/model"
	userModel "kerjaku_backend/internals/features/users/user/model"
)

// Open entries older than this get force-closed by the sweep.
const maxShiftDuration = 24 * time.Hour

// StartComplianceScheduler registers the recurring compliance sweeps and
// starts the cron runner. The returned cron can be stopped on shutdown.
func StartComplianceScheduler(db *gorm.DB) *cron.Cron {
	c := cron.New()

	c.AddFunc("@every 15m", func() {
		now := time.Now().UTC()
		SweepBreakReminders(db, now)
		SweepLongShifts(db, now)
	})
	c.AddFunc("@hourly", func() {
		now := time.Now().UTC()
		SweepMissingClockouts(db, now)
		SweepWeeklyOvertime(db, now)
		ProcessTimesheetPeriods(db, now)
	})

	c.Start()
	log.Println("[SWEEP] Compliance scheduler started")
	return c
}

// SweepMissingClockouts force-closes entries still open after 24 hours and
// raises a critical alert for each.
func SweepMissingClockouts(db *gorm.DB, now time.Time) {
	cutoff := now.Add(-maxShiftDuration)

	var entries []timeEntryModel.TimeEntryModel
	if err := db.Where("clock_out IS NULL AND is_deleted = ? AND clock_in < ?", false, cutoff).
		Limit(200).Find(&entries).Error; err != nil {
		log.Println("[ERROR] Missing clockout sweep query failed:", err)
		return
	}

	for _, e := range entries {
		stopped, err := timeEntryService.AutoStopEntry(db, e.ID, maxShiftDuration, now)
		if err != nil {
			log.Printf("[ERROR] Failed to auto-stop entry %s: %v", e.ID, err)
			continue
		}
		raiseEntryAlert(db, stopped, alertModel.AlertMissingClockout, alertModel.SeverityCritical,
			fmt.Sprintf("Entry ran past %s without a clock-out and was stopped automatically", maxShiftDuration),
			decimal.NewFromInt(int64(maxShiftDuration.Hours())), stopped.TotalHours)
	}

	if len(entries) > 0 {
		log.Printf("[SWEEP] Auto-stopped %d runaway time entries", len(entries))
	}
}

// SweepLongShifts flags open entries already running past the user's daily limit.
func SweepLongShifts(db *gorm.DB, now time.Time) {
	var entries []timeEntryModel.TimeEntryModel
	if err := db.Where("clock_out IS NULL AND is_deleted = ?", false).
		Limit(500).Find(&entries).Error; err != nil {
		log.Println("[ERROR] Long shift sweep query failed:", err)
		return
	}

	for _, e := range entries {
		settings := settingsFor(db, e.UserID)
		limit := decimal.NewFromInt(int64(settings.MaxHoursPerDay))
		elapsed := decimal.NewFromFloat(now.Sub(e.ClockIn).Hours()).Round(2)
		if elapsed.LessThanOrEqual(limit) {
			continue
		}
		raiseEntryAlert(db, &e, alertModel.AlertLongShift, alertModel.SeverityWarning,
			fmt.Sprintf("Shift has been running for %s hours, daily limit is %d", elapsed, settings.MaxHoursPerDay),
			limit, elapsed)
	}
}

// SweepBreakReminders flags open entries that passed the break threshold
// without recording any break.
func SweepBreakReminders(db *gorm.DB, now time.Time) {
	var entries []timeEntryModel.TimeEntryModel
	if err := db.Where("clock_out IS NULL AND is_deleted = ?", false).
		Limit(500).Find(&entries).Error; err != nil {
		log.Println("[ERROR] Break reminder sweep query failed:", err)
		return
	}

	for _, e := range entries {
		settings := settingsFor(db, e.UserID)
		if !settings.RequireBreaks {
			continue
		}
		elapsed := now.Sub(e.ClockIn)
		if elapsed < time.Duration(settings.BreakAfterHours)*time.Hour {
			continue
		}

		var breakCount int64
		if err := db.Model(&timeEntryModel.BreakEntryModel{}).
			Where("time_entry_id = ? AND is_deleted = ?", e.ID, false).
			Count(&breakCount).Error; err != nil {
			log.Printf("[ERROR] Break count failed for entry %s: %v", e.ID, err)
			continue
		}
		if breakCount > 0 {
			continue
		}
		raiseEntryAlert(db, &e, alertModel.AlertMissedBreak, alertModel.SeverityWarning,
			fmt.Sprintf("No break recorded after %d hours of work", settings.BreakAfterHours),
			decimal.NewFromInt(int64(settings.BreakAfterHours)),
			decimal.NewFromFloat(elapsed.Hours()).Round(2))
	}
}

// SweepWeeklyOvertime raises an alert for users whose week-to-date hours
// exceed their weekly limit.
func SweepWeeklyOvertime(db *gorm.DB, now time.Time) {
	weekStart := startOfWeek(now)

	type row struct {
		UserID         uuid.UUID
		OrganizationID uuid.UUID
		Total          float64
	}
	var rows []row
	err := db.Model(&timeEntryModel.TimeEntryModel{}).
		Where("is_deleted = ? AND date >= ? AND date <= ?", false, weekStart, now).
		Select("user_id, organization_id, COALESCE(SUM(total_hours), 0) AS total").
		Group("user_id, organization_id").
		Scan(&rows).Error
	if err != nil {
		log.Println("[ERROR] Weekly overtime sweep query failed:", err)
		return
	}

	for _, r := range rows {
		settings := settingsFor(db, r.UserID)
		limit := decimal.NewFromInt(int64(settings.MaxHoursPerWeek))
		total := decimal.NewFromFloat(r.Total).Round(2)
		if total.LessThanOrEqual(limit) {
			continue
		}

		// one overtime alert per user per week
		var dup int64
		if err := db.Model(&alertModel.ComplianceAlertModel{}).
			Where("user_id = ? AND alert_type = ? AND created_at >= ? AND is_deleted = ?",
				r.UserID, alertModel.AlertOvertime, weekStart, false).
			Count(&dup).Error; err != nil || dup > 0 {
			continue
		}

		alert := &alertModel.ComplianceAlertModel{
			UserID:         r.UserID,
			AlertType:      alertModel.AlertOvertime,
			Severity:       alertModel.SeverityWarning,
			Message:        fmt.Sprintf("Week-to-date hours %s exceed the weekly limit of %d", total, settings.MaxHoursPerWeek),
			ThresholdValue: limit,
			ActualValue:    total,
		}
		alert.OrganizationID = r.OrganizationID
		if err := db.Create(alert).Error; err != nil {
			log.Printf("[ERROR] Failed to create overtime alert for user %s: %v", r.UserID, err)
		}
	}
}

// ProcessTimesheetPeriods closes open periods past their submission deadline,
// aggregates approved totals into them, flags entries still in draft, and
// rolls the next weekly period for the org.
func ProcessTimesheetPeriods(db *gorm.DB, now time.Time) {
	var periods []timesheetModel.TimesheetPeriodModel
	if err := db.Where("is_open = ? AND is_deleted = ? AND submission_deadline IS NOT NULL AND submission_deadline < ?",
		true, false, now).
		Limit(100).Find(&periods).Error; err != nil {
		log.Println("[ERROR] Timesheet period sweep query failed:", err)
		return
	}

	for _, p := range periods {
		p.IsOpen = false
		closedAt := now
		p.ClosedAt = &closedAt

		type totals struct {
			Regular  float64
			Overtime float64
			Billable float64
		}
		var agg totals
		err := db.Model(&timeEntryModel.TimeEntryModel{}).
			Where("organization_id = ? AND is_deleted = ? AND status = ? AND date >= ? AND date <= ?",
				p.OrganizationID, false, timeEntryModel.StatusApproved, p.StartDate, p.EndDate).
			Select(`
				COALESCE(SUM(regular_hours), 0)   AS regular,
				COALESCE(SUM(overtime_hours), 0)  AS overtime,
				COALESCE(SUM(billable_amount), 0) AS billable`).
			Scan(&agg).Error
		if err != nil {
			log.Printf("[ERROR] Aggregation failed for period %s: %v", p.ID, err)
			continue
		}
		p.TotalRegularHours = decimal.NewFromFloat(agg.Regular).Round(2)
		p.TotalOvertimeHours = decimal.NewFromFloat(agg.Overtime).Round(2)
		p.TotalBillable = decimal.NewFromFloat(agg.Billable).Round(2)

		if err := db.Save(&p).Error; err != nil {
			log.Printf("[ERROR] Failed to close period %s: %v", p.ID, err)
			continue
		}
		log.Printf("[SWEEP] Closed timesheet period %q past its submission deadline", p.Name)

		var stragglers []timeEntryModel.TimeEntryModel
		if err := db.Where("organization_id = ? AND is_deleted = ? AND status = ? AND date >= ? AND date <= ?",
			p.OrganizationID, false, timeEntryModel.StatusDraft, p.StartDate, p.EndDate).
			Limit(500).Find(&stragglers).Error; err != nil {
			log.Printf("[ERROR] Straggler query failed for period %s: %v", p.ID, err)
			continue
		}
		for _, e := range stragglers {
			raiseEntryAlert(db, &e, alertModel.AlertLateSubmission, alertModel.SeverityInfo,
				fmt.Sprintf("Entry was still in draft when period %q closed", p.Name),
				decimal.Zero, e.TotalHours)
		}

		rollNextPeriod(db, &p, now)
	}
}

// rollNextPeriod creates the following weekly period unless one already
// covers the day after the closed period.
func rollNextPeriod(db *gorm.DB, p *timesheetModel.TimesheetPeriodModel, now time.Time) {
	nextStart := p.EndDate.AddDate(0, 0, 1)
	nextEnd := nextStart.AddDate(0, 0, 6)

	var covering int64
	if err := db.Model(&timesheetModel.TimesheetPeriodModel{}).
		Where("organization_id = ? AND is_deleted = ? AND start_date <= ? AND end_date >= ?",
			p.OrganizationID, false, nextStart, nextStart).
		Count(&covering).Error; err != nil {
		log.Printf("[ERROR] Next period lookup failed for org %s: %v", p.OrganizationID, err)
		return
	}
	if covering > 0 {
		return
	}

	year, week := nextStart.ISOWeek()
	deadline := nextEnd.AddDate(0, 0, 1)
	next := &timesheetModel.TimesheetPeriodModel{
		Name:               fmt.Sprintf("%d-W%02d", year, week),
		StartDate:          nextStart,
		EndDate:            nextEnd,
		IsOpen:             true,
		SubmissionDeadline: &deadline,
	}
	next.OrganizationID = p.OrganizationID
	if err := db.Create(next).Error; err != nil {
		log.Printf("[ERROR] Failed to create next period for org %s: %v", p.OrganizationID, err)
		return
	}
	log.Printf("[SWEEP] Created next timesheet period %q", next.Name)
}

// raiseEntryAlert creates an alert tied to an entry, skipping duplicates of
// the same type that are still unresolved.
func raiseEntryAlert(db *gorm.DB, e *timeEntryModel.TimeEntryModel, alertType, severity, message string, threshold, actual decimal.Decimal) {
	var dup int64
	if err := db.Model(&alertModel.ComplianceAlertModel{}).
		Where("time_entry_id = ? AND alert_type = ? AND is_resolved = ? AND is_deleted = ?",
			e.ID, alertType, false, false).
		Count(&dup).Error; err != nil {
		log.Printf("[ERROR] Alert dedup check failed for entry %s: %v", e.ID, err)
		return
	}
	if dup > 0 {
		return
	}

	entryID := e.ID
	alert := &alertModel.ComplianceAlertModel{
		UserID:         e.UserID,
		TimeEntryID:    &entryID,
		AlertType:      alertType,
		Severity:       severity,
		Message:        message,
		ThresholdValue: threshold,
		ActualValue:    actual,
	}
	alert.OrganizationID = e.OrganizationID
	if err := db.Create(alert).Error; err != nil {
		log.Printf("[ERROR] Failed to create %s alert for entry %s: %v", alertType, e.ID, err)
	}
}

func settingsFor(db *gorm.DB, userID uuid.UUID) *userModel.ComplianceSettingsModel {
	var settings userModel.ComplianceSettingsModel
	err := db.Where("user_id = ?", userID).Limit(1).Find(&settings).Error
	if err != nil {
		log.Printf("[ERROR] Failed to load compliance settings for user %s, using defaults: %v", userID, err)
		return userModel.DefaultComplianceSettings(userID)
	}
	if settings.ID == uuid.Nil {
		return userModel.DefaultComplianceSettings(userID)
	}
	return &settings
}

// startOfWeek returns the Monday 00:00 UTC of now's ISO week.
func startOfWeek(now time.Time) time.Time {
	day := now.UTC().Truncate(24 * time.Hour)
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return day.AddDate(0, 0, -(weekday - 1))
}
