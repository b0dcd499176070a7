package bill

import "time"

// reminderLead is how far before a due date the derived reminder falls.
const reminderLead = 3 * 24 * time.Hour

// NextDueDate advances a due date by one recurring period using calendar
// arithmetic. Unknown or empty periods advance by one month.
func NextDueDate(current time.Time, period string) time.Time {
	switch period {
	case PeriodWeekly:
		return current.AddDate(0, 0, 7)
	case PeriodQuarterly:
		return current.AddDate(0, 3, 0)
	case PeriodAnnually:
		return current.AddDate(1, 0, 0)
	default:
		return current.AddDate(0, 1, 0)
	}
}

// ReminderFor returns the reminder date for a due date.
func ReminderFor(dueDate time.Time) time.Time {
	return dueDate.Add(-reminderLead)
}

// Successor builds the create parameters for the next occurrence of a
// recurring bill. The successor carries forward name, amount, category,
// recurrence settings and notes; it starts unpaid with an advanced due date.
// Returns nil when the bill is not recurring.
func Successor(b *Bill) *CreateParams {
	if !b.IsRecurring {
		return nil
	}

	period := ""
	if b.RecurringPeriod != nil {
		period = *b.RecurringPeriod
	}

	nextDue := NextDueDate(b.DueDate, period)
	reminder := ReminderFor(nextDue)

	return &CreateParams{
		Name:            b.Name,
		Amount:          b.Amount,
		DueDate:         nextDue,
		Category:        b.Category,
		IsRecurring:     true,
		RecurringPeriod: b.RecurringPeriod,
		ReminderDate:    &reminder,
		Notes:           b.Notes,
	}
}
