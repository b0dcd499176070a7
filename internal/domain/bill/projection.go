package bill

import (
	"sort"
	"strings"
	"time"
)

// Status filter values accepted by Project
const (
	FilterAll      = "all"
	FilterPaid     = "paid"
	FilterUnpaid   = "unpaid"
	FilterOverdue  = "overdue"
	FilterUpcoming = "upcoming"
)

// Sort keys accepted by Project
const (
	SortByDueDate = "dueDate"
	SortByAmount  = "amount"
	SortByStatus  = "status"
	SortByName    = "name"
)

// Filter selects a visible subset of bills. Empty fields are ignored;
// all present conditions are combined with AND.
type Filter struct {
	Status string // all, paid, unpaid, overdue, upcoming
	Search string // case-insensitive match against name or category
}

// Sort orders the visible subset.
type Sort struct {
	Key  string // dueDate, amount, status, name
	Desc bool
}

// Projection is the filtered, ordered view of a user's bills together
// with its aggregates.
type Projection struct {
	Visible      []*Bill `json:"bills"`
	TotalAmount  float64 `json:"totalAmount"`
	OverdueCount int     `json:"overdueCount"`
}

// Project filters, sorts and aggregates bills. It is pure: no I/O, and the
// input slice is not mutated. Sorting is stable so equal keys preserve the
// underlying collection order.
func Project(bills []*Bill, f Filter, s Sort, now time.Time) Projection {
	visible := make([]*Bill, 0, len(bills))
	search := strings.ToLower(strings.TrimSpace(f.Search))

	for _, b := range bills {
		if search != "" &&
			!strings.Contains(strings.ToLower(b.Name), search) &&
			!strings.Contains(strings.ToLower(b.Category), search) {
			continue
		}
		if !matchesStatus(b, f.Status, now) {
			continue
		}
		visible = append(visible, b)
	}

	sortBills(visible, s, now)

	var total float64
	overdue := 0
	for _, b := range visible {
		total += b.Amount
		if !b.IsPaid && Classify(b.DueDate, b.IsPaid, now).Label == StatusOverdue {
			overdue++
		}
	}

	return Projection{Visible: visible, TotalAmount: total, OverdueCount: overdue}
}

func matchesStatus(b *Bill, status string, now time.Time) bool {
	switch status {
	case "", FilterAll:
		return true
	case FilterPaid:
		return b.IsPaid
	case FilterUnpaid:
		return !b.IsPaid
	case FilterOverdue:
		return Classify(b.DueDate, b.IsPaid, now).Label == StatusOverdue
	case FilterUpcoming:
		label := Classify(b.DueDate, b.IsPaid, now).Label
		return label == StatusUpcoming || label == StatusDueSoon
	default:
		return true
	}
}

func sortBills(bills []*Bill, s Sort, now time.Time) {
	var less func(a, b *Bill) bool

	switch s.Key {
	case SortByAmount:
		less = func(a, b *Bill) bool { return a.Amount < b.Amount }
	case SortByStatus:
		less = func(a, b *Bill) bool {
			return Classify(a.DueDate, a.IsPaid, now).Priority < Classify(b.DueDate, b.IsPaid, now).Priority
		}
	case SortByName:
		less = func(a, b *Bill) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	default:
		less = func(a, b *Bill) bool { return a.DueDate.Before(b.DueDate) }
	}

	sort.SliceStable(bills, func(i, j int) bool {
		if s.Desc {
			return less(bills[j], bills[i])
		}
		return less(bills[i], bills[j])
	})
}
