package scheduler

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"smartspend/internal/domain/bill"
	"smartspend/internal/domain/notification"
	"smartspend/internal/domain/user"
	"smartspend/internal/domain/warranty"
)

// BillReminderJob implements the Job interface for pushing due-date
// reminders about a single user's upcoming bills.
type BillReminderJob struct {
	userID   int64
	leadDays int
	billRepo bill.Repository
	notifier *notification.Service
}

// NewBillReminderJob creates a new bill reminder job for a user.
// leadDays controls how far ahead of the due date a bill is included.
func NewBillReminderJob(userID int64, leadDays int, billRepo bill.Repository, notifier *notification.Service) *BillReminderJob {
	return &BillReminderJob{
		userID:   userID,
		leadDays: leadDays,
		billRepo: billRepo,
		notifier: notifier,
	}
}

// Execute finds unpaid bills due within the lead window and pushes one
// reminder covering all of them.
func (j *BillReminderJob) Execute(ctx context.Context) error {
	log.Printf("Starting bill reminders for user %d", j.userID)

	now := time.Now()
	bills, err := j.billRepo.ListDueBetween(ctx, j.userID, now, now.AddDate(0, 0, j.leadDays))
	if err != nil {
		log.Printf("Bill reminders failed for user %d: %v", j.userID, err)
		return fmt.Errorf("failed to list upcoming bills: %w", err)
	}

	if len(bills) == 0 {
		log.Printf("Bill reminders for user %d: nothing due within %d days", j.userID, j.leadDays)
		return nil
	}

	msg := &notification.Message{
		Title:    billReminderTitle(len(bills)),
		Body:     billReminderBody(bills),
		Category: notification.CategoryBills,
		Data:     map[string]string{"count": strconv.Itoa(len(bills))},
	}

	if err := j.notifier.SendToUser(ctx, j.userID, msg); err != nil {
		return fmt.Errorf("failed to send bill reminders: %w", err)
	}

	log.Printf("Bill reminders for user %d: notified about %d bills", j.userID, len(bills))
	return nil
}

// UserID returns the user ID associated with this job
func (j *BillReminderJob) UserID() string {
	return strconv.FormatInt(j.userID, 10)
}

// Description returns a human-readable description of the job
func (j *BillReminderJob) Description() string {
	return fmt.Sprintf("Bill reminders for user %d", j.userID)
}

func billReminderTitle(count int) string {
	if count == 1 {
		return "Bill due soon"
	}
	return fmt.Sprintf("%d bills due soon", count)
}

func billReminderBody(bills []*bill.Bill) string {
	if len(bills) == 1 {
		b := bills[0]
		return fmt.Sprintf("%s (%.2f) is due on %s", b.Name, b.Amount, b.DueDate.Format("Jan 2"))
	}

	names := make([]string, 0, len(bills))
	var total float64
	for _, b := range bills {
		names = append(names, b.Name)
		total += b.Amount
	}
	return fmt.Sprintf("%s (%.2f total)", strings.Join(names, ", "), total)
}

// WarrantyReminderJob implements the Job interface for pushing
// expiration reminders about a single user's warranties.
type WarrantyReminderJob struct {
	userID       int64
	warrantyRepo warranty.Repository
	notifier     *notification.Service
}

// NewWarrantyReminderJob creates a new warranty reminder job for a user
func NewWarrantyReminderJob(userID int64, warrantyRepo warranty.Repository, notifier *notification.Service) *WarrantyReminderJob {
	return &WarrantyReminderJob{
		userID:       userID,
		warrantyRepo: warrantyRepo,
		notifier:     notifier,
	}
}

// Execute finds warranties expiring within the standard window and
// pushes one reminder covering all of them.
func (j *WarrantyReminderJob) Execute(ctx context.Context) error {
	log.Printf("Starting warranty reminders for user %d", j.userID)

	now := time.Now()
	warranties, err := j.warrantyRepo.ListExpiringBetween(ctx, j.userID, now, now.AddDate(0, 0, warranty.ExpiringSoonDays))
	if err != nil {
		log.Printf("Warranty reminders failed for user %d: %v", j.userID, err)
		return fmt.Errorf("failed to list expiring warranties: %w", err)
	}

	if len(warranties) == 0 {
		log.Printf("Warranty reminders for user %d: nothing expiring within %d days", j.userID, warranty.ExpiringSoonDays)
		return nil
	}

	msg := &notification.Message{
		Title:    warrantyReminderTitle(len(warranties)),
		Body:     warrantyReminderBody(warranties),
		Category: notification.CategoryWarranties,
		Data:     map[string]string{"count": strconv.Itoa(len(warranties))},
	}

	if err := j.notifier.SendToUser(ctx, j.userID, msg); err != nil {
		return fmt.Errorf("failed to send warranty reminders: %w", err)
	}

	log.Printf("Warranty reminders for user %d: notified about %d warranties", j.userID, len(warranties))
	return nil
}

// UserID returns the user ID associated with this job
func (j *WarrantyReminderJob) UserID() string {
	return strconv.FormatInt(j.userID, 10)
}

// Description returns a human-readable description of the job
func (j *WarrantyReminderJob) Description() string {
	return fmt.Sprintf("Warranty reminders for user %d", j.userID)
}

func warrantyReminderTitle(count int) string {
	if count == 1 {
		return "Warranty expiring soon"
	}
	return fmt.Sprintf("%d warranties expiring soon", count)
}

func warrantyReminderBody(warranties []*warranty.Warranty) string {
	if len(warranties) == 1 {
		w := warranties[0]
		return fmt.Sprintf("%s warranty expires on %s", w.ProductName, w.ExpirationDate.Format("Jan 2"))
	}

	names := make([]string, 0, len(warranties))
	for _, w := range warranties {
		names = append(names, w.ProductName)
	}
	return strings.Join(names, ", ")
}

// UserReminderJob is a composite job that runs bill reminders first,
// then warranty reminders. A failure in one stage does not skip the other.
type UserReminderJob struct {
	userID  int64
	billJob *BillReminderJob
	warrJob *WarrantyReminderJob
}

// NewUserReminderJob creates a composite reminder job for a user
func NewUserReminderJob(userID int64, leadDays int, billRepo bill.Repository, warrantyRepo warranty.Repository, notifier *notification.Service) *UserReminderJob {
	return &UserReminderJob{
		userID:  userID,
		billJob: NewBillReminderJob(userID, leadDays, billRepo, notifier),
		warrJob: NewWarrantyReminderJob(userID, warrantyRepo, notifier),
	}
}

// Execute runs bill reminders then warranty reminders
func (j *UserReminderJob) Execute(ctx context.Context) error {
	billErr := j.billJob.Execute(ctx)
	warrErr := j.warrJob.Execute(ctx)

	if billErr != nil {
		return fmt.Errorf("bill reminders failed: %w", billErr)
	}
	if warrErr != nil {
		return fmt.Errorf("warranty reminders failed: %w", warrErr)
	}
	return nil
}

// UserID returns the user ID associated with this job
func (j *UserReminderJob) UserID() string {
	return strconv.FormatInt(j.userID, 10)
}

// Description returns a human-readable description of the job
func (j *UserReminderJob) Description() string {
	return fmt.Sprintf("Reminders (bills + warranties) for user %d", j.userID)
}

// ReminderJobProvider builds one composite reminder job per registered
// user, using each user's reminder lead preference.
func ReminderJobProvider(userRepo user.Repository, billRepo bill.Repository, warrantyRepo warranty.Repository, notifier *notification.Service) func(context.Context) ([]Job, error) {
	return func(ctx context.Context) ([]Job, error) {
		ids, err := userRepo.ListIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list users: %w", err)
		}

		jobs := make([]Job, 0, len(ids))
		for _, id := range ids {
			leadDays := user.DefaultPreferences().ReminderLeadDays

			u, err := userRepo.GetByID(ctx, id)
			if err != nil {
				log.Printf("Reminder provider: failed to load user %d, using default lead: %v", id, err)
			} else if u != nil {
				leadDays = u.Preferences.ReminderLeadDays
			}

			jobs = append(jobs, NewUserReminderJob(id, leadDays, billRepo, warrantyRepo, notifier))
		}

		return jobs, nil
	}
}
