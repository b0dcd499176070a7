package scheduler

import (
	"testing"
	"time"

	"smartspend/internal/domain/bill"
	"smartspend/internal/domain/warranty"
)

func TestParseScheduleTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ScheduleTime
		wantErr bool
	}{
		{name: "Morning", input: "08:00", want: ScheduleTime{Hour: 8, Minute: 0}},
		{name: "Evening", input: "21:30", want: ScheduleTime{Hour: 21, Minute: 30}},
		{name: "Midnight", input: "0:0", want: ScheduleTime{Hour: 0, Minute: 0}},
		{name: "Hour Too Large", input: "24:00", wantErr: true},
		{name: "Minute Too Large", input: "08:60", wantErr: true},
		{name: "Garbage", input: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseScheduleTime(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseScheduleTime(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseScheduleTime(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseScheduleTime(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSchedulerShouldRunOncePerMinute(t *testing.T) {
	s, err := New(Config{
		ScheduleTimes: []string{"08:00"},
		WorkerCount:   1,
		QueueSize:     1,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	at := time.Date(2026, 3, 10, 8, 0, 30, 0, time.UTC)
	if !s.shouldRun(at) {
		t.Fatal("expected first check at 08:00 to trigger")
	}
	if s.shouldRun(at.Add(10 * time.Second)) {
		t.Error("expected second check within the same minute to be suppressed")
	}
	if s.shouldRun(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)) {
		t.Error("expected non-scheduled time to not trigger")
	}
	if !s.shouldRun(at.AddDate(0, 0, 1)) {
		t.Error("expected next day at 08:00 to trigger again")
	}
}

func TestBillReminderBody(t *testing.T) {
	due := time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC)
	single := []*bill.Bill{{Name: "Rent", Amount: 1200, DueDate: due}}
	if got := billReminderBody(single); got != "Rent (1200.00) is due on Apr 5" {
		t.Errorf("single bill body = %q", got)
	}

	many := []*bill.Bill{
		{Name: "Rent", Amount: 1200, DueDate: due},
		{Name: "Internet", Amount: 59.90, DueDate: due},
	}
	if got := billReminderBody(many); got != "Rent, Internet (1259.90 total)" {
		t.Errorf("multi bill body = %q", got)
	}
}

func TestWarrantyReminderBody(t *testing.T) {
	exp := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)
	single := []*warranty.Warranty{{ProductName: "Laptop", ExpirationDate: exp}}
	if got := warrantyReminderBody(single); got != "Laptop warranty expires on May 20" {
		t.Errorf("single warranty body = %q", got)
	}

	many := []*warranty.Warranty{
		{ProductName: "Laptop", ExpirationDate: exp},
		{ProductName: "Fridge", ExpirationDate: exp},
	}
	if got := warrantyReminderBody(many); got != "Laptop, Fridge" {
		t.Errorf("multi warranty body = %q", got)
	}
}
