package warranty

import (
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		expiration time.Time
		want       string
	}{
		{"Expired Yesterday", now.AddDate(0, 0, -1), StatusExpired},
		{"Expires Right Now", now, StatusExpired},
		{"Expiring In Ten Days", now.AddDate(0, 0, 10), StatusExpiringSoon},
		{"Expiring On Day Thirty", now.AddDate(0, 0, 30), StatusExpiringSoon},
		{"Active In Forty Days", now.AddDate(0, 0, 40), StatusActive},
		{"Active Next Year", now.AddDate(1, 0, 0), StatusActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.expiration, now); got != tt.want {
				t.Errorf("Classify(%v) = %q, want %q", tt.expiration, got, tt.want)
			}
		})
	}
}

func TestDaysUntilExpiry(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		expiration time.Time
		want       int
	}{
		{"Ten Days Out", now.AddDate(0, 0, 10), 10},
		{"Yesterday", now.AddDate(0, 0, -1), -1},
		{"Today", now, 0},
		{"Partial Day Rounds Up", now.Add(36 * time.Hour), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysUntilExpiry(tt.expiration, now); got != tt.want {
				t.Errorf("DaysUntilExpiry(%v) = %d, want %d", tt.expiration, got, tt.want)
			}
		})
	}
}

func TestCreateParams_Validate(t *testing.T) {
	purchase := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	valid := CreateParams{
		ProductName:    "Dishwasher",
		PurchaseDate:   purchase,
		ExpirationDate: purchase.AddDate(2, 0, 0),
		Category:       "Electronics & Appliances",
	}

	tests := []struct {
		name    string
		mutate  func(p *CreateParams)
		wantErr bool
	}{
		{"Valid", func(p *CreateParams) {}, false},
		{"Missing Product Name", func(p *CreateParams) { p.ProductName = "" }, true},
		{"Missing Purchase Date", func(p *CreateParams) { p.PurchaseDate = time.Time{} }, true},
		{"Missing Expiration Date", func(p *CreateParams) { p.ExpirationDate = time.Time{} }, true},
		{"Expiration Before Purchase", func(p *CreateParams) { p.ExpirationDate = purchase.AddDate(0, 0, -1) }, true},
		{"Unknown Category", func(p *CreateParams) { p.Category = "Miscellaneous" }, true},
		{"Negative Price", func(p *CreateParams) { price := -10.0; p.PurchasePrice = &price }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
