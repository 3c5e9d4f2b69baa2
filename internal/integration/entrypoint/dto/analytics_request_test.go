package dto

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-dashboard/backend/internal/domain/entity"
	domainerror "github.com/finance-dashboard/backend/internal/domain/error"
)

func TestFlexibleAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{name: "number", json: `12.5`, want: "12.5"},
		{name: "negative number", json: `-80`, want: "-80"},
		{name: "numeric string", json: `"1,234.50"`, want: "1234.5"},
		{name: "non-numeric string", json: `"n/a"`, want: "0"},
		{name: "null", json: `null`, want: "0"},
		{name: "boolean", json: `true`, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a FlexibleAmount
			if err := json.Unmarshal([]byte(tt.json), &a); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if !a.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("got %s, want %s", a.String(), tt.want)
			}
		})
	}
}

func TestAnalyticsRequest_ToDataset(t *testing.T) {
	body := `{
		"accounts": [{"id": "a1", "name": " ", "type": "credit_card", "balance": "-450.10", "currency": "aud"}],
		"transactions": [
			{"id": "t1", "account_id": "a1", "description": "", "amount": "oops", "date": "2025-06-01"},
			{"id": "t2", "account_id": "a1", "description": "Coles", "amount": -52.3, "date": "not a date", "category": " Groceries "}
		],
		"as_of": "2025-06-30"
	}`

	var req AnalyticsRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	ds, err := req.ToDataset()
	if err != nil {
		t.Fatalf("ToDataset() error = %v", err)
	}

	if !ds.AsOf.Equal(time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("as_of = %v", ds.AsOf)
	}

	acc := ds.Accounts[0]
	if acc.Name != DefaultAccountName || acc.Type != entity.AccountTypeCreditCard || acc.Currency != "AUD" {
		t.Errorf("account = %+v", acc)
	}
	if !acc.Balance.Equal(decimal.RequireFromString("-450.10")) {
		t.Errorf("balance = %s", acc.Balance)
	}

	first, second := ds.Transactions[0], ds.Transactions[1]
	if first.Description != UnknownMerchant || !first.Amount.IsZero() || first.Date.IsZero() {
		t.Errorf("first transaction = %+v", first)
	}
	if !second.Date.IsZero() || second.Category != "Groceries" {
		t.Errorf("second transaction = %+v", second)
	}
}

func TestAnalyticsRequest_Validation(t *testing.T) {
	t.Run("bad as_of", func(t *testing.T) {
		req := AnalyticsRequest{AsOf: "yesterday"}
		_, err := req.ToDataset()
		var analyticsErr *domainerror.AnalyticsError
		if !errors.As(err, &analyticsErr) || analyticsErr.Code != domainerror.ErrCodeInvalidAsOf {
			t.Errorf("expected invalid as_of, got %v", err)
		}
	})

	t.Run("region", func(t *testing.T) {
		if r, err := (&AnalyticsRequest{Region: "us"}).ParsedRegion(); err != nil || r != "US" {
			t.Errorf("got %q, %v", r, err)
		}
		if r, err := (&AnalyticsRequest{}).ParsedRegion(); err != nil || r != "" {
			t.Errorf("empty region: got %q, %v", r, err)
		}
		if _, err := (&AnalyticsRequest{Region: "NZ"}).ParsedRegion(); !errors.Is(err, domainerror.ErrInvalidRegion) {
			t.Errorf("expected ErrInvalidRegion, got %v", err)
		}
	})

	t.Run("last updated", func(t *testing.T) {
		if (&AnalyticsRequest{LastUpdated: "garbage"}).ParsedLastUpdated() != nil {
			t.Error("unparsable last_updated should be nil")
		}
		if (&AnalyticsRequest{LastUpdated: "2025-06-30T08:00:00Z"}).ParsedLastUpdated() == nil {
			t.Error("valid last_updated should parse")
		}
	})
}
