package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-dashboard/backend/internal/application/usecase/dashboard"
	"github.com/finance-dashboard/backend/internal/domain/entity"
	domainerror "github.com/finance-dashboard/backend/internal/domain/error"
)

const (
	// UnknownMerchant replaces an empty transaction description.
	UnknownMerchant = "Unknown merchant"
	// DefaultAccountName replaces an empty account name.
	DefaultAccountName = "Account"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FlexibleAmount accepts a JSON number or numeric string. Anything else decodes to zero.
type FlexibleAmount struct {
	decimal.Decimal
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *FlexibleAmount) UnmarshalJSON(data []byte) error {
	a.Decimal = decimal.Zero
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		raw = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	if f := d.InexactFloat64(); math.IsInf(f, 0) || math.IsNaN(f) {
		return nil
	}
	a.Decimal = d
	return nil
}

// AccountPayload is an account as supplied by the bank-data integration.
type AccountPayload struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Type     string         `json:"type"`
	Balance  FlexibleAmount `json:"balance"`
	Currency string         `json:"currency"`
}

// TransactionPayload is a transaction as supplied by the bank-data integration.
type TransactionPayload struct {
	ID          string         `json:"id"`
	AccountID   string         `json:"account_id"`
	Description string         `json:"description"`
	Amount      FlexibleAmount `json:"amount"`
	Date        string         `json:"date"`
	Category    string         `json:"category"`
}

// AnalyticsRequest is the snapshot posted to every analytics endpoint.
type AnalyticsRequest struct {
	Accounts     []AccountPayload     `json:"accounts"`
	Transactions []TransactionPayload `json:"transactions"`
	AsOf         string               `json:"as_of,omitempty"`
	Region       string               `json:"region,omitempty"`
	LastUpdated  string               `json:"last_updated,omitempty"`
}

// ToDataset converts the payload into domain records, applying input defaults.
func (r *AnalyticsRequest) ToDataset() (dashboard.Dataset, error) {
	var ds dashboard.Dataset

	if strings.TrimSpace(r.AsOf) != "" {
		asOf, ok := parseDate(r.AsOf)
		if !ok {
			return ds, domainerror.NewAnalyticsError(
				domainerror.ErrCodeInvalidAsOf,
				fmt.Sprintf("as_of must be RFC3339 or YYYY-MM-DD, got %q", r.AsOf),
				domainerror.ErrInvalidAsOf,
			)
		}
		ds.AsOf = asOf
	}

	ds.Accounts = make([]entity.Account, len(r.Accounts))
	for i, a := range r.Accounts {
		ds.Accounts[i] = a.toEntity()
	}

	ds.Transactions = make([]entity.Transaction, len(r.Transactions))
	for i, t := range r.Transactions {
		ds.Transactions[i] = t.toEntity()
	}

	return ds, nil
}

// ParsedRegion validates the region, returning "" when the request leaves it to the default.
func (r *AnalyticsRequest) ParsedRegion() (string, error) {
	if strings.TrimSpace(r.Region) == "" {
		return "", nil
	}
	region, ok := entity.ParseRegion(r.Region)
	if !ok {
		return "", domainerror.NewAnalyticsError(
			domainerror.ErrCodeInvalidRegion,
			fmt.Sprintf("region must be AU or US, got %q", r.Region),
			domainerror.ErrInvalidRegion,
		)
	}
	return string(region), nil
}

// ParsedLastUpdated returns the provider sync time, or nil when absent or unparsable.
func (r *AnalyticsRequest) ParsedLastUpdated() *time.Time {
	t, ok := parseDate(r.LastUpdated)
	if !ok {
		return nil
	}
	return &t
}

func (a AccountPayload) toEntity() entity.Account {
	name := strings.TrimSpace(a.Name)
	if name == "" {
		name = DefaultAccountName
	}
	return entity.Account{
		ID:       a.ID,
		Name:     name,
		Type:     entity.ParseAccountType(a.Type),
		Balance:  a.Balance.Decimal,
		Currency: strings.ToUpper(strings.TrimSpace(a.Currency)),
	}
}

func (t TransactionPayload) toEntity() entity.Transaction {
	description := strings.TrimSpace(t.Description)
	if description == "" {
		description = UnknownMerchant
	}
	date, _ := parseDate(t.Date)
	return entity.Transaction{
		ID:          t.ID,
		AccountID:   t.AccountID,
		Description: description,
		Amount:      t.Amount.Decimal,
		Date:        date,
		Category:    strings.TrimSpace(t.Category),
	}
}

// parseDate tries the accepted layouts. The zero time and false are returned on failure.
func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
