// Package dashboard contains the analytics use cases behind the dashboard widgets.
package dashboard

import (
	"fmt"
	"time"

	"github.com/finance-dashboard/backend/internal/domain/entity"
	domainerror "github.com/finance-dashboard/backend/internal/domain/error"
)

// DefaultMaxRecords bounds accounts plus transactions in a single request.
const DefaultMaxRecords = 5000

// Dataset is the account and transaction snapshot supplied with a request.
type Dataset struct {
	Accounts     []entity.Account
	Transactions []entity.Transaction
	AsOf         time.Time // Zero means now
}

// Options holds settings shared by the dashboard use cases.
type Options struct {
	MaxRecords int
	Now        func() time.Time
}

func (o Options) withDefaults() Options {
	if o.MaxRecords <= 0 {
		o.MaxRecords = DefaultMaxRecords
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// resolve validates the dataset size and pins the reference instant.
func (o Options) resolve(d Dataset) (time.Time, error) {
	if n := len(d.Accounts) + len(d.Transactions); n > o.MaxRecords {
		return time.Time{}, domainerror.NewAnalyticsError(
			domainerror.ErrCodeTooManyRecords,
			fmt.Sprintf("request carries %d records, the limit is %d", n, o.MaxRecords),
			domainerror.ErrTooManyRecords,
		)
	}
	if d.AsOf.IsZero() {
		return o.Now(), nil
	}
	return d.AsOf, nil
}
