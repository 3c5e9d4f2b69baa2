package analytics

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/finance-dashboard/backend/internal/domain/entity"
	"github.com/shopspring/decimal"
)

func TestEngine_BuildContext(t *testing.T) {
	engine := NewEngine(nil)
	asOf := date(t, "2025-06-30")

	t.Run("newest transactions are capped and sorted", func(t *testing.T) {
		var txs []entity.Transaction
		for i := 0; i < 100; i++ {
			txs = append(txs, entity.Transaction{
				ID:          fmt.Sprintf("tx-%03d", i),
				Description: "Coles",
				Amount:      dec("-10"),
				Date:        asOf.Add(-time.Duration(i) * 24 * time.Hour),
			})
		}
		// oldest first in the input
		for i, j := 0, len(txs)-1; i < j; i, j = i+1, j-1 {
			txs[i], txs[j] = txs[j], txs[i]
		}
		original := make([]entity.Transaction, len(txs))
		copy(original, txs)

		ctx := engine.BuildContext(nil, txs, entity.RegionAU, nil, asOf)

		if len(ctx.RawTransactions) != MaxRawTransactions {
			t.Fatalf("raw transactions = %d, want %d", len(ctx.RawTransactions), MaxRawTransactions)
		}
		if ctx.RawTransactions[0].ID != "tx-000" {
			t.Errorf("first raw transaction = %s, want tx-000", ctx.RawTransactions[0].ID)
		}
		if ctx.RawTransactions[0].MerchantCategory != "Groceries" {
			t.Errorf("merchant category = %q", ctx.RawTransactions[0].MerchantCategory)
		}
		if ctx.TransactionCount != 100 {
			t.Errorf("transaction count = %d", ctx.TransactionCount)
		}
		if !reflect.DeepEqual(txs, original) {
			t.Error("input slice was reordered")
		}
	})

	t.Run("window rollups", func(t *testing.T) {
		var txs []entity.Transaction
		for i := 0; i < 12; i++ {
			txs = append(txs, entity.Transaction{
				Description: fmt.Sprintf("Shop %02d", i),
				Category:    "Shopping",
				Amount:      decimal.NewFromInt(int64(-10 - i)),
				Date:        date(t, "2025-06-10"),
			})
		}
		txs = append(txs,
			txn(t, "Salary", "3000", "2025-06-15"),
			txn(t, "Mystery", "-7.005", "2025-06-16"),
			txn(t, "Ancient", "-999", "2025-01-01"),
		)

		ctx := engine.BuildContext(nil, txs, entity.RegionAU, nil, asOf)

		assertDecimal(t, "windowIncome", ctx.WindowIncome, "3000")
		assertDecimal(t, "windowOutgoing", ctx.WindowOutgoing, "193.01")
		assertDecimal(t, "windowNet", ctx.WindowNet, "2806.99")

		if len(ctx.TopMerchants) != MaxTopMerchants {
			t.Fatalf("top merchants = %d, want %d", len(ctx.TopMerchants), MaxTopMerchants)
		}
		if ctx.TopMerchants[0].Merchant != "shop 11" {
			t.Errorf("top merchant = %q, want shop 11", ctx.TopMerchants[0].Merchant)
		}

		if len(ctx.TopCategories) != 2 {
			t.Fatalf("categories = %+v", ctx.TopCategories)
		}
		if ctx.TopCategories[0].Category != "Shopping" || ctx.TopCategories[1].Category != UncategorisedLabel {
			t.Errorf("categories = %+v", ctx.TopCategories)
		}
		assertDecimal(t, "shopping total", ctx.TopCategories[0].Total, "186")
	})

	t.Run("region and accounts", func(t *testing.T) {
		updated := asOf.Add(-time.Hour)
		accounts := []entity.Account{{ID: "a", Name: "Everyday", Type: entity.AccountTypeChecking, Balance: dec("10.005"), Currency: "USD"}}

		ctx := engine.BuildContext(accounts, nil, entity.RegionUS, &updated, asOf)

		if ctx.Currency != "USD" || ctx.AccountCount != 1 || ctx.LastUpdated == nil {
			t.Errorf("context = %+v", ctx)
		}
		assertDecimal(t, "balance", ctx.Accounts[0].Balance, "10.01")
		if len(ctx.Recurring) != 0 || len(ctx.Duplicates) != 0 {
			t.Error("expected empty pattern lists")
		}
	})

	t.Run("empty region defaults to AU", func(t *testing.T) {
		ctx := engine.BuildContext(nil, nil, "", nil, asOf)
		if ctx.Region != entity.RegionAU || ctx.Currency != "AUD" {
			t.Errorf("region = %s, currency = %s", ctx.Region, ctx.Currency)
		}
	})
}
