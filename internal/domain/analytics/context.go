package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/finance-dashboard/backend/internal/domain/entity"
	"github.com/finance-dashboard/backend/internal/domain/valueobject"
	"github.com/shopspring/decimal"
)

const (
	// MaxRawTransactions caps the newest-first transaction list in a FinanceContext.
	MaxRawTransactions = 80
	// MaxTopMerchants caps the merchant rollup.
	MaxTopMerchants = 10

	UncategorisedLabel = "Uncategorised"
)

// BuildContext assembles the aggregate handed to the narrative assistant.
func (e *Engine) BuildContext(accounts []entity.Account, txs []entity.Transaction, region entity.Region, lastUpdated *time.Time, asOf time.Time) valueobject.FinanceContext {
	asOf = ResolveAsOf(asOf)
	start, end := Window(asOf)
	if region == "" {
		region = entity.DefaultRegion
	}

	ctx := valueobject.FinanceContext{
		Region:           region,
		Currency:         region.CurrencyCode(),
		LastUpdated:      lastUpdated,
		AsOf:             asOf,
		AccountCount:     len(accounts),
		TransactionCount: len(txs),
		Accounts:         make([]valueobject.AccountSummary, 0, len(accounts)),
		WindowStart:      start,
		WindowEnd:        end,
	}

	for _, a := range accounts {
		ctx.Accounts = append(ctx.Accounts, valueobject.AccountSummary{
			ID:       a.ID,
			Name:     a.Name,
			Type:     a.Type,
			Balance:  a.Balance.Round(2),
			Currency: a.Currency,
		})
	}

	ctx.RawTransactions = e.newestTransactions(txs)
	ctx.WindowIncome, ctx.WindowOutgoing, ctx.TopCategories, ctx.TopMerchants = rollupWindow(txs, start, end)
	ctx.WindowNet = ctx.WindowIncome.Sub(ctx.WindowOutgoing)
	ctx.Recurring = DetectRecurring(txs)
	ctx.Duplicates = DetectDuplicates(txs)

	return ctx
}

func (e *Engine) newestTransactions(txs []entity.Transaction) []valueobject.TransactionSummary {
	sorted := make([]entity.Transaction, len(txs))
	copy(sorted, txs)
	// Undated records sort last.
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Date, sorted[j].Date
		if a.IsZero() != b.IsZero() {
			return b.IsZero()
		}
		return a.After(b)
	})
	if len(sorted) > MaxRawTransactions {
		sorted = sorted[:MaxRawTransactions]
	}

	out := make([]valueobject.TransactionSummary, 0, len(sorted))
	for _, tx := range sorted {
		out = append(out, valueobject.TransactionSummary{
			ID:               tx.ID,
			AccountID:        tx.AccountID,
			Date:             tx.Date,
			Description:      tx.Description,
			Amount:           tx.Amount.Round(2),
			Category:         tx.Category,
			MerchantCategory: e.MerchantCategory(tx),
		})
	}
	return out
}

func rollupWindow(txs []entity.Transaction, start, end time.Time) (income, outgoing decimal.Decimal, categories []valueobject.CategoryTotal, merchants []valueobject.MerchantTotal) {
	income, outgoing = decimal.Zero, decimal.Zero
	byCategory := make(map[string]decimal.Decimal)
	byMerchant := make(map[string]*valueobject.MerchantTotal)

	for _, tx := range txs {
		if !inWindow(tx.Date, start, end) {
			continue
		}
		if tx.IsInflow() {
			income = income.Add(tx.Amount)
			continue
		}
		if !tx.IsOutflow() {
			continue
		}

		amount := tx.Amount.Abs()
		outgoing = outgoing.Add(amount)

		category := strings.TrimSpace(tx.Category)
		if category == "" {
			category = UncategorisedLabel
		}
		byCategory[category] = byCategory[category].Add(amount)

		merchant := normaliseMerchant(tx.Description)
		mt, ok := byMerchant[merchant]
		if !ok {
			mt = &valueobject.MerchantTotal{Merchant: merchant, Total: decimal.Zero}
			byMerchant[merchant] = mt
		}
		mt.Total = mt.Total.Add(amount)
		mt.Count++
	}

	categories = make([]valueobject.CategoryTotal, 0, len(byCategory))
	for name, total := range byCategory {
		categories = append(categories, valueobject.CategoryTotal{Category: name, Total: total.Round(2)})
	}
	sort.Slice(categories, func(i, j int) bool {
		if !categories[i].Total.Equal(categories[j].Total) {
			return categories[i].Total.GreaterThan(categories[j].Total)
		}
		return categories[i].Category < categories[j].Category
	})

	merchants = make([]valueobject.MerchantTotal, 0, len(byMerchant))
	for _, mt := range byMerchant {
		mt.Total = mt.Total.Round(2)
		merchants = append(merchants, *mt)
	}
	sort.Slice(merchants, func(i, j int) bool {
		if !merchants[i].Total.Equal(merchants[j].Total) {
			return merchants[i].Total.GreaterThan(merchants[j].Total)
		}
		return merchants[i].Merchant < merchants[j].Merchant
	})
	if len(merchants) > MaxTopMerchants {
		merchants = merchants[:MaxTopMerchants]
	}

	return income.Round(2), outgoing.Round(2), categories, merchants
}
