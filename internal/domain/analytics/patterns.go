package analytics

import (
	"sort"

	"github.com/finance-dashboard/backend/internal/domain/entity"
	"github.com/finance-dashboard/backend/internal/domain/valueobject"
	"github.com/shopspring/decimal"
)

const (
	minRecurringOccurrences = 3
	duplicateWindowDays     = 2
)

type cadenceBand struct {
	cadence  valueobject.Cadence
	min, max float64
}

// Average day-gap bands, inclusive.
var cadenceBands = []cadenceBand{
	{valueobject.CadenceWeekly, 5, 9},
	{valueobject.CadenceBiweekly, 12, 18},
	{valueobject.CadenceMonthly, 25, 35},
}

func cadenceFor(avgGap float64) (valueobject.Cadence, bool) {
	for _, b := range cadenceBands {
		if avgGap >= b.min && avgGap <= b.max {
			return b.cadence, true
		}
	}
	return "", false
}

// datedOutflowsByMerchant groups outflows with a valid date and a non-empty merchant.
// The returned keys are sorted.
func datedOutflowsByMerchant(txs []entity.Transaction) ([]string, map[string][]entity.Transaction) {
	groups := make(map[string][]entity.Transaction)
	for _, tx := range txs {
		if !tx.IsOutflow() || !tx.HasValidDate() {
			continue
		}
		merchant := normaliseMerchant(tx.Description)
		if merchant == "" {
			continue
		}
		groups[merchant] = append(groups[merchant], tx)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, groups
}

func sortByDate(txs []entity.Transaction) []entity.Transaction {
	sorted := make([]entity.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// DetectRecurring finds merchants charged on a weekly, biweekly or monthly cadence
// across the full history. Results are ordered by merchant.
func DetectRecurring(txs []entity.Transaction) []valueobject.RecurringCandidate {
	merchants, groups := datedOutflowsByMerchant(txs)
	out := []valueobject.RecurringCandidate{}

	for _, merchant := range merchants {
		group := groups[merchant]
		if len(group) < minRecurringOccurrences {
			continue
		}

		sorted := sortByDate(group)
		var gapSum float64
		total := decimal.Zero
		for i, tx := range sorted {
			total = total.Add(tx.Amount.Abs())
			if i > 0 {
				gapSum += daysBetween(sorted[i-1].Date, tx.Date)
			}
		}
		avgGap := gapSum / float64(len(sorted)-1)

		cadence, ok := cadenceFor(avgGap)
		if !ok {
			continue
		}

		out = append(out, valueobject.RecurringCandidate{
			Merchant:       merchant,
			Cadence:        cadence,
			AverageAmount:  total.Div(decimal.NewFromInt(int64(len(sorted)))).Round(2),
			AverageGapDays: avgGap,
			LastDate:       sorted[len(sorted)-1].Date,
			Occurrences:    len(sorted),
		})
	}
	return out
}

// DetectDuplicates flags charges sharing a merchant and amount (to the cent) that
// land within two days of another member of the same group. Each group is reported
// at most once. Dates is filtered, not the group's full history: it holds only the
// sorted dates that have a neighbour within two days.
func DetectDuplicates(txs []entity.Transaction) []valueobject.DuplicateTransaction {
	type key struct {
		merchant string
		cents    string
	}

	groups := make(map[key][]entity.Transaction)
	var keys []key
	for _, tx := range txs {
		if !tx.IsOutflow() || !tx.HasValidDate() {
			continue
		}
		merchant := normaliseMerchant(tx.Description)
		if merchant == "" {
			continue
		}
		k := key{merchant: merchant, cents: tx.Amount.Abs().StringFixed(2)}
		if _, seen := groups[k]; !seen {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], tx)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].merchant != keys[j].merchant {
			return keys[i].merchant < keys[j].merchant
		}
		return keys[i].cents < keys[j].cents
	})

	out := []valueobject.DuplicateTransaction{}
	for _, k := range keys {
		group := groups[k]
		if len(group) < 2 {
			continue
		}

		sorted := sortByDate(group)
		flagged := make([]bool, len(sorted))
		found := false
		for i := 1; i < len(sorted); i++ {
			if daysBetween(sorted[i-1].Date, sorted[i].Date) <= duplicateWindowDays {
				flagged[i-1], flagged[i] = true, true
				found = true
			}
		}
		if !found {
			continue
		}

		dup := valueobject.DuplicateTransaction{
			Merchant: k.merchant,
			Amount:   sorted[0].Amount.Abs().Round(2),
		}
		for i, tx := range sorted {
			if flagged[i] {
				dup.Dates = append(dup.Dates, tx.Date)
			}
		}
		out = append(out, dup)
	}
	return out
}
