package dashboard

import (
	"context"

	"github.com/finance-dashboard/backend/internal/domain/analytics"
	"github.com/finance-dashboard/backend/internal/domain/entity"
)

// ClassifyTransactionsInput represents the input for transaction classification.
type ClassifyTransactionsInput struct {
	Transactions []entity.Transaction
}

// ClassifiedTransaction is a transaction with its budget bucket and display label.
type ClassifiedTransaction struct {
	Transaction      entity.Transaction
	BudgetCategory   *entity.BudgetCategory // Nil for inflows
	MerchantCategory string
}

// ClassifyTransactionsOutput represents the output of transaction classification.
type ClassifyTransactionsOutput struct {
	Transactions []ClassifiedTransaction
	Counts       map[entity.BudgetCategory]int
	Unclassified int
}

// ClassifyTransactionsUseCase labels each transaction with both classifiers.
type ClassifyTransactionsUseCase struct {
	engine *analytics.Engine
	opts   Options
}

// NewClassifyTransactionsUseCase creates a new ClassifyTransactionsUseCase instance.
func NewClassifyTransactionsUseCase(engine *analytics.Engine, opts Options) *ClassifyTransactionsUseCase {
	return &ClassifyTransactionsUseCase{engine: engine, opts: opts.withDefaults()}
}

// Execute classifies the transactions in input order.
func (uc *ClassifyTransactionsUseCase) Execute(ctx context.Context, input ClassifyTransactionsInput) (*ClassifyTransactionsOutput, error) {
	if _, err := uc.opts.resolve(Dataset{Transactions: input.Transactions}); err != nil {
		return nil, err
	}

	out := &ClassifyTransactionsOutput{
		Transactions: make([]ClassifiedTransaction, 0, len(input.Transactions)),
		Counts:       make(map[entity.BudgetCategory]int, 3),
	}
	for _, c := range entity.BudgetCategories() {
		out.Counts[c] = 0
	}

	for _, tx := range input.Transactions {
		ct := ClassifiedTransaction{
			Transaction:      tx,
			MerchantCategory: uc.engine.MerchantCategory(tx),
		}
		if c, ok := uc.engine.Classify(tx); ok {
			ct.BudgetCategory = &c
			out.Counts[c]++
		} else {
			out.Unclassified++
		}
		out.Transactions = append(out.Transactions, ct)
	}

	return out, nil
}
