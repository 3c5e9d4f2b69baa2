package analytics

import (
	"testing"

	"github.com/finance-dashboard/backend/internal/domain/entity"
	"github.com/finance-dashboard/backend/internal/domain/valueobject"
)

func wellnessAccounts() []entity.Account {
	return []entity.Account{
		{ID: "acc-checking", Name: "Everyday", Type: entity.AccountTypeChecking, Balance: dec("8000")},
		{ID: "acc-card", Name: "Credit Card", Type: entity.AccountTypeCreditCard, Balance: dec("1500")},
		{ID: "acc-loan", Name: "Home Loan", Type: entity.AccountTypeLoan, Balance: dec("300000")},
	}
}

func wellnessTransactions(t *testing.T) []entity.Transaction {
	loan := txn(t, "Home loan repayment", "-2000", "2025-06-03")
	loan.AccountID = "acc-loan"
	flight := txn(t, "Qantas flight", "-1500", "2025-06-12")
	flight.AccountID = "acc-card"

	return []entity.Transaction{
		txn(t, "Salary ACME", "2500", "2025-06-05"),
		txn(t, "Salary ACME", "2500", "2025-06-19"),
		loan,
		txn(t, "Woolworths", "-500", "2025-06-07"),
		flight,
		txn(t, "Transfer to savings", "-1000", "2025-06-20"),
	}
}

func TestEngine_ScoreWellness(t *testing.T) {
	engine := NewEngine(nil)
	m := engine.ScoreWellness(wellnessAccounts(), wellnessTransactions(t), date(t, "2025-06-30"))

	t.Run("debt servicing", func(t *testing.T) {
		assertDecimal(t, "monthlyDebtPayments", m.MonthlyDebtPayments, "3500")
		if !approx(m.DTI, 0.7) {
			t.Errorf("DTI = %v, want 0.7", m.DTI)
		}
		if m.DTILabel != valueobject.DTIHigh || m.FocusMessage != FocusHigh {
			t.Errorf("label = %q / %q", m.DTILabel, m.FocusMessage)
		}
		if len(m.LiabilitiesByAccount) != 2 {
			t.Fatalf("drivers = %d, want 2", len(m.LiabilitiesByAccount))
		}
		if m.LiabilitiesByAccount[0].Name != "Home Loan" || m.LiabilitiesByAccount[1].Name != "Credit Card" {
			t.Errorf("drivers = %+v", m.LiabilitiesByAccount)
		}
	})

	t.Run("component scores", func(t *testing.T) {
		c := m.ComponentScores
		checks := []struct {
			name string
			got  float64
			want float64
		}{
			{"dti", c.DTI, (1 - 0.7/1.2) * 100},
			{"savingsRate", c.SavingsRate, 100},
			{"emergencyFund", c.EmergencyFund, 2.0 / 6 * 100},
			{"netWorth", c.NetWorth, 0},
			{"stability", c.Stability, 60},
			{"creditUtilization", c.CreditUtilization, 90},
			{"financialBehaviour", c.FinancialBehaviour, 100},
			{"incomeGrowth", c.IncomeGrowth, 50},
		}
		for _, ch := range checks {
			if !approx(ch.got, ch.want) {
				t.Errorf("%s = %v, want %v", ch.name, ch.got, ch.want)
			}
		}
	})

	t.Run("supporting figures", func(t *testing.T) {
		assertDecimal(t, "monthlyIncome", m.MonthlyIncome, "5000")
		assertDecimal(t, "liquidAssets", m.LiquidAssets, "8000")
		assertDecimal(t, "creditCardBalance", m.CreditCardBalance, "1500")
		assertDecimal(t, "previousNetWorth", m.PreviousNetWorth, "-293500")
		if !approx(m.EmergencyFundMonths, 2) {
			t.Errorf("emergencyFundMonths = %v, want 2", m.EmergencyFundMonths)
		}
		if !approx(m.SavingsRate, 0.2) {
			t.Errorf("savingsRate = %v, want 0.2", m.SavingsRate)
		}
	})

	t.Run("weighted score", func(t *testing.T) {
		if m.Score != 56 {
			t.Errorf("score = %d, want 56", m.Score)
		}
	})
}

func TestEngine_ScoreWellness_ZeroIncome(t *testing.T) {
	m := NewEngine(nil).ScoreWellness(nil, nil, date(t, "2025-06-30"))

	if m.DTI != 1 {
		t.Errorf("DTI = %v, want 1", m.DTI)
	}
	if m.StabilityRatio != -1 {
		t.Errorf("stabilityRatio = %v, want -1", m.StabilityRatio)
	}
	if m.SavingsRate != 0 || m.CreditUtilisation != 0 || m.IncomeGrowthRatio != 0 {
		t.Errorf("unexpected ratios: %+v", m)
	}
	if m.EmergencyFundMonths != 6 {
		t.Errorf("emergencyFundMonths = %v, want 6", m.EmergencyFundMonths)
	}
	if m.ComponentScores.NetWorth != 40 {
		t.Errorf("netWorth score = %v, want 40", m.ComponentScores.NetWorth)
	}
	if m.DTILabel != valueobject.DTIHigh {
		t.Errorf("label = %q, want High", m.DTILabel)
	}
	if m.Score < 0 || m.Score > 100 {
		t.Errorf("score %d out of bounds", m.Score)
	}
}

func TestEngine_ScoreWellness_Bounds(t *testing.T) {
	engine := NewEngine(nil)
	asOf := date(t, "2025-06-30")

	scenarios := map[string]struct {
		accounts []entity.Account
		txs      []entity.Transaction
	}{
		"spending far above income": {
			accounts: []entity.Account{{ID: "c", Type: entity.AccountTypeCreditCard, Balance: dec("90000")}},
			txs: []entity.Transaction{
				txn(t, "Salary", "100", "2025-06-20"),
				txn(t, "Credit card repayment", "-50000", "2025-06-21"),
			},
		},
		"wealthy saver": {
			accounts: []entity.Account{{ID: "s", Type: entity.AccountTypeSavings, Balance: dec("900000")}},
			txs: []entity.Transaction{
				txn(t, "Salary", "1000", "2025-06-02"),
				txn(t, "Salary", "90000", "2025-06-25"),
			},
		},
		"only liabilities": {
			accounts: []entity.Account{{ID: "l", Type: entity.AccountTypeLoan, Balance: dec("5")}},
		},
	}

	for name, sc := range scenarios {
		t.Run(name, func(t *testing.T) {
			m := engine.ScoreWellness(sc.accounts, sc.txs, asOf)
			if m.Score < 0 || m.Score > 100 {
				t.Errorf("score %d out of bounds", m.Score)
			}
			c := m.ComponentScores
			for i, v := range []float64{c.DTI, c.SavingsRate, c.EmergencyFund, c.NetWorth, c.Stability, c.CreditUtilization, c.FinancialBehaviour, c.IncomeGrowth} {
				if v < 0 || v > 100 {
					t.Errorf("component %d = %v out of bounds", i, v)
				}
			}
		})
	}
}

func TestEngine_ScoreWellness_UnlinkedDebt(t *testing.T) {
	tx := txn(t, "Afterpay instalment debt", "-200", "2025-06-10")
	tx.AccountID = "not-in-request"
	income := txn(t, "Salary", "2000", "2025-06-01")

	m := NewEngine(nil).ScoreWellness(nil, []entity.Transaction{income, tx}, date(t, "2025-06-30"))

	if len(m.LiabilitiesByAccount) != 1 || m.LiabilitiesByAccount[0].Name != UnlinkedLiabilityName {
		t.Fatalf("drivers = %+v", m.LiabilitiesByAccount)
	}
	if m.DTILabel != valueobject.DTIExcellent {
		t.Errorf("label = %q, want Excellent", m.DTILabel)
	}
}

func TestEngine_ScoreWellness_IncomeGrowthFromNothing(t *testing.T) {
	txs := []entity.Transaction{txn(t, "Salary", "3000", "2025-06-25")}
	m := NewEngine(nil).ScoreWellness(nil, txs, date(t, "2025-06-30"))

	if m.IncomeGrowthRatio != 1 || m.ComponentScores.IncomeGrowth != 100 {
		t.Errorf("growth = %v, score = %v", m.IncomeGrowthRatio, m.ComponentScores.IncomeGrowth)
	}
}

func TestLabelDTI(t *testing.T) {
	tests := []struct {
		dti  float64
		want valueobject.DTILabel
	}{
		{0, valueobject.DTIExcellent},
		{0.25, valueobject.DTIExcellent},
		{0.3, valueobject.DTIGood},
		{0.35, valueobject.DTIGood},
		{0.5, valueobject.DTIElevated},
		{0.51, valueobject.DTIHigh},
	}
	for _, tt := range tests {
		if got, _ := labelDTI(tt.dti); got != tt.want {
			t.Errorf("labelDTI(%v) = %q, want %q", tt.dti, got, tt.want)
		}
	}
}
