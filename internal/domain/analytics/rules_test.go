package analytics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/finance-dashboard/backend/internal/domain/entity"
	domainerror "github.com/finance-dashboard/backend/internal/domain/error"
)

const customRules = `
budget:
  savings: [piggy]
  essentials: [BREAD]
  lifestyle: [cake]
  debt_fallback: [owe]
  lifestyle_fallback: [club]
debt_keywords: [owe]
merchant_rules:
  - category: Bakery
    keywords: [bread, cake]
raw_categories:
  " Food ": Groceries
`

func TestDefaultRuleSet(t *testing.T) {
	rs := DefaultRuleSet()
	if rs == nil {
		t.Fatal("DefaultRuleSet() returned nil")
	}
	if len(rs.MerchantRules) == 0 {
		t.Error("expected merchant rules in the embedded rule set")
	}
	if DefaultRuleSet() != rs {
		t.Error("DefaultRuleSet() should be parsed once")
	}
}

func TestParseRuleSet(t *testing.T) {
	t.Run("custom rules drive classification", func(t *testing.T) {
		rs, err := ParseRuleSet([]byte(customRules))
		if err != nil {
			t.Fatalf("ParseRuleSet() error = %v", err)
		}
		engine := NewEngine(rs)

		got, _ := engine.Classify(entity.Transaction{Description: "Fresh bread", Amount: dec("-4")})
		if got != entity.BudgetEssentials {
			t.Errorf("Classify() = %q, want Essentials", got)
		}
		got, _ = engine.Classify(entity.Transaction{Description: "Piggy bank", Amount: dec("-4")})
		if got != entity.BudgetSavings {
			t.Errorf("Classify() = %q, want Savings", got)
		}
		if label := engine.MerchantCategory(entity.Transaction{Description: "Birthday cake", Amount: dec("-30")}); label != "Bakery" {
			t.Errorf("MerchantCategory() = %q, want Bakery", label)
		}
		if label := engine.MerchantCategory(entity.Transaction{Description: "x", Category: "food", Amount: dec("-3")}); label != "Groceries" {
			t.Errorf("MerchantCategory() = %q, want Groceries", label)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := ParseRuleSet([]byte("budget: [unterminated"))
		var analyticsErr *domainerror.AnalyticsError
		if !errors.As(err, &analyticsErr) || analyticsErr.Code != domainerror.ErrCodeInvalidRuleSet {
			t.Fatalf("expected ErrCodeInvalidRuleSet, got %v", err)
		}
	})

	t.Run("missing keyword list", func(t *testing.T) {
		_, err := ParseRuleSet([]byte("budget:\n  savings: [a]\n"))
		if !errors.Is(err, domainerror.ErrInvalidRuleSet) {
			t.Fatalf("expected ErrInvalidRuleSet, got %v", err)
		}
	})

	t.Run("merchant rule without keywords", func(t *testing.T) {
		bad := `
budget:
  savings: [a]
  essentials: [b]
  lifestyle: [c]
  debt_fallback: [d]
  lifestyle_fallback: [e]
debt_keywords: [f]
merchant_rules:
  - category: Empty
    keywords: []
`
		if _, err := ParseRuleSet([]byte(bad)); !errors.Is(err, domainerror.ErrInvalidRuleSet) {
			t.Fatalf("expected ErrInvalidRuleSet, got %v", err)
		}
	})
}

func TestLoadRuleSet(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		rs, err := LoadRuleSet("")
		if err != nil {
			t.Fatalf("LoadRuleSet() error = %v", err)
		}
		if rs != DefaultRuleSet() {
			t.Error("expected the embedded rule set")
		}
	})

	t.Run("reads file from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		if err := os.WriteFile(path, []byte(customRules), 0o600); err != nil {
			t.Fatal(err)
		}
		rs, err := LoadRuleSet(path)
		if err != nil {
			t.Fatalf("LoadRuleSet() error = %v", err)
		}
		if len(rs.Budget.Essentials) != 1 || rs.Budget.Essentials[0] != "bread" {
			t.Errorf("keywords not normalised: %v", rs.Budget.Essentials)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadRuleSet(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Fatal("expected error for missing file")
		}
	})
}

func TestContainsAny(t *testing.T) {
	tests := []struct {
		text     string
		keywords []string
		want     bool
	}{
		{"netflix.com", []string{"etf"}, false},
		{"buy etf units", []string{"etf"}, true},
		{"etf", []string{"etf"}, true},
		{"first choice liquor", []string{"irs"}, false},
		{"irs payment", []string{"irs"}, true},
		{"please pay", []string{"lease"}, false},
		{"car lease", []string{"lease"}, true},
		{"leasehold fee", []string{"lease"}, true},
		{"public library", []string{"pub"}, false},
		{"the local pub", []string{"pub"}, true},
		{"local groceries", []string{"grocer"}, true},
		{"pay 401k", []string{"401k"}, true},
		{"stan.com monthly", []string{"stan.com"}, true},
		{"", []string{"etf"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := containsAny(tt.text, tt.keywords); got != tt.want {
				t.Errorf("containsAny(%q, %v) = %v, want %v", tt.text, tt.keywords, got, tt.want)
			}
		})
	}
}
