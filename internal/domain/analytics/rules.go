package analytics

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	domainerror "github.com/finance-dashboard/backend/internal/domain/error"
	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// BudgetRules are the keyword lists behind the 50/30/20 classifier, in priority order.
type BudgetRules struct {
	Savings           []string `yaml:"savings"`
	Essentials        []string `yaml:"essentials"`
	Lifestyle         []string `yaml:"lifestyle"`
	DebtFallback      []string `yaml:"debt_fallback"`
	LifestyleFallback []string `yaml:"lifestyle_fallback"`
}

// MerchantRule maps a keyword set to a display category.
type MerchantRule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// RuleSet is the data-driven keyword table used by the classifiers and the wellness scorer.
type RuleSet struct {
	Budget        BudgetRules       `yaml:"budget"`
	DebtKeywords  []string          `yaml:"debt_keywords"`
	MerchantRules []MerchantRule    `yaml:"merchant_rules"`
	RawCategories map[string]string `yaml:"raw_categories"`
}

var (
	defaultRuleSet     *RuleSet
	defaultRuleSetOnce sync.Once
)

// DefaultRuleSet returns the embedded rule set. It panics if the embedded file is invalid.
func DefaultRuleSet() *RuleSet {
	defaultRuleSetOnce.Do(func() {
		rs, err := ParseRuleSet(defaultRulesYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded rules.yaml: %v", err))
		}
		defaultRuleSet = rs
	})
	return defaultRuleSet
}

// LoadRuleSet reads a rule file from disk. An empty path returns the embedded defaults.
func LoadRuleSet(path string) (*RuleSet, error) {
	if path == "" {
		return DefaultRuleSet(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file %q: %w", path, err)
	}

	rs, err := ParseRuleSet(data)
	if err != nil {
		return nil, fmt.Errorf("parse rules file %q: %w", path, err)
	}
	return rs, nil
}

// ParseRuleSet decodes and validates a YAML rule set. Keywords are lowercased.
func ParseRuleSet(data []byte) (*RuleSet, error) {
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, domainerror.NewAnalyticsError(domainerror.ErrCodeInvalidRuleSet, "malformed rule set", err)
	}

	rs.normalise()

	if err := rs.validate(); err != nil {
		return nil, domainerror.NewAnalyticsError(domainerror.ErrCodeInvalidRuleSet, err.Error(), domainerror.ErrInvalidRuleSet)
	}
	return &rs, nil
}

func (rs *RuleSet) normalise() {
	lists := []*[]string{
		&rs.Budget.Savings,
		&rs.Budget.Essentials,
		&rs.Budget.Lifestyle,
		&rs.Budget.DebtFallback,
		&rs.Budget.LifestyleFallback,
		&rs.DebtKeywords,
	}
	for _, l := range lists {
		*l = lowerKeywords(*l)
	}
	for i := range rs.MerchantRules {
		rs.MerchantRules[i].Category = strings.TrimSpace(rs.MerchantRules[i].Category)
		rs.MerchantRules[i].Keywords = lowerKeywords(rs.MerchantRules[i].Keywords)
	}

	raw := make(map[string]string, len(rs.RawCategories))
	for k, v := range rs.RawCategories {
		raw[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	rs.RawCategories = raw
}

func (rs *RuleSet) validate() error {
	required := map[string][]string{
		"budget.savings":            rs.Budget.Savings,
		"budget.essentials":         rs.Budget.Essentials,
		"budget.lifestyle":          rs.Budget.Lifestyle,
		"budget.debt_fallback":      rs.Budget.DebtFallback,
		"budget.lifestyle_fallback": rs.Budget.LifestyleFallback,
		"debt_keywords":             rs.DebtKeywords,
	}
	for name, list := range required {
		if len(list) == 0 {
			return fmt.Errorf("%s must list at least one keyword", name)
		}
	}

	for i, rule := range rs.MerchantRules {
		if rule.Category == "" {
			return fmt.Errorf("merchant_rules[%d] has no category", i)
		}
		if len(rule.Keywords) == 0 {
			return fmt.Errorf("merchant_rules[%d] (%s) has no keywords", i, rule.Category)
		}
	}
	return nil
}

func lowerKeywords(in []string) []string {
	out := make([]string, 0, len(in))
	for _, k := range in {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

// shortKeyword is the longest keyword that must match a whole word. Longer
// keywords match at the start of a word, so stems like "grocer" still hit "groceries".
const shortKeyword = 3

// containsAny reports whether any keyword starts a word in text. Text and keywords
// are already lowercased.
func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if matchesWord(text, k) {
			return true
		}
	}
	return false
}

func matchesWord(text, keyword string) bool {
	for from := 0; from <= len(text)-len(keyword); {
		i := strings.Index(text[from:], keyword)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(keyword)

		before, _ := utf8.DecodeLastRuneInString(text[:start])
		after, _ := utf8.DecodeRuneInString(text[end:])
		if (start == 0 || !isWordRune(before)) &&
			(len(keyword) > shortKeyword || end == len(text) || !isWordRune(after)) {
			return true
		}
		from = start + 1
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
