package normalize

import "strings"

// IsIndianBudgetRange reports whether the text already looks like an
// Indian-style grouped yearly range such as "1,90,000-2,00,000". Budgets in
// that shape skip the language-model formatting call entirely.
func IsIndianBudgetRange(s string) bool {
	lower := strings.ToLower(s)
	return strings.Contains(s, "-") &&
		strings.Contains(s, ",") &&
		!strings.Contains(lower, "lakh") &&
		!strings.Contains(lower, "per")
}
