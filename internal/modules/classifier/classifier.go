package classifier

import "strings"

// KeywordRule maps a (category, subcategory) pair to the keywords that
// select it. Rules are stored and evaluated as an ordered list; the
// classification target is the subcategory name.
type KeywordRule struct {
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory"`
	Keywords    []string `json:"keywords"`
}

// Classify returns the subcategory of the first rule any of whose keywords
// occurs in text as a case-insensitive substring. The scan order is the
// stored rule order, outer to inner, and the first hit wins: a post gets
// at most one label, and a later rule with a longer match never overrides
// an earlier one.
func Classify(text string, rules []KeywordRule) (string, bool) {
	if text == "" {
		return "", false
	}
	haystack := strings.ToLower(text)

	for _, rule := range rules {
		for _, keyword := range rule.Keywords {
			kw := strings.ToLower(strings.TrimSpace(keyword))
			if kw == "" {
				continue
			}
			if strings.Contains(haystack, kw) {
				return rule.Subcategory, true
			}
		}
	}
	return "", false
}
