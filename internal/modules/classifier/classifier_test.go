package classifier

import "testing"

func TestClassifyFirstRuleWins(t *testing.T) {
	rules := []KeywordRule{
		{Category: "Electronics", Subcategory: "Phones", Keywords: []string{"foo"}},
		{Category: "Electronics", Subcategory: "Laptops", Keywords: []string{"foo", "bar"}},
	}

	got, ok := Classify("foo bar", rules)
	if !ok {
		t.Fatal("expected a match")
	}
	if got != "Phones" {
		t.Errorf("expected first matching rule to win, got %q", got)
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	rules := []KeywordRule{
		{Subcategory: "Phones", Keywords: []string{"iPhone"}},
	}

	got, ok := Classify("selling my old IPHONE 12, barely used", rules)
	if !ok || got != "Phones" {
		t.Errorf("expected case-insensitive match on Phones, got %q ok=%v", got, ok)
	}
}

func TestClassifySubstringMatch(t *testing.T) {
	rules := []KeywordRule{
		{Subcategory: "Cars", Keywords: []string{"car"}},
	}

	// Substring semantics: "car" matches inside "scarf".
	got, ok := Classify("hand-knitted scarf for sale", rules)
	if !ok || got != "Cars" {
		t.Errorf("expected substring match, got %q ok=%v", got, ok)
	}
}

func TestClassifyNoMatch(t *testing.T) {
	rules := []KeywordRule{
		{Subcategory: "Phones", Keywords: []string{"phone"}},
	}

	if got, ok := Classify("nothing relevant here", rules); ok {
		t.Errorf("expected no match, got %q", got)
	}
}

func TestClassifyEmptyText(t *testing.T) {
	rules := []KeywordRule{
		{Subcategory: "Phones", Keywords: []string{""}},
	}

	if got, ok := Classify("", rules); ok {
		t.Errorf("empty text must never classify, got %q", got)
	}
}

func TestClassifyIgnoresBlankKeywords(t *testing.T) {
	rules := []KeywordRule{
		{Subcategory: "Junk", Keywords: []string{"", "  "}},
		{Subcategory: "Phones", Keywords: []string{"phone"}},
	}

	got, ok := Classify("new phone in box", rules)
	if !ok || got != "Phones" {
		t.Errorf("blank keywords must not match everything, got %q ok=%v", got, ok)
	}
}

func TestClassifyNilRules(t *testing.T) {
	if got, ok := Classify("anything", nil); ok {
		t.Errorf("expected no match with nil rules, got %q", got)
	}
}
