package resolver

import (
	"strings"

	"infosetu/i18n"
	"infosetu/storage"
)

// Rule is one entry of the deterministic tier: a scheme category, its trigger
// keywords (across both languages), and the canned answer per language.
type Rule struct {
	Category string
	Position int
	Keywords []string
	Answers  map[i18n.Language]string
}

// RuleSet is the immutable configuration of the deterministic tier. It is
// built once at startup from the knowledge store and never mutated.
type RuleSet struct {
	rules    []Rule
	defaults map[i18n.Language]string
}

// NewRuleSet assembles ordered rules from knowledge-store entries. Entries
// sharing a category merge: keywords union across languages, one answer per
// language. Entries with no keywords supply the no-match default answer.
func NewRuleSet(entries []storage.AnswerEntry) *RuleSet {
	rs := &RuleSet{
		defaults: make(map[i18n.Language]string),
	}

	index := make(map[string]int)
	for _, e := range entries {
		lang := i18n.Language(e.Language)
		if !lang.Valid() {
			continue
		}

		if e.Keywords == "" {
			rs.defaults[lang] = e.Answer
			continue
		}

		i, ok := index[e.Category]
		if !ok {
			i = len(rs.rules)
			index[e.Category] = i
			rs.rules = append(rs.rules, Rule{
				Category: e.Category,
				Position: e.Position,
				Answers:  make(map[i18n.Language]string),
			})
		}

		rule := &rs.rules[i]
		for _, kw := range strings.Split(e.Keywords, ",") {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				rule.Keywords = append(rule.Keywords, kw)
			}
		}
		rule.Answers[lang] = e.Answer
	}

	// Entries arrive ordered by position, but don't depend on it.
	for i := 1; i < len(rs.rules); i++ {
		for j := i; j > 0 && rs.rules[j-1].Position > rs.rules[j].Position; j-- {
			rs.rules[j-1], rs.rules[j] = rs.rules[j], rs.rules[j-1]
		}
	}

	return rs
}

// Match evaluates the rules in order and returns the answer of the first rule
// with a keyword substring match. First match wins; tie-break is rule
// position, which is part of the store's contract.
func (rs *RuleSet) Match(message string, lang i18n.Language) (string, bool) {
	normalized := strings.ToLower(message)

	for _, rule := range rs.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(normalized, kw) {
				if answer, ok := rule.Answers[lang]; ok && answer != "" {
					return answer, true
				}
				// Fall back to English wording if the language row is missing.
				if answer, ok := rule.Answers[i18n.English]; ok && answer != "" {
					return answer, true
				}
			}
		}
	}

	return "", false
}

// Default returns the no-match informational answer for the language.
func (rs *RuleSet) Default(lang i18n.Language) string {
	if answer, ok := rs.defaults[lang]; ok && answer != "" {
		return answer
	}
	return rs.defaults[i18n.English]
}

// Len returns the number of keyword rules.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}
