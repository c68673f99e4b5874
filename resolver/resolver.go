// Package resolver produces an answer string for every citizen query.
//
// Resolution is two-tier. The deterministic tier evaluates an ordered keyword
// rule list loaded once from the knowledge store; first match wins. When no
// rule matches, an optional generative tier asks an external model with a
// fixed persona prompt. The package contract is fail-soft: Resolve always
// returns a usable answer and never an error - generative faults are logged
// and concealed behind the deterministic default answer.
package resolver

import (
	"context"
	"strings"
	"time"

	"infosetu/config"
	"infosetu/i18n"
)

// generativeTimeout bounds the fallback tier; the deterministic default is
// returned when it expires.
const generativeTimeout = 30 * time.Second

// Resolver answers citizen queries.
type Resolver struct {
	rules     *RuleSet
	generator Generator // nil when the fallback tier is not configured
}

// New creates a resolver over an immutable rule set. generator may be nil,
// in which case unmatched queries get the deterministic default answer.
func New(rules *RuleSet, generator Generator) *Resolver {
	return &Resolver{
		rules:     rules,
		generator: generator,
	}
}

// Resolve returns the answer for message in the given language. It never
// returns an empty string and its error is always nil: internal faults are
// logged and demote the answer to the deterministic default. The error
// return is part of the orchestrator's resolver contract, which also admits
// transport-backed resolvers.
func (r *Resolver) Resolve(ctx context.Context, message string, lang i18n.Language) (string, error) {
	if !lang.Valid() {
		lang = i18n.English
	}

	if answer, ok := r.rules.Match(message, lang); ok {
		return answer, nil
	}

	if r.generator == nil {
		return r.rules.Default(lang), nil
	}

	genCtx, cancel := context.WithTimeout(ctx, generativeTimeout)
	defer cancel()

	answer, err := r.generator.Generate(genCtx, BuildPersonaPrompt(message, lang))
	if err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Resolver] generative tier failed: %v", err)
		}
		return r.rules.Default(lang), nil
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Resolver] generative tier returned empty output")
		}
		return r.rules.Default(lang), nil
	}

	return answer, nil
}

// HasFallback reports whether the generative tier is configured.
func (r *Resolver) HasFallback() bool {
	return r.generator != nil
}
