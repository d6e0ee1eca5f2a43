// Package catalog holds the built-in friend challenge templates. Templates
// are static; custom challenges bypass the catalog entirely.
package catalog

import (
	"github.com/coinquestapp/coinquest-backend/internal/verification"
	"github.com/coinquestapp/coinquest-backend/pkg/enums"
)

// Template is a pre-made challenge definition with suggested stakes and a
// ready-to-use verification criteria document.
type Template struct {
	ID             string                `json:"id"`
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	Category       enums.ChallengeType   `json:"category"`
	Difficulty     enums.Difficulty      `json:"difficulty"`
	SuggestedWager int                   `json:"suggestedWager"`
	SuggestedDays  int                   `json:"suggestedDays"`
	Criteria       verification.Criteria `json:"verificationCriteria"`
	Icon           string                `json:"icon"`
}

var byID = func() map[string]Template {
	index := make(map[string]Template, len(templates))
	for _, tpl := range templates {
		index[tpl.ID] = tpl
	}
	return index
}()

// All returns every template in catalog order.
func All() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// ByID looks up a template by its identifier.
func ByID(id string) (Template, bool) {
	tpl, ok := byID[id]
	return tpl, ok
}

// ByCategory returns the templates tagged with the given category.
func ByCategory(category enums.ChallengeType) []Template {
	var out []Template
	for _, tpl := range templates {
		if tpl.Category == category {
			out = append(out, tpl)
		}
	}
	return out
}

// ByDifficulty returns the templates graded at the given difficulty.
func ByDifficulty(difficulty enums.Difficulty) []Template {
	var out []Template
	for _, tpl := range templates {
		if tpl.Difficulty == difficulty {
			out = append(out, tpl)
		}
	}
	return out
}

// Categories returns the distinct categories in catalog order.
func Categories() []enums.ChallengeType {
	seen := make(map[enums.ChallengeType]bool, len(templates))
	var out []enums.ChallengeType
	for _, tpl := range templates {
		if !seen[tpl.Category] {
			seen[tpl.Category] = true
			out = append(out, tpl.Category)
		}
	}
	return out
}
