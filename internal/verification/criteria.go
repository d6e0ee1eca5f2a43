package verification

import (
	"encoding/json"
	"fmt"

	"github.com/coinquestapp/coinquest-backend/pkg/enums"
)

// Criteria describes how a challenge is verified. It is stored as jsonb on
// the challenge row, so the JSON shape is part of the persisted contract.
type Criteria struct {
	Type          enums.RuleType `json:"type"`
	TargetValue   int            `json:"targetValue,omitempty"`
	Category      string         `json:"category,omitempty"`
	MinNoteLength int            `json:"minNoteLength,omitempty"`
	MinPerDay     int            `json:"minPerDay,omitempty"`
	Requirements  []Criteria     `json:"requirements,omitempty"`
}

// Validate checks the criteria is well-formed before it is persisted.
func (c Criteria) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("unknown rule type %q", c.Type)
	}
	if c.Type == enums.RuleCombined {
		if len(c.Requirements) == 0 {
			return fmt.Errorf("combined criteria requires at least one requirement")
		}
		for i, req := range c.Requirements {
			if req.Type == enums.RuleCombined {
				return fmt.Errorf("requirement %d: combined criteria cannot nest", i)
			}
			if err := req.Validate(); err != nil {
				return fmt.Errorf("requirement %d: %w", i, err)
			}
		}
		return nil
	}
	if c.TargetValue <= 0 {
		return fmt.Errorf("rule %s requires a positive target value", c.Type)
	}
	switch c.Type {
	case enums.RuleCategoryExpenseCount, enums.RuleCategoryUnderBudget:
		if c.Category == "" {
			return fmt.Errorf("rule %s requires a category", c.Type)
		}
	case enums.RuleExpenseWithNotes:
		if c.MinNoteLength <= 0 {
			return fmt.Errorf("rule %s requires a positive minimum note length", c.Type)
		}
	case enums.RuleDailyExpenseMinimum:
		if c.MinPerDay <= 0 {
			return fmt.Errorf("rule %s requires a positive per-day minimum", c.Type)
		}
	}
	return nil
}

// ParseCriteria decodes and validates a persisted criteria document.
func ParseCriteria(raw json.RawMessage) (Criteria, error) {
	c, err := DecodeCriteria(raw)
	if err != nil {
		return Criteria{}, err
	}
	if err := c.Validate(); err != nil {
		return Criteria{}, err
	}
	return c, nil
}

// DecodeCriteria decodes a persisted criteria document without revalidating
// it. The read path tolerates rows written under an older rule set; the
// verifier reports unknown types as not completed rather than erroring.
func DecodeCriteria(raw json.RawMessage) (Criteria, error) {
	var c Criteria
	if err := json.Unmarshal(raw, &c); err != nil {
		return Criteria{}, fmt.Errorf("decode criteria: %w", err)
	}
	return c, nil
}
