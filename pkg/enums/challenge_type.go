package enums

import "fmt"

// ChallengeType tags the broad category of a friend challenge.
type ChallengeType string

const (
	ChallengeTypeExpenseTracking        ChallengeType = "expense_tracking"
	ChallengeTypeBudgetCreation         ChallengeType = "budget_creation"
	ChallengeTypeBudgetAdherence        ChallengeType = "budget_adherence"
	ChallengeTypeSavingsGoal            ChallengeType = "savings_goal"
	ChallengeTypeStreakMaintain         ChallengeType = "streak_maintain"
	ChallengeTypeDailyChallengeComplete ChallengeType = "daily_challenge_complete"
	ChallengeTypeXPGain                 ChallengeType = "xp_gain"
	ChallengeTypeLevelUp                ChallengeType = "level_up"
	ChallengeTypeSocial                 ChallengeType = "social"
	ChallengeTypeLeaderboard            ChallengeType = "leaderboard"
	ChallengeTypeCombined               ChallengeType = "combined"
	ChallengeTypeMilestone              ChallengeType = "milestone"
	ChallengeTypeCustom                 ChallengeType = "custom"
)

var validChallengeTypes = []ChallengeType{
	ChallengeTypeExpenseTracking,
	ChallengeTypeBudgetCreation,
	ChallengeTypeBudgetAdherence,
	ChallengeTypeSavingsGoal,
	ChallengeTypeStreakMaintain,
	ChallengeTypeDailyChallengeComplete,
	ChallengeTypeXPGain,
	ChallengeTypeLevelUp,
	ChallengeTypeSocial,
	ChallengeTypeLeaderboard,
	ChallengeTypeCombined,
	ChallengeTypeMilestone,
	ChallengeTypeCustom,
}

// IsValid reports whether the value is a known ChallengeType.
func (t ChallengeType) IsValid() bool {
	for _, candidate := range validChallengeTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseChallengeType converts raw input into a ChallengeType.
func ParseChallengeType(value string) (ChallengeType, error) {
	for _, candidate := range validChallengeTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid challenge type %q", value)
}
