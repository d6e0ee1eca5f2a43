package enums

import "fmt"

// RuleType identifies a verification rule kind. The verifier dispatches on
// this tag; the combined kind nests a list of sub-rules.
type RuleType string

const (
	RuleExpenseCount           RuleType = "expense_count"
	RuleExpenseWithNotes       RuleType = "expense_with_notes"
	RuleExpenseDailyStreak     RuleType = "expense_daily_streak"
	RuleBudgetCount            RuleType = "budget_count"
	RuleUnderBudgetDays        RuleType = "under_budget_days"
	RuleGoalCount              RuleType = "goal_count"
	RuleTotalSavings           RuleType = "total_savings"
	RuleLoginStreak            RuleType = "login_streak"
	RuleDailyChallengesDone    RuleType = "daily_challenges_completed"
	RuleXPGained               RuleType = "xp_gained"
	RuleLevelUp                RuleType = "level_up"
	RuleCategoryExpenseCount   RuleType = "category_expense_count"
	RuleCategoryUnderBudget    RuleType = "category_under_budget"
	RuleDailyExpenseMinimum    RuleType = "daily_expense_minimum"
	RuleDailyChallengeStreak   RuleType = "daily_challenge_streak"
	RuleFriendsAdded           RuleType = "friends_added"
	RuleLeaderboardRank        RuleType = "leaderboard_rank"
	RulePerfectDailyWeek       RuleType = "perfect_daily_week"
	RuleTotalExpenseCount      RuleType = "total_expense_count"
	RuleCombined               RuleType = "combined"
)

var validRuleTypes = []RuleType{
	RuleExpenseCount,
	RuleExpenseWithNotes,
	RuleExpenseDailyStreak,
	RuleBudgetCount,
	RuleUnderBudgetDays,
	RuleGoalCount,
	RuleTotalSavings,
	RuleLoginStreak,
	RuleDailyChallengesDone,
	RuleXPGained,
	RuleLevelUp,
	RuleCategoryExpenseCount,
	RuleCategoryUnderBudget,
	RuleDailyExpenseMinimum,
	RuleDailyChallengeStreak,
	RuleFriendsAdded,
	RuleLeaderboardRank,
	RulePerfectDailyWeek,
	RuleTotalExpenseCount,
	RuleCombined,
}

// IsValid reports whether the value is a known RuleType.
func (t RuleType) IsValid() bool {
	for _, candidate := range validRuleTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseRuleType converts raw input into a RuleType.
func ParseRuleType(value string) (RuleType, error) {
	for _, candidate := range validRuleTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rule type %q", value)
}
