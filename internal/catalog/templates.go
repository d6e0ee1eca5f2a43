package catalog

import (
	"github.com/coinquestapp/coinquest-backend/internal/verification"
	"github.com/coinquestapp/coinquest-backend/pkg/enums"
)

var templates = []Template{
	// Expense tracking.
	{
		ID:             "expense_track_5",
		Title:          "Expense Tracker Bronze",
		Description:    "Track 5 expenses within the deadline",
		Category:       enums.ChallengeTypeExpenseTracking,
		Difficulty:     enums.DifficultyEasy,
		SuggestedWager: 10,
		SuggestedDays:  3,
		Criteria:       verification.Criteria{Type: enums.RuleExpenseCount, TargetValue: 5},
		Icon:           "📝",
	},
	{
		ID:             "expense_track_10",
		Title:          "Expense Tracker Silver",
		Description:    "Track 10 expenses within the deadline",
		Category:       enums.ChallengeTypeExpenseTracking,
		Difficulty:     enums.DifficultyMedium,
		SuggestedWager: 20,
		SuggestedDays:  5,
		Criteria:       verification.Criteria{Type: enums.RuleExpenseCount, TargetValue: 10},
		Icon:           "📝",
	},
	{
		ID:             "expense_track_20",
		Title:          "Expense Tracker Gold",
		Description:    "Track 20 expenses within the deadline",
		Category:       enums.ChallengeTypeExpenseTracking,
		Difficulty:     enums.DifficultyHard,
		SuggestedWager: 40,
		SuggestedDays:  7,
		Criteria:       verification.Criteria{Type: enums.RuleExpenseCount, TargetValue: 20},
		Icon:           "📝",
	},
	{
		ID:             "expense_with_notes",
		Title:          "Detail Master",
		Description:    "Add 5 expenses with notes (minimum 10 characters)",
		Category:       enums.ChallengeTypeExpenseTracking,
		Difficulty:     enums.DifficultyMedium,
		SuggestedWager: 25,
		SuggestedDays:  5,
		Criteria:       verification.Criteria{Type: enums.RuleExpenseWithNotes, TargetValue: 5, MinNoteLength: 10},
		Icon:           "✍️",
	},
	{
		ID:             "expense_daily",
		Title:          "Daily Tracker",
		Description:    "Track at least 1 expense every day for 5 days",
		Category:       enums.ChallengeTypeExpenseTracking,
		Difficulty:     enums.DifficultyMedium,
		SuggestedWager: 30,
		SuggestedDays:  5,
		Criteria:       verification.Criteria{Type: enums.RuleExpenseDailyStreak, TargetValue: 5},
		Icon:           "📅",
	},

	// Budgets.
	{
		ID:             "create_budget",
		Title:          "Budget Planner",
		Description:    "Create 1 budget within the deadline",
		Category:       enums.ChallengeTypeBudgetCreation,
		Difficulty:     enums.DifficultyEasy,
		SuggestedWager: 15,
		SuggestedDays:  2,
		Criteria:       verification.Criteria{Type: enums.RuleBudgetCount, TargetValue: 1},
		Icon:           "💼",
	},
	{
		ID:             "create_3_budgets",
		Title:          "Budget Master",
		Description:    "Create 3 different budgets",
		Category:       enums.ChallengeTypeBudgetCreation,
		Difficulty:     enums.DifficultyMedium,
		SuggestedWager: 35,
		SuggestedDays:  5,
		Criteria:       verification.Criteria{Type: enums.RuleBudgetCount, TargetValue: 3},
		Icon:           "💼",
	},
	{
		ID:             "stay_under_budget",
		Title:          "Budget Keeper",
		Description:    "Stay under your budget for 5 days",
		Category:       enums.ChallengeTypeBudgetAdherence,
		Difficulty:     enums.DifficultyHard,
		SuggestedWager: 50,
		SuggestedDays:  5,
		Criteria:       verification.Criteria{Type: enums.RuleUnderBudgetDays, TargetValue: 5},
		Icon:           "✅",
	},

	// Savings goals.
	{
		ID:             "create_goal",
		Title:          "Goal Setter",
		Description:    "Create 1 savings goal",
		Category:       enums.ChallengeTypeSavingsGoal,
		Difficulty:     enums.DifficultyEasy,
		SuggestedWager: 15,
		SuggestedDays:  2,
		Criteria:       verification.Criteria{Type: enums.RuleGoalCount, TargetValue: 1},
		Icon:           "🎯",
	},
	{
		ID:             "save_amount",
		Title:          "Saver Bronze",
		Description:    "Save at least $50 within the deadline",
		Category:       enums.ChallengeTypeSavingsGoal,
		Difficulty:     enums.DifficultyMedium,
		SuggestedWager: 20,
		SuggestedDays:  7,
		Criteria:       verification.Criteria{Type: enums.RuleTotalSavings, TargetValue: 50},
		Icon:           "💰",
	},
	{
		ID:             "save_amount_100",
		Title:          "Saver Silver",
		Description:    "Save at least $100 within the deadline",
		Category:       enums.ChallengeTypeSavingsGoal,
		Difficulty:     enums.DifficultyHard,
		SuggestedWager: 40,
		SuggestedDays:  10,
		Criteria:       verification.Criteria{Type: enums.RuleTotalSavings, TargetValue: 100},
		Icon:           "💰",
	},

	// Login streaks.
	{
		ID:             "maintain_streak_3",
		Title:          "Streak Starter",
		Description:    "Maintain a 3-day login streak",
		Category:       enums.ChallengeTypeStreakMaintain,
		Difficulty:     enums.DifficultyEasy,
		SuggestedWager: 15,
		SuggestedDays:  3,
		Criteria:       verification.Criteria{Type: enums.RuleLoginStreak, TargetValue: 3},
		Icon:           "🔥",
	},
	{
		ID:             "maintain_streak_7",
		Title:          "Streak Warrior",
		Description:    "Maintain a 7-day login streak",
		Category:       enums.ChallengeTypeStreakMaintain,
		Difficulty:     enums.DifficultyMedium,
		SuggestedWager: 30,
		SuggestedDays:  7,
		Criteria:       verification.Criteria{Type: enums.RuleLoginStreak, TargetValue: 7},
		Icon:           "🔥",
	},
	{
		ID:             "maintain_streak_14",
		Title:          "Streak Legend",
		Description:    "Maintain a 14-day login streak",
		Category:       enums.ChallengeTypeStreakMaintain,
		Difficulty:     enums.DifficultyHard,
		SuggestedWager: 60,
		SuggestedDays:  14,
		Criteria:       verification.Criteria{Type: enums.RuleLoginStreak, TargetValue: 14},
		Icon:           "🔥",
	},

	// Daily challenge completion.
	{
		ID:             "complete_daily_3",
		Title:          "Challenge Rookie",
		Description:    "Complete 3 daily challenges",
		Category:       enums.ChallengeTypeDailyChallengeComplete,
		Difficulty:     enums.DifficultyEasy,
		SuggestedWager: 15,
		SuggestedDays:  3,
		Criteria:       verification.Criteria{Type: enums.RuleDailyChallengesDone, TargetValue: 3},
		Icon:           "🏆",
	},
	{
		ID:             "complete_daily_7",
		Title:          "Challenge Pro",
		Description:    "Complete 7 daily challenges",
		Category:       enums.ChallengeTypeDailyChallengeComplete,
		Difficulty:     enums.DifficultyMedium,
		SuggestedWager: 30,
		SuggestedDays:  7,
		Criteria:       verification.Criteria{Type: enums.RuleDailyChallengesDone, TargetValue: 7},
		Icon:           "🏆",
	},
	{
		ID:             "complete_daily_14",
		Title:          "Challenge Master",
		Description:    "Complete 14 daily challenges",
		Category:       enums.ChallengeTypeDailyChallengeComplete,
		Difficulty:     enums.DifficultyHard,
		SuggestedWager: 50,
		SuggestedDays:  14,
		Criteria:       verification.Criteria{Type: enums.RuleDailyChallengesDone, TargetValue: 14},
		Icon:           "🏆",
	},

	// XP and levels.
	{
		ID:             "gain_xp_100",
		Title:          "XP Hunter",
		Description:    "Gain at least 100 XP",
		Category:       enums.ChallengeTypeXPGain,
		Difficulty:     enums.DifficultyMedium,
		SuggestedWager: 25,
		SuggestedDays:  5,
		Criteria:       verification.Criteria{Type: enums.RuleXPGained, TargetValue: 100},
		Icon:           "⭐",
	},
	{
		ID:             "gain_xp_250",
		Title:          "XP Farmer",
		Description:    "Gain at least 250 XP",
		Category:       enums.ChallengeTypeXPGain,
		Difficulty:     enums.DifficultyHard,
		SuggestedWager: 50,
		SuggestedDays:  7,
		Criteria:       verification.Criteria{Type: enums.RuleXPGained, TargetValue: 250},
		Icon:           "⭐",
	},
	{
		ID:             "level_up",
		Title:          "Level Up!",
		Description:    "Reach the next level",
		Category:       enums.ChallengeTypeLevelUp,
		Difficulty:     enums.DifficultyHard,
		SuggestedWager: 60,
		SuggestedDays:  10,
		Criteria:       verification.Criteria{Type: enums.RuleLevelUp, TargetValue: 1},
		Icon:           "🎖️",
	},

	// Category-specific.
	{
		ID:             "food_expenses_10",
		Title:          "Food Tracker",
		Description:    "Track 10 food expenses",
		Category:       enums.ChallengeTypeExpenseTracking,
		Difficulty:     enums.DifficultyMedium,
		SuggestedWager: 20,
		SuggestedDays:  5,
		Criteria:       verification.Criteria{Type: enums.RuleCategoryExpenseCount, Category: "Food", TargetValue: 10},
		Icon:           "🍔",
	},
	{
		ID:             "transport_expenses_10",
		Title:          "Transport Tracker",
		Description:    "Track 10 transport expenses",
		Category:       enums.ChallengeTypeExpenseTracking,
		Difficulty:     enums.DifficultyMedium,
		SuggestedWager: 20,
		SuggestedDays:  7,
		Criteria:       verification.Criteria{Type: enums.RuleCategoryExpenseCount, Category: "Transport", TargetValue: 10},
		Icon:           "🚗",
	},
	{
		ID:             "entertainment_budget",
		Title:          "Fun Budget Master",
		Description:    "Stay under entertainment budget for 5 days",
		Category:       enums.ChallengeTypeBudgetAdherence,
		Difficulty:     enums.DifficultyMedium,
		SuggestedWager: 30,
		SuggestedDays:  5,
		Criteria:       verification.Criteria{Type: enums.RuleCategoryUnderBudget, Category: "Entertainment", TargetValue: 5},
		Icon:           "🎮",
	},

	// Consistency.
	{
		ID:             "consistent_logger",
		Title:          "Consistent Logger",
		Description:    "Log at least 2 expenses every day for 5 days",
		Category:       enums.ChallengeTypeExpenseTracking,
		Difficulty:     enums.DifficultyHard,
		SuggestedWager: 45,
		SuggestedDays:  5,
		Criteria:       verification.Criteria{Type: enums.RuleDailyExpenseMinimum, TargetValue: 5, MinPerDay: 2},
		Icon:           "📊",
	},
	{
		ID:             "active_user",
		Title:          "Active User",
		Description:    "Complete at least 1 daily challenge every day for 5 days",
		Category:       enums.ChallengeTypeDailyChallengeComplete,
		Difficulty:     enums.DifficultyMedium,
		SuggestedWager: 35,
		SuggestedDays:  5,
		Criteria:       verification.Criteria{Type: enums.RuleDailyChallengeStreak, TargetValue: 5},
		Icon:           "💪",
	},

	// Social.
	{
		ID:             "add_friends",
		Title:          "Social Butterfly",
		Description:    "Add 3 new friends",
		Category:       enums.ChallengeTypeSocial,
		Difficulty:     enums.DifficultyEasy,
		SuggestedWager: 10,
		SuggestedDays:  3,
		Criteria:       verification.Criteria{Type: enums.RuleFriendsAdded, TargetValue: 3},
		Icon:           "👥",
	},
	{
		ID:             "leaderboard_top_10",
		Title:          "Top 10 Climber",
		Description:    "Reach top 10 on the leaderboard",
		Category:       enums.ChallengeTypeLeaderboard,
		Difficulty:     enums.DifficultyHard,
		SuggestedWager: 70,
		SuggestedDays:  14,
		Criteria:       verification.Criteria{Type: enums.RuleLeaderboardRank, TargetValue: 10},
		Icon:           "🏅",
	},

	// Advanced.
	{
		ID:             "perfect_week",
		Title:          "Perfect Week",
		Description:    "Complete all daily challenges for 7 days",
		Category:       enums.ChallengeTypeDailyChallengeComplete,
		Difficulty:     enums.DifficultyExtreme,
		SuggestedWager: 100,
		SuggestedDays:  7,
		Criteria:       verification.Criteria{Type: enums.RulePerfectDailyWeek, TargetValue: 7},
		Icon:           "👑",
	},
	{
		ID:             "budget_savings_combo",
		Title:          "Budget & Save Combo",
		Description:    "Create 2 budgets and save $50",
		Category:       enums.ChallengeTypeCombined,
		Difficulty:     enums.DifficultyHard,
		SuggestedWager: 50,
		SuggestedDays:  7,
		Criteria: verification.Criteria{
			Type: enums.RuleCombined,
			Requirements: []verification.Criteria{
				{Type: enums.RuleBudgetCount, TargetValue: 2},
				{Type: enums.RuleTotalSavings, TargetValue: 50},
			},
		},
		Icon: "🎯",
	},
	{
		ID:             "expense_budget_goal",
		Title:          "Triple Threat",
		Description:    "Track 10 expenses, create 1 budget, and set 1 goal",
		Category:       enums.ChallengeTypeCombined,
		Difficulty:     enums.DifficultyHard,
		SuggestedWager: 55,
		SuggestedDays:  7,
		Criteria: verification.Criteria{
			Type: enums.RuleCombined,
			Requirements: []verification.Criteria{
				{Type: enums.RuleExpenseCount, TargetValue: 10},
				{Type: enums.RuleBudgetCount, TargetValue: 1},
				{Type: enums.RuleGoalCount, TargetValue: 1},
			},
		},
		Icon: "🎪",
	},

	// Speed.
	{
		ID:             "quick_tracker",
		Title:          "Quick Tracker",
		Description:    "Track 5 expenses within 24 hours",
		Category:       enums.ChallengeTypeExpenseTracking,
		Difficulty:     enums.DifficultyMedium,
		SuggestedWager: 25,
		SuggestedDays:  1,
		Criteria:       verification.Criteria{Type: enums.RuleExpenseCount, TargetValue: 5},
		Icon:           "⚡",
	},
	{
		ID:             "speed_budgeter",
		Title:          "Speed Budgeter",
		Description:    "Create 2 budgets within 48 hours",
		Category:       enums.ChallengeTypeBudgetCreation,
		Difficulty:     enums.DifficultyMedium,
		SuggestedWager: 30,
		SuggestedDays:  2,
		Criteria:       verification.Criteria{Type: enums.RuleBudgetCount, TargetValue: 2},
		Icon:           "⚡",
	},

	// Milestones.
	{
		ID:             "expense_milestone_50",
		Title:          "Expense Milestone",
		Description:    "Track your 50th expense (cumulative)",
		Category:       enums.ChallengeTypeMilestone,
		Difficulty:     enums.DifficultyMedium,
		SuggestedWager: 40,
		SuggestedDays:  10,
		Criteria:       verification.Criteria{Type: enums.RuleTotalExpenseCount, TargetValue: 50},
		Icon:           "🎊",
	},
	{
		ID:             "savings_milestone_500",
		Title:          "Savings Milestone",
		Description:    "Reach $500 in total savings",
		Category:       enums.ChallengeTypeMilestone,
		Difficulty:     enums.DifficultyHard,
		SuggestedWager: 80,
		SuggestedDays:  30,
		Criteria:       verification.Criteria{Type: enums.RuleTotalSavings, TargetValue: 500},
		Icon:           "💎",
	},
}
