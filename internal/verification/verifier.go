package verification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/coinquestapp/coinquest-backend/pkg/enums"
)

// ChallengeContext carries the per-challenge inputs a rule evaluation needs:
// whose activity to inspect, when the window opened, and the baseline
// snapshot captured at acceptance.
type ChallengeContext struct {
	UserID              uuid.UUID
	StartedAt           time.Time
	XPAtStart           int
	LevelAtStart        int
	FriendsCountAtStart int
}

// Result is the outcome of evaluating one criteria document.
type Result struct {
	Completed bool           `json:"completed"`
	Progress  int            `json:"progress"`
	Details   map[string]any `json:"details"`
}

// Verifier evaluates challenge criteria against a user's recorded activity.
type Verifier struct {
	source DataSource
	now    func() time.Time
}

// NewVerifier builds a verifier over the provided data source.
func NewVerifier(source DataSource) (*Verifier, error) {
	if source == nil {
		return nil, fmt.Errorf("verification data source required")
	}
	return &Verifier{source: source, now: time.Now}, nil
}

// Evaluate dispatches on the criteria type and returns completion state plus
// a progress counter whose unit depends on the rule (counts, days, XP, rank).
func (v *Verifier) Evaluate(ctx context.Context, criteria Criteria, cc ChallengeContext) (*Result, error) {
	if cc.UserID == uuid.Nil {
		return nil, fmt.Errorf("user id required")
	}
	if cc.StartedAt.IsZero() {
		return nil, fmt.Errorf("challenge start time required")
	}

	target := criteria.TargetValue
	start := cc.StartedAt.UTC()

	switch criteria.Type {
	case enums.RuleExpenseCount:
		return v.countResult(target, func() (int, error) {
			return v.source.CountExpenses(ctx, cc.UserID, start)
		}, "expensesTracked")

	case enums.RuleExpenseWithNotes:
		return v.countResult(target, func() (int, error) {
			return v.source.CountExpensesWithNotes(ctx, cc.UserID, start, criteria.MinNoteLength)
		}, "expensesWithNotes")

	case enums.RuleExpenseDailyStreak:
		return v.expenseStreak(ctx, cc, target)

	case enums.RuleBudgetCount:
		return v.countResult(target, func() (int, error) {
			return v.source.CountBudgetsCreated(ctx, cc.UserID, start)
		}, "budgetsCreated")

	case enums.RuleUnderBudgetDays:
		return v.underBudgetDays(ctx, cc, "", target)

	case enums.RuleGoalCount:
		return v.countResult(target, func() (int, error) {
			return v.source.CountGoalsCreated(ctx, cc.UserID, start)
		}, "goalsCreated")

	case enums.RuleTotalSavings:
		return v.totalSavings(ctx, cc, start, target)

	case enums.RuleLoginStreak:
		stats, err := v.source.GetUserStats(ctx, cc.UserID)
		if err != nil {
			return nil, err
		}
		return &Result{
			Completed: stats.CurrentStreak >= target,
			Progress:  stats.CurrentStreak,
			Details:   map[string]any{"currentStreak": stats.CurrentStreak, "target": target},
		}, nil

	case enums.RuleDailyChallengesDone:
		return v.countResult(target, func() (int, error) {
			return v.source.CountDailyChallengesCompleted(ctx, cc.UserID, start)
		}, "challengesCompleted")

	case enums.RuleXPGained:
		stats, err := v.source.GetUserStats(ctx, cc.UserID)
		if err != nil {
			return nil, err
		}
		gained := stats.XP - cc.XPAtStart
		if gained < 0 {
			gained = 0
		}
		return &Result{
			Completed: gained >= target,
			Progress:  gained,
			Details:   map[string]any{"xpGained": gained, "target": target},
		}, nil

	case enums.RuleLevelUp:
		stats, err := v.source.GetUserStats(ctx, cc.UserID)
		if err != nil {
			return nil, err
		}
		gained := stats.Level - cc.LevelAtStart
		if gained < 0 {
			gained = 0
		}
		return &Result{
			Completed: gained >= 1,
			Progress:  gained,
			Details: map[string]any{
				"levelAtStart": cc.LevelAtStart,
				"currentLevel": stats.Level,
				"levelsGained": gained,
			},
		}, nil

	case enums.RuleCategoryExpenseCount:
		result, err := v.countResult(target, func() (int, error) {
			return v.source.CountExpensesInCategory(ctx, cc.UserID, criteria.Category, start)
		}, "expensesTracked")
		if err != nil {
			return nil, err
		}
		result.Details["category"] = criteria.Category
		return result, nil

	case enums.RuleCategoryUnderBudget:
		return v.underBudgetDays(ctx, cc, criteria.Category, target)

	case enums.RuleDailyExpenseMinimum:
		return v.dailyExpenseMinimum(ctx, cc, target, criteria.MinPerDay)

	case enums.RuleDailyChallengeStreak:
		return v.dailyChallengeStreak(ctx, cc, target)

	case enums.RuleFriendsAdded:
		count, err := v.source.FriendsCount(ctx, cc.UserID)
		if err != nil {
			return nil, err
		}
		added := count - cc.FriendsCountAtStart
		if added < 0 {
			added = 0
		}
		return &Result{
			Completed: added >= target,
			Progress:  added,
			Details:   map[string]any{"friendsAdded": added, "target": target},
		}, nil

	case enums.RuleLeaderboardRank:
		rank, err := v.source.LeaderboardRank(ctx, cc.UserID)
		if err != nil {
			return nil, err
		}
		return &Result{
			Completed: rank > 0 && rank <= target,
			Progress:  rank,
			Details:   map[string]any{"currentRank": rank, "targetRank": target},
		}, nil

	case enums.RulePerfectDailyWeek:
		return v.perfectDailyWeek(ctx, cc, target)

	case enums.RuleTotalExpenseCount:
		return v.countResult(target, func() (int, error) {
			return v.source.CountAllExpenses(ctx, cc.UserID)
		}, "totalExpenses")

	case enums.RuleCombined:
		return v.combined(ctx, cc, criteria.Requirements)
	}

	return unknownRuleResult(criteria.Type), nil
}

// unknownRuleResult reports an unrecognized rule as not completed instead of
// failing the check. Stored criteria can outlive the rule set that wrote
// them, and an unverifiable challenge must stay checkable until its deadline.
func unknownRuleResult(ruleType enums.RuleType) *Result {
	return &Result{
		Completed: false,
		Progress:  0,
		Details:   map[string]any{"error": fmt.Sprintf("unknown rule type: %s", ruleType)},
	}
}

func (v *Verifier) countResult(target int, count func() (int, error), key string) (*Result, error) {
	n, err := count()
	if err != nil {
		return nil, err
	}
	return &Result{
		Completed: n >= target,
		Progress:  n,
		Details:   map[string]any{key: n, "target": target},
	}, nil
}

// expenseStreak counts consecutive days with at least one expense, walking
// forward from acceptance and stopping at the first empty day.
func (v *Verifier) expenseStreak(ctx context.Context, cc ChallengeContext, target int) (*Result, error) {
	days := v.elapsedDays(cc.StartedAt)
	streak := 0
	for i := 0; i < days; i++ {
		dayStart, dayEnd := dayWindow(cc.StartedAt, i)
		count, err := v.source.CountExpensesBetween(ctx, cc.UserID, dayStart, dayEnd)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			break
		}
		streak++
	}
	return &Result{
		Completed: streak >= target,
		Progress:  streak,
		Details:   map[string]any{"currentStreak": streak, "target": target},
	}, nil
}

func (v *Verifier) dailyChallengeStreak(ctx context.Context, cc ChallengeContext, target int) (*Result, error) {
	days := v.elapsedDays(cc.StartedAt)
	streak := 0
	for i := 0; i < days; i++ {
		dayStart, dayEnd := dayWindow(cc.StartedAt, i)
		_, completed, err := v.source.DailyChallengeCountsOnDay(ctx, cc.UserID, dayStart, dayEnd)
		if err != nil {
			return nil, err
		}
		if completed == 0 {
			break
		}
		streak++
	}
	return &Result{
		Completed: streak >= target,
		Progress:  streak,
		Details:   map[string]any{"currentStreak": streak, "target": target},
	}, nil
}

// perfectDailyWeek requires every assigned daily challenge completed on each
// of the target days; a day with no assignments breaks the run.
func (v *Verifier) perfectDailyWeek(ctx context.Context, cc ChallengeContext, target int) (*Result, error) {
	perfect := 0
	for i := 0; i < target; i++ {
		dayStart, dayEnd := dayWindow(cc.StartedAt, i)
		total, completed, err := v.source.DailyChallengeCountsOnDay(ctx, cc.UserID, dayStart, dayEnd)
		if err != nil {
			return nil, err
		}
		if total == 0 || total != completed {
			break
		}
		perfect++
	}
	return &Result{
		Completed: perfect >= target,
		Progress:  perfect,
		Details:   map[string]any{"perfectDays": perfect, "target": target},
	}, nil
}

func (v *Verifier) dailyExpenseMinimum(ctx context.Context, cc ChallengeContext, target, minPerDay int) (*Result, error) {
	days := v.elapsedDays(cc.StartedAt)
	qualified := 0
	for i := 0; i < days && i < target; i++ {
		dayStart, dayEnd := dayWindow(cc.StartedAt, i)
		count, err := v.source.CountExpensesBetween(ctx, cc.UserID, dayStart, dayEnd)
		if err != nil {
			return nil, err
		}
		if count >= minPerDay {
			qualified++
		}
	}
	return &Result{
		Completed: qualified >= target,
		Progress:  qualified,
		Details:   map[string]any{"qualifiedDays": qualified, "target": target, "minPerDay": minPerDay},
	}, nil
}

// underBudgetDays counts days where cumulative spending inside an active
// budget window stayed at or below the budget amount. An empty category
// matches any budget; otherwise only category budgets are considered.
func (v *Verifier) underBudgetDays(ctx context.Context, cc ChallengeContext, category string, target int) (*Result, error) {
	now := v.now().UTC()
	start := cc.StartedAt.UTC()
	budgets, err := v.source.ActiveBudgets(ctx, cc.UserID, category, now, start)
	if err != nil {
		return nil, err
	}
	if len(budgets) == 0 {
		details := map[string]any{"message": "no active budgets found"}
		if category != "" {
			details["category"] = category
		}
		return &Result{Completed: false, Progress: 0, Details: details}, nil
	}

	days := v.elapsedDays(cc.StartedAt)
	underDays := 0
	for i := 0; i < days && i < target; i++ {
		dayStart, dayEnd := dayWindow(cc.StartedAt, i)
		for _, budget := range budgets {
			if dayStart.Before(budget.StartDate) || dayStart.After(budget.EndDate) {
				continue
			}
			spent, err := v.source.SumExpenses(ctx, cc.UserID, category, budget.StartDate, dayEnd)
			if err != nil {
				return nil, err
			}
			if spent.LessThanOrEqual(budget.BudgetAmount) {
				underDays++
				break
			}
		}
	}

	details := map[string]any{"underBudgetDays": underDays, "target": target}
	if category != "" {
		details["category"] = category
	}
	return &Result{
		Completed: underDays >= target,
		Progress:  underDays,
		Details:   details,
	}, nil
}

func (v *Verifier) totalSavings(ctx context.Context, cc ChallengeContext, start time.Time, target int) (*Result, error) {
	saved, err := v.source.SumGoalSavings(ctx, cc.UserID, start)
	if err != nil {
		return nil, err
	}
	targetAmount := decimal.NewFromInt(int64(target))
	return &Result{
		Completed: saved.GreaterThanOrEqual(targetAmount),
		Progress:  int(saved.IntPart()),
		Details:   map[string]any{"totalSaved": saved.String(), "target": target},
	}, nil
}

// combined evaluates every sub-rule; the challenge completes only when all
// are satisfied and progress is the number satisfied so far.
func (v *Verifier) combined(ctx context.Context, cc ChallengeContext, requirements []Criteria) (*Result, error) {
	results := make([]map[string]any, 0, len(requirements))
	satisfied := 0
	for _, req := range requirements {
		res, err := v.Evaluate(ctx, req, cc)
		if err != nil {
			return nil, err
		}
		if res.Completed {
			satisfied++
		}
		results = append(results, map[string]any{
			"type":      req.Type,
			"completed": res.Completed,
			"progress":  res.Progress,
			"details":   res.Details,
		})
	}
	return &Result{
		Completed: satisfied == len(requirements),
		Progress:  satisfied,
		Details:   map[string]any{"requirements": results, "totalRequired": len(requirements)},
	}, nil
}

// elapsedDays returns how many calendar days (rounded up) have passed since
// the challenge opened, never negative.
func (v *Verifier) elapsedDays(start time.Time) int {
	elapsed := v.now().UTC().Sub(start.UTC())
	if elapsed <= 0 {
		return 0
	}
	days := int(elapsed / (24 * time.Hour))
	if elapsed%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// dayWindow returns the [start, end) bounds of the i-th UTC day after the
// challenge opened.
func dayWindow(start time.Time, offset int) (time.Time, time.Time) {
	day := start.UTC().AddDate(0, 0, offset)
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return dayStart, dayStart.Add(24 * time.Hour)
}
