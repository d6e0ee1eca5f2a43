package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/coinquestapp/coinquest-backend/pkg/logger"
)

// settlementSweeper is the slice of the challenge service the settlement
// job needs.
type settlementSweeper interface {
	SweepCompletionDeadlines(ctx context.Context, now time.Time) (int, error)
}

type ChallengeSettlementJobParams struct {
	Logger     *logger.Logger
	Challenges settlementSweeper
}

// NewChallengeSettlementJob force-settles accepted challenges whose
// completion deadline lapsed: the challenger collects the wager. Challenges
// settled concurrently by a completion check are skipped.
func NewChallengeSettlementJob(params ChallengeSettlementJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Challenges == nil {
		return nil, fmt.Errorf("challenge service required")
	}
	return &challengeSettlementJob{
		logg:       params.Logger,
		challenges: params.Challenges,
		now:        time.Now,
	}, nil
}

type challengeSettlementJob struct {
	logg       *logger.Logger
	challenges settlementSweeper
	now        func() time.Time
}

func (j *challengeSettlementJob) Name() string { return "challenge-settlement" }

func (j *challengeSettlementJob) Run(ctx context.Context) error {
	now := j.now().UTC()
	settled, err := j.challenges.SweepCompletionDeadlines(ctx, now)
	if err != nil {
		return fmt.Errorf("settlement sweep: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"swept_at":           now,
		"challenges_settled": settled,
	})
	j.logg.Info(logCtx, "settlement sweep complete")
	return nil
}
