package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/coinquestapp/coinquest-backend/pkg/logger"
)

// acceptSweeper is the slice of the challenge service the expiry job needs.
type acceptSweeper interface {
	SweepAcceptDeadlines(ctx context.Context, now time.Time) (int, error)
}

type ChallengeAcceptExpiryJobParams struct {
	Logger     *logger.Logger
	Challenges acceptSweeper
}

// NewChallengeAcceptExpiryJob expires pending challenges nobody accepted
// before the accept deadline. No money moves.
func NewChallengeAcceptExpiryJob(params ChallengeAcceptExpiryJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Challenges == nil {
		return nil, fmt.Errorf("challenge service required")
	}
	return &challengeAcceptExpiryJob{
		logg:       params.Logger,
		challenges: params.Challenges,
		now:        time.Now,
	}, nil
}

type challengeAcceptExpiryJob struct {
	logg       *logger.Logger
	challenges acceptSweeper
	now        func() time.Time
}

func (j *challengeAcceptExpiryJob) Name() string { return "challenge-accept-expiry" }

func (j *challengeAcceptExpiryJob) Run(ctx context.Context) error {
	now := j.now().UTC()
	expired, err := j.challenges.SweepAcceptDeadlines(ctx, now)
	if err != nil {
		return fmt.Errorf("accept expiry sweep: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"swept_at":           now,
		"challenges_expired": expired,
	})
	j.logg.Info(logCtx, "accept expiry sweep complete")
	return nil
}
