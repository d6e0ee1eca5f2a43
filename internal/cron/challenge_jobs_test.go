package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/coinquestapp/coinquest-backend/pkg/logger"
)

type fakeChallengeSweeper struct {
	acceptCalls     int
	settlementCalls int
	lastNow         time.Time
	expired         int
	settled         int
	err             error
}

func (f *fakeChallengeSweeper) SweepAcceptDeadlines(_ context.Context, now time.Time) (int, error) {
	f.acceptCalls++
	f.lastNow = now
	return f.expired, f.err
}

func (f *fakeChallengeSweeper) SweepCompletionDeadlines(_ context.Context, now time.Time) (int, error) {
	f.settlementCalls++
	f.lastNow = now
	return f.settled, f.err
}

func TestChallengeAcceptExpiryJob(t *testing.T) {
	sweeper := &fakeChallengeSweeper{expired: 3}
	job, err := NewChallengeAcceptExpiryJob(ChallengeAcceptExpiryJobParams{
		Logger:     logger.New(logger.Options{ServiceName: "test"}),
		Challenges: sweeper,
	})
	if err != nil {
		t.Fatalf("NewChallengeAcceptExpiryJob: %v", err)
	}
	if job.Name() != "challenge-accept-expiry" {
		t.Fatalf("unexpected name %q", job.Name())
	}

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sweeper.acceptCalls != 1 {
		t.Fatalf("expected one sweep, got %d", sweeper.acceptCalls)
	}
	if sweeper.lastNow.Location() != time.UTC {
		t.Fatal("sweep timestamp must be UTC")
	}
}

func TestChallengeSettlementJob(t *testing.T) {
	sweeper := &fakeChallengeSweeper{settled: 2}
	job, err := NewChallengeSettlementJob(ChallengeSettlementJobParams{
		Logger:     logger.New(logger.Options{ServiceName: "test"}),
		Challenges: sweeper,
	})
	if err != nil {
		t.Fatalf("NewChallengeSettlementJob: %v", err)
	}

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sweeper.settlementCalls != 1 {
		t.Fatalf("expected one sweep, got %d", sweeper.settlementCalls)
	}
}

func TestChallengeJobsPropagateErrors(t *testing.T) {
	sweeper := &fakeChallengeSweeper{err: errors.New("boom")}
	logg := logger.New(logger.Options{ServiceName: "test"})

	expiry, err := NewChallengeAcceptExpiryJob(ChallengeAcceptExpiryJobParams{Logger: logg, Challenges: sweeper})
	if err != nil {
		t.Fatalf("NewChallengeAcceptExpiryJob: %v", err)
	}
	if err := expiry.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	settlement, err := NewChallengeSettlementJob(ChallengeSettlementJobParams{Logger: logg, Challenges: sweeper})
	if err != nil {
		t.Fatalf("NewChallengeSettlementJob: %v", err)
	}
	if err := settlement.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
