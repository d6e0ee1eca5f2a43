// Package challenges implements the wagered friend-challenge lifecycle:
// create, accept, reject, cancel, completion checking, and the deadline
// sweeps. Money only ever moves inside settle, and settle only ever runs
// once per challenge.
package challenges

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coinquestapp/coinquest-backend/internal/catalog"
	"github.com/coinquestapp/coinquest-backend/internal/ledger"
	"github.com/coinquestapp/coinquest-backend/internal/verification"
	"github.com/coinquestapp/coinquest-backend/pkg/config"
	"github.com/coinquestapp/coinquest-backend/pkg/db/models"
	"github.com/coinquestapp/coinquest-backend/pkg/enums"
	pkgerrors "github.com/coinquestapp/coinquest-backend/pkg/errors"
	"github.com/coinquestapp/coinquest-backend/pkg/logger"
	"github.com/coinquestapp/coinquest-backend/pkg/outbox"
	"github.com/coinquestapp/coinquest-backend/pkg/outbox/payloads"
	"github.com/coinquestapp/coinquest-backend/pkg/pagination"
)

const sweepBatchSize = 200

// Service defines the challenge lifecycle operations.
type Service interface {
	Create(ctx context.Context, challengerID uuid.UUID, req CreateChallengeRequest) (*ChallengeDTO, error)
	Accept(ctx context.Context, callerID, challengeID uuid.UUID) (*ChallengeDTO, error)
	Reject(ctx context.Context, callerID, challengeID uuid.UUID) (*ChallengeDTO, error)
	Cancel(ctx context.Context, callerID, challengeID uuid.UUID) (*ChallengeDTO, error)
	CheckCompletion(ctx context.Context, callerID, challengeID uuid.UUID) (*CheckCompletionResponse, error)
	Get(ctx context.Context, callerID, challengeID uuid.UUID) (*ChallengeDTO, error)
	List(ctx context.Context, userID uuid.UUID, filter ListFilter, params pagination.Params) ([]ChallengeDTO, string, error)
	SweepAcceptDeadlines(ctx context.Context, now time.Time) (int, error)
	SweepCompletionDeadlines(ctx context.Context, now time.Time) (int, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type friendChecker interface {
	AreFriends(ctx context.Context, userID, friendID uuid.UUID) (bool, error)
}

type baselineSource interface {
	GetUserStats(ctx context.Context, userID uuid.UUID) (*verification.UserStats, error)
	FriendsCount(ctx context.Context, userID uuid.UUID) (int, error)
}

type criteriaEvaluator interface {
	Evaluate(ctx context.Context, criteria verification.Criteria, cc verification.ChallengeContext) (*verification.Result, error)
}

type eventEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
	EmitIfNotExists(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type service struct {
	db       txRunner
	repo     Repository
	ledger   ledger.Service
	verifier criteriaEvaluator
	friends  friendChecker
	baseline baselineSource
	events   eventEmitter
	logg     *logger.Logger
	cfg      config.ChallengeConfig
	now      func() time.Time
}

// ServiceParams bundles the dependencies required to build a challenge service.
type ServiceParams struct {
	DB       txRunner
	Repo     Repository
	Ledger   ledger.Service
	Verifier criteriaEvaluator
	Friends  friendChecker
	Baseline baselineSource
	Events   eventEmitter
	Logger   *logger.Logger
	Config   config.ChallengeConfig
}

// NewService constructs a challenge service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("challenge repository is required")
	}
	if params.Ledger == nil {
		return nil, fmt.Errorf("ledger service is required")
	}
	if params.Verifier == nil {
		return nil, fmt.Errorf("criteria evaluator is required")
	}
	if params.Friends == nil {
		return nil, fmt.Errorf("friend checker is required")
	}
	if params.Baseline == nil {
		return nil, fmt.Errorf("baseline source is required")
	}
	if params.Events == nil {
		return nil, fmt.Errorf("event emitter is required")
	}
	return &service{
		db:       params.DB,
		repo:     params.Repo,
		ledger:   params.Ledger,
		verifier: params.Verifier,
		friends:  params.Friends,
		baseline: params.Baseline,
		events:   params.Events,
		logg:     params.Logger,
		cfg:      params.Config,
		now:      time.Now,
	}, nil
}

func (s *service) Create(ctx context.Context, challengerID uuid.UUID, req CreateChallengeRequest) (*ChallengeDTO, error) {
	if req.ChallengedID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "challenged user is required")
	}
	if req.ChallengedID == challengerID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot challenge yourself")
	}
	if req.WagerAmount < s.cfg.MinWager {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("wager must be at least %d", s.cfg.MinWager))
	}

	title, description, challengeType, criteria, days, err := s.resolveDefinition(req)
	if err != nil {
		return nil, err
	}
	if days < 1 || days > s.cfg.MaxDays {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("days must be between 1 and %d", s.cfg.MaxDays))
	}

	areFriends, err := s.friends.AreFriends(ctx, challengerID, req.ChallengedID)
	if err != nil {
		return nil, err
	}
	if !areFriends {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "users are not friends")
	}

	now := s.now().UTC()
	acceptDeadline := now.Add(s.cfg.AcceptWindow)
	completionDeadline := now.Add(time.Duration(days) * 24 * time.Hour)
	if !completionDeadline.After(acceptDeadline) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "challenge window must exceed the accept window")
	}

	criteriaJSON, err := json.Marshal(criteria)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode criteria")
	}

	var targetValue *int
	if criteria.TargetValue > 0 {
		v := criteria.TargetValue
		targetValue = &v
	}

	challenge := &models.FriendChallenge{
		ID:                   uuid.New(),
		ChallengerID:         challengerID,
		ChallengedID:         req.ChallengedID,
		ChallengeType:        challengeType,
		Title:                title,
		Description:          description,
		WagerAmount:          req.WagerAmount,
		Status:               enums.ChallengeStatusPending,
		AcceptDeadline:       acceptDeadline,
		CompletionDeadline:   completionDeadline,
		TargetValue:          targetValue,
		VerificationCriteria: criteriaJSON,
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		challenger, err := repo.GetUserForUpdate(ctx, challengerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "challenger not found")
			}
			return err
		}
		if challenger.VirtualCurrency < req.WagerAmount {
			return pkgerrors.New(pkgerrors.CodeValidation, "insufficient balance for wager")
		}

		if err := repo.Create(ctx, challenge); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create challenge")
		}

		return s.events.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventChallengeCreated,
			AggregateType: enums.AggregateFriendChallenge,
			AggregateID:   challenge.ID,
			Actor:         &outbox.ActorRef{UserID: challengerID, Username: challenger.Username},
			Data: payloads.ChallengeCreatedEvent{
				ChallengeID:    challenge.ID,
				ChallengerID:   challengerID,
				ChallengedID:   req.ChallengedID,
				ChallengeType:  challengeType,
				WagerAmount:    req.WagerAmount,
				AcceptDeadline: acceptDeadline,
			},
			OccurredAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	return FromModel(challenge), nil
}

// resolveDefinition materializes title, description, type, criteria, and day
// count from either a catalog template or the custom fields.
func (s *service) resolveDefinition(req CreateChallengeRequest) (string, string, enums.ChallengeType, verification.Criteria, int, error) {
	var zero verification.Criteria

	if req.TemplateID != "" {
		tpl, ok := catalog.ByID(req.TemplateID)
		if !ok {
			return "", "", "", zero, 0, pkgerrors.New(pkgerrors.CodeNotFound,
				fmt.Sprintf("unknown challenge template %q", req.TemplateID))
		}
		days := req.Days
		if days == 0 {
			days = tpl.SuggestedDays
		}
		return tpl.Title, tpl.Description, tpl.Category, tpl.Criteria, days, nil
	}

	if req.Title == "" || req.Description == "" {
		return "", "", "", zero, 0, pkgerrors.New(pkgerrors.CodeValidation,
			"custom challenges require a title and description")
	}
	if !req.ChallengeType.IsValid() {
		return "", "", "", zero, 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid challenge type")
	}
	if req.Criteria == nil {
		return "", "", "", zero, 0, pkgerrors.New(pkgerrors.CodeValidation,
			"custom challenges require verification criteria")
	}
	if err := req.Criteria.Validate(); err != nil {
		return "", "", "", zero, 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid criteria")
	}
	if req.Days == 0 {
		return "", "", "", zero, 0, pkgerrors.New(pkgerrors.CodeValidation,
			"custom challenges require a day count")
	}
	return req.Title, req.Description, req.ChallengeType, *req.Criteria, req.Days, nil
}

func (s *service) Accept(ctx context.Context, callerID, challengeID uuid.UUID) (*ChallengeDTO, error) {
	challenge, err := s.load(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if challenge.ChallengedID != callerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the challenged user can accept")
	}
	if challenge.Status != enums.ChallengeStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("challenge is %s, not pending", challenge.Status))
	}

	now := s.now().UTC()
	if now.After(challenge.AcceptDeadline) {
		if err := s.expire(ctx, challenge, now); err != nil {
			return nil, err
		}
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "accept deadline has passed")
	}

	stats, err := s.baseline.GetUserStats(ctx, callerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load baseline stats")
	}
	friendsCount, err := s.baseline.FriendsCount(ctx, callerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load friends count")
	}
	baseline := Baseline{XP: stats.XP, Level: stats.Level, FriendsCount: friendsCount}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		challenged, err := repo.GetUserForUpdate(ctx, callerID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load challenged user")
		}
		if challenged.VirtualCurrency < challenge.WagerAmount {
			return pkgerrors.New(pkgerrors.CodeValidation, "insufficient balance for wager")
		}

		ok, err := repo.MarkAccepted(ctx, challengeID, now, baseline)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "accept challenge")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "challenge is no longer pending")
		}

		return s.events.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventChallengeAccepted,
			AggregateType: enums.AggregateFriendChallenge,
			AggregateID:   challengeID,
			Actor:         &outbox.ActorRef{UserID: callerID, Username: challenged.Username},
			Data: payloads.ChallengeAcceptedEvent{
				ChallengeID:        challengeID,
				ChallengerID:       challenge.ChallengerID,
				ChallengedID:       challenge.ChallengedID,
				AcceptedAt:         now,
				CompletionDeadline: challenge.CompletionDeadline,
			},
			OccurredAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	challenge.Status = enums.ChallengeStatusAccepted
	challenge.AcceptedAt = &now
	challenge.XPAtStart = &baseline.XP
	challenge.LevelAtStart = &baseline.Level
	challenge.FriendsCountAtStart = &baseline.FriendsCount
	return FromModel(challenge), nil
}

func (s *service) Reject(ctx context.Context, callerID, challengeID uuid.UUID) (*ChallengeDTO, error) {
	return s.withdraw(ctx, callerID, challengeID, false)
}

func (s *service) Cancel(ctx context.Context, callerID, challengeID uuid.UUID) (*ChallengeDTO, error) {
	return s.withdraw(ctx, callerID, challengeID, true)
}

// withdraw handles reject and cancel: both move pending -> cancelled with no
// money movement, differing only in which party may act and which event fires.
func (s *service) withdraw(ctx context.Context, callerID, challengeID uuid.UUID, byChallenger bool) (*ChallengeDTO, error) {
	challenge, err := s.load(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if byChallenger && challenge.ChallengerID != callerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the challenger can cancel")
	}
	if !byChallenger && challenge.ChallengedID != callerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the challenged user can reject")
	}
	if challenge.Status != enums.ChallengeStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("challenge is %s, not pending", challenge.Status))
	}

	now := s.now().UTC()
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		ok, err := s.repo.WithTx(tx).TransitionFromPending(ctx, challengeID, enums.ChallengeStatusCancelled)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "cancel challenge")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "challenge is no longer pending")
		}

		event := outbox.DomainEvent{
			AggregateType: enums.AggregateFriendChallenge,
			AggregateID:   challengeID,
			Actor:         &outbox.ActorRef{UserID: callerID},
			OccurredAt:    now,
		}
		if byChallenger {
			event.EventType = enums.EventChallengeCancelled
			event.Data = payloads.ChallengeCancelledEvent{
				ChallengeID:  challengeID,
				ChallengerID: challenge.ChallengerID,
				ChallengedID: challenge.ChallengedID,
				CancelledAt:  now,
			}
		} else {
			event.EventType = enums.EventChallengeRejected
			event.Data = payloads.ChallengeRejectedEvent{
				ChallengeID:  challengeID,
				ChallengerID: challenge.ChallengerID,
				ChallengedID: challenge.ChallengedID,
			}
		}
		return s.events.Emit(ctx, tx, event)
	})
	if err != nil {
		return nil, err
	}

	challenge.Status = enums.ChallengeStatusCancelled
	return FromModel(challenge), nil
}

func (s *service) CheckCompletion(ctx context.Context, callerID, challengeID uuid.UUID) (*CheckCompletionResponse, error) {
	challenge, err := s.load(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if challenge.ChallengerID != callerID && challenge.ChallengedID != callerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "caller is not a party to this challenge")
	}
	if challenge.Status != enums.ChallengeStatusAccepted {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("challenge is %s, not accepted", challenge.Status))
	}
	if challenge.AcceptedAt == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "accepted challenge missing acceptance time")
	}

	now := s.now().UTC()

	// Deadline first: a lapsed window is a loss for the challenged party even
	// if the criteria would pass on the same check.
	if now.After(challenge.CompletionDeadline) {
		if err := s.settle(ctx, challenge, challenge.ChallengerID, enums.ChallengeStatusFailed,
			challenge.CurrentProgress, challenge.ProofData, now); err != nil {
			return nil, err
		}
		challenge.Status = enums.ChallengeStatusFailed
		challenge.WinnerID = &challenge.ChallengerID
		challenge.CompletedAt = &now
		return &CheckCompletionResponse{
			Challenge: FromModel(challenge),
			Failed:    true,
			Progress:  challenge.CurrentProgress,
			Settled:   true,
		}, nil
	}

	criteria, err := verification.DecodeCriteria(challenge.VerificationCriteria)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode stored criteria")
	}

	cc := verification.ChallengeContext{
		UserID:    challenge.ChallengedID,
		StartedAt: *challenge.AcceptedAt,
	}
	if challenge.XPAtStart != nil {
		cc.XPAtStart = *challenge.XPAtStart
	}
	if challenge.LevelAtStart != nil {
		cc.LevelAtStart = *challenge.LevelAtStart
	}
	if challenge.FriendsCountAtStart != nil {
		cc.FriendsCountAtStart = *challenge.FriendsCountAtStart
	}

	result, err := s.verifier.Evaluate(ctx, criteria, cc)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "evaluate criteria")
	}

	proof, err := json.Marshal(result)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode proof")
	}

	if !result.Completed {
		if err := s.repo.UpdateProgress(ctx, challengeID, result.Progress, proof); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update progress")
		}
		challenge.CurrentProgress = result.Progress
		challenge.ProofData = proof
		return &CheckCompletionResponse{
			Challenge: FromModel(challenge),
			Progress:  result.Progress,
		}, nil
	}

	if err := s.settle(ctx, challenge, challenge.ChallengedID, enums.ChallengeStatusCompleted,
		result.Progress, proof, now); err != nil {
		return nil, err
	}
	challenge.Status = enums.ChallengeStatusCompleted
	challenge.WinnerID = &challenge.ChallengedID
	challenge.CompletedAt = &now
	challenge.CurrentProgress = result.Progress
	challenge.ProofData = proof
	return &CheckCompletionResponse{
		Challenge: FromModel(challenge),
		Completed: true,
		Progress:  result.Progress,
		Settled:   true,
	}, nil
}

// settle is the single money-moving path. The conditional status update is
// the at-most-once guard; the two ledger appends and the outbox event commit
// or roll back with it.
func (s *service) settle(ctx context.Context, challenge *models.FriendChallenge, winnerID uuid.UUID, outcome enums.ChallengeStatus, progress int, proof json.RawMessage, settledAt time.Time) error {
	loserID := challenge.ChallengerID
	if winnerID == challenge.ChallengerID {
		loserID = challenge.ChallengedID
	}

	return s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		ok, err := repo.Settle(ctx, challenge.ID, outcome, winnerID, settledAt, progress, proof)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "settle challenge")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "challenge already settled")
		}

		// The wager was never escrowed, so the loser may hold less than the
		// full stake by now. The effective stake keeps the two entries
		// offsetting and the balance non-negative.
		loser, err := repo.GetUserForUpdate(ctx, loserID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load loser balance")
		}
		stake := challenge.WagerAmount
		if loser.VirtualCurrency < stake {
			stake = loser.VirtualCurrency
		}

		var winnerTxnID, loserTxnID uuid.UUID
		if stake > 0 {
			loserEntry, err := s.ledger.Append(ctx, tx, ledger.AppendInput{
				UserID:             loserID,
				Amount:             -stake,
				Type:               enums.TransactionTypeChallengeLoss,
				Description:        fmt.Sprintf("lost challenge: %s", challenge.Title),
				RelatedChallengeID: &challenge.ID,
				RelatedUserID:      &winnerID,
			})
			if err != nil {
				return err
			}
			winnerEntry, err := s.ledger.Append(ctx, tx, ledger.AppendInput{
				UserID:             winnerID,
				Amount:             stake,
				Type:               enums.TransactionTypeChallengeWin,
				Description:        fmt.Sprintf("won challenge: %s", challenge.Title),
				RelatedChallengeID: &challenge.ID,
				RelatedUserID:      &loserID,
			})
			if err != nil {
				return err
			}
			loserTxnID = loserEntry.ID
			winnerTxnID = winnerEntry.ID
		}

		return s.events.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventChallengeSettled,
			AggregateType: enums.AggregateFriendChallenge,
			AggregateID:   challenge.ID,
			Data: payloads.ChallengeSettledEvent{
				ChallengeID:         challenge.ID,
				WinnerID:            winnerID,
				LoserID:             loserID,
				WagerAmount:         stake,
				Outcome:             outcome,
				WinnerTransactionID: winnerTxnID,
				LoserTransactionID:  loserTxnID,
				SettledAt:           settledAt,
			},
			OccurredAt: settledAt,
		})
	})
}

// expire moves a pending challenge past its accept deadline into expired.
// Both the lazy accept-time path and the sweeper go through here, so the
// event uses the dedup emit.
func (s *service) expire(ctx context.Context, challenge *models.FriendChallenge, now time.Time) error {
	return s.db.WithTx(ctx, func(tx *gorm.DB) error {
		ok, err := s.repo.WithTx(tx).TransitionFromPending(ctx, challenge.ID, enums.ChallengeStatusExpired)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "expire challenge")
		}
		if !ok {
			return nil
		}
		return s.events.EmitIfNotExists(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventChallengeExpired,
			AggregateType: enums.AggregateFriendChallenge,
			AggregateID:   challenge.ID,
			Data: payloads.ChallengeExpiredEvent{
				ChallengeID:    challenge.ID,
				ChallengerID:   challenge.ChallengerID,
				ChallengedID:   challenge.ChallengedID,
				AcceptDeadline: challenge.AcceptDeadline,
				ExpiredAt:      now,
			},
			OccurredAt: now,
		})
	})
}

func (s *service) Get(ctx context.Context, callerID, challengeID uuid.UUID) (*ChallengeDTO, error) {
	challenge, err := s.load(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if challenge.ChallengerID != callerID && challenge.ChallengedID != callerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "caller is not a party to this challenge")
	}
	return FromModel(challenge), nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, filter ListFilter, params pagination.Params) ([]ChallengeDTO, string, error) {
	limit := pagination.NormalizeLimit(params.Limit)
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	rows, err := s.repo.ListForUser(ctx, userID, filter, pagination.LimitWithBuffer(limit), cursor)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list challenges")
	}

	nextCursor := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	out := make([]ChallengeDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nextCursor, nil
}

// SweepAcceptDeadlines bulk-expires pending challenges nobody accepted in
// time. No money moves; the wager was never escrowed.
func (s *service) SweepAcceptDeadlines(ctx context.Context, now time.Time) (int, error) {
	stale, err := s.repo.ListPendingPastAcceptDeadline(ctx, now, sweepBatchSize)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list expirable challenges")
	}

	expired := 0
	for i := range stale {
		if err := s.expire(ctx, &stale[i], now); err != nil {
			s.logError(ctx, err, stale[i].ID, "expire sweep")
			continue
		}
		expired++
	}
	return expired, nil
}

// SweepCompletionDeadlines force-settles accepted challenges whose window
// lapsed: the challenger wins. A challenge concurrently settled by a
// check-completion call loses the conditional update and is skipped.
func (s *service) SweepCompletionDeadlines(ctx context.Context, now time.Time) (int, error) {
	overdue, err := s.repo.ListAcceptedPastCompletionDeadline(ctx, now, sweepBatchSize)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list overdue challenges")
	}

	settled := 0
	for i := range overdue {
		challenge := &overdue[i]
		err := s.settle(ctx, challenge, challenge.ChallengerID, enums.ChallengeStatusFailed,
			challenge.CurrentProgress, challenge.ProofData, now)
		if err != nil {
			if appErr := pkgerrors.As(err); appErr != nil && appErr.Code() == pkgerrors.CodeStateConflict {
				continue
			}
			s.logError(ctx, err, challenge.ID, "settlement sweep")
			continue
		}
		settled++
	}
	return settled, nil
}

func (s *service) load(ctx context.Context, challengeID uuid.UUID) (*models.FriendChallenge, error) {
	challenge, err := s.repo.GetByID(ctx, challengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "challenge not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load challenge")
	}
	return challenge, nil
}

func (s *service) logError(ctx context.Context, err error, challengeID uuid.UUID, op string) {
	if s.logg == nil {
		return
	}
	logCtx := s.logg.WithFields(ctx, map[string]any{
		"challenge_id": challengeID.String(),
		"error":        err.Error(),
	})
	s.logg.Error(logCtx, op+" failed", nil)
}
