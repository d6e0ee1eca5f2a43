package friends

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coinquestapp/coinquest-backend/internal/users"
	"github.com/coinquestapp/coinquest-backend/pkg/db"
	"github.com/coinquestapp/coinquest-backend/pkg/db/models"
	pkgerrors "github.com/coinquestapp/coinquest-backend/pkg/errors"
)

// Service defines the friendship operations used by the API layer and the
// challenge service.
type Service interface {
	AddFriend(ctx context.Context, userID uuid.UUID, friendUsername string) (*users.UserDTO, error)
	RemoveFriend(ctx context.Context, userID, friendID uuid.UUID) error
	ListFriends(ctx context.Context, userID uuid.UUID) ([]users.UserDTO, error)
	AreFriends(ctx context.Context, userID, friendID uuid.UUID) (bool, error)
}

type userRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

type service struct {
	db    *db.Client
	repo  *Repository
	users userRepository
}

// ServiceParams bundles the dependencies required to build a friends service.
type ServiceParams struct {
	DB       *db.Client
	Repo     *Repository
	UserRepo userRepository
}

// NewService constructs a friends service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("friends repository is required")
	}
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &service{db: params.DB, repo: params.Repo, users: params.UserRepo}, nil
}

func (s *service) AddFriend(ctx context.Context, userID uuid.UUID, friendUsername string) (*users.UserDTO, error) {
	if friendUsername == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "friend username is required")
	}

	friend, err := s.users.FindByUsername(ctx, friendUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup friend")
	}
	if friend.ID == userID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot befriend yourself")
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.Create(ctx, userID, friend.ID); err != nil {
			if db.IsUniqueViolation(err, "ux_friendships_user_friend") {
				return pkgerrors.New(pkgerrors.CodeConflict, "already friends")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create friendship")
		}
		if _, err := repo.Create(ctx, friend.ID, userID); err != nil {
			if db.IsUniqueViolation(err, "ux_friendships_user_friend") {
				return pkgerrors.New(pkgerrors.CodeConflict, "already friends")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create reverse friendship")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return users.FromModel(friend), nil
}

func (s *service) RemoveFriend(ctx context.Context, userID, friendID uuid.UUID) error {
	var removed int64
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		n, err := s.repo.WithTx(tx).Delete(ctx, userID, friendID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete friendship")
		}
		removed = n
		return nil
	})
	if err != nil {
		return err
	}
	if removed == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "friendship not found")
	}
	return nil
}

func (s *service) ListFriends(ctx context.Context, userID uuid.UUID) ([]users.UserDTO, error) {
	rows, err := s.repo.ListFriends(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list friends")
	}
	out := make([]users.UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *users.FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) AreFriends(ctx context.Context, userID, friendID uuid.UUID) (bool, error) {
	ok, err := s.repo.Exists(ctx, userID, friendID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check friendship")
	}
	return ok, nil
}
