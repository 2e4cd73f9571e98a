package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/dbx"
	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// SessionManager issues and resolves session tokens.
type SessionManager interface {
	Create(ctx context.Context, userID string) (string, error)
	Resolve(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}

// Stats are the object counts reported by /stats.
type Stats struct {
	Users int64 `json:"users"`
	Files int64 `json:"files"`
}

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sessions    SessionManager
	logger      logging.Logger
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, sessions SessionManager, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		sessions:    sessions,
		logger:      logger.With("module", "users"),
	}
}

// bcryptCost is lowered by tests.
var bcryptCost = bcrypt.DefaultCost

func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" {
		return nil, common.NewValidationError("missing email")
	}
	if password == "" {
		return nil, common.NewValidationError("missing password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repomanager.Users(s.db).Create(ctx, &models.User{Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.NewValidationError("already exist")
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// Connect checks the credentials and opens a session.
func (s *UserService) Connect(ctx context.Context, email, password string) (string, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return "", common.ErrorUnauthorized
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return token, nil
}

// Disconnect ends the session behind token.
func (s *UserService) Disconnect(ctx context.Context, token string) error {
	if _, err := s.sessions.Resolve(ctx, token); err != nil {
		return err
	}
	return s.sessions.Revoke(ctx, token)
}

// Authenticate resolves token to a user id.
func (s *UserService) Authenticate(ctx context.Context, token string) (string, error) {
	return s.sessions.Resolve(ctx, token)
}

func (s *UserService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// Stats counts users and files inside one read-only transaction so both
// numbers come from the same snapshot.
func (s *UserService) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{}
	opts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

	err := dbx.WithTx(ctx, s.db, opts, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		if st.Users, err = s.repomanager.Users(tx).Count(ctx); err != nil {
			return err
		}
		st.Files, err = s.repomanager.Files(tx).Count(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return st, nil
}
