package service

import (
	"context"
	"errors"

	"trastienda/internal/apperror"
	"trastienda/internal/model"
	"trastienda/internal/repository"
	"trastienda/pkg/logger"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RegisterStatus is a read-only snapshot of the current or most recent session.
type RegisterStatus struct {
	Open      bool
	Session   *model.RegisterSession
	Movements []model.CashMovement
}

type RegisterService interface {
	Open(ctx context.Context, openingFloat decimal.Decimal, actor string) (*model.RegisterSession, error)
	Close(ctx context.Context) error
	Status(ctx context.Context) (*RegisterStatus, error)
}

type registerService struct {
	repo repository.RegisterRepository
	log  *logger.Logger
}

func NewRegisterService(repo repository.RegisterRepository, log *logger.Logger) RegisterService {
	return &registerService{repo: repo, log: log}
}

// Open starts a new register session. At most one session may be open.
func (s *registerService) Open(ctx context.Context, openingFloat decimal.Decimal, actor string) (*model.RegisterSession, error) {
	if actor == "" {
		return nil, apperror.Validation("actor is required")
	}
	if openingFloat.IsNegative() {
		return nil, apperror.Validation("opening float must not be negative")
	}

	var session model.RegisterSession
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if _, err := s.repo.FindOpenSessionTx(tx); err == nil {
			return apperror.InvalidState("a register session is already open")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		session = model.RegisterSession{
			OpenedAt:     nowISO(),
			OpenedBy:     actor,
			OpeningFloat: openingFloat,
			Status:       model.RegisterOpen,
		}
		return s.repo.CreateSessionTx(tx, &session)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.Info().
		Str("session_id", session.ID.String()).
		Str("opening_float", openingFloat.String()).
		Msg("register opened")

	return &session, nil
}

// Close ends the open session. Running totals freeze at their final values.
func (s *registerService) Close(ctx context.Context) error {
	var closedID string
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		sess, err := s.repo.FindOpenSessionTx(tx)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.InvalidState("no open register session")
			}
			return err
		}

		sess.Status = model.RegisterClosed
		sess.ClosedAt = strPtr(nowISO())
		closedID = sess.ID.String()
		return s.repo.UpdateSessionTx(tx, sess)
	})
	if txErr != nil {
		return txErr
	}

	s.log.Info().Str("session_id", closedID).Msg("register closed")
	return nil
}

// Status reports the open session if there is one, or the most recently
// closed session otherwise.
func (s *registerService) Status(ctx context.Context) (*RegisterStatus, error) {
	sess, err := s.repo.FindOpenSession(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		latest, err := s.repo.FindLatestSession(ctx)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &RegisterStatus{Open: false}, nil
			}
			return nil, err
		}
		movs, err := s.repo.ListMovements(ctx, latest.ID)
		if err != nil {
			return nil, err
		}
		return &RegisterStatus{Open: false, Session: latest, Movements: movs}, nil
	}

	movs, err := s.repo.ListMovements(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	return &RegisterStatus{Open: true, Session: sess, Movements: movs}, nil
}
