// Package tournament implements paid tournament admission and batched
// prize distribution. Joining debits the entry fee, records the ledger
// entry and claims the participant slot in one transaction; the capacity
// count is read inside that same transaction so two racing joins cannot
// both squeeze into the last slot unchecked.
package tournament

import (
	"context"
	goerrors "errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"cashpoint/internal/errors"
	"cashpoint/internal/models"
	"cashpoint/internal/repositories"
	"cashpoint/internal/utils"
)

type PrizeAward struct {
	AccountID uint    `json:"userId"`
	Amount    float64 `json:"amount"`
}

type ProofInput struct {
	Note          string
	ScreenshotURL string
}

// Totals is the admin revenue view. Profit is what joins brought in minus
// what prizes paid out.
type Totals struct {
	JoinTotal  float64 `json:"joinTotal"`
	PrizeTotal float64 `json:"prizeTotal"`
	Profit     float64 `json:"profit"`
}

type CreatePostInput struct {
	Title      string
	EntryFee   float64
	MaxPlayers int
	Status     string
}

type Service interface {
	Join(ctx context.Context, userID, postID uint) (*models.Participant, error)
	SubmitProof(ctx context.Context, userID, postID uint, in ProofInput) error
	DistributePrizes(ctx context.Context, callerID, postID uint, winners []PrizeAward) (int, error)
	GetTotals(ctx context.Context, callerID uint) (*Totals, error)
	CreatePost(ctx context.Context, callerID uint, in CreatePostInput) (*models.TournamentPost, error)
	ListActivePosts(ctx context.Context, limit, offset int) ([]models.TournamentPost, error)
}

type service struct {
	db          *gorm.DB
	accounts    repositories.AccountRepository
	ledger      repositories.LedgerRepository
	tournaments repositories.TournamentRepository
}

func NewService(
	db *gorm.DB,
	accounts repositories.AccountRepository,
	ledger repositories.LedgerRepository,
	tournaments repositories.TournamentRepository,
) Service {
	return &service{
		db:          db,
		accounts:    accounts,
		ledger:      ledger,
		tournaments: tournaments,
	}
}

// Join buys the caller into a tournament. The unique participant key is
// the final backstop against double joins even if two transactions race
// past the existence check.
func (s *service) Join(ctx context.Context, userID, postID uint) (*models.Participant, error) {
	var participant *models.Participant
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		accounts := s.accounts.WithTx(tx)
		ledger := s.ledger.WithTx(tx)
		tournaments := s.tournaments.WithTx(tx)

		post, err := tournaments.GetPost(postID)
		if err != nil {
			return mapTournamentErr(err)
		}
		if post.Status != models.TournamentStatusActive {
			return errors.ErrTournamentInactive
		}
		if post.EntryFee <= 0 {
			return errors.ErrInvalidEntryFee
		}

		if _, err := tournaments.GetParticipant(postID, userID); err == nil {
			return errors.ErrAlreadyJoined
		} else if !goerrors.Is(err, repositories.ErrParticipantNotFound) {
			return err
		}

		count, err := tournaments.CountParticipants(postID)
		if err != nil {
			return err
		}
		if post.MaxPlayers > 0 && count >= int64(post.MaxPlayers) {
			return errors.ErrTournamentFull
		}

		account, err := accounts.GetByID(userID)
		if err != nil {
			if goerrors.Is(err, repositories.ErrAccountNotFound) {
				return errors.ErrAccountNotFound
			}
			return err
		}
		if account.Balance < post.EntryFee {
			return errors.ErrInsufficientBalance
		}

		if err := accounts.Debit(userID, post.EntryFee); err != nil {
			if goerrors.Is(err, repositories.ErrInsufficientBalance) {
				return errors.ErrInsufficientBalance
			}
			return err
		}

		if err := ledger.Append(&models.LedgerEntry{
			AccountID:     userID,
			Type:          models.EntryTypeTournamentJoin,
			Amount:        post.EntryFee,
			Description:   fmt.Sprintf("Join tournament: %s", post.Title),
			Status:        models.EntryStatusCompleted,
			ReferenceCode: utils.NewReferenceCode(),
			Metadata:      models.JSON{"tournament_id": postID},
		}); err != nil {
			return err
		}

		participant = &models.Participant{
			TournamentID: postID,
			AccountID:    userID,
			EntryFee:     post.EntryFee,
			JoinedAt:     time.Now(),
		}
		if err := tournaments.CreateParticipant(participant); err != nil {
			if goerrors.Is(err, repositories.ErrDuplicateParticipant) {
				return errors.ErrAlreadyJoined
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return participant, nil
}

// SubmitProof attaches or updates a result proof on the caller's entry.
// The caller must have joined, even when both proof fields are empty.
func (s *service) SubmitProof(ctx context.Context, userID, postID uint, in ProofInput) error {
	if _, err := s.tournaments.GetPost(postID); err != nil {
		return mapTournamentErr(err)
	}
	if _, err := s.tournaments.GetParticipant(postID, userID); err != nil {
		if goerrors.Is(err, repositories.ErrParticipantNotFound) {
			return errors.ErrNotJoined
		}
		return err
	}
	err := s.tournaments.UpdateParticipantProof(postID, userID, in.Note, in.ScreenshotURL)
	if goerrors.Is(err, repositories.ErrParticipantNotFound) {
		return errors.ErrNotJoined
	}
	return err
}

// DistributePrizes credits every resolvable winner in one transaction and
// flips the post to its terminal state so the batch cannot run twice.
// Awards pointing at missing accounts or carrying a non-positive amount
// are skipped, not fatal; the returned count is how many were paid.
func (s *service) DistributePrizes(ctx context.Context, callerID, postID uint, winners []PrizeAward) (int, error) {
	if err := s.requireAdmin(callerID); err != nil {
		return 0, err
	}

	paid := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		accounts := s.accounts.WithTx(tx)
		ledger := s.ledger.WithTx(tx)
		tournaments := s.tournaments.WithTx(tx)

		post, err := tournaments.GetPost(postID)
		if err != nil {
			return mapTournamentErr(err)
		}
		if post.Status == models.TournamentStatusPrizesDistributed {
			return errors.ErrPrizesDistributed
		}

		type payout struct {
			award PrizeAward
			name  string
		}
		payable := make([]payout, 0, len(winners))
		for _, w := range winners {
			if w.Amount <= 0 {
				continue
			}
			account, err := accounts.GetByID(w.AccountID)
			if err != nil {
				if goerrors.Is(err, repositories.ErrAccountNotFound) {
					continue
				}
				return err
			}
			payable = append(payable, payout{award: w, name: account.Name})
		}

		batchRef := utils.NewReferenceCode()
		for _, p := range payable {
			if err := accounts.Credit(p.award.AccountID, p.award.Amount); err != nil {
				return err
			}
			if err := ledger.Append(&models.LedgerEntry{
				AccountID:     p.award.AccountID,
				Type:          models.EntryTypeTournamentPrize,
				Amount:        p.award.Amount,
				Description:   fmt.Sprintf("Tournament prize: %s", post.Title),
				Status:        models.EntryStatusReceived,
				ReferenceCode: batchRef,
				Metadata:      models.JSON{"tournament_id": postID},
			}); err != nil {
				return err
			}
		}

		if err := tournaments.MarkPrizesDistributed(postID); err != nil {
			return mapTournamentErr(err)
		}
		paid = len(payable)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return paid, nil
}

func (s *service) GetTotals(ctx context.Context, callerID uint) (*Totals, error) {
	if err := s.requireAdmin(callerID); err != nil {
		return nil, err
	}
	joinTotal, err := s.ledger.SumByType(models.EntryTypeTournamentJoin)
	if err != nil {
		return nil, err
	}
	prizeTotal, err := s.ledger.SumByType(models.EntryTypeTournamentPrize)
	if err != nil {
		return nil, err
	}
	return &Totals{
		JoinTotal:  joinTotal,
		PrizeTotal: prizeTotal,
		Profit:     joinTotal - prizeTotal,
	}, nil
}

func (s *service) CreatePost(ctx context.Context, callerID uint, in CreatePostInput) (*models.TournamentPost, error) {
	if err := s.requireAdmin(callerID); err != nil {
		return nil, err
	}
	if in.EntryFee <= 0 {
		return nil, errors.ErrInvalidEntryFee
	}
	status := in.Status
	if status == "" {
		status = models.TournamentStatusActive
	}
	post := &models.TournamentPost{
		Title:      in.Title,
		Status:     status,
		EntryFee:   in.EntryFee,
		MaxPlayers: in.MaxPlayers,
	}
	if err := s.tournaments.CreatePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *service) ListActivePosts(ctx context.Context, limit, offset int) ([]models.TournamentPost, error) {
	return s.tournaments.ListPosts(models.TournamentStatusActive, limit, offset)
}

// requireAdmin re-reads the stored account rather than trusting token
// claims, so a revoked admin loses access immediately.
func (s *service) requireAdmin(callerID uint) error {
	account, err := s.accounts.GetByID(callerID)
	if err != nil {
		if goerrors.Is(err, repositories.ErrAccountNotFound) {
			return errors.ErrAccountNotFound
		}
		return err
	}
	if !account.IsAdmin {
		return errors.ErrForbidden
	}
	return nil
}

func mapTournamentErr(err error) error {
	if goerrors.Is(err, repositories.ErrTournamentNotFound) {
		return errors.ErrTournamentNotFound
	}
	return err
}
