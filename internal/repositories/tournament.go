package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"cashpoint/internal/models"
)

// TournamentRepository persists tournament posts and their participants.
type TournamentRepository interface {
	WithTx(tx *gorm.DB) TournamentRepository
	CreatePost(post *models.TournamentPost) error
	GetPost(id uint) (*models.TournamentPost, error)
	ListPosts(status string, limit, offset int) ([]models.TournamentPost, error)
	MarkPrizesDistributed(id uint) error
	CountParticipants(postID uint) (int64, error)
	GetParticipant(postID, accountID uint) (*models.Participant, error)
	CreateParticipant(p *models.Participant) error
	UpdateParticipantProof(postID, accountID uint, note, screenshotURL string) error
}

type tournamentRepository struct {
	db *gorm.DB
}

func NewTournamentRepository(db *gorm.DB) TournamentRepository {
	return &tournamentRepository{db: db}
}

func (r *tournamentRepository) WithTx(tx *gorm.DB) TournamentRepository {
	return &tournamentRepository{db: tx}
}

func (r *tournamentRepository) CreatePost(post *models.TournamentPost) error {
	if err := r.db.Create(post).Error; err != nil {
		return fmt.Errorf("failed to create tournament post: %w", err)
	}
	return nil
}

func (r *tournamentRepository) GetPost(id uint) (*models.TournamentPost, error) {
	var post models.TournamentPost
	if err := r.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament post: %w", err)
	}
	return &post, nil
}

func (r *tournamentRepository) ListPosts(status string, limit, offset int) ([]models.TournamentPost, error) {
	q := r.db.Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var posts []models.TournamentPost
	if err := q.Limit(limit).Offset(offset).Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to list tournament posts: %w", err)
	}
	return posts, nil
}

// MarkPrizesDistributed flips the post to its terminal state and clears the
// pending-prize bookkeeping in the same statement.
func (r *tournamentRepository) MarkPrizesDistributed(id uint) error {
	result := r.db.Model(&models.TournamentPost{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":         models.TournamentStatusPrizesDistributed,
			"pending_prizes": nil,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark prizes distributed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTournamentNotFound
	}
	return nil
}

func (r *tournamentRepository) CountParticipants(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Participant{}).
		Where("tournament_id = ?", postID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count participants: %w", err)
	}
	return count, nil
}

func (r *tournamentRepository) GetParticipant(postID, accountID uint) (*models.Participant, error) {
	var p models.Participant
	err := r.db.Where("tournament_id = ? AND account_id = ?", postID, accountID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return &p, nil
}

func (r *tournamentRepository) CreateParticipant(p *models.Participant) error {
	if err := r.db.Create(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateParticipant
		}
		return fmt.Errorf("failed to create participant: %w", err)
	}
	return nil
}

// UpdateParticipantProof merges proof fields: empty inputs leave the stored
// value untouched, so resubmission is idempotent.
func (r *tournamentRepository) UpdateParticipantProof(postID, accountID uint, note, screenshotURL string) error {
	updates := map[string]interface{}{}
	if note != "" {
		updates["note"] = note
	}
	if screenshotURL != "" {
		updates["screenshot_url"] = screenshotURL
	}
	if len(updates) == 0 {
		return nil
	}
	result := r.db.Model(&models.Participant{}).
		Where("tournament_id = ? AND account_id = ?", postID, accountID).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update participant proof: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrParticipantNotFound
	}
	return nil
}
