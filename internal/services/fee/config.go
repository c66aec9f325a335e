package fee

import (
	"context"

	"cashpoint/internal/errors"
	"cashpoint/internal/models"
	"cashpoint/internal/repositories"
)

// ConfigService maintains the operator-managed fee configuration: the
// per-operation charge rules and the per-method reserve pools.
type ConfigService interface {
	SetChargeRule(ctx context.Context, operation string, percentage, fixed float64) (*models.ChargeRule, error)
	ReplenishReserve(ctx context.Context, method string, amount float64) error
}

type configService struct {
	config repositories.FeeConfigRepository
}

func NewConfigService(config repositories.FeeConfigRepository) ConfigService {
	return &configService{config: config}
}

func (s *configService) SetChargeRule(ctx context.Context, operation string, percentage, fixed float64) (*models.ChargeRule, error) {
	if percentage < 0 || fixed < 0 {
		return nil, errors.ErrInvalidAmount
	}
	rule := &models.ChargeRule{Operation: operation, Percentage: percentage, Fixed: fixed}
	if err := s.config.SetChargeRule(rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *configService) ReplenishReserve(ctx context.Context, method string, amount float64) error {
	if amount <= 0 {
		return errors.ErrInvalidAmount
	}
	return s.config.AddReserve(method, amount)
}
