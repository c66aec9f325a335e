// Package fee computes the charge and reserve consumption for a transfer.
package fee

import (
	goerrors "errors"
	"math"

	"cashpoint/internal/errors"
	"cashpoint/internal/models"
	"cashpoint/internal/repositories"
)

// Operation kinds priced by the resolver.
const (
	OperationSend     = "send"
	OperationTransfer = "transfer"
)

// Fallback used when no charge rule is configured, so the system stays
// operative if the admin config is missing.
const (
	DefaultPercentage = 2.0
	DefaultFixed      = 5.0
)

// Quote is the cost of moving an amount: the reserve pool offsets the
// chargeable base before the percentage applies, so reserve usage is
// fee-free.
type Quote struct {
	Charge         float64
	ReserveUsed    float64
	TotalDeduction float64
}

// ConfigSource supplies the fee configuration visible to the active
// transaction. Reads must happen inside the same transaction that later
// consumes the reserve, never against a snapshot taken outside it.
type ConfigSource interface {
	GetChargeRule(operation string) (*models.ChargeRule, error)
	GetReserve(method string) (float64, error)
}

type Resolver struct{}

func NewResolver() *Resolver { return &Resolver{} }

// Quote prices one operation. An empty method means no reserve pool
// applies (plain in-app sends).
func (r *Resolver) Quote(cfg ConfigSource, operation, method string, amount float64) (Quote, error) {
	if amount <= 0 {
		return Quote{}, errors.ErrInvalidAmount
	}

	rule, err := cfg.GetChargeRule(operation)
	if err != nil {
		if !goerrors.Is(err, repositories.ErrChargeRuleNotFound) {
			return Quote{}, err
		}
		rule = &models.ChargeRule{
			Operation:  operation,
			Percentage: DefaultPercentage,
			Fixed:      DefaultFixed,
		}
	}

	var pool float64
	if method != "" {
		pool, err = cfg.GetReserve(method)
		if err != nil {
			return Quote{}, err
		}
	}

	reserveUsed := math.Min(amount, pool)
	chargeable := math.Max(0, amount-pool)
	charge := rule.Fixed + chargeable*rule.Percentage/100

	return Quote{
		Charge:         charge,
		ReserveUsed:    reserveUsed,
		TotalDeduction: amount + charge,
	}, nil
}
