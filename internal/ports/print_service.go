package ports

import (
	"context"

	"github.com/Gunvolt24/pos_print/internal/domain"
)

// PrintService — сервис печати для транспортного слоя.
type PrintService interface {
	Dispatch(ctx context.Context, order *domain.Order, opts domain.PrintOptions) domain.PrintResult
	Preview(ctx context.Context, kind string, order *domain.Order) ([]byte, string, error)
	ConfigSnapshot(ctx context.Context) *domain.ConfigSnapshot
	InvalidateConfig(ctx context.Context)
}
