package ports

import (
	"context"

	"github.com/Gunvolt24/pos_print/internal/domain"
)

// PrinterConfigStore — внешнее хранилище конфигурации принтеров.
type PrinterConfigStore interface {
	ListActiveDevices(ctx context.Context) ([]domain.PrinterDevice, error)
	ListRoutingRules(ctx context.Context) ([]domain.RoutingRule, error)
	// GetBranding — (nil, nil), если запись брендинга не заведена.
	GetBranding(ctx context.Context) (*domain.Branding, error)
}
