package ports

import (
	"context"

	"github.com/Gunvolt24/pos_print/internal/domain"
)

// ConfigSource — кэш конфигурации печати.
// Требования к реализации: потокобезопасность; не более одной выборки из хранилища одновременно;
// Get никогда не возвращает nil.
type ConfigSource interface {
	// Get — актуальный снимок; при недоступности хранилища — устаревший или пустой.
	Get(ctx context.Context) *domain.ConfigSnapshot

	// Invalidate — сбросить снимок, следующий Get пойдёт в хранилище.
	Invalidate(ctx context.Context)
}
