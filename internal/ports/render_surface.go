package ports

import (
	"context"

	"github.com/Gunvolt24/pos_print/internal/domain"
)

// LocalRenderSurface — локальная поверхность печати (диалог печати, спул, хранилище документов).
type LocalRenderSurface interface {
	Render(ctx context.Context, doc domain.PrintDocument) error
}
