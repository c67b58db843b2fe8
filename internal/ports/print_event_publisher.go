package ports

import (
	"context"

	"github.com/Gunvolt24/pos_print/internal/domain"
)

// PrintEventPublisher — публикация итогов печати (экраны кухни, аудит).
type PrintEventPublisher interface {
	PublishPrintEvent(ctx context.Context, evt domain.PrintEvent) error
}
