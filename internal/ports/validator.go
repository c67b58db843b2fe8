package ports

import (
	"context"

	"github.com/Gunvolt24/pos_print/internal/domain"
)

// OrderValidator — проверка снимка заказа до маршрутизации и рендера.
// Отказ оборачивает validate.ErrInvalidOrder; печатаемый, но противоречивый заказ — validate.ErrInconsistentOrder.
type OrderValidator interface {
	Validate(ctx context.Context, order *domain.Order) error
}
