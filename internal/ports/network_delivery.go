package ports

import (
	"context"

	"github.com/Gunvolt24/pos_print/internal/domain"
)

// NetworkDelivery — попытка доставить содержимое на сетевой принтер.
// true означает только то, что какой-то эндпоинт принял запрос.
type NetworkDelivery interface {
	Deliver(ctx context.Context, device domain.PrinterDevice, content []byte) bool
}
