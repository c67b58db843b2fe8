package render

import (
	"fmt"
	"strings"

	"github.com/Gunvolt24/pos_print/internal/domain"
)

const kitchenRule = "----------------------------------------"

// KitchenTicket — текст кухонного тикета по уже отмаршрутизированным позициям.
// Пустая строка означает «для кухни печатать нечего».
func KitchenTicket(order *domain.Order, items []domain.LineItem) string {
	if order == nil || len(items) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "KITCHEN ORDER #%s\n", ShortOrderNumber(order.OrderNumber))

	meta := []string{"Type: " + order.OrderType}
	if order.TableName != "" {
		meta = append(meta, "Table: "+order.TableName)
	}
	if order.CustomerName != "" {
		meta = append(meta, "Customer: "+order.CustomerName)
	}
	b.WriteString(strings.Join(meta, " | "))
	b.WriteByte('\n')
	if !order.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "Time: %s\n", order.CreatedAt.Format(timeLayout))
	}
	b.WriteString(kitchenRule + "\n")

	for i := range items {
		item := &items[i]
		fmt.Fprintf(&b, "%d x %s", item.Quantity, item.ProductName)
		if w := weightText(item.Weight); w != "" {
			fmt.Fprintf(&b, " (%s)", w)
		}
		b.WriteByte('\n')
		for _, m := range item.Modifiers {
			fmt.Fprintf(&b, "   + %s\n", m)
		}
		if item.SpecialInstructions != "" {
			fmt.Fprintf(&b, "   ! %s\n", item.SpecialInstructions)
		}
		if item.KitchenStation != "" {
			fmt.Fprintf(&b, "   [%s]\n", item.KitchenStation)
		}
	}

	b.WriteString(kitchenRule + "\n")
	fmt.Fprintf(&b, "Items: %d  Qty: %d\n", len(items), domain.TotalQuantity(items))
	return b.String()
}
