package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/Gunvolt24/pos_print/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeOrder — мини-генератор валидного заказа: бургер на кухню, кола в бар, сумки не печатаются на кухне.
func MakeOrder(opts ...func(*domain.Order)) domain.Order {
	now := time.Now().UTC().Truncate(time.Second)

	o := domain.Order{
		OrderNumber:  "ORD-" + UniqSuffix(),
		OrderType:    "dine_in",
		TableName:    "T4",
		CustomerName: "Alex",
		Items: []domain.LineItem{
			{
				ProductName:  "Cheeseburger",
				Quantity:     2,
				Modifiers:    []string{"no onion"},
				CategoryName: "Burgers",
				UnitPrice:    10,
				LineTotal:    20,
			},
			{
				ProductName:  "Cola",
				Quantity:     1,
				CategoryName: "Drinks",
				UnitPrice:    3,
				LineTotal:    3,
			},
			{
				ProductName:  "Tote bag",
				Quantity:     1,
				CategoryName: "Merchandise",
				UnitPrice:    7,
				LineTotal:    7,
			},
		},
		Subtotal:      30,
		TaxAmount:     2.4,
		Total:         32.4,
		PaymentMethod: "card",
		CashierName:   "Sam",
		CreatedAt:     now,
	}

	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func WithOrderNumber(num string) func(*domain.Order) {
	return func(o *domain.Order) { o.OrderNumber = num }
}

// WithItems — заменяет позиции и пересчитывает суммы (налог и скидка обнуляются).
func WithItems(items ...domain.LineItem) func(*domain.Order) {
	return func(o *domain.Order) {
		o.Items = items
		var subtotal float64
		for i := range items {
			subtotal += items[i].LineTotal
		}
		o.Subtotal = subtotal
		o.TaxAmount = 0
		o.DiscountAmount = 0
		o.Total = subtotal
	}
}

// Item — позиция с ценой 1.00 за штуку.
func Item(name, category string, qty int) domain.LineItem {
	return domain.LineItem{
		ProductName:  name,
		Quantity:     qty,
		CategoryName: category,
		UnitPrice:    1,
		LineTotal:    float64(qty),
	}
}

func WithDiscount(amount float64) func(*domain.Order) {
	return func(o *domain.Order) {
		o.DiscountAmount = amount
		o.Total = o.Subtotal + o.TaxAmount - amount
	}
}
