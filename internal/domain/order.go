package domain

import (
	"math"
	"time"
)

// Order — неизменяемый снимок проданного заказа для печати.
// Собирается заново на каждый запрос печати и после этого не меняется.
type Order struct {
	OrderNumber    string     `json:"order_number"`
	OrderType      string     `json:"order_type"`
	TableName      string     `json:"table_name,omitempty"`
	CustomerName   string     `json:"customer_name,omitempty"`
	Items          []LineItem `json:"items"`
	Subtotal       float64    `json:"subtotal"`
	TaxAmount      float64    `json:"tax_amount"`
	DiscountAmount float64    `json:"discount_amount"`
	Total          float64    `json:"total"`
	PaymentMethod  string     `json:"payment_method"`
	CashierName    string     `json:"cashier_name"`
	CreatedAt      time.Time  `json:"created_at"`
}

// LineItem — позиция заказа. Принадлежит ровно одному заказу.
type LineItem struct {
	ProductName         string   `json:"product_name"`
	Quantity            int      `json:"quantity"`
	Weight              *Weight  `json:"weight,omitempty"`
	Modifiers           []string `json:"modifiers,omitempty"`
	SpecialInstructions string   `json:"special_instructions,omitempty"`
	CategoryName        string   `json:"category_name"`
	KitchenStation      string   `json:"kitchen_station,omitempty"`
	UnitPrice           float64  `json:"unit_price"`
	LineTotal           float64  `json:"line_total"`
}

// Weight — весовая позиция (например, 0.45 kg).
type Weight struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// ExpectedTotal — итог по формуле subtotal + tax - discount.
func (o *Order) ExpectedTotal() float64 {
	return o.Subtotal + o.TaxAmount - o.DiscountAmount
}

// TotalMatches — сходится ли Total с формулой с точностью до цента.
func (o *Order) TotalMatches() bool {
	return math.Abs(o.Total-o.ExpectedTotal()) < 0.01
}

// TotalQuantity — суммарное количество по позициям.
func TotalQuantity(items []LineItem) int {
	n := 0
	for i := range items {
		n += items[i].Quantity
	}
	return n
}

// CloneItems — копия позиций вместе с модификаторами.
func CloneItems(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	out := make([]LineItem, len(items))
	for i := range items {
		out[i] = items[i]
		if items[i].Modifiers != nil {
			out[i].Modifiers = append([]string(nil), items[i].Modifiers...)
		}
		if items[i].Weight != nil {
			w := *items[i].Weight
			out[i].Weight = &w
		}
	}
	return out
}
