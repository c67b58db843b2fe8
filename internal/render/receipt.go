package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/Gunvolt24/pos_print/internal/domain"
)

// Receipt — HTML-разметка клиентского чека.
// Каждая строка из заказа или брендинга экранируется (&, <, >, ", ').
func Receipt(order *domain.Order, branding *domain.Branding) string {
	if order == nil {
		return ""
	}
	br := WithDefaults(branding)
	esc := html.EscapeString

	var b strings.Builder
	b.WriteString(`<div class="receipt">` + "\n")

	b.WriteString(`<div class="header">` + "\n")
	if br.LogoURL != "" {
		fmt.Fprintf(&b, `<img class="logo" src="%s" alt="">`+"\n", esc(br.LogoURL))
	}
	fmt.Fprintf(&b, "<h1>%s</h1>\n", esc(br.BusinessName))
	fmt.Fprintf(&b, "<p>%s</p>\n", esc(br.AddressLine1))
	if br.AddressLine2 != "" {
		fmt.Fprintf(&b, "<p>%s</p>\n", esc(br.AddressLine2))
	}
	fmt.Fprintf(&b, "<p>%s</p>\n", esc(br.Phone))
	b.WriteString("</div>\n")

	b.WriteString(`<div class="meta">` + "\n")
	fmt.Fprintf(&b, "<p>Order: #%s</p>\n", esc(order.OrderNumber))
	fmt.Fprintf(&b, "<p>Type: %s</p>\n", esc(order.OrderType))
	if order.TableName != "" {
		fmt.Fprintf(&b, "<p>Table: %s</p>\n", esc(order.TableName))
	}
	if order.CustomerName != "" {
		fmt.Fprintf(&b, "<p>Customer: %s</p>\n", esc(order.CustomerName))
	}
	if !order.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "<p>Date: %s</p>\n", order.CreatedAt.Format(timeLayout))
	}
	if order.CashierName != "" {
		fmt.Fprintf(&b, "<p>Cashier: %s</p>\n", esc(order.CashierName))
	}
	b.WriteString("</div>\n")

	b.WriteString(`<table class="items">` + "\n")
	for i := range order.Items {
		item := &order.Items[i]
		fmt.Fprintf(&b, "<tr><td>%d x %s", item.Quantity, esc(item.ProductName))
		if w := weightText(item.Weight); w != "" {
			fmt.Fprintf(&b, " (%s)", esc(w))
		}
		for _, m := range item.Modifiers {
			fmt.Fprintf(&b, `<div class="mod">+ %s</div>`, esc(m))
		}
		if item.SpecialInstructions != "" {
			fmt.Fprintf(&b, `<div class="note">%s</div>`, esc(item.SpecialInstructions))
		}
		fmt.Fprintf(&b, `</td><td class="amount">%s</td></tr>`+"\n", money(item.LineTotal))
	}
	b.WriteString("</table>\n")

	b.WriteString(`<table class="totals">` + "\n")
	fmt.Fprintf(&b, `<tr><td>Subtotal</td><td class="amount">%s</td></tr>`+"\n", money(order.Subtotal))
	fmt.Fprintf(&b, `<tr><td>Tax</td><td class="amount">%s</td></tr>`+"\n", money(order.TaxAmount))
	if order.DiscountAmount > 0 {
		fmt.Fprintf(&b, `<tr class="discount"><td>Discount</td><td class="amount">-%s</td></tr>`+"\n", money(order.DiscountAmount))
	}
	fmt.Fprintf(&b, `<tr class="total"><td>Total</td><td class="amount">%s</td></tr>`+"\n", money(order.Total))
	fmt.Fprintf(&b, `<tr><td>Payment</td><td class="amount">%s</td></tr>`+"\n", esc(order.PaymentMethod))
	b.WriteString("</table>\n")

	fmt.Fprintf(&b, `<div class="footer"><p>%s</p></div>`+"\n", esc(br.FooterText))
	b.WriteString("</div>\n")
	return b.String()
}
