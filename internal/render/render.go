// Пакет render — содержимое для печати: кухонный тикет (текст), чек (HTML-разметка)
// и поток команд ESC/POS для термопринтера. Все функции чистые.
package render

import (
	"fmt"
	"strings"

	"github.com/Gunvolt24/pos_print/internal/domain"
)

// Значения брендинга по умолчанию.
const (
	DefaultBusinessName = "Restaurant POS"
	DefaultAddressLine1 = "123 Main Street"
	DefaultPhone        = "(555) 000-0000"
	DefaultFooterText   = "Thank you for your visit!"
)

const timeLayout = "2006-01-02 15:04"

// WithDefaults — брендинг, где отсутствующие поля заменены значениями по умолчанию.
// AddressLine2 и LogoURL не имеют значений по умолчанию.
func WithDefaults(b *domain.Branding) domain.Branding {
	var out domain.Branding
	if b != nil {
		out = *b
	}
	if strings.TrimSpace(out.BusinessName) == "" {
		out.BusinessName = DefaultBusinessName
	}
	if strings.TrimSpace(out.AddressLine1) == "" {
		out.AddressLine1 = DefaultAddressLine1
	}
	if strings.TrimSpace(out.Phone) == "" {
		out.Phone = DefaultPhone
	}
	if strings.TrimSpace(out.FooterText) == "" {
		out.FooterText = DefaultFooterText
	}
	return out
}

// ShortOrderNumber — последний сегмент номера заказа после "-", в верхнем регистре.
func ShortOrderNumber(orderNumber string) string {
	parts := strings.Split(strings.TrimSpace(orderNumber), "-")
	last := parts[len(parts)-1]
	if last == "" {
		return strings.ToUpper(strings.TrimSpace(orderNumber))
	}
	return strings.ToUpper(last)
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func weightText(w *domain.Weight) string {
	if w == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%g %s", w.Amount, w.Unit))
}
