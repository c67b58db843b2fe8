package render

import (
	"bytes"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Gunvolt24/pos_print/internal/domain"
)

// Команды ESC/POS. Значения байт фиксированы: принтер разбирает их позиционно.
var (
	escInit        = []byte{0x1B, 0x40}       // ESC @
	escAlignLeft   = []byte{0x1B, 0x61, 0x00} // ESC a 0
	escAlignCenter = []byte{0x1B, 0x61, 0x01} // ESC a 1
	escAlignRight  = []byte{0x1B, 0x61, 0x02} // ESC a 2
	escBoldOn      = []byte{0x1B, 0x45, 0x01} // ESC E 1
	escBoldOff     = []byte{0x1B, 0x45, 0x00} // ESC E 0
	escDoubleSize  = []byte{0x1D, 0x21, 0x11} // GS ! 0x11
	escNormalSize  = []byte{0x1D, 0x21, 0x00} // GS ! 0
	escLineFeed    = []byte{0x0A}             // LF
	escPartialCut  = []byte{0x1D, 0x56, 0x01} // GS V 1
	escFeedPrefix  = []byte{0x1B, 0x64}       // ESC d n
)

const (
	escLineWidth    = 42 // символов Font A на 80mm
	escTrailingFeed = 3
)

// escFeed — прогон бумаги на n строк.
func escFeed(n byte) []byte {
	return append(append([]byte(nil), escFeedPrefix...), n)
}

// EscPos — поток команд ESC/POS для чека. Всегда заканчивается частичной обрезкой бумаги.
func EscPos(order *domain.Order, branding *domain.Branding) []byte {
	br := WithDefaults(branding)
	w := &escWriter{}

	w.cmd(escInit)

	w.cmd(escAlignCenter)
	w.cmd(escBoldOn)
	w.cmd(escDoubleSize)
	w.line(br.BusinessName)
	w.cmd(escNormalSize)
	w.cmd(escBoldOff)
	w.line(br.AddressLine1)
	if br.AddressLine2 != "" {
		w.line(br.AddressLine2)
	}
	w.line(br.Phone)
	w.cmd(escLineFeed)

	w.cmd(escAlignLeft)
	if order != nil {
		w.line("Order: #" + order.OrderNumber)
		w.line("Type: " + order.OrderType)
		if order.TableName != "" {
			w.line("Table: " + order.TableName)
		}
		if order.CustomerName != "" {
			w.line("Customer: " + order.CustomerName)
		}
		if !order.CreatedAt.IsZero() {
			w.line("Date: " + order.CreatedAt.Format(timeLayout))
		}
		if order.CashierName != "" {
			w.line("Cashier: " + order.CashierName)
		}
		w.rule()

		for i := range order.Items {
			item := &order.Items[i]
			left := strconv.Itoa(item.Quantity) + " x " + item.ProductName
			if wt := weightText(item.Weight); wt != "" {
				left += " (" + wt + ")"
			}
			w.columns(left, money(item.LineTotal))
			for _, m := range item.Modifiers {
				w.line("  + " + m)
			}
		}
		w.rule()

		w.columns("Subtotal", money(order.Subtotal))
		w.columns("Tax", money(order.TaxAmount))
		if order.DiscountAmount > 0 {
			w.columns("Discount", "-"+money(order.DiscountAmount))
		}
		w.cmd(escBoldOn)
		w.columns("TOTAL", money(order.Total))
		w.cmd(escBoldOff)
		w.columns("Payment", order.PaymentMethod)
		w.cmd(escLineFeed)
	}

	w.cmd(escAlignCenter)
	w.line(br.FooterText)
	w.cmd(escFeed(escTrailingFeed))
	w.cmd(escPartialCut)
	return w.buf.Bytes()
}

// escWriter — накопитель потока; пользовательский текст очищается от управляющих символов.
type escWriter struct {
	buf bytes.Buffer
}

func (w *escWriter) cmd(c []byte) { w.buf.Write(c) }

func (w *escWriter) line(s string) {
	w.buf.WriteString(SanitizeEscPos(s))
	w.buf.Write(escLineFeed)
}

func (w *escWriter) rule() {
	w.line(strings.Repeat("-", escLineWidth))
}

// columns — левая часть слева, правая прижата к правому краю строки.
func (w *escWriter) columns(left, right string) {
	left, right = SanitizeEscPos(left), SanitizeEscPos(right)
	room := escLineWidth - utf8.RuneCountInString(right) - 1
	if room < 1 {
		room = 1
	}
	if utf8.RuneCountInString(left) > room {
		left = string([]rune(left)[:room])
	}
	pad := escLineWidth - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if pad < 1 {
		pad = 1
	}
	w.line(left + strings.Repeat(" ", pad) + right)
}

// SanitizeEscPos — убирает управляющие символы, чтобы текст не мог подменить команды принтера.
func SanitizeEscPos(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
