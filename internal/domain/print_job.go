package domain

import "time"

// Destination — куда печатаем.
type Destination string

const (
	DestinationKitchen Destination = "kitchen"
	DestinationReceipt Destination = "receipt"
)

// Delivery — каким путём содержимое ушло на печать.
type Delivery string

const (
	DeliveryNone    Delivery = ""
	DeliveryNetwork Delivery = "network"
	DeliveryLocal   Delivery = "local"
)

// PrintOptions — что печатать для заказа.
type PrintOptions struct {
	Kitchen       bool `json:"kitchen"`
	Receipt       bool `json:"receipt"`
	ReceiptCopies int  `json:"receipt_copies,omitempty"`
}

// MaxReceiptCopies — верхняя граница копий чека.
const MaxReceiptCopies = 5

// DefaultPrintOptions — кухня + чек; число копий берётся из настроек сервиса.
func DefaultPrintOptions() PrintOptions {
	return PrintOptions{Kitchen: true, Receipt: true}
}

// Normalize — число копий в [1, MaxReceiptCopies]; ноль заменяется на defaultCopies.
func (o PrintOptions) Normalize(defaultCopies int) PrintOptions {
	if o.ReceiptCopies <= 0 {
		o.ReceiptCopies = defaultCopies
	}
	if o.ReceiptCopies < 1 {
		o.ReceiptCopies = 1
	}
	if o.ReceiptCopies > MaxReceiptCopies {
		o.ReceiptCopies = MaxReceiptCopies
	}
	return o
}

// OptionsOrDefault — опции запроса или значения по умолчанию.
func (r *PrintRequest) OptionsOrDefault() PrintOptions {
	if r == nil || r.Options == nil {
		return DefaultPrintOptions()
	}
	return *r.Options
}

// PrintRequest — сообщение от кассы о завершённой продаже.
type PrintRequest struct {
	Order   Order         `json:"order"`
	Options *PrintOptions `json:"options,omitempty"`
}

// PrintResult — итог диспетчеризации. «Напечатано» значит «содержимое отправлено»,
// а не «чернила на бумаге».
type PrintResult struct {
	JobID          string   `json:"job_id"`
	Success        bool     `json:"success"`
	KitchenPrinted bool     `json:"kitchen_printed"`
	ReceiptPrinted bool     `json:"receipt_printed"`
	KitchenVia     Delivery `json:"kitchen_via,omitempty"`
	ReceiptVia     Delivery `json:"receipt_via,omitempty"`
}

// PrintEvent — событие о результате печати для внешних подписчиков.
type PrintEvent struct {
	JobID          string    `json:"job_id"`
	OrderNumber    string    `json:"order_number"`
	KitchenPrinted bool      `json:"kitchen_printed"`
	ReceiptPrinted bool      `json:"receipt_printed"`
	KitchenVia     Delivery  `json:"kitchen_via,omitempty"`
	ReceiptVia     Delivery  `json:"receipt_via,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// DocumentFormat — формат тела локального документа.
type DocumentFormat string

const (
	FormatText   DocumentFormat = "text"
	FormatMarkup DocumentFormat = "markup"
)

// PrintDocument — то, что отдаётся локальной поверхности печати.
type PrintDocument struct {
	JobID       string
	OrderNumber string
	Destination Destination
	Format      DocumentFormat
	Body        string
	Copies      int
	Paper       PaperProfile
}

// PaperProfile — геометрия бумаги в миллиметрах.
type PaperProfile struct {
	Name        string
	WidthMM     float64
	PrintableMM float64
	HeightMM    float64
}

var (
	Paper80mm = PaperProfile{Name: "80mm", WidthMM: 80, PrintableMM: 72.1, HeightMM: 210}
	Paper58mm = PaperProfile{Name: "58mm", WidthMM: 58, PrintableMM: 48, HeightMM: 210}
)

// PaperByName — профиль по имени; неизвестное имя → 80mm.
func PaperByName(name string) PaperProfile {
	if name == Paper58mm.Name {
		return Paper58mm
	}
	return Paper80mm
}
