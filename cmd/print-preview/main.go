package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Gunvolt24/pos_print/internal/domain"
	"github.com/Gunvolt24/pos_print/internal/render"
	"github.com/Gunvolt24/pos_print/internal/routing"
	"github.com/Gunvolt24/pos_print/pkg/validate"
)

// CLI-приложение: валидирует заказы и печатает их тикеты в stdout без принтеров.
func main() {
	inputPath := flag.String("in", "", "path to input (.json or .jsonl); empty or \"-\" reads JSONL from stdin")
	formatStr := flag.String("format", "auto", "input format: auto|json|jsonl")
	kind := flag.String("kind", "receipt", "output: kitchen|receipt|escpos")
	business := flag.String("business", "", "business name for the receipt header")
	flag.Parse()

	emit, err := renderEmitter(*kind, &domain.Branding{BusinessName: *business}, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "print-preview: %v\n", err)
		os.Exit(2)
	}

	ctx := context.Background()
	orderValidator := validate.NewOrderValidator()
	format := validate.InputFormat(*formatStr)

	path := *inputPath
	if path == "" {
		path = validate.StdinPath
	}

	summary, err := validate.ValidateFile(ctx, orderValidator, path, format, emit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "print-preview: %v (%s)\n", err, summary)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "print-preview ok (%s)\n", summary)
}

// renderEmitter — отрисовка каждого валидного заказа выбранным рендером.
// Кухонный тикет строится по категориям по умолчанию; заказ без кухонных позиций пропускается.
func renderEmitter(kind string, branding *domain.Branding, w io.Writer) (validate.Emitter, error) {
	switch kind {
	case "kitchen":
		return func(order *domain.Order) error {
			items := routing.RouteKitchenItems(order.Items, nil)
			if len(items) == 0 {
				fmt.Fprintf(os.Stderr, "order %s: no kitchen items\n", order.OrderNumber)
				return nil
			}
			_, err := fmt.Fprintln(w, render.KitchenTicket(order, items))
			return err
		}, nil
	case "receipt":
		return func(order *domain.Order) error {
			_, err := fmt.Fprintln(w, render.Receipt(order, branding))
			return err
		}, nil
	case "escpos":
		return func(order *domain.Order) error {
			_, err := w.Write(render.EscPos(order, branding))
			return err
		}, nil
	default:
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
}
