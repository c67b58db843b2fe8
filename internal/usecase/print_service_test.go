package usecase_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Gunvolt24/pos_print/internal/cache/memory"
	"github.com/Gunvolt24/pos_print/internal/domain"
	"github.com/Gunvolt24/pos_print/internal/ports/mocks"
	"github.com/Gunvolt24/pos_print/internal/usecase"
	"github.com/Gunvolt24/pos_print/pkg/validate"
	"github.com/golang/mock/gomock"
)

const jobID = "job-1"

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

type fixture struct {
	config  *mocks.MockConfigSource
	network *mocks.MockNetworkDelivery
	surface *mocks.MockLocalRenderSurface
	events  *mocks.MockPrintEventPublisher
	svc     *usecase.PrintService
}

func newFixture(t *testing.T, opts ...usecase.Option) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		config:  mocks.NewMockConfigSource(ctrl),
		network: mocks.NewMockNetworkDelivery(ctrl),
		surface: mocks.NewMockLocalRenderSurface(ctrl),
		events:  mocks.NewMockPrintEventPublisher(ctrl),
	}
	base := []usecase.Option{
		usecase.WithJobIDs(func() string { return jobID }),
		usecase.WithEventPublisher(f.events),
	}
	f.svc = usecase.NewPrintService(f.config, f.network, f.surface, validate.NewOrderValidator(), noopLogger{},
		append(base, opts...)...)
	return f
}

func sampleOrder() *domain.Order {
	return &domain.Order{
		OrderNumber:   "ORD-20250101-a1b2",
		OrderType:     "dine_in",
		TableName:     "T5",
		Subtotal:      20,
		TaxAmount:     2,
		Total:         22,
		PaymentMethod: "cash",
		CashierName:   "Anna",
		CreatedAt:     time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		Items: []domain.LineItem{
			{ProductName: "Burger", Quantity: 1, CategoryName: "Burgers", UnitPrice: 12, LineTotal: 12},
			{ProductName: "Latte", Quantity: 2, CategoryName: "Coffee", UnitPrice: 4, LineTotal: 8},
		},
	}
}

func addressedSnapshot() *domain.ConfigSnapshot {
	return &domain.ConfigSnapshot{Devices: []domain.PrinterDevice{
		{ID: "k1", Name: "Kitchen", Address: "10.0.0.5", Class: domain.DeviceKitchen, Active: true},
		{ID: "r1", Name: "Front", Address: "10.0.0.6", Class: domain.DeviceReceipt, Active: true},
	}}
}

func TestDispatch_NoAddresses_LocalOnly(t *testing.T) {
	f := newFixture(t)

	f.config.EXPECT().Get(gomock.Any()).Return(domain.EmptySnapshot(time.Now()))
	f.network.EXPECT().Deliver(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	var docs []domain.PrintDocument
	gomock.InOrder(
		f.surface.EXPECT().Render(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, doc domain.PrintDocument) error { docs = append(docs, doc); return nil }),
		f.surface.EXPECT().Render(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, doc domain.PrintDocument) error { docs = append(docs, doc); return nil }),
	)
	f.events.EXPECT().PublishPrintEvent(gomock.Any(), gomock.Any()).Return(nil)

	start := time.Now()
	res := f.svc.Dispatch(context.Background(), sampleOrder(), domain.PrintOptions{Kitchen: true, Receipt: true, ReceiptCopies: 2})
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Fatalf("no-printer path must not incur network latency, took %s", elapsed)
	}
	f.svc.Wait()

	if !res.Success || !res.KitchenPrinted || !res.ReceiptPrinted {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.KitchenVia != domain.DeliveryLocal || res.ReceiptVia != domain.DeliveryLocal || res.JobID != jobID {
		t.Fatalf("unexpected delivery: %+v", res)
	}

	if len(docs) != 2 {
		t.Fatalf("want 2 local documents, got %d", len(docs))
	}
	kitchen, receipt := docs[0], docs[1]
	if kitchen.Destination != domain.DestinationKitchen || kitchen.Format != domain.FormatText ||
		!strings.Contains(kitchen.Body, "KITCHEN ORDER #A1B2") || kitchen.Copies != 1 {
		t.Fatalf("kitchen must be rendered first as text: %+v", kitchen)
	}
	if receipt.Destination != domain.DestinationReceipt || receipt.Format != domain.FormatMarkup ||
		!strings.Contains(receipt.Body, `class="receipt"`) || receipt.Copies != 2 {
		t.Fatalf("unexpected receipt document: %+v", receipt)
	}
	if receipt.Paper != domain.Paper80mm || receipt.JobID != jobID {
		t.Fatalf("document must carry paper profile and job id: %+v", receipt)
	}
}

func TestDispatch_NetworkFailureFallsBack(t *testing.T) {
	f := newFixture(t)

	f.config.EXPECT().Get(gomock.Any()).Return(addressedSnapshot())
	f.network.EXPECT().Deliver(gomock.Any(), gomock.Any(), gomock.Any()).Return(false).Times(2)

	rendered := make(chan domain.Destination, 2)
	f.surface.EXPECT().Render(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, doc domain.PrintDocument) error { rendered <- doc.Destination; return nil }).Times(2)
	f.events.EXPECT().PublishPrintEvent(gomock.Any(), gomock.Any()).Return(nil)

	res := f.svc.Dispatch(context.Background(), sampleOrder(), domain.DefaultPrintOptions())
	f.svc.Wait()

	if !res.Success || !res.KitchenPrinted || !res.ReceiptPrinted {
		t.Fatalf("failed network must still count as printed via fallback: %+v", res)
	}
	if res.KitchenVia != domain.DeliveryLocal || res.ReceiptVia != domain.DeliveryLocal {
		t.Fatalf("unexpected delivery: %+v", res)
	}
	if len(rendered) != 2 {
		t.Fatalf("both destinations must fall back, got %d", len(rendered))
	}
}

func TestDispatch_NetworkSuccess(t *testing.T) {
	f := newFixture(t)

	f.config.EXPECT().Get(gomock.Any()).Return(addressedSnapshot())

	var (
		mu       sync.Mutex
		payloads = map[string][]byte{}
	)
	f.network.EXPECT().Deliver(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, d domain.PrinterDevice, content []byte) bool {
			mu.Lock()
			defer mu.Unlock()
			payloads[d.ID] = content
			return true
		}).Times(2)
	f.surface.EXPECT().Render(gomock.Any(), gomock.Any()).Times(0)
	f.events.EXPECT().PublishPrintEvent(gomock.Any(), gomock.Any()).Return(nil)

	res := f.svc.Dispatch(context.Background(), sampleOrder(), domain.PrintOptions{Kitchen: true, Receipt: true, ReceiptCopies: 3})
	f.svc.Wait()

	if !res.Success || res.KitchenVia != domain.DeliveryNetwork || res.ReceiptVia != domain.DeliveryNetwork {
		t.Fatalf("unexpected result: %+v", res)
	}

	mu.Lock()
	defer mu.Unlock()
	if !strings.HasPrefix(string(payloads["k1"]), "KITCHEN ORDER #A1B2") {
		t.Fatalf("kitchen printer must receive the ticket text: %q", payloads["k1"])
	}
	receipt := payloads["r1"]
	if !bytes.HasPrefix(receipt, []byte{0x1B, 0x40}) {
		t.Fatalf("receipt printer must receive ESC/POS")
	}
	if cuts := bytes.Count(receipt, []byte{0x1D, 0x56, 0x01}); cuts != 3 {
		t.Fatalf("want 3 copies (3 cuts), got %d", cuts)
	}
}

func TestDispatch_BoundedByCeiling(t *testing.T) {
	f := newFixture(t, usecase.WithCeiling(100*time.Millisecond))

	release := make(chan struct{})
	defer close(release)

	f.config.EXPECT().Get(gomock.Any()).Return(addressedSnapshot())
	f.network.EXPECT().Deliver(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, domain.PrinterDevice, []byte) bool {
			<-release // принтер «висит» и не смотрит на контекст
			return true
		}).Times(2)
	f.surface.EXPECT().Render(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	f.events.EXPECT().PublishPrintEvent(gomock.Any(), gomock.Any()).Return(nil)

	start := time.Now()
	res := f.svc.Dispatch(context.Background(), sampleOrder(), domain.DefaultPrintOptions())
	elapsed := time.Since(start)
	f.svc.Wait()

	if elapsed > 600*time.Millisecond {
		t.Fatalf("dispatch must return near the ceiling, took %s", elapsed)
	}
	if !res.KitchenPrinted || !res.ReceiptPrinted || res.KitchenVia != domain.DeliveryLocal {
		t.Fatalf("unresolved destinations must fall back: %+v", res)
	}
}

// Медленный источник конфигурации и сеть делят один ceiling.
func TestDispatch_CeilingCoversConfigRead(t *testing.T) {
	const ceiling = 150 * time.Millisecond
	f := newFixture(t, usecase.WithCeiling(ceiling))

	f.config.EXPECT().Get(gomock.Any()).DoAndReturn(func(ctx context.Context) *domain.ConfigSnapshot {
		if _, ok := ctx.Deadline(); !ok {
			t.Errorf("config read must run under the dispatch deadline")
		}
		<-ctx.Done()
		return addressedSnapshot()
	})
	f.network.EXPECT().Deliver(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ domain.PrinterDevice, _ []byte) bool {
			return ctx.Err() == nil
		}).AnyTimes()
	f.surface.EXPECT().Render(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	f.events.EXPECT().PublishPrintEvent(gomock.Any(), gomock.Any()).Return(nil)

	start := time.Now()
	res := f.svc.Dispatch(context.Background(), sampleOrder(), domain.DefaultPrintOptions())
	elapsed := time.Since(start)
	f.svc.Wait()

	if elapsed > ceiling+300*time.Millisecond {
		t.Fatalf("whole dispatch must stay within the ceiling %s, took %s", ceiling, elapsed)
	}
	if res.KitchenVia != domain.DeliveryLocal || res.ReceiptVia != domain.DeliveryLocal || !res.Success {
		t.Fatalf("exhausted ceiling must fall back locally: %+v", res)
	}
}

// Зависшее хранилище за настоящим кэшем не держит Dispatch дольше ceiling.
func TestDispatch_CeilingWithHungConfigStore(t *testing.T) {
	const ceiling = 200 * time.Millisecond
	ctrl := gomock.NewController(t)

	store := mocks.NewMockPrinterConfigStore(ctrl)
	store.EXPECT().ListActiveDevices(gomock.Any()).DoAndReturn(
		func(ctx context.Context) ([]domain.PrinterDevice, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})
	store.EXPECT().ListRoutingRules(gomock.Any()).DoAndReturn(
		func(ctx context.Context) ([]domain.RoutingRule, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})
	store.EXPECT().GetBranding(gomock.Any()).DoAndReturn(
		func(ctx context.Context) (*domain.Branding, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

	cache := memory.NewConfigCache(store, noopLogger{}, memory.WithFetchTimeout(time.Second))
	network := mocks.NewMockNetworkDelivery(ctrl)
	surface := mocks.NewMockLocalRenderSurface(ctrl)
	surface.EXPECT().Render(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	svc := usecase.NewPrintService(cache, network, surface, validate.NewOrderValidator(), noopLogger{},
		usecase.WithCeiling(ceiling))

	start := time.Now()
	res := svc.Dispatch(context.Background(), sampleOrder(), domain.DefaultPrintOptions())
	elapsed := time.Since(start)
	svc.Wait()

	if elapsed > ceiling+300*time.Millisecond {
		t.Fatalf("dispatch took %s with ceiling %s", elapsed, ceiling)
	}
	if !res.Success || res.KitchenVia != domain.DeliveryLocal || res.ReceiptVia != domain.DeliveryLocal {
		t.Fatalf("empty snapshot must print locally: %+v", res)
	}

	// дождаться фоновой выборки до проверки ожиданий gomock
	if err := cache.WarmUp(context.Background()); !errors.Is(err, memory.ErrConfigFetch) {
		t.Fatalf("want ErrConfigFetch from the hung store, got %v", err)
	}
}

func TestDispatch_MixedAddressAndNoAddress(t *testing.T) {
	f := newFixture(t)

	snap := &domain.ConfigSnapshot{Devices: []domain.PrinterDevice{
		{ID: "k1", Class: domain.DeviceKitchen, Active: true}, // без адреса
		{ID: "r1", Address: "10.0.0.6", Class: domain.DeviceReceipt, Active: true},
	}}
	f.config.EXPECT().Get(gomock.Any()).Return(snap)
	f.network.EXPECT().Deliver(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, d domain.PrinterDevice, _ []byte) bool {
			if d.ID != "r1" {
				t.Errorf("device without address must never be attempted, got %s", d.ID)
			}
			return true
		}).Times(1)
	f.surface.EXPECT().Render(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, doc domain.PrintDocument) error {
			if doc.Destination != domain.DestinationKitchen {
				t.Errorf("only the kitchen must fall back, got %s", doc.Destination)
			}
			return nil
		}).Times(1)
	f.events.EXPECT().PublishPrintEvent(gomock.Any(), gomock.Any()).Return(nil)

	res := f.svc.Dispatch(context.Background(), sampleOrder(), domain.DefaultPrintOptions())
	f.svc.Wait()

	if res.KitchenVia != domain.DeliveryLocal || res.ReceiptVia != domain.DeliveryNetwork || !res.Success {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestDispatch_NothingForKitchen(t *testing.T) {
	f := newFixture(t)

	order := sampleOrder()
	order.Items = []domain.LineItem{{ProductName: "T-Shirt", Quantity: 1, CategoryName: "Merchandise", LineTotal: 20}}

	f.config.EXPECT().Get(gomock.Any()).Return(domain.EmptySnapshot(time.Now()))
	f.surface.EXPECT().Render(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, doc domain.PrintDocument) error {
			if doc.Destination != domain.DestinationReceipt || !strings.Contains(doc.Body, "T-Shirt") {
				t.Errorf("receipt with the item expected, got %+v", doc)
			}
			return nil
		}).Times(1)
	f.events.EXPECT().PublishPrintEvent(gomock.Any(), gomock.Any()).Return(nil)

	res := f.svc.Dispatch(context.Background(), order, domain.DefaultPrintOptions())
	f.svc.Wait()

	if res.KitchenPrinted || res.KitchenVia != domain.DeliveryNone {
		t.Fatalf("kitchen must have nothing to print: %+v", res)
	}
	if !res.ReceiptPrinted || !res.Success {
		t.Fatalf("receipt must still print: %+v", res)
	}
}

func TestDispatch_ConfigPanicStillPrints(t *testing.T) {
	f := newFixture(t)

	f.config.EXPECT().Get(gomock.Any()).DoAndReturn(func(context.Context) *domain.ConfigSnapshot {
		panic("config source exploded")
	})
	f.surface.EXPECT().Render(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	f.events.EXPECT().PublishPrintEvent(gomock.Any(), gomock.Any()).Return(nil)

	res := f.svc.Dispatch(context.Background(), sampleOrder(), domain.DefaultPrintOptions())
	f.svc.Wait()

	if !res.Success || !res.KitchenPrinted || !res.ReceiptPrinted {
		t.Fatalf("config failure must not stop printing: %+v", res)
	}
}

func TestDispatch_SurfaceAndPublishErrorsAreNotSurfaced(t *testing.T) {
	f := newFixture(t)

	f.config.EXPECT().Get(gomock.Any()).Return(domain.EmptySnapshot(time.Now()))
	f.surface.EXPECT().Render(gomock.Any(), gomock.Any()).Return(errors.New("spool full")).Times(1)

	var evt domain.PrintEvent
	f.events.EXPECT().PublishPrintEvent(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e domain.PrintEvent) error { evt = e; return errors.New("nats down") })

	res := f.svc.Dispatch(context.Background(), sampleOrder(), domain.PrintOptions{Receipt: true})
	f.svc.Wait()

	if !res.Success || !res.ReceiptPrinted || res.KitchenPrinted {
		t.Fatalf("unexpected result: %+v", res)
	}
	if evt.JobID != jobID || evt.OrderNumber != "ORD-20250101-a1b2" || !evt.ReceiptPrinted || evt.OccurredAt.IsZero() {
		t.Fatalf("unexpected event: %+v", evt)
	}
}

func TestDispatch_NilOrder(t *testing.T) {
	f := newFixture(t)

	res := f.svc.Dispatch(context.Background(), nil, domain.DefaultPrintOptions())
	if res.Success || res.JobID != jobID {
		t.Fatalf("nil order must not succeed: %+v", res)
	}
}

func TestDispatchFromMessage(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		f := newFixture(t)
		err := f.svc.DispatchFromMessage(context.Background(), []byte("{"))
		if err == nil || !strings.Contains(err.Error(), "invalid json") {
			t.Fatalf("expected invalid json error, got %v", err)
		}
	})

	t.Run("invalid order", func(t *testing.T) {
		f := newFixture(t)
		raw := []byte(`{"order":{"order_number":"","items":[]}}`)
		if err := f.svc.DispatchFromMessage(context.Background(), raw); !errors.Is(err, validate.ErrInvalidOrder) {
			t.Fatalf("expected ErrInvalidOrder, got %v", err)
		}
	})

	t.Run("till rounding still prints", func(t *testing.T) {
		f := newFixture(t)
		f.config.EXPECT().Get(gomock.Any()).Return(domain.EmptySnapshot(time.Now()))

		var docs int
		f.surface.EXPECT().Render(gomock.Any(), gomock.Any()).DoAndReturn(
			func(context.Context, domain.PrintDocument) error { docs++; return nil }).Times(2)
		f.events.EXPECT().PublishPrintEvent(gomock.Any(), gomock.Any()).Return(nil)

		order := sampleOrder()
		order.Total = 22.03
		raw, err := json.Marshal(domain.PrintRequest{Order: *order})
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if err := f.svc.DispatchFromMessage(context.Background(), raw); err != nil {
			t.Fatalf("committed sale must be printed, got %v", err)
		}
		f.svc.Wait()

		if docs != 2 {
			t.Fatalf("want kitchen and receipt rendered locally, got %d document(s)", docs)
		}
	})

	t.Run("unknown field still prints", func(t *testing.T) {
		f := newFixture(t)
		f.config.EXPECT().Get(gomock.Any()).Return(domain.EmptySnapshot(time.Now()))
		f.surface.EXPECT().Render(gomock.Any(), gomock.Any()).Return(nil).Times(2)
		f.events.EXPECT().PublishPrintEvent(gomock.Any(), gomock.Any()).Return(nil)

		raw, err := json.Marshal(domain.PrintRequest{Order: *sampleOrder()})
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		raw = append([]byte(`{"loyalty_id":"L-1",`), raw[1:]...)
		if err := f.svc.DispatchFromMessage(context.Background(), raw); err != nil {
			t.Fatalf("unknown field must not drop the print job, got %v", err)
		}
		f.svc.Wait()
	})

	t.Run("receipt only", func(t *testing.T) {
		f := newFixture(t)
		f.config.EXPECT().Get(gomock.Any()).Return(domain.EmptySnapshot(time.Now()))
		f.surface.EXPECT().Render(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, doc domain.PrintDocument) error {
				if doc.Destination != domain.DestinationReceipt {
					t.Errorf("kitchen was not requested, got %s", doc.Destination)
				}
				return nil
			}).Times(1)
		f.events.EXPECT().PublishPrintEvent(gomock.Any(), gomock.Any()).Return(nil)

		raw := []byte(`{"order":{"order_number":"ORD-9","order_type":"takeaway","items":[` +
			`{"product_name":"Soup","quantity":1,"category_name":"Soups","unit_price":5,"line_total":5}],` +
			`"subtotal":5,"tax_amount":0,"discount_amount":0,"total":5,"payment_method":"card",` +
			`"cashier_name":"Bob","created_at":"2025-01-01T10:00:00Z"},` +
			`"options":{"kitchen":false,"receipt":true}}`)
		if err := f.svc.DispatchFromMessage(context.Background(), raw); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		f.svc.Wait()
	})
}

func TestPreview(t *testing.T) {
	f := newFixture(t)
	f.config.EXPECT().Get(gomock.Any()).Return(&domain.ConfigSnapshot{Branding: &domain.Branding{BusinessName: "Cafe Uno"}}).AnyTimes()

	tests := []struct {
		kind        string
		contentType string
		contains    string
	}{
		{usecase.PreviewKitchen, "text/plain; charset=utf-8", "KITCHEN ORDER #A1B2"},
		{usecase.PreviewReceipt, "text/html; charset=utf-8", "<h1>Cafe Uno</h1>"},
		{usecase.PreviewEscPos, "application/octet-stream", "Cafe Uno"},
	}
	for _, tt := range tests {
		body, ct, err := f.svc.Preview(context.Background(), tt.kind, sampleOrder())
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.kind, err)
		}
		if ct != tt.contentType || !strings.Contains(string(body), tt.contains) {
			t.Fatalf("%s: content type %q, body %q", tt.kind, ct, body)
		}
	}

	if _, _, err := f.svc.Preview(context.Background(), "pdf", sampleOrder()); !errors.Is(err, usecase.ErrUnknownPreview) {
		t.Fatalf("expected ErrUnknownPreview, got %v", err)
	}
	if _, _, err := f.svc.Preview(context.Background(), usecase.PreviewKitchen, nil); !errors.Is(err, validate.ErrInvalidOrder) {
		t.Fatalf("expected ErrInvalidOrder for nil order, got %v", err)
	}
}

func TestInvalidateConfig_Delegates(t *testing.T) {
	f := newFixture(t)
	f.config.EXPECT().Invalidate(gomock.Any()).Times(1)

	f.svc.InvalidateConfig(context.Background())
}
