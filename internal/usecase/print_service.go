package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Gunvolt24/pos_print/internal/domain"
	"github.com/Gunvolt24/pos_print/internal/ports"
	"github.com/Gunvolt24/pos_print/internal/render"
	"github.com/Gunvolt24/pos_print/internal/routing"
	"github.com/Gunvolt24/pos_print/pkg/ctxmeta"
	"github.com/Gunvolt24/pos_print/pkg/metrics"
	"github.com/Gunvolt24/pos_print/pkg/telemetry"
	"github.com/Gunvolt24/pos_print/pkg/validate"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Проверка, что PrintService удовлетворяет интерфейсу PrintService.
var _ ports.PrintService = (*PrintService)(nil)

// ErrUnknownPreview — запрошен неизвестный вид предпросмотра.
var ErrUnknownPreview = errors.New("unknown preview kind")

// Виды предпросмотра.
const (
	PreviewKitchen = "kitchen"
	PreviewReceipt = "receipt"
	PreviewEscPos  = "escpos"
)

// DefaultCeiling — максимум, который Dispatch ждёт конфигурацию и сетевые попытки вместе.
const DefaultCeiling = 2500 * time.Millisecond

// PrintService — координатор печати: маршрутизация, рендер, сетевая доставка и локальный fallback.
// Dispatch не возвращает ошибок: продажа уже проведена, печать не должна её «ронять».
type PrintService struct {
	config    ports.ConfigSource
	network   ports.NetworkDelivery
	surface   ports.LocalRenderSurface
	validator ports.OrderValidator
	log       ports.Logger
	events    ports.PrintEventPublisher

	ceiling       time.Duration
	defaultCopies int
	paper         domain.PaperProfile
	tracer        trace.Tracer
	newJobID      func() string
	now           func() time.Time

	background sync.WaitGroup
}

// Option — настройка PrintService.
type Option func(*PrintService)

// WithCeiling — потолок ожидания сетевой фазы.
func WithCeiling(d time.Duration) Option {
	return func(s *PrintService) {
		if d > 0 {
			s.ceiling = d
		}
	}
}

// WithReceiptCopies — копий чека по умолчанию.
func WithReceiptCopies(n int) Option {
	return func(s *PrintService) { s.defaultCopies = n }
}

// WithPaper — профиль бумаги для локальных документов.
func WithPaper(p domain.PaperProfile) Option {
	return func(s *PrintService) { s.paper = p }
}

// WithEventPublisher — публикация итогов печати (nil — не публиковать).
func WithEventPublisher(p ports.PrintEventPublisher) Option {
	return func(s *PrintService) { s.events = p }
}

// WithJobIDs — генератор id заданий (тесты).
func WithJobIDs(gen func() string) Option {
	return func(s *PrintService) {
		if gen != nil {
			s.newJobID = gen
		}
	}
}

// NewPrintService — DI-конструктор.
func NewPrintService(
	config ports.ConfigSource,
	network ports.NetworkDelivery,
	surface ports.LocalRenderSurface,
	validator ports.OrderValidator,
	log ports.Logger,
	opts ...Option,
) *PrintService {
	s := &PrintService{
		config:        config,
		network:       network,
		surface:       surface,
		validator:     validator,
		log:           log,
		ceiling:       DefaultCeiling,
		defaultCopies: 1,
		paper:         domain.Paper80mm,
		tracer:        telemetry.Tracer(),
		newJobID:      func() string { return uuid.NewString() },
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// printJob — подготовленное содержимое одного направления.
type printJob struct {
	dest    domain.Destination
	device  *domain.PrinterDevice
	payload []byte // тело для сетевого принтера
	doc     domain.PrintDocument
	via     domain.Delivery
}

// Dispatch — печать заказа по всем запрошенным направлениям.
//
// Шаги:
//  1. снимок конфигурации и маршрутизация позиций;
//  2. рендер каждого направления отдельно (ошибка одного не мешает другому);
//  3. без сетевых адресов — сразу локальный fallback, без сетевых задержек;
//  4. иначе сетевые попытки параллельно; неудачные и нерешённые уходят в fallback.
//
// Чтение конфигурации и сетевая фаза делят один ceiling: сеть получает остаток.
// Возвращается, как только вся оставшаяся работа поставлена в очередь.
func (s *PrintService) Dispatch(ctx context.Context, order *domain.Order, opts domain.PrintOptions) domain.PrintResult {
	jobID := s.newJobID()
	ctx = ctxmeta.WithJobID(ctx, jobID)
	result := domain.PrintResult{JobID: jobID}

	if order == nil {
		s.log.Warnf(ctx, "dispatch skipped: nil order")
		return result
	}

	ctx, span := s.tracer.Start(ctx, "print.dispatch", trace.WithAttributes(
		attribute.String("print.job_id", jobID),
		attribute.String("print.order_number", order.OrderNumber),
	))
	defer span.End()

	ceilCtx, cancel := context.WithTimeout(ctx, s.ceiling)
	defer cancel()

	opts = opts.Normalize(s.defaultCopies)
	snap := s.snapshot(ceilCtx)
	jobs, renderFailed := s.prepare(ctx, jobID, order, snap, opts)

	s.resolve(ctx, ceilCtx, jobs)

	allPrinted := true
	for _, j := range jobs {
		printed := j.via != domain.DeliveryNone
		allPrinted = allPrinted && printed
		switch j.dest {
		case domain.DestinationKitchen:
			result.KitchenPrinted, result.KitchenVia = printed, j.via
		case domain.DestinationReceipt:
			result.ReceiptPrinted, result.ReceiptVia = printed, j.via
		}
		metrics.PrintJobs.WithLabelValues(string(j.dest), string(j.via)).Inc()
	}
	result.Success = allPrinted && !renderFailed

	span.SetAttributes(
		attribute.Bool("print.success", result.Success),
		attribute.String("print.kitchen_via", string(result.KitchenVia)),
		attribute.String("print.receipt_via", string(result.ReceiptVia)),
	)
	s.log.Infof(ctx, "print job dispatched order=%s kitchen=%v(%s) receipt=%v(%s)",
		order.OrderNumber, result.KitchenPrinted, result.KitchenVia, result.ReceiptPrinted, result.ReceiptVia)

	s.publish(ctx, order, result)
	return result
}

// DispatchFromMessage — печать по сообщению о продаже (raw JSON {order, options}).
// Ошибка возвращается только для сообщения, которое нельзя напечатать (validate.ErrInvalidOrder).
// Противоречивый заказ печатается с предупреждением в логе.
func (s *PrintService) DispatchFromMessage(ctx context.Context, raw []byte) error {
	req, err := validate.ValidatePrintRequestFromJSON(ctx, s.validator, raw)
	if validate.IsRejected(err) {
		s.log.Warnf(ctx, "print request rejected err=%v", err)
		return fmt.Errorf("print request: %w", err)
	}
	if err != nil {
		s.log.Warnf(ctx, "printing inconsistent order=%s err=%v", req.Order.OrderNumber, err)
	}
	s.Dispatch(ctx, &req.Order, req.OptionsOrDefault())
	return nil
}

// Preview — содержимое без печати: kitchen (текст), receipt (HTML) или escpos (байты).
func (s *PrintService) Preview(ctx context.Context, kind string, order *domain.Order) ([]byte, string, error) {
	if err := s.validator.Validate(ctx, order); validate.IsRejected(err) {
		return nil, "", err
	} else if err != nil {
		s.log.Warnf(ctx, "previewing inconsistent order=%s err=%v", order.OrderNumber, err)
	}
	snap := s.snapshot(ctx)

	switch kind {
	case PreviewKitchen:
		items := routing.RouteKitchenItems(order.Items, snap)
		return []byte(render.KitchenTicket(order, items)), "text/plain; charset=utf-8", nil
	case PreviewReceipt:
		return []byte(render.Receipt(order, snap.Branding)), "text/html; charset=utf-8", nil
	case PreviewEscPos:
		return render.EscPos(order, snap.Branding), "application/octet-stream", nil
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownPreview, kind)
	}
}

// ConfigSnapshot — текущий снимок конфигурации.
func (s *PrintService) ConfigSnapshot(ctx context.Context) *domain.ConfigSnapshot {
	return s.snapshot(ctx)
}

// InvalidateConfig — администратор изменил настройки принтеров.
func (s *PrintService) InvalidateConfig(ctx context.Context) {
	s.config.Invalidate(ctx)
}

// Wait — дождаться фоновой локальной печати (graceful shutdown).
func (s *PrintService) Wait() {
	s.background.Wait()
}

// ------вспомогательные функции------

// snapshot — снимок конфигурации; паника источника → пустой снимок.
func (s *PrintService) snapshot(ctx context.Context) (snap *domain.ConfigSnapshot) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorf(ctx, "config source panic: %v", r)
			snap = domain.EmptySnapshot(s.now())
		}
	}()
	if snap = s.config.Get(ctx); snap == nil {
		snap = domain.EmptySnapshot(s.now())
	}
	return snap
}

// prepare — задания по направлениям. Кухня всегда идёт первой.
func (s *PrintService) prepare(
	ctx context.Context,
	jobID string,
	order *domain.Order,
	snap *domain.ConfigSnapshot,
	opts domain.PrintOptions,
) (jobs []*printJob, renderFailed bool) {
	if opts.Kitchen {
		job, err := guard(func() (*printJob, error) {
			items := routing.RouteKitchenItems(order.Items, snap)
			ticket := render.KitchenTicket(order, items)
			if ticket == "" {
				return nil, nil
			}
			return &printJob{
				dest:    domain.DestinationKitchen,
				device:  snap.KitchenDevice(),
				payload: []byte(ticket),
				doc:     s.document(jobID, order, domain.DestinationKitchen, domain.FormatText, ticket, 1),
			}, nil
		})
		switch {
		case err != nil:
			renderFailed = true
			s.log.Warnf(ctx, "kitchen render failed order=%s err=%v", order.OrderNumber, err)
			metrics.PrintJobs.WithLabelValues(string(domain.DestinationKitchen), "failed").Inc()
		case job == nil:
			metrics.PrintJobs.WithLabelValues(string(domain.DestinationKitchen), "skipped").Inc()
		default:
			jobs = append(jobs, job)
		}
	}

	if opts.Receipt {
		job, err := guard(func() (*printJob, error) {
			markup := render.Receipt(order, snap.Branding)
			stream := render.EscPos(order, snap.Branding)
			payload := make([]byte, 0, len(stream)*opts.ReceiptCopies)
			for i := 0; i < opts.ReceiptCopies; i++ {
				payload = append(payload, stream...)
			}
			return &printJob{
				dest:    domain.DestinationReceipt,
				device:  snap.ReceiptDevice(),
				payload: payload,
				doc:     s.document(jobID, order, domain.DestinationReceipt, domain.FormatMarkup, markup, opts.ReceiptCopies),
			}, nil
		})
		if err != nil {
			renderFailed = true
			s.log.Warnf(ctx, "receipt render failed order=%s err=%v", order.OrderNumber, err)
			metrics.PrintJobs.WithLabelValues(string(domain.DestinationReceipt), "failed").Inc()
		} else {
			jobs = append(jobs, job)
		}
	}
	return jobs, renderFailed
}

func (s *PrintService) document(
	jobID string,
	order *domain.Order,
	dest domain.Destination,
	format domain.DocumentFormat,
	body string,
	copies int,
) domain.PrintDocument {
	return domain.PrintDocument{
		JobID:       jobID,
		OrderNumber: order.OrderNumber,
		Destination: dest,
		Format:      format,
		Body:        body,
		Copies:      copies,
		Paper:       s.paper,
	}
}

// resolve — проставляет каждому заданию способ доставки; сеть ждём до конца ceilCtx.
// Локальная печать ставится в фоновую очередь и не блокирует возврат.
func (s *PrintService) resolve(ctx, ceilCtx context.Context, jobs []*printJob) {
	if len(jobs) == 0 {
		return
	}

	queue := make(chan *printJob, len(jobs))
	s.background.Add(1)
	go s.drain(context.WithoutCancel(ctx), queue)
	defer close(queue)

	fallback := func(j *printJob) {
		j.via = domain.DeliveryLocal
		queue <- j
	}

	var networked []*printJob
	for _, j := range jobs {
		if j.device.HasAddress() {
			networked = append(networked, j)
			continue
		}
		fallback(j)
	}
	if len(networked) == 0 {
		return
	}

	done := make(chan outcome, len(networked))
	for _, j := range networked {
		go func(j *printJob) {
			done <- outcome{job: j, delivered: s.deliver(ceilCtx, j)}
		}(j)
	}

	unresolved := collect(ceilCtx, done, len(networked), func(o outcome) {
		if o.delivered {
			o.job.via = domain.DeliveryNetwork
			return
		}
		fallback(o.job)
	})
	if unresolved == 0 {
		return
	}
	s.log.Warnf(ctx, "dispatch hit ceiling %s, falling back for %d destination(s)", s.ceiling, unresolved)
	for _, j := range networked {
		if j.via == domain.DeliveryNone {
			fallback(j)
		}
	}
}

// outcome — итог одной сетевой попытки.
type outcome struct {
	job       *printJob
	delivered bool
}

// collect — принимает исходы до истечения ceilCtx и возвращает число нерешённых.
// Исходы, готовые к моменту срабатывания ceiling, ещё засчитываются.
func collect(ceilCtx context.Context, done <-chan outcome, pending int, settle func(outcome)) int {
	for pending > 0 {
		select {
		case o := <-done:
			settle(o)
			pending--
		case <-ceilCtx.Done():
			for {
				select {
				case o := <-done:
					settle(o)
					if pending--; pending == 0 {
						return 0
					}
				default:
					return pending
				}
			}
		}
	}
	return 0
}

// deliver — сетевая попытка; паника транспорта считается неудачей.
func (s *PrintService) deliver(ctx context.Context, j *printJob) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorf(ctx, "network delivery panic dest=%s: %v", j.dest, r)
			ok = false
		}
	}()
	return s.network.Deliver(ctx, *j.device, j.payload)
}

// drain — фоновая локальная печать в порядке постановки.
func (s *PrintService) drain(ctx context.Context, queue <-chan *printJob) {
	defer s.background.Done()
	for j := range queue {
		if err := s.renderLocal(ctx, j.doc); err != nil {
			s.log.Warnf(ctx, "local render failed dest=%s order=%s err=%v", j.dest, j.doc.OrderNumber, err)
		}
	}
}

func (s *PrintService) renderLocal(ctx context.Context, doc domain.PrintDocument) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("surface panic: %v", r)
		}
	}()
	return s.surface.Render(ctx, doc)
}

// publish — событие об итоге печати; ошибка только логируется.
func (s *PrintService) publish(ctx context.Context, order *domain.Order, res domain.PrintResult) {
	if s.events == nil {
		return
	}
	evt := domain.PrintEvent{
		JobID:          res.JobID,
		OrderNumber:    order.OrderNumber,
		KitchenPrinted: res.KitchenPrinted,
		ReceiptPrinted: res.ReceiptPrinted,
		KitchenVia:     res.KitchenVia,
		ReceiptVia:     res.ReceiptVia,
		OccurredAt:     s.now().UTC(),
	}
	if err := s.events.PublishPrintEvent(ctx, evt); err != nil {
		s.log.Warnf(ctx, "print event publish failed err=%v", err)
	}
}

// guard — выполнить рендер, превратив панику в ошибку.
func guard(fn func() (*printJob, error)) (job *printJob, err error) {
	defer func() {
		if r := recover(); r != nil {
			job, err = nil, fmt.Errorf("render panic: %v", r)
		}
	}()
	return fn()
}
