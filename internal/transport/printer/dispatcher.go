// Пакет printer — сетевая доставка содержимого на термопринтеры по HTTP.
package printer

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Gunvolt24/pos_print/internal/domain"
	"github.com/Gunvolt24/pos_print/internal/ports"
	"github.com/Gunvolt24/pos_print/pkg/metrics"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Проверка, что Dispatcher удовлетворяет интерфейсу NetworkDelivery.
var _ ports.NetworkDelivery = (*Dispatcher)(nil)

// Пути, по которым принтеры разных производителей принимают печать по HTTP.
const (
	PathEpsonEPOS   = "/cgi-bin/epos/service.cgi?devid=local_printer&timeout=10000"
	PathStarWebPRNT = "/StarWebPRNT/SendMessage"
	PathGeneric     = "/print"
)

const (
	defaultCandidateTimeout = 1500 * time.Millisecond
	defaultAttemptTimeout   = 2 * time.Second
	contentType             = "text/plain; charset=utf-8"
)

// Dispatcher — гонка POST-запросов по всем эндпоинтам устройства.
// Побеждает первый принятый запрос; остальные отменяются.
type Dispatcher struct {
	client           *http.Client
	log              ports.Logger
	paths            []string
	candidateTimeout time.Duration
	attemptTimeout   time.Duration
}

// Option — настройка Dispatcher.
type Option func(*Dispatcher)

// WithTimeouts — таймаут одного эндпоинта и потолок всей попытки.
func WithTimeouts(candidate, attempt time.Duration) Option {
	return func(d *Dispatcher) {
		if candidate > 0 {
			d.candidateTimeout = candidate
		}
		if attempt > 0 {
			d.attemptTimeout = attempt
		}
	}
}

// WithHTTPClient — свой HTTP-клиент (тесты, прокси).
func WithHTTPClient(c *http.Client) Option {
	return func(d *Dispatcher) {
		if c != nil {
			d.client = c
		}
	}
}

// WithPaths — свой набор путей-кандидатов.
func WithPaths(paths ...string) Option {
	return func(d *Dispatcher) {
		if len(paths) > 0 {
			d.paths = append([]string(nil), paths...)
		}
	}
}

// NewDispatcher — конструктор Dispatcher.
func NewDispatcher(log ports.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			// редиректы принтера не интересуют: нужен только статус
			CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
		},
		log:              log,
		paths:            []string{PathEpsonEPOS, PathStarWebPRNT, PathGeneric},
		candidateTimeout: defaultCandidateTimeout,
		attemptTimeout:   defaultAttemptTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Deliver — true, если хотя бы один эндпоинт принял содержимое до истечения потолка попытки.
// Ошибки отдельных эндпоинтов не возвращаются: такой кандидат просто выбывает из гонки.
func (d *Dispatcher) Deliver(ctx context.Context, device domain.PrinterDevice, content []byte) bool {
	if !device.HasAddress() {
		return false
	}
	start := time.Now()
	defer func() { metrics.NetworkAttemptDuration.Observe(time.Since(start).Seconds()) }()

	urls := CandidateURLs(device.Address, d.paths)

	// одна область отмены на всю попытку: победа или потолок гасят всех остальных
	attemptCtx, cancel := context.WithTimeout(ctx, d.attemptTimeout)
	defer cancel()

	results := make(chan bool, len(urls))
	for _, u := range urls {
		go func(target string) {
			results <- d.post(attemptCtx, target, content)
		}(u)
	}

	for range urls {
		select {
		case ok := <-results:
			if ok {
				metrics.NetworkAttempts.WithLabelValues("delivered").Inc()
				return true
			}
		case <-attemptCtx.Done():
			metrics.NetworkAttempts.WithLabelValues("timeout").Inc()
			d.log.Warnf(ctx, "printer %s (%s): network attempt timed out after %s", device.ID, device.Address, d.attemptTimeout)
			return false
		}
	}

	metrics.NetworkAttempts.WithLabelValues("refused").Inc()
	d.log.Warnf(ctx, "printer %s (%s): all %d endpoints refused", device.ID, device.Address, len(urls))
	return false
}

// post — один кандидат со своим таймаутом. Тело ответа не читается.
func (d *Dispatcher) post(ctx context.Context, target string, content []byte) bool {
	reqCtx, cancel := context.WithTimeout(ctx, d.candidateTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, target, bytes.NewReader(content))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := d.client.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode < http.StatusBadRequest
}

// CandidateURLs — адрес устройства (со схемой http:// по умолчанию) + каждый путь-кандидат.
func CandidateURLs(address string, paths []string) []string {
	base := strings.TrimRight(NormalizeAddress(address), "/")
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		out = append(out, base+p)
	}
	return out
}

// NormalizeAddress — "192.168.1.50:8008" → "http://192.168.1.50:8008".
func NormalizeAddress(address string) string {
	address = strings.TrimSpace(address)
	if address == "" {
		return ""
	}
	lower := strings.ToLower(address)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return address
	}
	return "http://" + address
}
