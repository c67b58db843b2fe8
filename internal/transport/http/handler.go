package rest

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/Gunvolt24/pos_print/internal/domain"
	"github.com/Gunvolt24/pos_print/internal/ports"
	"github.com/Gunvolt24/pos_print/internal/usecase"
	"github.com/Gunvolt24/pos_print/pkg/httpx"
	"github.com/Gunvolt24/pos_print/pkg/validate"
	"github.com/gin-gonic/gin"
)

// maxBodyBytes — предел тела запроса с заказом.
const maxBodyBytes = 1 << 20

// Handler — HTTP-обработчики сервиса печати.
type Handler struct {
	service       ports.PrintService
	validator     ports.OrderValidator
	log           ports.Logger
	timeout       time.Duration
	defaultCopies int
}

// HandlerOption — настройка Handler.
type HandlerOption func(*Handler)

// WithDefaultCopies — копий чека, если их не задали ни тело запроса, ни ?copies=.
func WithDefaultCopies(n int) HandlerOption {
	return func(h *Handler) {
		if n > 0 {
			h.defaultCopies = n
		}
	}
}

// NewHandler — timeout ограничивает обработку каждого запроса (0 — без ограничения).
func NewHandler(
	service ports.PrintService,
	validator ports.OrderValidator,
	log ports.Logger,
	timeout time.Duration,
	opts ...HandlerOption,
) *Handler {
	h := &Handler{
		service:       service,
		validator:     validator,
		log:           log,
		timeout:       timeout,
		defaultCopies: 1,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// printOrder — POST /print/orders.
// Тело: {"order": {...}, "options": {...}}; query: copies, kitchen, receipt.
// Ответ 202 для любого печатаемого заказа: продажа уже проведена, противоречия и сбой печати — не ошибка запроса.
func (h *Handler) printOrder(c *gin.Context) {
	ctx := c.Request.Context()

	raw, ok := h.readBody(c)
	if !ok {
		return
	}
	req, err := validate.ValidatePrintRequestFromJSON(ctx, h.validator, raw)
	if validate.IsRejected(err) {
		h.log.Warnf(ctx, "print request rejected err=%v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.log.Warnf(ctx, "printing inconsistent order=%s err=%v", req.Order.OrderNumber, err)
	}

	opts := req.OptionsOrDefault()
	if opts.ReceiptCopies <= 0 {
		opts.ReceiptCopies = h.defaultCopies
	}
	opts.ReceiptCopies = httpx.ParseCopies(c, opts.ReceiptCopies, domain.MaxReceiptCopies)
	opts.Kitchen = httpx.ParseBoolQuery(c, "kitchen", opts.Kitchen)
	opts.Receipt = httpx.ParseBoolQuery(c, "receipt", opts.Receipt)

	result := h.service.Dispatch(ctx, &req.Order, opts)
	c.JSON(http.StatusAccepted, gin.H{"message": "print job sent", "result": result})
}

// preview — POST /print/preview/:kind, тело — заказ.
func (h *Handler) preview(c *gin.Context) {
	ctx := c.Request.Context()
	kind := c.Param("kind")

	raw, ok := h.readBody(c)
	if !ok {
		return
	}
	var order domain.Order
	if err := validate.DecodeStrict(raw, &order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	body, contentType, err := h.service.Preview(ctx, kind, &order)
	switch {
	case err == nil:
		c.Data(http.StatusOK, contentType, body)
	case errors.Is(err, usecase.ErrUnknownPreview):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, validate.ErrInvalidOrder):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.Errorf(ctx, "preview failed kind=%s err=%v", kind, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// configSnapshot — GET /print/config: снимок, которым сейчас пользуется маршрутизация.
func (h *Handler) configSnapshot(c *gin.Context) {
	snap := h.service.ConfigSnapshot(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"snapshot":    snap,
		"age_seconds": snap.Age(time.Now()).Seconds(),
	})
}

// invalidateConfig — POST /print/config/invalidate: администратор изменил принтеры или правила.
func (h *Handler) invalidateConfig(c *gin.Context) {
	h.service.InvalidateConfig(c.Request.Context())
	c.JSON(http.StatusAccepted, gin.H{"message": "config invalidated"})
}

func (h *Handler) readBody(c *gin.Context) ([]byte, bool) {
	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read request body"})
		return nil, false
	}
	return raw, true
}
