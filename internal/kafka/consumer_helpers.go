package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/Gunvolt24/pos_print/pkg/ctxmeta"
	"github.com/Gunvolt24/pos_print/pkg/metrics"
	"github.com/Gunvolt24/pos_print/pkg/validate"
	"github.com/segmentio/kafka-go"
)

// HeaderRequestID — заголовок сообщения с id запроса кассы; попадает в логи печати.
const HeaderRequestID = ctxmeta.HeaderRequestID

// handleMessage обрабатывает одно сообщение и определяет, нужно ли коммитить оффсет.
func (c *Consumer) handleMessage(ctx context.Context, topic string, msg *kafka.Message) bool {
	msgCtx := ctx
	if rid := ctxmeta.SanitizeRequestID(headerValue(msg.Headers, HeaderRequestID)); rid != "" {
		msgCtx = ctxmeta.WithRequestID(ctx, rid)
	}

	ctxTimeout, cancel := context.WithTimeout(msgCtx, c.processTimeout)
	err := c.service.DispatchFromMessage(ctxTimeout, msg.Value)
	cancel()

	switch {
	case err == nil:
		metrics.KafkaMessagesProcessed.WithLabelValues(topic).Inc()
		return true
	case errors.Is(err, validate.ErrInvalidOrder):
		// Невалидный заказ: повтор ничего не даст, коммитим и идём дальше
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(msgCtx, "invalid sale event partition=%d offset=%d: %v (skipped)", msg.Partition, msg.Offset, err)
		return true
	default:
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(msgCtx, "process failed partition=%d offset=%d: %v (will retry without commit)",
			msg.Partition, msg.Offset, err)
		return false
	}
}

func headerValue(headers []kafka.Header, key string) string {
	for _, h := range headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

// commitSafely пытается закоммитить оффсет и залогировать ошибку.
func (c *Consumer) commitSafely(ctx context.Context, msg *kafka.Message) {
	if commitErr := c.reader.CommitMessages(ctx, *msg); commitErr != nil {
		c.log.Warnf(ctx, "commit failed offset=%d: %v", msg.Offset, commitErr)
	}
}

// sleepWithBackoff ждет backoff или останавливается по контексту.
func (c *Consumer) sleepWithBackoff(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// nextBackoff возвращает следующее время ожидания повтора с учетом retryMax.
func (c *Consumer) nextBackoff(current time.Duration) time.Duration {
	current *= 2
	if current > c.retryMax {
		return c.retryMax
	}
	return current
}

// withJitterEqual — половина задержки фиксирована, вторая половина случайна.
func (c *Consumer) withJitterEqual(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	jitter := time.Duration(c.jitterRand.Int63n(int64(d-half) + 1))
	return half + jitter
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
