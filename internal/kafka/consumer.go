package kafka

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/Gunvolt24/pos_print/internal/ports"
	"github.com/Gunvolt24/pos_print/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=consumer.go -destination=mocks/mock_consumer.go -package=mocks

var _ ports.MessageConsumer = (*Consumer)(nil)

// reader — часть kafka.Reader, которой пользуется Consumer.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// messageHandler — сервис печати: разбирает событие о продаже и отправляет заказ на печать.
type messageHandler interface {
	DispatchFromMessage(ctx context.Context, raw []byte) error
}

// redeliveryPause — верхняя граница паузы перед повторной выборкой незакоммиченного события.
const redeliveryPause = 500 * time.Millisecond

// Consumer — читает события о продажах и передаёт их сервису печати.
// Оффсет коммитится вручную, доставка at-least-once.
type Consumer struct {
	reader         reader
	service        messageHandler
	log            ports.Logger
	processTimeout time.Duration
	retryInitial   time.Duration
	retryMax       time.Duration
	jitterRand     *rand.Rand
	closeOnce      sync.Once
}

// NewConsumer — конструктор поверх kafka.NewReader.
func NewConsumer(cfg *ConsumerConfig, service messageHandler, log ports.Logger) *Consumer {
	full := cfg.withDefaults()
	return &Consumer{
		reader:         kafka.NewReader(full.ReaderConfig()),
		service:        service,
		log:            log,
		processTimeout: full.ProcessTimeout,
		retryInitial:   full.RetryInitial,
		retryMax:       full.RetryMax,
		jitterRand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run — цикл чтения до отмены ctx.
//
// Событие отправлено на печать или отвергнуто как невалидное → коммит.
// Таймаут обработки и прочие ошибки сервиса → без коммита; то же событие
// будет выбрано снова после короткой паузы. Сбой принтеров ошибкой не считается:
// продажа уже состоялась, и чек уходит в локальный fallback.
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "sale events consumer started topic=%s group_id=%s brokers=%v", rc.Topic, rc.GroupID, rc.Brokers)

	fetchDelay := c.retryInitial
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			wait := c.withJitterEqual(fetchDelay)
			c.log.Warnf(ctx, "fetch sale event: %v (retry in %s)", err, wait)
			if !c.sleepWithBackoff(ctx, wait) {
				return ctx.Err()
			}
			fetchDelay = c.nextBackoff(fetchDelay)
			continue
		}
		fetchDelay = c.retryInitial
		metrics.KafkaMessagesConsumed.WithLabelValues(rc.Topic).Inc()

		if !c.handleMessage(ctx, rc.Topic, &msg) {
			c.sleepWithBackoff(ctx, c.withJitterEqual(minDuration(c.retryInitial, redeliveryPause)))
			continue
		}
		c.commitSafely(ctx, &msg)
	}
}

// Close — закрывает reader; повторные вызовы ничего не делают.
func (c *Consumer) Close() (retErr error) {
	c.closeOnce.Do(func() {
		retErr = c.reader.Close()
	})
	return retErr
}
