package kafka

import (
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	defaultProcessTimeout = 5 * time.Second
	defaultRetryInitial   = time.Second
	defaultRetryMax       = 30 * time.Second
)

// ConsumerConfig — подписка на события о завершённых продажах.
// Нулевые длительности заменяются значениями по умолчанию.
type ConsumerConfig struct {
	Brokers     []string
	Topic       string
	GroupID     string
	StartOffset string        // "first" | "last" (по умолчанию)
	MaxWait     time.Duration // ожидание батча брокером; 0 — значение kafka-go

	ProcessTimeout time.Duration // потолок на одно событие (валидация + печать)
	RetryInitial   time.Duration
	RetryMax       time.Duration
}

// ReaderConfig — конфигурация kafka.Reader: группа потребителей и ручной коммит.
func (c *ConsumerConfig) ReaderConfig() kafka.ReaderConfig {
	rc := kafka.ReaderConfig{
		Brokers:        c.Brokers,
		GroupID:        c.GroupID,
		Topic:          c.Topic,
		MaxWait:        c.MaxWait,
		StartOffset:    kafka.LastOffset,
		CommitInterval: 0,
	}
	// продажи, случившиеся до первого запуска, по умолчанию не печатаются
	if strings.EqualFold(strings.TrimSpace(c.StartOffset), "first") {
		rc.StartOffset = kafka.FirstOffset
	}
	return rc
}

// withDefaults — копия с заполненными таймаутами; RetryMax не меньше RetryInitial.
func (c ConsumerConfig) withDefaults() ConsumerConfig {
	if c.ProcessTimeout <= 0 {
		c.ProcessTimeout = defaultProcessTimeout
	}
	if c.RetryInitial <= 0 {
		c.RetryInitial = defaultRetryInitial
	}
	if c.RetryMax <= 0 {
		c.RetryMax = defaultRetryMax
	}
	if c.RetryMax < c.RetryInitial {
		c.RetryMax = c.RetryInitial
	}
	return c
}
