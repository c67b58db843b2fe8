//go:build integration

package testutil

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// UniqueTopicAndGroup — топик и группа потребителей, не пересекающиеся между тестами.
func UniqueTopicAndGroup(base string) (topic, group string) {
	suffix := time.Now().UTC().Format("20060102T150405") + "-" + UniqSuffix()
	return base + "-" + suffix, base + "-group-" + suffix
}

// EnsureTopic — создаёт топик с одной партицией через контроллер кластера и ждёт метаданных.
// broker: "host:port", "PLAINTEXT://host:port" или список через запятую (берётся первый).
func EnsureTopic(ctx context.Context, broker, topic string) error {
	addr := seedAddress(broker)

	controller, err := controllerConn(addr)
	if err != nil {
		return err
	}
	defer controller.Close()

	err = controller.CreateTopics(kafka.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1})
	if err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		return fmt.Errorf("create topic %q: %w", topic, err)
	}
	return awaitPartitions(ctx, addr, topic, 5*time.Second)
}

// PublishSaleEvent — синхронно публикует одно событие о продаже.
// headers: пары ключ/значение (например, X-Request-ID).
func PublishSaleEvent(ctx context.Context, brokers []string, topic string, payload []byte, headers map[string]string) error {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		RequiredAcks: kafka.RequireAll,
		Balancer:     &kafka.LeastBytes{},
	}
	defer w.Close()

	msg := kafka.Message{Value: payload}
	for k, v := range headers {
		msg.Headers = append(msg.Headers, kafka.Header{Key: k, Value: []byte(v)})
	}
	return w.WriteMessages(ctx, msg)
}

func controllerConn(addr string) (*kafka.Conn, error) {
	conn, err := kafka.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	ctrl, err := conn.Controller()
	if err != nil {
		return nil, fmt.Errorf("lookup controller: %w", err)
	}
	return kafka.Dial("tcp", net.JoinHostPort(ctrl.Host, strconv.Itoa(ctrl.Port)))
}

// seedAddress — первый адрес bootstrap-строки без схемы.
func seedAddress(raw string) string {
	first, _, _ := strings.Cut(raw, ",")
	first = strings.TrimSpace(first)
	if u, err := url.Parse(first); err == nil && u.Scheme != "" && u.Host != "" {
		return u.Host
	}
	return first
}

func awaitPartitions(ctx context.Context, addr, topic string, within time.Duration) error {
	deadline := time.Now().Add(within)
	var lastErr error
	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return err
		}
		conn, err := kafka.Dial("tcp", addr)
		if err == nil {
			var parts []kafka.Partition
			parts, err = conn.ReadPartitions(topic)
			_ = conn.Close()
			if err == nil && len(parts) > 0 {
				return nil
			}
		}
		lastErr = err
		time.Sleep(200 * time.Millisecond)
	}
	return fmt.Errorf("topic %q not ready: %v", topic, lastErr)
}
