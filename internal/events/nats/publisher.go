// Пакет nats — публикация итогов печати в NATS (экраны кухни, аудит).
package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Gunvolt24/pos_print/internal/domain"
	"github.com/Gunvolt24/pos_print/internal/ports"
	"github.com/Gunvolt24/pos_print/pkg/ctxmeta"
	"github.com/nats-io/nats.go"
)

// Проверка, что Publisher удовлетворяет интерфейсу PrintEventPublisher.
var _ ports.PrintEventPublisher = (*Publisher)(nil)

// DefaultSubject — тема событий о результатах печати.
const DefaultSubject = "print.jobs.dispatched"

// HeaderJobID — заголовок сообщения с id задания печати.
const HeaderJobID = "Print-Job-Id"

type msgPublisher interface {
	PublishMsg(m *nats.Msg) error
}

// Publisher — JSON-событие на каждое задание печати.
type Publisher struct {
	conn    msgPublisher
	subject string
}

// NewPublisher — subject по умолчанию DefaultSubject.
func NewPublisher(conn msgPublisher, subject string) *Publisher {
	if subject == "" {
		subject = DefaultSubject
	}
	return &Publisher{conn: conn, subject: subject}
}

// PublishPrintEvent — публикация события; id задания и запроса уходят в заголовки.
func (p *Publisher) PublishPrintEvent(ctx context.Context, evt domain.PrintEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal print event: %w", err)
	}

	msg := nats.NewMsg(p.subject)
	msg.Data = data
	msg.Header.Set(HeaderJobID, evt.JobID)
	if rid, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		msg.Header.Set(ctxmeta.HeaderRequestID, rid)
	}

	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish %s: %w", p.subject, err)
	}
	return nil
}

// Connect — соединение с бесконечным переподключением; разрывы и восстановления логируются.
func Connect(url, name string, log ports.Logger) (*nats.Conn, error) {
	ctx := context.Background()
	nc, err := nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.Timeout(5*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warnf(ctx, "nats disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Infof(ctx, "nats reconnected url=%s", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect %s: %w", url, err)
	}
	return nc, nil
}
