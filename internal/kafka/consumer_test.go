package kafka

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/pos_print/internal/kafka/mocks"
	"github.com/Gunvolt24/pos_print/pkg/ctxmeta"
	"github.com/Gunvolt24/pos_print/pkg/validate"
)

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

// runAsync запускает Consumer.Run в отдельном горутине и возвращает канал с ошибкой.
func runAsync(ctx context.Context, c *Consumer) <-chan error {
	errCh := make(chan error, 1)
	go func() { errCh <- c.Run(ctx) }()
	return errCh
}

func newTestConsumer(r reader, s messageHandler) *Consumer {
	return &Consumer{
		reader: r, service: s, log: nopLogger{},
		processTimeout: 30 * time.Millisecond,
		retryInitial:   5 * time.Millisecond,
		retryMax:       10 * time.Millisecond,
		jitterRand:     rand.New(rand.NewSource(1)),
	}
}

// Успешная обработка + коммит
func TestRun_OK_Commits(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	s := mocks.NewMockmessageHandler(ctrl)

	rc := kafka.ReaderConfig{Topic: "sales.completed", GroupID: "pos-print", Brokers: []string{"b:9092"}}
	r.EXPECT().Config().Return(rc).AnyTimes()
	// 1-й цикл: сообщение обрабатывается
	r.EXPECT().FetchMessage(gomock.Any()).
		Return(kafka.Message{Offset: 1, Value: []byte("ok")}, nil)
	s.EXPECT().DispatchFromMessage(gomock.Any(), []byte("ok")).Return(nil)
	r.EXPECT().CommitMessages(gomock.Any(), gomock.Any()).Return(nil)
	// 2-й fetch блокируется до отмены контекста
	r.EXPECT().FetchMessage(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (kafka.Message, error) {
			<-ctx.Done()
			return kafka.Message{}, ctx.Err()
		})

	c := newTestConsumer(r, s)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := runAsync(ctx, c)

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("want context.Canceled, got %v", err)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timeout waiting for Run to stop")
	}
}

// Невалидный заказ => тоже коммитим (чтобы не ретраить мусор)
func TestRun_InvalidOrder_Commits(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	s := mocks.NewMockmessageHandler(ctrl)

	rc := kafka.ReaderConfig{Topic: "sales.completed", GroupID: "pos-print", Brokers: []string{"b:9092"}}
	r.EXPECT().Config().Return(rc).AnyTimes()

	// 1-й цикл: получили сообщение, сервис вернул validate.ErrInvalidOrder, выполняем CommitMessages
	r.EXPECT().FetchMessage(gomock.Any()).
		Return(kafka.Message{Offset: 7, Value: []byte("bad")}, nil)
	s.EXPECT().DispatchFromMessage(gomock.Any(), []byte("bad")).Return(validate.ErrInvalidOrder)
	r.EXPECT().CommitMessages(gomock.Any(), gomock.Any()).Return(nil)

	// 2-й fetch будет ждать отмены
	r.EXPECT().FetchMessage(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (kafka.Message, error) {
			<-ctx.Done()
			return kafka.Message{}, ctx.Err()
		})

	c := newTestConsumer(r, s)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := runAsync(ctx, c)

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("want context.Canceled, got %v", err)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timeout waiting for Run to stop")
	}
}

// Таймаут обработки (не ошибка валидации) => НЕ коммитим
func TestRun_TemporaryFailure_NoCommit(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	s := mocks.NewMockmessageHandler(ctrl)

	rc := kafka.ReaderConfig{Topic: "sales.completed", GroupID: "pos-print", Brokers: []string{"b:9092"}}
	r.EXPECT().Config().Return(rc).AnyTimes()

	// 1-й цикл: обработка не уложилась в таймаут -> CommitMessages НЕ вызывается
	r.EXPECT().FetchMessage(gomock.Any()).
		Return(kafka.Message{Offset: 2, Value: []byte("x")}, nil)
	s.EXPECT().DispatchFromMessage(gomock.Any(), []byte("x")).Return(context.DeadlineExceeded)
	// Никаких r.EXPECT().CommitMessages(...) специально НЕ ставим:
	// если Consumer по ошибке его вызовет — тест упадёт как "unexpected call".

	// 2-й fetch блокируется до отмены
	r.EXPECT().FetchMessage(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (kafka.Message, error) {
			<-ctx.Done()
			return kafka.Message{}, ctx.Err()
		})

	c := newTestConsumer(r, s)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := runAsync(ctx, c)

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("want context.Canceled, got %v", err)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timeout waiting for Run to stop")
	}
}

// Ошибки FetchMessage ретраятся; по отмене контекста — корректный выход
func TestRun_FetchError_RetryThenStopOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	s := mocks.NewMockmessageHandler(ctrl)

	rc := kafka.ReaderConfig{Topic: "sales.completed", GroupID: "pos-print", Brokers: []string{"b:9092"}}
	r.EXPECT().Config().Return(rc).AnyTimes()

	// Всегда возвращаем ошибку брокера; Consumer будет ждать по backoff и ретраить,
	// пока не отменится контекст
	r.EXPECT().FetchMessage(gomock.Any()).
		DoAndReturn(func(_ context.Context) (kafka.Message, error) {
			return kafka.Message{}, errors.New("broker error")
		}).AnyTimes()

	c := newTestConsumer(r, s)

	// Короткий таймаут, чтобы быстро выйти
	ctx, cancel := context.WithTimeout(context.Background(), 40*time.Millisecond)
	defer cancel()

	if err := c.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("want DeadlineExceeded, got %v", err)
	}
}

// CommitMessages вернул ошибку — получаем предупреждение; цикл живёт дальше
func TestRun_CommitWarnOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	s := mocks.NewMockmessageHandler(ctrl)

	rc := kafka.ReaderConfig{Topic: "sales.completed", GroupID: "pos-print", Brokers: []string{"b:9092"}}
	r.EXPECT().Config().Return(rc).AnyTimes()

	// 1-й цикл: сервис работает, но CommitMessages возвращает ошибку — не должен падать
	r.EXPECT().FetchMessage(gomock.Any()).
		Return(kafka.Message{Offset: 3, Value: []byte("ok")}, nil)
	s.EXPECT().DispatchFromMessage(gomock.Any(), []byte("ok")).Return(nil)
	r.EXPECT().CommitMessages(gomock.Any(), gomock.Any()).
		Return(errors.New("temporary"))

	// 2-й fetch блокируется до отмены
	r.EXPECT().FetchMessage(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (kafka.Message, error) {
			<-ctx.Done()
			return kafka.Message{}, ctx.Err()
		})

	c := newTestConsumer(r, s)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := runAsync(ctx, c)

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("want context.Canceled, got %v", err)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timeout waiting for Run to stop")
	}
}

// 5) Проверка Close() прокидывает вызов в reader.Close()
func TestClose_DelegatesToReader(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	s := mocks.NewMockmessageHandler(ctrl)

	// Close должен быть вызван и вернуть nil
	r.EXPECT().Close().Return(nil)

	c := newTestConsumer(r, s)
	if err := c.Close(); err != nil {
		t.Fatalf("expected nil from Close, got %v", err)
	}
}

// Заголовок X-Request-ID попадает в контекст обработки; у контекста есть дедлайн processTimeout
func TestHandleMessage_RequestIDAndTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	s := mocks.NewMockmessageHandler(ctrl)

	s.EXPECT().DispatchFromMessage(gomock.Any(), []byte("{}")).
		DoAndReturn(func(ctx context.Context, _ []byte) error {
			if rid, ok := ctxmeta.RequestIDFromContext(ctx); !ok || rid != "pos-42" {
				t.Fatalf("request id: want pos-42, got %q (ok=%v)", rid, ok)
			}
			if _, ok := ctx.Deadline(); !ok {
				t.Fatalf("processing context must carry a deadline")
			}
			return nil
		})

	c := newTestConsumer(r, s)
	msg := kafka.Message{
		Offset:  11,
		Value:   []byte("{}"),
		Headers: []kafka.Header{{Key: HeaderRequestID, Value: []byte("pos-42")}},
	}
	if !c.handleMessage(context.Background(), "sales.completed", &msg) {
		t.Fatalf("successful dispatch must be committed")
	}
}

// Обёрнутая ошибка валидации тоже коммитится
func TestHandleMessage_WrappedInvalidOrder_Commits(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	s := mocks.NewMockmessageHandler(ctrl)

	s.EXPECT().DispatchFromMessage(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("print request: %w", validate.ErrInvalidOrder))

	c := newTestConsumer(r, s)
	msg := kafka.Message{Offset: 12, Value: []byte("not-a-json")}
	if !c.handleMessage(context.Background(), "sales.completed", &msg) {
		t.Fatalf("invalid order must be committed")
	}
}

func TestBackoff_Bounds(t *testing.T) {
	c := newTestConsumer(nil, nil)
	c.retryMax = 40 * time.Millisecond

	tests := []struct {
		current time.Duration
		want    time.Duration
	}{
		{5 * time.Millisecond, 10 * time.Millisecond},
		{20 * time.Millisecond, 40 * time.Millisecond},
		{30 * time.Millisecond, 40 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := c.nextBackoff(tt.current); got != tt.want {
			t.Fatalf("nextBackoff(%s): want %s, got %s", tt.current, tt.want, got)
		}
	}

	for i := 0; i < 100; i++ {
		d := c.withJitterEqual(10 * time.Millisecond)
		if d < 5*time.Millisecond || d > 10*time.Millisecond {
			t.Fatalf("jitter out of [d/2, d]: %s", d)
		}
	}
	if got := c.withJitterEqual(0); got != 0 {
		t.Fatalf("zero delay must stay zero, got %s", got)
	}
}
