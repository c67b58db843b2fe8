package ports

import "context"

// MessageConsumer — источник заданий печати помимо HTTP (события о завершённых продажах).
// Run блокируется до отмены ctx или фатальной ошибки; Close можно вызывать повторно.
type MessageConsumer interface {
	Run(ctx context.Context) error
	Close() error
}
