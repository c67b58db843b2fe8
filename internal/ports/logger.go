package ports

import "context"

// Logger — логгер сервиса печати. Реализация сама добавляет request_id, job_id
// и trace_id из ctx, поэтому вызывающему коду не нужно передавать их в формате.
type Logger interface {
	Infof(ctx context.Context, format string, args ...any)
	Warnf(ctx context.Context, format string, args ...any)
	Errorf(ctx context.Context, format string, args ...any)
}
