// Пакет ctxmeta — нейтральный слой для метаданных, которые прокидываются
// через context.Context: request_id HTTP-запроса, job_id задания печати, trace_id.
// HTTP-слой, сервис печати и логгер зависят от него, но не друг от друга.
package ctxmeta

import (
	"context"
	"strings"
	"unicode"
)

// HeaderRequestID — заголовок с id запроса кассы (HTTP и Kafka).
const HeaderRequestID = "X-Request-ID"

// MaxRequestIDLen — длиннее id обрезается.
const MaxRequestIDLen = 64

type ctxKey string

const (
	// Ключи контекста (неэкспортируемый тип — чтобы избежать коллизий).
	KeyRequestID ctxKey = "request_id"
	KeyJobID     ctxKey = "job_id"
)

// WithRequestID кладёт request_id в контекст (если пусто — ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withValue(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	return valueOf(ctx, KeyRequestID)
}

// WithJobID кладёт id задания печати в контекст.
func WithJobID(ctx context.Context, jobID string) context.Context {
	return withValue(ctx, KeyJobID, jobID)
}

// JobIDFromContext достаёт id задания печати.
func JobIDFromContext(ctx context.Context) (string, bool) {
	return valueOf(ctx, KeyJobID)
}

// SanitizeRequestID — id от клиента, пригодный для логов и заголовков:
// без пробелов по краям и управляющих символов, не длиннее MaxRequestIDLen.
func SanitizeRequestID(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, strings.TrimSpace(raw))
	if len(cleaned) > MaxRequestIDLen {
		cleaned = cleaned[:MaxRequestIDLen]
	}
	return cleaned
}

func withValue(ctx context.Context, key ctxKey, v string) context.Context {
	if ctx == nil || v == "" {
		return ctx
	}
	return context.WithValue(ctx, key, v)
}

func valueOf(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
