//go:build !otel || gopls

package ctxmeta

import "context"

// Без тега `otel` идентификаторы трассировки в логи не попадают.

func TraceIDFromContext(context.Context) (string, bool) { return "", false }

func SpanIDFromContext(context.Context) (string, bool) { return "", false }
