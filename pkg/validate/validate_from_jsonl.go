package validate

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Gunvolt24/pos_print/internal/domain"
	"github.com/Gunvolt24/pos_print/internal/ports"
)

// JSONLResult — статистика валидации потока JSONL.
type JSONLResult struct {
	ValidLinesCount   int
	InvalidLinesCount int
}

// Emitter — получатель валидных заказов (рендер, канонический JSON и т.п.).
type Emitter func(order *domain.Order) error

// JSONEmitter — пишет КАНОНИЧЕСКИЙ JSON одной строкой на каждый заказ.
func JSONEmitter(ow io.Writer) Emitter {
	return func(order *domain.Order) error {
		marshal, err := json.Marshal(order)
		if err != nil {
			return fmt.Errorf("marshal order: %w", err)
		}
		if _, err := ow.Write(append(marshal, '\n')); err != nil {
			return fmt.Errorf("write valid line: %w", err)
		}
		return nil
	}
}

// ValidateJSONLStream — читает JSONL из reader’а, валидирует каждую строку, валидные отдаёт emit.
// Пустые строки пропускаются.
func ValidateJSONLStream(ctx context.Context, validator ports.OrderValidator, ir io.Reader, emit Emitter) (JSONLResult, error) {
	var res JSONLResult

	scanner := bufio.NewScanner(ir)
	// запас на большие строки
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(strings.TrimSpace(string(lineBytes))) == 0 {
			continue
		}

		order, err := ValidateOrderFromJSON(ctx, validator, lineBytes)
		if err != nil {
			res.InvalidLinesCount++
			// не возвращаем ошибку — просто пропускаем невалидную строку
			continue
		}

		if err := emit(order); err != nil {
			return res, err
		}
		res.ValidLinesCount++
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("scan: %w", err)
	}
	return res, nil
}
