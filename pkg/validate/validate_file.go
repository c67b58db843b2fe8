package validate

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/pos_print/internal/ports"
)

// InputFormat допустимые значения.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// StdinPath — путь, означающий стандартный ввод.
const StdinPath = "-"

// Summary — сколько заказов прошло проверку.
type Summary struct {
	Valid   int
	Invalid int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d valid / %d invalid", s.Valid, s.Invalid)
}

// ResolveFormat — FormatAuto по расширению: .jsonl и stdin → JSONL, остальное → JSON.
func ResolveFormat(path string, format InputFormat) InputFormat {
	if format != FormatAuto {
		return format
	}
	if path == StdinPath || strings.EqualFold(filepath.Ext(path), ".jsonl") {
		return FormatJSONL
	}
	return FormatJSON
}

// ValidateFile — проверяет заказы из файла (или stdin при StdinPath) и отдаёт валидные emit.
func ValidateFile(ctx context.Context, validator ports.OrderValidator, filePath string, format InputFormat, emit Emitter) (Summary, error) {
	format = ResolveFormat(filePath, format)

	if filePath == StdinPath {
		return ValidateReader(ctx, validator, os.Stdin, format, emit)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return Summary{}, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return ValidateReader(ctx, validator, file, format, emit)
}

// ValidateReader — то же для произвольного reader'а; FormatAuto здесь трактуется как JSON.
// Для одиночного JSON ошибка валидации возвращается, для JSONL — только считается.
func ValidateReader(ctx context.Context, validator ports.OrderValidator, r io.Reader, format InputFormat, emit Emitter) (Summary, error) {
	switch format {
	case FormatJSON, FormatAuto:
		raw, err := io.ReadAll(r)
		if err != nil {
			return Summary{}, fmt.Errorf("read input: %w", err)
		}
		order, err := ValidateOrderFromJSON(ctx, validator, raw)
		if err != nil {
			return Summary{Invalid: 1}, err
		}
		if err := emit(order); err != nil {
			return Summary{}, err
		}
		return Summary{Valid: 1}, nil

	case FormatJSONL:
		result, err := ValidateJSONLStream(ctx, validator, r, emit)
		summary := Summary{Valid: result.ValidLinesCount, Invalid: result.InvalidLinesCount}
		if err != nil {
			return summary, err
		}
		return summary, nil

	default:
		return Summary{}, fmt.Errorf("unsupported format: %s", format)
	}
}
