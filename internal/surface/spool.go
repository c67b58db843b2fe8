package surface

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Gunvolt24/pos_print/internal/domain"
	"github.com/Gunvolt24/pos_print/internal/ports"
)

// Проверка, что SpoolSurface удовлетворяет интерфейсу LocalRenderSurface.
var _ ports.LocalRenderSurface = (*SpoolSurface)(nil)

// SpoolSurface — пишет документы в каталог; его забирает внешний спулер или оператор.
// Поверхность по умолчанию для серверных развёртываний без диалога печати.
type SpoolSurface struct {
	dir string
}

// NewSpoolSurface — создаёт каталог при необходимости.
func NewSpoolSurface(dir string) (*SpoolSurface, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("spool dir %s: %w", dir, err)
	}
	return &SpoolSurface{dir: dir}, nil
}

// Render — по файлу на каждую копию: <job>-<destination>-<n>.html.
func (s *SpoolSurface) Render(ctx context.Context, doc domain.PrintDocument) error {
	body, err := BuildDocument(doc)
	if err != nil {
		return err
	}
	for n := 1; n <= copiesOf(doc); n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := fmt.Sprintf("%s-%s-%d.html", doc.JobID, doc.Destination, n)
		if err := writeFileAtomic(filepath.Join(s.dir, name), body); err != nil {
			return err
		}
	}
	return nil
}

// writeFileAtomic — запись через временный файл, чтобы спулер не увидел недописанный документ.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".spool-*")
	if err != nil {
		return fmt.Errorf("spool temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("spool write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("spool close: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("spool rename: %w", err)
	}
	return nil
}
