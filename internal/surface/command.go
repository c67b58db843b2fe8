package surface

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/Gunvolt24/pos_print/internal/domain"
	"github.com/Gunvolt24/pos_print/internal/ports"
)

// Проверка, что CommandSurface удовлетворяет интерфейсу LocalRenderSurface.
var _ ports.LocalRenderSurface = (*CommandSurface)(nil)

// DefaultSettleDelay — сколько ждать перед удалением документа, чтобы спулер успел его прочитать.
const DefaultSettleDelay = time.Second

// CommandSurface — временный документ + системная команда печати (`lp -n <copies> <file>`).
type CommandSurface struct {
	command string
	tmpDir  string
	settle  time.Duration
	log     ports.Logger
	run     func(ctx context.Context, name string, args ...string) error
}

// NewCommandSurface — command по умолчанию "lp".
func NewCommandSurface(command string, settle time.Duration, log ports.Logger) *CommandSurface {
	if command == "" {
		command = "lp"
	}
	if settle <= 0 {
		settle = DefaultSettleDelay
	}
	return &CommandSurface{
		command: command,
		tmpDir:  os.TempDir(),
		settle:  settle,
		log:     log,
		run: func(ctx context.Context, name string, args ...string) error {
			out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
			if err != nil {
				return fmt.Errorf("%s: %w: %s", name, err, out)
			}
			return nil
		},
	}
}

// Render — печать и удаление документа после settle. Вызывается из фоновой очереди,
// поэтому ожидание settle не задерживает Dispatch, а Wait дожидается удаления.
func (s *CommandSurface) Render(ctx context.Context, doc domain.PrintDocument) error {
	body, err := BuildDocument(doc)
	if err != nil {
		return err
	}

	f, err := os.CreateTemp(s.tmpDir, "print-*.html")
	if err != nil {
		return fmt.Errorf("print temp: %w", err)
	}
	path := f.Name()
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.log.Warnf(ctx, "print temp cleanup %s: %v", path, err)
		}
	}()

	if _, err := f.Write(body); err != nil {
		_ = f.Close()
		return fmt.Errorf("print temp write: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("print temp close: %w", err)
	}

	if err := s.run(ctx, s.command, "-n", strconv.Itoa(copiesOf(doc)), path); err != nil {
		return err
	}

	// спулер читает файл асинхронно
	timer := time.NewTimer(s.settle)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
	return nil
}
