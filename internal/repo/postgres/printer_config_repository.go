package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/pos_print/internal/domain"
	"github.com/Gunvolt24/pos_print/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что PrinterConfigRepository удовлетворяет интерфейсу PrinterConfigStore.
var _ ports.PrinterConfigStore = (*PrinterConfigRepository)(nil)

// PrinterConfigRepository — конфигурация печати в Postgres (pgxpool). Только чтение.
type PrinterConfigRepository struct {
	pool *pgxpool.Pool
}

// NewPrinterConfigRepository - конструктор PrinterConfigRepository.
func NewPrinterConfigRepository(pool *pgxpool.Pool) *PrinterConfigRepository {
	return &PrinterConfigRepository{pool: pool}
}

// ListActiveDevices — активные устройства, упорядоченные по приоритету и id.
func (r *PrinterConfigRepository) ListActiveDevices(ctx context.Context) ([]domain.PrinterDevice, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, address, device_class, active, priority
		FROM printer_devices
		WHERE active
		ORDER BY priority, id
	`)
	if err != nil {
		return nil, fmt.Errorf("select devices: %w", err)
	}
	defer rows.Close()

	devices := make([]domain.PrinterDevice, 0, 8)
	for rows.Next() {
		var (
			d       domain.PrinterDevice
			address *string
			class   string
		)
		if err := rows.Scan(&d.ID, &d.Name, &address, &class, &d.Active, &d.Priority); err != nil {
			return nil, fmt.Errorf("scan device: %w", err)
		}
		if address != nil {
			d.Address = *address
		}
		d.Class = domain.DeviceClass(class)
		devices = append(devices, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows devices: %w", err)
	}
	return devices, nil
}

// ListRoutingRules — все правила «категория → устройство».
func (r *PrinterConfigRepository) ListRoutingRules(ctx context.Context) ([]domain.RoutingRule, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT category_name, device_id
		FROM printer_routing_rules
		ORDER BY category_name, device_id
	`)
	if err != nil {
		return nil, fmt.Errorf("select routing rules: %w", err)
	}
	defer rows.Close()

	rules := make([]domain.RoutingRule, 0, 16)
	for rows.Next() {
		var rule domain.RoutingRule
		if err := rows.Scan(&rule.CategoryName, &rule.DeviceID); err != nil {
			return nil, fmt.Errorf("scan routing rule: %w", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows routing rules: %w", err)
	}
	return rules, nil
}

// GetBranding — брендинг чека; (nil, nil), если запись не заведена.
func (r *PrinterConfigRepository) GetBranding(ctx context.Context) (*domain.Branding, error) {
	var (
		name, line1, line2, phone, footer, logo *string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT business_name, address_line1, address_line2, phone, footer_text, logo_url
		FROM receipt_branding
		ORDER BY id
		LIMIT 1
	`).Scan(&name, &line1, &line2, &phone, &footer, &logo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil //nolint:nilnil // отсутствие брендинга не ошибка
		}
		return nil, fmt.Errorf("select branding: %w", err)
	}

	return &domain.Branding{
		BusinessName: deref(name),
		AddressLine1: deref(line1),
		AddressLine2: deref(line2),
		Phone:        deref(phone),
		FooterText:   deref(footer),
		LogoURL:      deref(logo),
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
