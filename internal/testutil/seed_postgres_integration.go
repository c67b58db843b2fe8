//go:build integration

package testutil

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gunvolt24/pos_print/internal/domain"
)

// PrinterSeed — конфигурация печати для заливки в тестовую базу.
type PrinterSeed struct {
	Devices  []domain.PrinterDevice
	Rules    []domain.RoutingRule
	Branding *domain.Branding
}

// SeedPrinterConfig — одна транзакция на всю заливку.
func SeedPrinterConfig(ctx context.Context, pool *pgxpool.Pool, seed PrinterSeed) error {
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		for _, d := range seed.Devices {
			var address *string
			if d.Address != "" {
				address = &d.Address
			}
			if _, err := tx.Exec(ctx, `
				INSERT INTO printer_devices (id, name, address, device_class, active, priority)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, d.ID, d.Name, address, string(d.Class), d.Active, d.Priority); err != nil {
				return fmt.Errorf("insert device %s: %w", d.ID, err)
			}
		}
		for _, r := range seed.Rules {
			if _, err := tx.Exec(ctx, `
				INSERT INTO printer_routing_rules (category_name, device_id) VALUES ($1, $2)
			`, r.CategoryName, r.DeviceID); err != nil {
				return fmt.Errorf("insert rule %s: %w", r.CategoryName, err)
			}
		}
		if b := seed.Branding; b != nil {
			if _, err := tx.Exec(ctx, `
				INSERT INTO receipt_branding (business_name, address_line1, address_line2, phone, footer_text, logo_url)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, b.BusinessName, b.AddressLine1, b.AddressLine2, b.Phone, b.FooterText, b.LogoURL); err != nil {
				return fmt.Errorf("insert branding: %w", err)
			}
		}
		return nil
	})
}
