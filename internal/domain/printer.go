package domain

import (
	"sort"
	"time"
)

// DeviceClass — класс устройства печати.
type DeviceClass string

const (
	DeviceKitchen DeviceClass = "kitchen"
	DeviceBar     DeviceClass = "bar"
	DeviceReceipt DeviceClass = "receipt"
)

// IsKitchenSide — кухня или бар (то, что получает кухонный тикет).
func (c DeviceClass) IsKitchenSide() bool {
	return c == DeviceKitchen || c == DeviceBar
}

// PrinterDevice — принтер из внешнего хранилища конфигурации.
// Address может быть пустым: такое устройство маршрутизируется, но по сети не опрашивается.
type PrinterDevice struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Address  string      `json:"address,omitempty"`
	Class    DeviceClass `json:"device_class"`
	Active   bool        `json:"active"`
	Priority int         `json:"priority"`
}

// HasAddress — задан ли сетевой адрес.
func (d *PrinterDevice) HasAddress() bool { return d != nil && d.Address != "" }

// RoutingRule — категория товара → id устройства.
type RoutingRule struct {
	CategoryName string `json:"category_name"`
	DeviceID     string `json:"device_id"`
}

// Branding — шапка и подвал чека. Пустое поле означает «не задано».
type Branding struct {
	BusinessName string `json:"business_name,omitempty"`
	AddressLine1 string `json:"address_line1,omitempty"`
	AddressLine2 string `json:"address_line2,omitempty"`
	Phone        string `json:"phone,omitempty"`
	FooterText   string `json:"footer_text,omitempty"`
	LogoURL      string `json:"logo_url,omitempty"`
}

// ConfigSnapshot — кэшируемый снимок конфигурации печати.
// Только для чтения: при обновлении заменяется целиком.
type ConfigSnapshot struct {
	Devices   []PrinterDevice `json:"devices"`
	Rules     []RoutingRule   `json:"rules"`
	Branding  *Branding       `json:"branding,omitempty"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// EmptySnapshot — снимок без устройств, правил и брендинга.
func EmptySnapshot(now time.Time) *ConfigSnapshot {
	return &ConfigSnapshot{FetchedAt: now}
}

// Age — возраст снимка, никогда не отрицательный.
func (s *ConfigSnapshot) Age(now time.Time) time.Duration {
	if s == nil {
		return 0
	}
	age := now.Sub(s.FetchedAt)
	if age < 0 {
		return 0
	}
	return age
}

// PickDevice — активное устройство подходящего класса с наименьшим приоритетом (при равенстве — по id).
func (s *ConfigSnapshot) PickDevice(match func(DeviceClass) bool) *PrinterDevice {
	if s == nil {
		return nil
	}
	candidates := make([]PrinterDevice, 0, len(s.Devices))
	for _, d := range s.Devices {
		if d.Active && match(d.Class) {
			candidates = append(candidates, d)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Priority != candidates[j].Priority {
			return candidates[i].Priority < candidates[j].Priority
		}
		return candidates[i].ID < candidates[j].ID
	})
	picked := candidates[0]
	return &picked
}

// KitchenDevice — устройство для кухонного тикета.
func (s *ConfigSnapshot) KitchenDevice() *PrinterDevice {
	return s.PickDevice(DeviceClass.IsKitchenSide)
}

// ReceiptDevice — устройство для клиентского чека.
func (s *ConfigSnapshot) ReceiptDevice() *PrinterDevice {
	return s.PickDevice(func(c DeviceClass) bool { return c == DeviceReceipt })
}
