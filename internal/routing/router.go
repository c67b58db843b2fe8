// Пакет routing — выбор позиций заказа для кухонного/барного тикета.
package routing

import (
	"strings"

	"github.com/Gunvolt24/pos_print/internal/domain"
)

// DefaultKitchenCategories — категории, которые уходят на кухню/бар,
// если для кухонных устройств не настроено ни одного правила.
var DefaultKitchenCategories = []string{
	"food", "burger", "pizza", "pasta", "salad", "sandwich", "appetizer", "starter",
	"main", "entree", "dessert", "soup", "breakfast", "grill", "sides", "snack",
	"drinks", "beverage", "coffee", "tea", "juice", "smoothie", "cocktail", "beer", "wine", "bar",
}

// RouteKitchenItems — подмножество позиций для кухонного тикета.
// Чистая функция: порядок позиций сохраняется, возвращаются копии.
func RouteKitchenItems(items []domain.LineItem, snap *domain.ConfigSnapshot) []domain.LineItem {
	if len(items) == 0 {
		return nil
	}
	categories := KitchenCategories(snap)

	routed := make([]domain.LineItem, 0, len(items))
	for i := range items {
		if matchesAny(items[i].CategoryName, categories) {
			routed = append(routed, items[i])
		}
	}
	return domain.CloneItems(routed)
}

// KitchenCategories — категории из правил, указывающих на активные кухонные/барные устройства.
// Правила на неизвестные id игнорируются. Пустой набор → DefaultKitchenCategories.
func KitchenCategories(snap *domain.ConfigSnapshot) []string {
	if snap == nil {
		return DefaultKitchenCategories
	}

	kitchenIDs := make(map[string]struct{}, len(snap.Devices))
	for _, d := range snap.Devices {
		if d.Active && d.Class.IsKitchenSide() {
			kitchenIDs[d.ID] = struct{}{}
		}
	}

	seen := make(map[string]struct{}, len(snap.Rules))
	var categories []string
	for _, rule := range snap.Rules {
		if _, ok := kitchenIDs[rule.DeviceID]; !ok {
			continue
		}
		name := normalize(rule.CategoryName)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		categories = append(categories, name)
	}

	if len(categories) == 0 {
		return DefaultKitchenCategories
	}
	return categories
}

// matchesAny — двустороннее вхождение подстроки без учёта регистра.
func matchesAny(category string, candidates []string) bool {
	c := normalize(category)
	if c == "" {
		return false
	}
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if strings.Contains(c, candidate) || strings.Contains(candidate, c) {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
