package validate

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Gunvolt24/pos_print/internal/domain"
	"github.com/Gunvolt24/pos_print/internal/ports"
)

// Проверка, что OrderValidator удовлетворяет интерфейсу OrderValidator.
var _ ports.OrderValidator = (*OrderValidator)(nil)

// ErrInvalidOrder — базовая (sentinel error) ошибка валидации: заказ нельзя напечатать.
var ErrInvalidOrder = errors.New("order validation failed")

// ErrInconsistentOrder — заказ печатается, но его поля противоречивы (суммы, время, позиции).
// Продажа уже проведена, поэтому печать такого заказа не отменяется, а только логируется.
var ErrInconsistentOrder = errors.New("order is inconsistent")

// OrderValidator — проверка снимка заказа перед печатью.
type OrderValidator struct{}

// NewOrderValidator — конструктор OrderValidator.
// Заказ без позиций или nil — ErrInvalidOrder; прочие замечания собираются в ErrInconsistentOrder.
func NewOrderValidator() *OrderValidator { return &OrderValidator{} }

// Validate — проверяет корректность полей заказа.
func (v *OrderValidator) Validate(_ context.Context, order *domain.Order) error {
	if order == nil {
		return fmt.Errorf("%w: заказ не может быть nil", ErrInvalidOrder)
	}
	if len(order.Items) == 0 {
		return fmt.Errorf("%w: items не должен быть пустым", ErrInvalidOrder)
	}

	var issues []string
	issues = v.checkCore(order, issues)
	issues = v.checkTotals(order, issues)
	issues = v.checkItems(order.Items, issues)
	if len(issues) > 0 {
		return fmt.Errorf("%w: %s", ErrInconsistentOrder, strings.Join(issues, "; "))
	}
	return nil
}

// IsRejected — заказ печатать нельзя (в отличие от ErrInconsistentOrder).
func IsRejected(err error) bool {
	return errors.Is(err, ErrInvalidOrder)
}

// checkCore — основные поля заказа.
func (v *OrderValidator) checkCore(order *domain.Order, issues []string) []string {
	if strings.TrimSpace(order.OrderNumber) == "" {
		issues = append(issues, "order_number обязателен")
	}
	if order.CreatedAt.IsZero() {
		issues = append(issues, "created_at обязателен")
	}
	return issues
}

// Проверка сумм
func (v *OrderValidator) checkTotals(order *domain.Order, issues []string) []string {
	if order.Subtotal < 0 || order.TaxAmount < 0 || order.DiscountAmount < 0 || order.Total < 0 {
		return append(issues, "суммы должны быть неотрицательными")
	}
	if !order.TotalMatches() {
		issues = append(issues, fmt.Sprintf("total=%.2f не равен subtotal + tax - discount=%.2f",
			order.Total, order.ExpectedTotal()))
	}
	return issues
}

// Проверка позиций
func (v *OrderValidator) checkItems(items []domain.LineItem, issues []string) []string {
	for i := range items {
		item := &items[i]
		idx := strconv.Itoa(i)

		if strings.TrimSpace(item.ProductName) == "" {
			issues = append(issues, "items["+idx+"].product_name обязателен")
		}
		if item.Quantity <= 0 {
			issues = append(issues, "items["+idx+"].quantity должен быть положительным")
		}
		if item.UnitPrice < 0 || item.LineTotal < 0 {
			issues = append(issues, "items["+idx+"] цены должны быть неотрицательными")
		}
		if item.Weight != nil && item.Weight.Amount <= 0 {
			issues = append(issues, "items["+idx+"].weight.amount должен быть положительным")
		}
	}
	return issues
}
