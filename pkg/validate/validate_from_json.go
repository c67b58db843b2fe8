package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Gunvolt24/pos_print/internal/domain"
	"github.com/Gunvolt24/pos_print/internal/ports"
)

// DecodeStrict — строгий разбор JSON: неизвестные поля и хвостовые данные запрещены.
// Ошибка разбора тоже ErrInvalidOrder: повторная обработка такого сообщения бессмысленна.
func DecodeStrict(raw []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid json: %v", ErrInvalidOrder, err)
	}
	// гарантируем отсутствие данных после объекта
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return fmt.Errorf("%w: invalid json: trailing data", ErrInvalidOrder)
	}
	return nil
}

// ValidateOrderFromJSON — валидация заказа из JSON со строгой схемой (проверка выгрузок).
// Любое замечание, включая ErrInconsistentOrder, возвращается как ошибка.
func ValidateOrderFromJSON(ctx context.Context, validator ports.OrderValidator, raw []byte) (*domain.Order, error) {
	var order domain.Order
	if err := DecodeStrict(raw, &order); err != nil {
		return nil, err
	}
	if err := validator.Validate(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ValidatePrintRequestFromJSON — разбор и валидация сообщения о продаже ({order, options}).
//
// Отказ (ErrInvalidOrder) — только для недекодируемого JSON, nil-заказа или заказа без позиций.
// Неизвестные поля и противоречия в заказе дают ErrInconsistentOrder вместе с готовым запросом:
// продажа уже проведена, такой заказ всё равно печатается.
func ValidatePrintRequestFromJSON(ctx context.Context, validator ports.OrderValidator, raw []byte) (*domain.PrintRequest, error) {
	var req domain.PrintRequest
	var issues []error
	if err := DecodeStrict(raw, &req); err != nil {
		// схема POS могла обогнать сервис: пробуем без запрета неизвестных полей
		req = domain.PrintRequest{}
		if lenientErr := json.Unmarshal(raw, &req); lenientErr != nil {
			return nil, err
		}
		issues = append(issues, fmt.Errorf("%w: %s", ErrInconsistentOrder, strings.TrimPrefix(err.Error(), ErrInvalidOrder.Error()+": ")))
	}
	if err := validator.Validate(ctx, &req.Order); err != nil {
		if IsRejected(err) {
			return nil, err
		}
		issues = append(issues, err)
	}
	return &req, errors.Join(issues...)
}
