package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Gunvolt24/pos_print/internal/domain"
	"github.com/Gunvolt24/pos_print/internal/testutil"
)

func TestRenderEmitter_Kinds(t *testing.T) {
	order := testutil.MakeOrder(testutil.WithOrderNumber("ORD-PREVIEW-0042"))
	branding := &domain.Branding{BusinessName: "Corner Cafe"}

	var kitchen bytes.Buffer
	emit, err := renderEmitter("kitchen", branding, &kitchen)
	if err != nil {
		t.Fatalf("kitchen emitter: %v", err)
	}
	if err := emit(&order); err != nil {
		t.Fatalf("kitchen emit: %v", err)
	}
	if !strings.Contains(kitchen.String(), "Cheeseburger") || strings.Contains(kitchen.String(), "Tote bag") {
		t.Fatalf("kitchen ticket must hold only kitchen items:\n%s", kitchen.String())
	}

	var receipt bytes.Buffer
	emit, err = renderEmitter("receipt", branding, &receipt)
	if err != nil {
		t.Fatalf("receipt emitter: %v", err)
	}
	if err := emit(&order); err != nil {
		t.Fatalf("receipt emit: %v", err)
	}
	if !strings.Contains(receipt.String(), "Corner Cafe") || !strings.Contains(receipt.String(), "Tote bag") {
		t.Fatalf("receipt must hold branding and every item:\n%s", receipt.String())
	}

	if _, err := renderEmitter("label", branding, &receipt); err == nil {
		t.Fatalf("unknown kind must fail")
	}
}
