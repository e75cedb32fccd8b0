package usecase

import (
	"testing"

	"payment_gateway/internal/domain/entities"
)

func TestCaptureRequest(t *testing.T) {
	t.Run("copies into empty target and drops absent fields", func(t *testing.T) {
		target := map[string]any{}
		desc := "order 1"
		err := CaptureRequest(target, entities.GatewayChargeRequest{
			Amount:      1000,
			Currency:    "usd",
			Source:      "tok_visa",
			Description: &desc,
			Metadata:    map[string]string{"transaction_ref": "t1"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if target["amount"] != float64(1000) || target["currency"] != "usd" || target["source"] != "tok_visa" {
			t.Fatalf("unexpected capture: %+v", target)
		}
		if target["description"] != "order 1" {
			t.Fatalf("expected description, got %v", target["description"])
		}
		if _, ok := target["customer"]; ok {
			t.Fatalf("customer should be omitted: %+v", target)
		}
		if _, ok := target["statement_descriptor"]; ok {
			t.Fatalf("statement_descriptor should be omitted: %+v", target)
		}
		md, ok := target["metadata"].(map[string]any)
		if !ok || md["transaction_ref"] != "t1" {
			t.Fatalf("unexpected metadata: %+v", target["metadata"])
		}
	})

	t.Run("drops explicit nulls", func(t *testing.T) {
		target := map[string]any{}
		if err := CaptureRequest(target, map[string]any{"a": 1, "b": nil}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(target) != 1 || target["a"] != float64(1) {
			t.Fatalf("unexpected capture: %+v", target)
		}
	})

	t.Run("populated target is untouched", func(t *testing.T) {
		target := map[string]any{"existing": "value"}
		if err := CaptureRequest(target, map[string]any{"amount": 5}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(target) != 1 || target["existing"] != "value" {
			t.Fatalf("target should not change: %+v", target)
		}
	})

	t.Run("nil target is a no-op", func(t *testing.T) {
		if err := CaptureRequest(nil, map[string]any{"amount": 5}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unmarshalable payload", func(t *testing.T) {
		target := map[string]any{}
		if err := CaptureRequest(target, map[string]any{"ch": make(chan int)}); err == nil {
			t.Fatalf("expected marshal error")
		}
		if len(target) != 0 {
			t.Fatalf("target should stay empty: %+v", target)
		}
	})
}
