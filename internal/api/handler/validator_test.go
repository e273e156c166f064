package handler

import (
	"testing"

	"github.com/banque/registration-system/internal/core/domain"
)

func TestValidator_CustomTags(t *testing.T) {
	v := NewValidator()

	valid := registerClientRequest{
		Name:       "Alice Dupont",
		Phone:      "+33612345678",
		NationalID: "1234567890123",
		Login:      "alice",
		Password:   "secret",
	}
	if err := v.Validate(&valid); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	bad := valid
	bad.NationalID = "12345"
	if err := v.Validate(&bad); err == nil || err.Error() != domain.MsgInvalidNatID {
		t.Fatalf("expected national id message, got %v", err)
	}

	bad = valid
	bad.Login = ""
	if err := v.Validate(&bad); err == nil || err.Error() != "login est requis" {
		t.Fatalf("expected required message, got %v", err)
	}

	if err := v.Validate(&pinRequest{PIN: "123"}); err == nil || err.Error() != domain.MsgPINInvalid {
		t.Fatalf("expected pin message, got %v", err)
	}
	if err := v.Validate(&pinRequest{PIN: "0042"}); err != nil {
		t.Fatalf("expected valid pin, got %v", err)
	}
}
