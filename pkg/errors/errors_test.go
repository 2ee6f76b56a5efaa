package errors

import (
	stdErrors "errors"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeUnauthorized, status: http.StatusUnauthorized, publicMsg: "authentication required"},
		{code: CodeForbidden, status: http.StatusForbidden, publicMsg: "access denied"},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected"},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
		{code: CodeCartNotFound, status: http.StatusNotFound, publicMsg: "cart not found"},
		{code: CodeEmptyCart, status: http.StatusBadRequest, publicMsg: "cart is empty"},
		{code: CodeMissingShippingAddress, status: http.StatusBadRequest, publicMsg: "shipping address is required"},
		{code: CodeInsufficientStock, status: http.StatusBadRequest, publicMsg: "insufficient stock", detailsOK: true},
		{code: CodeProductUnavailable, status: http.StatusBadRequest, publicMsg: "product is not available for purchase", detailsOK: true},
		{code: CodeOrderNumberExhausted, status: http.StatusInternalServerError, publicMsg: "could not allocate an order number", retryable: true},
		{code: CodeOrderCreationFailed, status: http.StatusInternalServerError, publicMsg: "order could not be created", retryable: true, detailsOK: true},
		{code: CodeAccessDenied, status: http.StatusForbidden, publicMsg: "cart does not belong to the caller"},
		{code: CodeInvalidIdentity, status: http.StatusBadRequest, publicMsg: "exactly one of user or session identity is required", detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing foo")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing foo" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeInternal, cause, "save failed")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("wrapped error should expose its cause")
	}
	if wrapped.Error() != "INTERNAL_ERROR: save failed" {
		t.Fatalf("unexpected error string %q", wrapped.Error())
	}

	withDetails := New(CodeInsufficientStock, "only 2 left").WithDetails(map[string]any{"available": 2})
	if withDetails.Details() == nil {
		t.Fatalf("details should be set")
	}
}

func TestAs(t *testing.T) {
	typed := New(CodeEmptyCart, "cart is empty")
	if As(typed) == nil {
		t.Fatalf("As should recover the typed error")
	}
	if As(stdErrors.New("plain")) != nil {
		t.Fatalf("As should return nil for untyped errors")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should be nil")
	}
}

func TestHasCode(t *testing.T) {
	err := Wrap(CodeInsufficientStock, stdErrors.New("row check"), "only 1 left")
	if !HasCode(err, CodeInsufficientStock) {
		t.Fatalf("expected insufficient stock code")
	}
	if HasCode(err, CodeEmptyCart) {
		t.Fatalf("did not expect empty cart code")
	}
	if HasCode(nil, CodeEmptyCart) {
		t.Fatalf("nil error has no code")
	}
}
