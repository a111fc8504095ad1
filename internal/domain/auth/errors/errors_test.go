package errors

import "testing"

func TestErrorHelpers(t *testing.T) {
	err := NewInvalidArgument("bad")
	if !IsInvalidArgument(err) {
		t.Fatal("expected invalid argument")
	}

	wrapped := WrapInternal(err, "ctx")
	if !IsInternal(wrapped) {
		t.Fatal("expected internal")
	}
}

func TestTokenErrorsAreInvalidToken(t *testing.T) {
	for _, err := range []error{ErrMalformedToken, ErrInvalidSignature, ErrWrongTokenType} {
		if !IsInvalidToken(err) {
			t.Fatalf("%v should be an invalid token error", err)
		}
	}
	if IsInvalidToken(ErrTokenExpired) || IsInvalidToken(ErrTokenRevoked) {
		t.Fatal("expired and revoked must stay distinguishable from invalid")
	}
}

func TestValidationError(t *testing.T) {
	v := &ValidationError{}
	v.Add("password", "Missing data for required field.")
	v.Add("username", "Missing data for required field.")

	if !IsInvalidArgument(v) {
		t.Fatal("validation error should unwrap to invalid argument")
	}
	got, ok := AsValidation(WrapInternal(v, "ctx"))
	if ok {
		t.Fatalf("WrapInternal flattens the cause, got %v", got)
	}
	got, ok = AsValidation(v)
	if !ok || len(got.Fields) != 2 {
		t.Fatalf("want 2 fields, got %+v", got)
	}
	want := "invalid argument: password: Missing data for required field., username: Missing data for required field."
	if v.Error() != want {
		t.Fatalf("want %q got %q", want, v.Error())
	}
}

func TestWrongTokenTypeError(t *testing.T) {
	err := NewWrongTokenType("refresh")

	if !IsWrongTokenType(err) || !IsInvalidToken(err) {
		t.Fatalf("%v should match wrong type and invalid token", err)
	}
	w, ok := AsWrongTokenType(err)
	if !ok || w.Want != "refresh" {
		t.Fatalf("want refresh, got %+v", w)
	}
	if _, ok := AsWrongTokenType(ErrWrongTokenType); ok {
		t.Fatal("bare sentinel carries no type")
	}
}
