package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidClock(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59"}
	invalid := []string{"24:00", "9:30", "09:60", "0930", ""}
	for _, s := range valid {
		if !IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = true, want false", s)
		}
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "phone", Message: "required"},
	}
	got := errs.Error()
	want := "email: invalid; phone: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "phone", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"email": "invalid", "phone": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestValidationErrors_OrNil(t *testing.T) {
	var errs ValidationErrors
	if errs.OrNil() != nil {
		t.Errorf("empty ValidationErrors.OrNil() should be nil")
	}
	errs.Add("name", "is required")
	if errs.OrNil() == nil {
		t.Errorf("non-empty ValidationErrors.OrNil() should not be nil")
	}
}

type sampleRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Status   *string `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE INACTIVE"`
	Start    string  `json:"start_time" validate:"required,clock"`
	Breaks   int     `json:"break_minutes" validate:"gte=0"`
	Dept     *string `json:"department_id,omitempty" validate:"omitempty,uuid"`
}

func TestStruct(t *testing.T) {
	ok := sampleRequest{Email: "a@b.co", Password: "secret", Start: "08:00"}
	if errs := Struct(ok); len(errs) != 0 {
		t.Fatalf("Struct(valid) = %v, want no errors", errs)
	}

	bad := "GONE"
	dept := "0188d0f27b8c7b4a8a2b6b8b8b8b8b8b"
	got := Struct(sampleRequest{Email: "nope", Password: "123", Status: &bad, Start: "8am", Breaks: -1, Dept: &dept}).ToMap()
	want := map[string]string{
		"email":         "must be a valid email",
		"password":      "must be at least 6 characters",
		"status":        "must be one of: ACTIVE, INACTIVE",
		"start_time":    "must be in HH:mm format",
		"break_minutes": "must be greater than or equal to 0",
		"department_id": "must be a valid UUID",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("Struct()[%q] = %q, want %q", k, got[k], v)
		}
	}
}
