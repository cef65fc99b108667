package validator

import (
	"errors"
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

func TestIsValidEmail(t *testing.T) {
	valid := []string{"employee1@elp.local", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2024-06-10", "2000-12-31", "2024-02-29"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023-02-29", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"casual", "sick", "earned"}
	if !IsInSlice("sick", slice) {
		t.Errorf("IsInSlice('sick') = false, want true")
	}
	if IsInSlice("unpaid", slice) {
		t.Errorf("IsInSlice('unpaid') = true, want false")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "end_date", Message: "invalid"},
		{Field: "leave_type", Message: "required"},
	}
	got := errs.Error()
	want := "end_date: invalid; leave_type: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "end_date", Message: "invalid"},
		{Field: "leave_type", Message: "required"},
		{Field: "end_date", Message: "overlaps"},
	}
	got := errs.ToMap()
	want := map[string]string{"end_date": "invalid; overlaps", "leave_type": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestValidationErrors_UnwrapMatchesEverySentinel(t *testing.T) {
	errFirst := errors.New("first")
	errSecond := errors.New("second")

	var errs ValidationErrors
	errs.AddErr("start_date", errFirst)
	errs.Add("reason", "reason is required")
	errs.AddErr("end_date", errSecond)

	err := errs.OrNil()
	if !errors.Is(err, errFirst) || !errors.Is(err, errSecond) {
		t.Fatalf("errors.Is did not match wrapped sentinels: %v", err)
	}

	var target ValidationErrors
	if !errors.As(err, &target) || len(target) != 3 {
		t.Fatalf("errors.As = %v, want 3 entries", target)
	}
}

func TestValidationErrors_OrNil(t *testing.T) {
	var errs ValidationErrors
	if errs.OrNil() != nil {
		t.Errorf("empty ValidationErrors.OrNil() should be nil")
	}
}
