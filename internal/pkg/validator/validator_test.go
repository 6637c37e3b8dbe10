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

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", " ", ""}
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

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // valid UUIDv7
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B", // valid UUIDv7 (uppercase)
	}
	invalid := []string{
		"123e4567-e89b-12d3-a456-426614174000", // not v7
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
		"",
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "01-01-2023", "2023/01/01", "", "not-a-date"}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidDateRange(t *testing.T) {
	cases := []struct {
		start string
		end   string
		want  bool
	}{
		{"2026-01-01", "2026-01-31", true},
		{"2026-01-01", "2026-01-01", true},
		{"2026-01-31", "2026-01-01", false},
		{"bad", "2026-01-01", false},
		{"2026-01-01", "bad", false},
	}
	for _, c := range cases {
		_, _, got := IsValidDateRange(c.start, c.end)
		if got != c.want {
			t.Errorf("IsValidDateRange(%q, %q) = %v, want %v", c.start, c.end, got, c.want)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{
		"2026-01-15T10:30:00Z",
		"2026-01-15T10:30:00+07:00",
		"2026-01-15T10:30:00.123456789Z",
	}
	invalid := []string{"2026-01-15", "2026-01-15 10:30:00", "", "not-a-time"}
	for _, s := range valid {
		if _, ok := IsValidDateTime(s); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDateTime(s); ok {
			t.Errorf("IsValidDateTime(%q) = true, want false", s)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"monthly", "quarterly", "yearly"}
	if !IsInSlice("monthly", slice) {
		t.Error("IsInSlice(monthly) = false, want true")
	}
	if IsInSlice("weekly", slice) {
		t.Error("IsInSlice(weekly) = true, want false")
	}
	if IsInSlice("monthly", nil) {
		t.Error("IsInSlice on nil slice = true, want false")
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "name", Message: "Name is required"},
		{Field: "date", Message: "Date must be YYYY-MM-DD"},
	}

	want := "name: Name is required; date: Date must be YYYY-MM-DD"
	if errs.Error() != want {
		t.Errorf("Error() = %q, want %q", errs.Error(), want)
	}

	m := errs.ToMap()
	if m["name"] != "Name is required" || m["date"] != "Date must be YYYY-MM-DD" {
		t.Errorf("ToMap() = %v", m)
	}
}
