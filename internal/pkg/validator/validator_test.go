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

func TestIsValidTimeOfDay(t *testing.T) {
	valid := []string{"00:00", "09:00", "17:30", "23:59"}
	invalid := []string{"24:00", "9:00", "09:60", "0900", "", "09:00:00"}
	for _, s := range valid {
		if !IsValidTimeOfDay(s) {
			t.Errorf("IsValidTimeOfDay(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidTimeOfDay(s) {
			t.Errorf("IsValidTimeOfDay(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "01-01-2023", "2023/01/01", ""}
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

func TestCoordinateValidation(t *testing.T) {
	if !IsValidLatitude(36.2) || IsValidLatitude(91) || IsValidLatitude(-91) {
		t.Error("latitude bounds check failed")
	}
	if !IsValidLongitude(37.1) || IsValidLongitude(181) || IsValidLongitude(-181) {
		t.Error("longitude bounds check failed")
	}
}

func TestIsValidWeekday(t *testing.T) {
	for d := 0; d <= 6; d++ {
		if !IsValidWeekday(d) {
			t.Errorf("IsValidWeekday(%d) = false, want true", d)
		}
	}
	if IsValidWeekday(-1) || IsValidWeekday(7) {
		t.Error("weekday bounds check failed")
	}
}

func TestIsValidEmployeeCode(t *testing.T) {
	valid := []string{"EMP-001", "1002", "a1"}
	invalid := []string{"", "x", "code with spaces", "toolongtoolongtoolongx"}
	for _, s := range valid {
		if !IsValidEmployeeCode(s) {
			t.Errorf("IsValidEmployeeCode(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidEmployeeCode(s) {
			t.Errorf("IsValidEmployeeCode(%q) = true, want false", s)
		}
	}
}
