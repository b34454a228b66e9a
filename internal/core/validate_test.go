package core

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestValidateDate(t *testing.T) {
	cases := []struct {
		s  string
		ok bool
	}{
		{"2024-01-01", true},
		{"2024-12-31", true},
		{"2024-02-29", true},  // leap year
		{"2023-02-29", false}, // not a leap year
		{"2024-02-30", false},
		{"2024-13-01", false},
		{"2024-00-10", false},
		{"01-02-2024", false},
		{"2024-1-2", false},
		{"", false},
		{"not-a-date", false},
	}
	for i, tc := range cases {
		err := ValidateDate(tc.s)
		if tc.ok && err != nil {
			t.Fatalf("case %d (%q) expected ok, got %v", i, tc.s, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d (%q) expected error", i, tc.s)
		}
	}
}

func TestValidateAmount(t *testing.T) {
	cases := []struct {
		in   any
		want float64
		ok   bool
	}{
		{12.5, 12.5, true},
		{"12.5", 12.5, true},
		{" 7 ", 7, true},
		{3, 3, true},
		{int64(4), 4, true},
		{json.Number("9.99"), 9.99, true},
		{0, 0, false},
		{-5, 0, false},
		{"-5", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{nil, 0, false},
		{[]string{"1"}, 0, false},
	}
	for i, tc := range cases {
		got, err := ValidateAmount(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("case %d (%v) expected ok, got %v", i, tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("case %d (%v) expected %v, got %v", i, tc.in, tc.want, got)
			}
			continue
		}
		if err == nil {
			t.Fatalf("case %d (%v) expected error", i, tc.in)
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("case %d (%v) expected *ValidationError, got %T", i, tc.in, err)
		}
	}
}

func TestValidateAmountErrorReasons(t *testing.T) {
	_, err := ValidateAmount("abc")
	if err == nil || err.Error() != "amount must be a number" {
		t.Fatalf("expected not-numeric error, got %v", err)
	}
	_, err = ValidateAmount(0)
	if err == nil || err.Error() != "amount must be positive" {
		t.Fatalf("expected positivity error, got %v", err)
	}
}

func TestValidateRequiredText(t *testing.T) {
	if err := ValidateRequiredText("Food", "category"); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	for _, s := range []string{"", "   ", "\t\n"} {
		err := ValidateRequiredText(s, "category")
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		if err.Error() != "category is required" {
			t.Fatalf("unexpected message %q", err.Error())
		}
	}
}

func TestNormalizeTags(t *testing.T) {
	cases := []struct {
		in   any
		want []string
	}{
		{"a, b ,,c", []string{"a", "b", "c"}},
		{[]string{"x", " y "}, []string{"x", "y"}},
		{[]any{"x", 1, " y "}, []string{"x", "1", "y"}},
		{[]any{"", "  "}, []string{}},
		{"", []string{}},
		{nil, []string{}},
		{42, []string{}},
	}
	for i, tc := range cases {
		got := NormalizeTags(tc.in)
		if got == nil {
			t.Fatalf("case %d (%v) returned nil slice", i, tc.in)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("case %d (%v) expected %v, got %v", i, tc.in, tc.want, got)
		}
	}
}
