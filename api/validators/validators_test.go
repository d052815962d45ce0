package validators

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	pkgerrors "github.com/angelmondragon/daypass-backend/pkg/errors"
)

type bookingBody struct {
	ID   string `json:"id" validate:"required"`
	Date string `json:"date" validate:"omitempty,isodate"`
	Qty  int    `json:"quantity" validate:"min=1"`
}

func TestDecodeJSONBodyValidates(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"id":"p-1","date":"2026-13-40","quantity":0}`))
	var body bookingBody
	err := DecodeJSONBody(req, &body)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("unexpected details %T", typed.Details())
	}
	if details["date"] != "must be a date formatted YYYY-MM-DD" {
		t.Fatalf("unexpected date message %q", details["date"])
	}
	if details["quantity"] != "must be at least 1" {
		t.Fatalf("unexpected quantity message %q", details["quantity"])
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"id":"p-1","quantity":1,"coupon":"x"}`))
	var body bookingBody
	if err := DecodeJSONBody(req, &body); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for unknown field, got %v", err)
	}
}

func TestDecodeJSONBodyAccepts(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"id":"p-1","date":"2026-07-10","quantity":2}`))
	var body bookingBody
	if err := DecodeJSONBody(req, &body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body.Qty != 2 || body.Date != "2026-07-10" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestParseQueryDate(t *testing.T) {
	req := httptest.NewRequest("DELETE", "/?date=2026-07-10", nil)
	date, ok, err := ParseQueryDate(req, "date")
	if err != nil || !ok || date != "2026-07-10" {
		t.Fatalf("unexpected result %q %v %v", date, ok, err)
	}

	req = httptest.NewRequest("DELETE", "/", nil)
	if _, ok, err := ParseQueryDate(req, "date"); ok || err != nil {
		t.Fatalf("expected absent date, got ok=%v err=%v", ok, err)
	}

	req = httptest.NewRequest("DELETE", "/?date=tomorrow", nil)
	if _, _, err := ParseQueryDate(req, "date"); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseDateTime(t *testing.T) {
	got, err := ParseDateTime("escape_date", "2026-07-10")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	if !got.Equal(time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected time %v", got)
	}
	got, err = ParseDateTime("escape_date", "2026-07-10T15:04:05-05:00")
	if err != nil {
		t.Fatalf("parse rfc3339: %v", err)
	}
	if got.UTC().Hour() != 20 {
		t.Fatalf("unexpected hour %d", got.UTC().Hour())
	}
	if _, err := ParseDateTime("escape_date", "soon"); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  Sea Breeze  ", 3); got != "Sea" {
		t.Fatalf("unexpected %q", got)
	}

	name := strings.Repeat("日", 200)
	got := SanitizeString(name, 86)
	if !utf8.ValidString(got) {
		t.Fatalf("truncation split a character: %q", got)
	}
	if utf8.RuneCountInString(got) != 86 {
		t.Fatalf("expected 86 characters, got %d", utf8.RuneCountInString(got))
	}
	if SanitizeString(name, 256) != name {
		t.Fatalf("text within the limit must be kept whole")
	}
}

func TestSanitizeID(t *testing.T) {
	id, err := SanitizeID("id", "  "+strings.Repeat("日", 128)+" ", 128)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != strings.Repeat("日", 128) {
		t.Fatalf("id should only be trimmed, got %q", id)
	}

	cases := map[string]string{
		"blank":    "   ",
		"too long": strings.Repeat("日", 129),
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := SanitizeID("hotel.id", input, 128)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
			details, ok := typed.Details().(map[string]string)
			if !ok || details["hotel.id"] == "" {
				t.Fatalf("expected hotel.id detail, got %#v", typed.Details())
			}
		})
	}
}
