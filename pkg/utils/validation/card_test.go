package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateCardFields(t *testing.T) {
	tests := []struct {
		name       string
		cardNumber string
		expiry     string
		cvv        string
		email      string
		billing    string
		wantCode   string // empty means accept
	}{
		{
			name:       "formatted visa test card",
			cardNumber: "4242 4242 4242 4242",
			expiry:     "12/27",
			cvv:        "123",
			email:      "Member@Example.com",
			billing:    "Jo Bloggs",
		},
		{
			name:       "dashes and amex length cvv",
			cardNumber: "3782-822463-10005",
			expiry:     "0928",
			cvv:        "1234",
			email:      "a@b.co",
			billing:    "A B",
		},
		{
			name:       "13 digit minimum",
			cardNumber: "4222222222222",
			expiry:     "1227",
			cvv:        "123",
			email:      "a@b.co",
			billing:    "A B",
		},
		{
			name:       "19 digit maximum",
			cardNumber: "6221261111111111111",
			expiry:     "1227",
			cvv:        "123",
			email:      "a@b.co",
			billing:    "A B",
		},
		{
			name:       "12 digits rejected",
			cardNumber: "422222222222",
			expiry:     "1227",
			cvv:        "123",
			email:      "a@b.co",
			billing:    "A B",
			wantCode:   CodeInvalidCardNumber,
		},
		{
			name:       "20 digits rejected",
			cardNumber: "42222222222222222222",
			expiry:     "1227",
			cvv:        "123",
			email:      "a@b.co",
			billing:    "A B",
			wantCode:   CodeInvalidCardNumber,
		},
		{
			name:       "short expiry rejected",
			cardNumber: "4242424242424242",
			expiry:     "127",
			cvv:        "123",
			email:      "a@b.co",
			billing:    "A B",
			wantCode:   CodeInvalidExpiry,
		},
		{
			name:       "short cvv rejected",
			cardNumber: "4242424242424242",
			expiry:     "1227",
			cvv:        "12",
			email:      "a@b.co",
			billing:    "A B",
			wantCode:   CodeInvalidCVV,
		},
		{
			name:       "bad email rejected",
			cardNumber: "4242424242424242",
			expiry:     "1227",
			cvv:        "123",
			email:      "not-an-email",
			billing:    "A B",
			wantCode:   CodeInvalidEmail,
		},
		{
			name:       "whitespace-only name rejected",
			cardNumber: "4242424242424242",
			expiry:     "1227",
			cvv:        "123",
			email:      "a@b.co",
			billing:    "   ",
			wantCode:   CodeInvalidName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateCardFields(tt.cardNumber, tt.expiry, tt.cvv, tt.email, tt.billing)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("expected FieldError, got %v", err)
			}
			if fe.Code != tt.wantCode {
				t.Fatalf("error code = %s, want %s", fe.Code, tt.wantCode)
			}
		})
	}
}

func TestValidateCardFieldsNormalizes(t *testing.T) {
	details, err := ValidateCardFields("4242 4242 4242 4242", "12/27", " 123 ", " Member@Example.COM ", "  Jo Bloggs  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if details.Number != "4242424242424242" {
		t.Fatalf("number = %q", details.Number)
	}
	if details.Expiry != "1227" {
		t.Fatalf("expiry = %q", details.Expiry)
	}
	if details.CVV != "123" {
		t.Fatalf("cvv = %q", details.CVV)
	}
	if details.Email != "member@example.com" {
		t.Fatalf("email = %q", details.Email)
	}
	if details.Name != "Jo Bloggs" {
		t.Fatalf("name = %q", details.Name)
	}
}

func TestStripNonDigitsRoundTrip(t *testing.T) {
	// Re-formatting a digit sequence must not change what stripping recovers.
	digits := "4242424242424242"
	formatted := strings.Join([]string{digits[0:4], digits[4:8], digits[8:12], digits[12:16]}, " ")
	dashed := strings.ReplaceAll(formatted, " ", "-")

	if got := StripNonDigits(formatted); got != StripNonDigits(digits) {
		t.Fatalf("StripNonDigits(%q) = %q, want %q", formatted, got, digits)
	}
	if got := StripNonDigits(dashed); got != digits {
		t.Fatalf("StripNonDigits(%q) = %q, want %q", dashed, got, digits)
	}
}

func TestCoerceString(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{in: "123", want: "123"},
		{in: float64(123), want: "123"},
		{in: float64(4242424242424242), want: "4242424242424242"},
		{in: 99, want: "99"},
		{in: nil, want: ""},
	}

	for _, tt := range tests {
		if got := CoerceString(tt.in); got != tt.want {
			t.Fatalf("CoerceString(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
