package validation

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"
)

// Error codes returned to clients when a signup field fails validation.
const (
	CodeInvalidCardNumber = "INVALID_CARD_NUMBER"
	CodeInvalidExpiry     = "INVALID_EXPIRY"
	CodeInvalidCVV        = "INVALID_CVV"
	CodeInvalidEmail      = "INVALID_EMAIL"
	CodeInvalidName       = "INVALID_NAME"
)

const (
	MinCardDigits = 13
	MaxCardDigits = 19
)

type FieldError struct {
	Field string
	Code  string
}

func (e *FieldError) Error() string {
	return e.Code + ": invalid value for " + e.Field
}

// CardDetails holds normalized signup fields. Card data is validated for
// shape only and is never forwarded or logged by the server; the actual
// payment method is collected client-side with the publishable key.
type CardDetails struct {
	Number string
	Expiry string
	CVV    string
	Email  string
	Name   string
}

// StripNonDigits removes every non-digit rune, so formatted input like
// "4242 4242-4242 4242" and "12/27" reduce to plain digit strings.
func StripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CoerceString turns a decoded JSON value into a string. Clients sometimes
// send card numbers and CVVs as JSON numbers; those must be coerced before
// stripping rather than rejected.
func CoerceString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ValidateCardFields normalizes and validates raw signup fields. It is pure:
// no network calls happen until every field has passed.
func ValidateCardFields(cardNumber, expiry, cvv, email, name string) (*CardDetails, error) {
	number := StripNonDigits(cardNumber)
	if len(number) < MinCardDigits || len(number) > MaxCardDigits {
		return nil, &FieldError{Field: "cardNumber", Code: CodeInvalidCardNumber}
	}

	exp := StripNonDigits(expiry)
	if len(exp) != 4 {
		return nil, &FieldError{Field: "expiryDate", Code: CodeInvalidExpiry}
	}

	code := StripNonDigits(cvv)
	if len(code) < 3 || len(code) > 4 {
		return nil, &FieldError{Field: "cvv", Code: CodeInvalidCVV}
	}

	normalizedEmail, err := NormalizeEmail(email)
	if err != nil {
		return nil, &FieldError{Field: "email", Code: CodeInvalidEmail}
	}

	trimmedName := strings.TrimSpace(name)
	if trimmedName == "" {
		return nil, &FieldError{Field: "billingName", Code: CodeInvalidName}
	}

	return &CardDetails{
		Number: number,
		Expiry: exp,
		CVV:    code,
		Email:  normalizedEmail,
		Name:   trimmedName,
	}, nil
}

// NormalizeEmail trims, validates and lower-cases an email address so it can
// be used as an external identifier.
func NormalizeEmail(email string) (string, error) {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return "", &FieldError{Field: "email", Code: CodeInvalidEmail}
	}
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return "", &FieldError{Field: "email", Code: CodeInvalidEmail}
	}
	return strings.ToLower(trimmed), nil
}
