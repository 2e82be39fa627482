// Package units converts between decimal amount strings and raw token amounts
// in smallest indivisible units, scaled by the token's decimal precision.
package units

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// ParseUnits parses a decimal amount string into raw units at the given
// precision. The amount must be a plain non-negative decimal; more fractional
// digits than the precision allows is an error, not a silent truncation.
func ParseUnits(amount string, decimals uint8) (*big.Int, error) {
	s := strings.TrimSpace(amount)
	if s == "" {
		return nil, errors.New("empty amount")
	}
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return nil, errors.New("amount must be an unsigned decimal")
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
		if strings.IndexByte(fracPart, '.') >= 0 {
			return nil, errors.New("malformed decimal amount")
		}
	}
	if intPart == "" && fracPart == "" {
		return nil, errors.New("malformed decimal amount")
	}
	if !digitsOnly(intPart) || !digitsOnly(fracPart) {
		return nil, errors.Errorf("malformed decimal amount %q", amount)
	}
	if len(fracPart) > int(decimals) {
		return nil, errors.Errorf("amount exceeds token precision of %d decimals", decimals)
	}

	fracPart += strings.Repeat("0", int(decimals)-len(fracPart))
	raw, ok := new(big.Int).SetString(intPart+fracPart, 10)
	if !ok {
		return nil, errors.Errorf("malformed decimal amount %q", amount)
	}
	return raw, nil
}

// IsPositiveDecimal reports whether the string is a well-formed decimal
// strictly greater than zero, independent of any token precision.
func IsPositiveDecimal(amount string) bool {
	// Parse at maximum uint8 precision so only syntax matters here.
	raw, err := ParseUnits(amount, 255)
	if err != nil {
		return false
	}
	return raw.Sign() > 0
}

// FormatUnits renders a raw amount as a decimal string at full precision,
// with trailing fractional zeros trimmed.
func FormatUnits(raw *big.Int, decimals uint8) string {
	if raw == nil {
		return "0"
	}

	scale := pow10(int(decimals))
	quo, rem := new(big.Int).QuoRem(new(big.Int).Abs(raw), scale, new(big.Int))

	sign := ""
	if raw.Sign() < 0 {
		sign = "-"
	}

	frac := strings.TrimRight(leftPad(rem.String(), int(decimals)), "0")
	if frac == "" {
		return sign + quo.String()
	}
	return sign + quo.String() + "." + frac
}

// FormatFixed renders a raw amount rounded to a fixed number of fractional
// places, matching the display precision of the original balance labels.
func FormatFixed(raw *big.Int, decimals uint8, places int) string {
	if raw == nil {
		return "0." + strings.Repeat("0", places)
	}

	abs := new(big.Int).Abs(raw)
	if int(decimals) > places {
		divisor := pow10(int(decimals) - places)
		quo, rem := new(big.Int).QuoRem(abs, divisor, new(big.Int))
		// Round half away from zero.
		if new(big.Int).Lsh(rem, 1).Cmp(divisor) >= 0 {
			quo.Add(quo, big.NewInt(1))
		}
		abs = quo
	} else {
		abs = new(big.Int).Mul(abs, pow10(places-int(decimals)))
	}

	scale := pow10(places)
	quo, rem := new(big.Int).QuoRem(abs, scale, new(big.Int))

	sign := ""
	if raw.Sign() < 0 {
		sign = "-"
	}
	if places == 0 {
		return sign + quo.String()
	}
	return sign + quo.String() + "." + leftPad(rem.String(), places)
}

func digitsOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

func leftPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
