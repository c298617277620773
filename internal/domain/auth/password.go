package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Temporary password alphabet. Visually ambiguous characters (0/O, 1/l/I)
// are excluded because these credentials are read out of an email.
const (
	tempUppercase = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	tempLowercase = "abcdefghijkmnpqrstuvwxyz"
	tempDigits    = "23456789"
	tempSymbols   = "!@#$%&*"
)

// MinPasswordLength is the minimum accepted credential length.
const MinPasswordLength = 8

// TempPasswordLength is the length of system-generated temporary passwords.
// Longer than the user minimum since nobody has to remember them.
const TempPasswordLength = 12

// GenerateTemporaryPassword produces a random credential satisfying the
// strength policy: at least one uppercase, lowercase, digit, and symbol.
func GenerateTemporaryPassword() (string, error) {
	classes := []string{tempUppercase, tempLowercase, tempDigits, tempSymbols}
	all := strings.Join(classes, "")

	chars := make([]byte, 0, TempPasswordLength)
	for _, class := range classes {
		c, err := randomChar(class)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}
	for len(chars) < TempPasswordLength {
		c, err := randomChar(all)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}

	// Fisher-Yates so the guaranteed class characters are not predictable
	// by position.
	for i := len(chars) - 1; i > 0; i-- {
		j, err := randomIndex(i + 1)
		if err != nil {
			return "", err
		}
		chars[i], chars[j] = chars[j], chars[i]
	}

	return string(chars), nil
}

// ValidatePasswordStrength checks a proposed credential against the
// minimum-strength policy and returns every violated rule.
func ValidatePasswordStrength(password string) error {
	var problems []string
	if len(password) < MinPasswordLength {
		problems = append(problems, fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	}
	if !strings.ContainsAny(password, "abcdefghijklmnopqrstuvwxyz") {
		problems = append(problems, "must contain a lowercase letter")
	}
	if !strings.ContainsAny(password, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		problems = append(problems, "must contain an uppercase letter")
	}
	if !strings.ContainsAny(password, "0123456789") {
		problems = append(problems, "must contain a digit")
	}
	if !strings.ContainsAny(password, "!@#$%^&*()_+-=[]{};':\"\\|,.<>/?") {
		problems = append(problems, "must contain a symbol")
	}
	if len(problems) > 0 {
		return errors.New("password " + strings.Join(problems, "; "))
	}
	return nil
}

func randomChar(alphabet string) (byte, error) {
	i, err := randomIndex(len(alphabet))
	if err != nil {
		return 0, err
	}
	return alphabet[i], nil
}

func randomIndex(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("random index: %w", err)
	}
	return int(v.Int64()), nil
}
