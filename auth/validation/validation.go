// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package validation

import (
	"errors"
	"strings"
	"unicode"

	zxcvbn "github.com/nbutton23/zxcvbn-go"

	"blogapi/auth/models"
)

const (
	minPasswordLength = 8
	maxPhoneLength    = 10

	// minPasswordScore is the minimum zxcvbn strength score (0-4)
	minPasswordScore = 2
)

// ValidateSignupRequest validates the payload for registering
func ValidateSignupRequest(req *models.SignupRequest) error {
	if err := validatePhoneNumber(req.PhoneNumber); err != nil {
		return err
	}
	if strings.TrimSpace(req.FirstName) == "" {
		return errors.New("first_name is required")
	}
	if strings.TrimSpace(req.LastName) == "" {
		return errors.New("last_name is required")
	}
	return ValidatePassword(req.Password, req.PhoneNumber, req.FirstName, req.LastName)
}

// ValidateLoginRequest validates the payload for logging in
func ValidateLoginRequest(req *models.LoginRequest) error {
	if req.PhoneNumber == "" {
		return errors.New("phone_number is required")
	}
	if req.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// ValidatePassword enforces the password rules: minimum length, not entirely
// numeric, and a zxcvbn strength floor. userInputs holds account data the
// password must not be guessable from.
func ValidatePassword(password string, userInputs ...string) error {
	if len(password) < minPasswordLength {
		return errors.New("password must contain at least 8 characters")
	}
	if isAllDigits(password) {
		return errors.New("password cannot be entirely numeric")
	}

	result := zxcvbn.PasswordStrength(password, userInputs)
	if result.Score < minPasswordScore {
		return errors.New("password is too easy to guess")
	}

	return nil
}

func validatePhoneNumber(phone string) error {
	if phone == "" {
		return errors.New("phone_number is required")
	}
	if len(phone) > maxPhoneLength {
		return errors.New("phone_number must be at most 10 digits")
	}
	if !isAllDigits(phone) {
		return errors.New("phone_number must contain only digits")
	}
	return nil
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}
