// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package tokens

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token envelope. The user payload travels in Claim under the
// key the auth middleware reads it from.
type Claims struct {
	Claim map[string]interface{} `json:"claim"`
	jwt.RegisteredClaims
}

// CreateToken creates an ES256 signed JWT carrying claim, valid for ttl.
// subject is the token owner's user ID.
func CreateToken(privateKeyPEM string, subject string, claim map[string]interface{}, ttl time.Duration) (string, error) {
	privateKey, err := jwt.ParseECPrivateKeyFromPEM([]byte(privateKeyPEM))
	if err != nil {
		return "", fmt.Errorf("failed to parse EC private key: %w", err)
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "blogapi",
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Claim: claim,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	token.Header["kid"] = "blogapi-auth-key-1"

	return token.SignedString(privateKey)
}
