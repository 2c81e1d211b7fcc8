package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/itaoit/itstock-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	Username    string
	DisplayName string
	Role        enums.Role
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	Username    string     `json:"username"`
	DisplayName string     `json:"display_name,omitempty"`
	Role        enums.Role `json:"role"`
	jwt.RegisteredClaims
}
