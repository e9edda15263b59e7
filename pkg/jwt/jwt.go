package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Uso del token: un access token no sirve para refrescar ni al revés.
const (
	useAccess  = "access"
	useRefresh = "refresh"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Se añade Role (TYPE_ADMIN | TYPE_FARMER | TYPE_CUSTOMER) para que el middleware RBAC
// pueda tomar decisiones sin consultar la DB, y TokenUse para distinguir access de refresh.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Login    string `json:"login"`
	Role     string `json:"role"`
	TokenUse string `json:"use"`
}

// TokenPair access token de vida corta + refresh token de vida larga.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// GeneratePair genera el par de tokens firmados con HS256.
// El access token vence en expHours horas; el refresh en refreshDays días.
func GeneratePair(secret, userID, login, role, issuer string, expHours, refreshDays int) (TokenPair, error) {
	access, err := generate(secret, userID, login, role, issuer, useAccess, time.Duration(expHours)*time.Hour)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := generate(secret, userID, login, role, issuer, useRefresh, time.Duration(refreshDays)*24*time.Hour)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func generate(secret, userID, login, role, issuer, use string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:   userID,
		Login:    login,
		Role:     role,
		TokenUse: use,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida un access token y devuelve userID, login y role.
// Retorna error si el token es inválido, expirado, tiene firma incorrecta
// o no es un access token.
func Parse(secret, tokenString string) (userID, login, role string, err error) {
	return parseUse(secret, tokenString, useAccess)
}

// ParseRefresh valida un refresh token. Un access token se rechaza aquí.
func ParseRefresh(secret, tokenString string) (userID, login, role string, err error) {
	return parseUse(secret, tokenString, useRefresh)
}

func parseUse(secret, tokenString, use string) (userID, login, role string, err error) {
	if secret == "" {
		return "", "", "", fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", "", "", fmt.Errorf("claims inválidos")
	}
	if claims.TokenUse != use {
		return "", "", "", fmt.Errorf("uso de token inesperado: %q", claims.TokenUse)
	}
	return claims.UserID, claims.Login, claims.Role, nil
}
