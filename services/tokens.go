package services

import (
	"errors"
	"fmt"
	"time"

	"cadastro/models"

	"github.com/golang-jwt/jwt/v5"
)

// Claims é o conteúdo do token de sessão.
type Claims struct {
	jwt.RegisteredClaims
	Perfil string `json:"perfil"`
}

// Tokens emite e valida os tokens HS256 de sessão.
type Tokens struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{Secret: []byte(secret), TTL: ttl, Now: time.Now}
}

// Issue assina um token para o usuário e devolve também o instante de expiração.
func (t *Tokens) Issue(u models.Usuario) (string, time.Time, error) {
	now := t.Now()
	exp := now.Add(t.TTL)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Perfil: u.Perfil,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Parse valida assinatura, algoritmo e expiração. Qualquer falha vira 401.
func (t *Tokens) Parse(token string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return t.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, mapJWTError(err)
	}
	if claims.Subject == "" {
		return nil, Unauthorized("token sem usuário")
	}
	return &claims, nil
}

func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return Unauthorized("token expirado")
	}
	if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
		return Unauthorized("assinatura do token inválida")
	}
	return Unauthorized("token inválido")
}
