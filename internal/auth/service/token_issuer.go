package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/avolkov/scribe/internal/common/clock"
	commoncrypto "github.com/avolkov/scribe/internal/common/crypto"
	"github.com/avolkov/scribe/internal/common/jwtverify"
	"github.com/avolkov/scribe/internal/observability/metrics"
	userdomain "github.com/avolkov/scribe/internal/user/domain"
)

// TokenIssuer signs access tokens carrying the subject's identity claims.
type TokenIssuer interface {
	IssueAccessToken(user userdomain.User) (string, error)
}

type JWTIssuer struct {
	jwtSecret      []byte
	idGenerator    commoncrypto.IDGenerator
	clock          clock.Clock
	accessTokenTTL time.Duration
}

func NewJWTIssuer(
	jwtSecret string,
	idGenerator commoncrypto.IDGenerator,
	accessTokenTTL time.Duration,
	clk clock.Clock,
) *JWTIssuer {
	return &JWTIssuer{
		jwtSecret:      []byte(jwtSecret),
		idGenerator:    idGenerator,
		clock:          clk,
		accessTokenTTL: accessTokenTTL,
	}
}

func (ti *JWTIssuer) IssueAccessToken(user userdomain.User) (string, error) {
	jti, err := ti.idGenerator.NewID()
	if err != nil {
		return "", err
	}

	now := ti.clock.Now()
	expiresAt := now.Add(ti.accessTokenTTL)
	claims := jwt.MapClaims{
		"sub": string(user.ID),
		"usr": user.Username,
		"eml": user.Email,
		"jti": jti,
		"exp": expiresAt.Unix(),
		"iat": now.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := t.SignedString(ti.jwtSecret)
	if err != nil {
		return "", err
	}

	metrics.AccessTokensIssued.Inc()
	return tokenString, nil
}

func (ti *JWTIssuer) ParseToken(tokenString string) (jwtverify.Claims, error) {
	return jwtverify.ParseToken(tokenString, ti.jwtSecret)
}
