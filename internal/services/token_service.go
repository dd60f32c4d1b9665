package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

type jwtTokenService struct {
	logger     zerolog.Logger
	issuer     string
	signingKey []byte
	tokenTTL   time.Duration
}

func NewTokenService(
	logger zerolog.Logger,
	issuer string,
	signingKey string,
	tokenTTL time.Duration,
) TokenService {
	return &jwtTokenService{
		logger:     logger,
		issuer:     issuer,
		signingKey: []byte(signingKey),
		tokenTTL:   tokenTTL,
	}
}

func (s *jwtTokenService) Issue(userID string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to sign token")
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.Debug().
		Str("user_id", userID).
		Time("expires_at", expiresAt).
		Msg("issued token")
	return signed, expiresAt, nil
}

func (s *jwtTokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			// Pin the method so a token re-signed with "none" or an
			// asymmetric algorithm never passes.
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
			}
			return s.signingKey, nil
		},
		jwt.WithIssuer(s.issuer),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			s.logger.Debug().Msg("token expired")
			return "", ErrTokenExpired
		}

		s.logger.Debug().
			Err(err).
			Msg("failed to parse token")
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
