package biz

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/fx"
	"golang.org/x/crypto/bcrypt"

	"github.com/porticohq/portico/internal/authz"
	"github.com/porticohq/portico/internal/log"
	"github.com/porticohq/portico/internal/server/store"
)

// AuthConfig is fixed at process start, injected where needed, and never
// mutated afterwards.
type AuthConfig struct {
	// SecretKey signs and verifies tokens. Generated at startup when empty.
	SecretKey string `conf:"secret_key" yaml:"secret_key" json:"secret_key"`

	// TokenTTL bounds token lifetime. Defaults to 24h.
	TokenTTL time.Duration `conf:"token_ttl" yaml:"token_ttl" json:"token_ttl"`
}

// HashPassword hashes a secret using bcrypt.
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return hex.EncodeToString(hashedPassword), nil
}

// VerifyPassword verifies a secret against a stored hash.
func VerifyPassword(hashedPassword, password string) error {
	decodedHashedPassword, err := hex.DecodeString(hashedPassword)
	if err != nil {
		return fmt.Errorf("failed to decode hashed password: %w", err)
	}

	return bcrypt.CompareHashAndPassword(decodedHashedPassword, []byte(password))
}

// GenerateSecretKey generates a random signing key.
func GenerateSecretKey() (string, error) {
	bytes := make([]byte, 32) // 256 bits

	_, err := rand.Read(bytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return hex.EncodeToString(bytes), nil
}

type AuthServiceParams struct {
	fx.In

	Config *AuthConfig
	Store  *store.Store
}

func NewAuthService(params AuthServiceParams) (*AuthService, error) {
	cfg := *params.Config
	if cfg.SecretKey == "" {
		key, err := GenerateSecretKey()
		if err != nil {
			return nil, err
		}

		cfg.SecretKey = key
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}

	return &AuthService{config: cfg, store: params.Store}, nil
}

// AuthService verifies credentials, mints tokens, and resolves tokens back
// into principals.
type AuthService struct {
	config AuthConfig
	store  *store.Store
}

// Authenticate verifies an identity/secret pair against the credential
// store. Unknown identity and wrong secret are distinct internally but both
// collapse to ErrIncorrectCredentials at the API boundary.
func (s *AuthService) Authenticate(ctx context.Context, identity, secret string) (*authz.Principal, error) {
	rec, err := s.store.FindByIdentity(ctx, identity)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrPrincipalNotFound, err)
		}

		log.Error(ctx, "failed to look up principal", log.Cause(err))

		return nil, ErrInternal
	}

	err = VerifyPassword(rec.SecretHash, secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadSecret, err)
	}

	log.Debug(ctx, "principal authenticated", log.String("identity", rec.Identity))

	return &authz.Principal{
		Identity: rec.Identity,
		Role:     rec.Role,
		Scope:    rec.Scope,
	}, nil
}

// IssueToken mints a signed token for the principal. The scope travels in
// the token itself; later requests need no credential-store lookup.
func (s *AuthService) IssueToken(ctx context.Context, p *authz.Principal) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  p.Identity,
		"role": string(p.Role),
		"pid":  p.Scope.Claim(),
		"iat":  now.Unix(),
		"exp":  now.Add(s.config.TokenTTL).Unix(),
	})

	tokenString, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken verifies a token's signature and expiry and reconstructs the
// principal from its claims.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*authz.Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: unexpected signing method: %v", ErrTokenMalformed, token.Header["alg"])
		}

		return []byte(s.config.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", ErrTokenExpired, err)
		}

		return nil, fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid claims", ErrTokenMalformed)
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrTokenMalformed)
	}

	roleClaim, _ := claims["role"].(string)

	role := authz.Role(roleClaim)
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrTokenMalformed, roleClaim)
	}

	pid, _ := claims["pid"].(string)

	return &authz.Principal{
		Identity: sub,
		Role:     role,
		Scope:    authz.ParseScopeClaim(pid),
	}, nil
}
