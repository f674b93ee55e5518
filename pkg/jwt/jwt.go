// Package jwt signs and verifies tokens that carry one minted identifier.
package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrRevokedToken = errors.New("token has been revoked")
)

// Claims carry the identifier in the registered "jti" claim and its label in
// "sub". CreatedAt keeps the full precision that "iat" rounds away.
type Claims struct {
	jwt.RegisteredClaims
	CreatedAt time.Time         `json:"created_at"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Config holds token configuration.
type Config struct {
	Issuer         string        `mapstructure:"issuer"`
	PrivateKeyFile string        `mapstructure:"private_key_file"` // PEM, PKCS#1 or PKCS#8
	TTL            time.Duration `mapstructure:"ttl"`              // 0 means no expiry
}

// Manager signs tokens with RS256 and keeps an in-memory revocation list.
type Manager struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	ttl        time.Duration
	issuer     string

	revoked map[string]time.Time
	mu      sync.RWMutex
}

// NewManager creates a manager with a freshly generated key. Tokens it signs
// can only be verified by the same process.
func NewManager(ttl time.Duration, issuer string) (*Manager, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}
	return NewManagerWithKey(privateKey, ttl, issuer), nil
}

// NewManagerWithKey creates a manager around an existing key.
func NewManagerWithKey(privateKey *rsa.PrivateKey, ttl time.Duration, issuer string) *Manager {
	return &Manager{
		privateKey: privateKey,
		publicKey:  &privateKey.PublicKey,
		ttl:        ttl,
		issuer:     issuer,
		revoked:    make(map[string]time.Time),
	}
}

// Load reads the key named by cfg, or generates one when none is configured.
func Load(cfg Config) (*Manager, error) {
	if cfg.PrivateKeyFile == "" {
		return NewManager(cfg.TTL, cfg.Issuer)
	}
	data, err := os.ReadFile(cfg.PrivateKeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key: %w", err)
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key %s: %w", cfg.PrivateKeyFile, err)
	}
	return NewManagerWithKey(key, cfg.TTL, cfg.Issuer), nil
}

// Sign issues a token for the identifier rawID of entity label.
func (m *Manager) Sign(label, rawID string, createdAt time.Time, metadata map[string]string) (string, error) {
	if rawID == "" {
		return "", errors.New("cannot sign an empty id")
	}
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   m.issuer,
			Subject:  label,
			ID:       rawID,
			IssuedAt: jwt.NewNumericDate(createdAt),
		},
		CreatedAt: createdAt.UTC(),
		Metadata:  metadata,
	}
	if m.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(createdAt.Add(m.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(m.privateKey)
}

// Validate verifies signature, issuer, expiry and revocation.
func (m *Manager) Validate(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()})}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.publicKey, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	if m.IsRevoked(claims.ID) {
		return nil, ErrRevokedToken
	}
	return claims, nil
}

// Revoke rejects every token for rawID until the configured TTL has passed,
// or forever when tokens do not expire.
func (m *Manager) Revoke(rawID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var until time.Time
	if m.ttl > 0 {
		until = time.Now().Add(m.ttl)
	}
	m.revoked[rawID] = until
}

// IsRevoked reports whether rawID is currently revoked.
func (m *Manager) IsRevoked(rawID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	until, exists := m.revoked[rawID]
	if !exists {
		return false
	}
	return until.IsZero() || time.Now().Before(until)
}

// CleanupExpiredRevocations removes expired revocation entries.
func (m *Manager) CleanupExpiredRevocations() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for rawID, until := range m.revoked {
		if !until.IsZero() && now.After(until) {
			delete(m.revoked, rawID)
		}
	}
}
