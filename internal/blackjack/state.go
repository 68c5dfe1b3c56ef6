package blackjack

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/tebnews/TEBNews_Go/internal/domain"
)

// stateClaims is the signed, client-held form of a hand in play.
// Game is the sealed hand, so the deck and the dealer's hole card stay hidden.
type stateClaims struct {
	Game string `json:"game"`
	jwt.RegisteredClaims
}

// verifiedState is a decoded hand plus the token id used for replay protection.
type verifiedState struct {
	game      *domain.GameSession
	tokenID   string
	expiresAt time.Time
}

// StateCodec seals game state with XChaCha20-Poly1305 and signs it with HMAC-SHA256.
type StateCodec struct {
	secret  []byte
	sealKey []byte
	ttl     time.Duration
	now     func() time.Time
}

// NewStateCodec creates a codec. A non-positive ttl falls back to one hour.
// The sealing key is derived from secret and never equals the signing key.
func NewStateCodec(secret string, ttl time.Duration) *StateCodec {
	if ttl <= 0 {
		ttl = DefaultStateTTL
	}
	key := sha256.Sum256([]byte(stateSealLabel + secret))
	return &StateCodec{secret: []byte(secret), sealKey: key[:], ttl: ttl, now: time.Now}
}

// Encode seals and signs g for userID.
func (c *StateCodec) Encode(userID uuid.UUID, g *domain.GameSession) (string, error) {
	now := c.now()
	claims := stateClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    StateIssuer,
			Subject:   userID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	sealed, err := c.seal(g, sealContext(claims.Subject, claims.ID))
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrContextFailedToSeal, err)
	}
	claims.Game = sealed

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode verifies the signature, expiry and owner of a state blob and opens the sealed hand.
// Expired state is an invalid state; anything else that fails is tampered.
func (c *StateCodec) Decode(token string, userID uuid.UUID) (*verifiedState, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: no game in progress", domain.ErrInvalidState)
	}

	claims := &stateClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(StateIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: game state expired", domain.ErrInvalidState)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrTamperedState, err)
	}

	if claims.Subject != userID.String() {
		return nil, fmt.Errorf("%w: state belongs to another user", domain.ErrTamperedState)
	}
	if claims.ID == "" || claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing token id", domain.ErrTamperedState)
	}

	g, err := c.open(claims.Game, sealContext(claims.Subject, claims.ID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTamperedState, err)
	}

	return &verifiedState{
		game:      g,
		tokenID:   claims.ID,
		expiresAt: claims.ExpiresAt.Time,
	}, nil
}

// sealContext binds a sealed hand to the token that carries it.
func sealContext(subject, tokenID string) []byte {
	return []byte(subject + ":" + tokenID)
}

func (c *StateCodec) seal(g *domain.GameSession, ad []byte) (string, error) {
	aead, err := chacha20poly1305.NewX(c.sealKey)
	if err != nil {
		return "", err
	}

	plain, err := json.Marshal(g)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plain)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(aead.Seal(nonce, nonce, plain, ad)), nil
}

func (c *StateCodec) open(sealed string, ad []byte) (*domain.GameSession, error) {
	aead, err := chacha20poly1305.NewX(c.sealKey)
	if err != nil {
		return nil, err
	}

	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return nil, err
	}
	if len(raw) < aead.NonceSize()+aead.Overhead() {
		return nil, errors.New("sealed game too short")
	}

	plain, err := aead.Open(nil, raw[:aead.NonceSize()], raw[aead.NonceSize():], ad)
	if err != nil {
		return nil, err
	}

	g := &domain.GameSession{}
	if err := json.Unmarshal(plain, g); err != nil {
		return nil, err
	}
	return g, nil
}
