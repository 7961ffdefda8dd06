package media

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles accepted by the media transport. Anything other than publisher is
// issued subscriber privileges.
const (
	RolePublisher  = "publisher"
	RoleSubscriber = "subscriber"
)

// DefaultTokenTTL matches the one-hour privilege window the transport expects.
const DefaultTokenTTL = time.Hour

// ErrNotConfigured means the server was started without transport credentials.
var ErrNotConfigured = errors.New("media transport credentials not configured")

// TokenBuilder issues time-boxed access tokens for the external media
// transport. The core has no protocol-level knowledge of the transport; it
// only brokers credentials.
type TokenBuilder struct {
	appID  string
	secret string
	ttl    time.Duration
}

// NewTokenBuilder constructs a TokenBuilder. Zero ttl means DefaultTokenTTL.
func NewTokenBuilder(appID, secret string, ttl time.Duration) *TokenBuilder {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenBuilder{appID: appID, secret: secret, ttl: ttl}
}

// Configured reports whether credentials are present.
func (b *TokenBuilder) Configured() bool {
	return b.appID != "" && b.secret != ""
}

// BuildToken signs a token granting the uid access to the channel until the
// privilege window expires.
func (b *TokenBuilder) BuildToken(channelName, uid, role string) (string, error) {
	if !b.Configured() {
		return "", ErrNotConfigured
	}
	if role != RolePublisher {
		role = RoleSubscriber
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"app_id":  b.appID,
		"channel": channelName,
		"uid":     uid,
		"role":    role,
		"iat":     now.Unix(),
		"exp":     now.Add(b.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(b.secret))
}
