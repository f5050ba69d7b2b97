package token

import (
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kataras/jwt"
)

const DefaultLifetime = 24 * time.Hour

// ErrRejected is returned for every token that must not be trusted.
// The cause is wrapped for logging only.
var ErrRejected = errors.New("token rejected")

type Claims map[string]any

func (claims Claims) Subject() string {
	sub, _ := claims["sub"].(string)
	return sub
}

type Codec struct {
	alg    jwt.Alg
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCodec(secret []byte, algorithm string, ttl time.Duration) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("token secret is empty")
	}
	alg, err := parseAlgorithm(algorithm)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = DefaultLifetime
	}
	return &Codec{
		alg:    alg,
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

/* Поддерживаются только HMAC алгоритмы: секрет один на весь процесс */
func parseAlgorithm(name string) (jwt.Alg, error) {
	switch strings.ToUpper(name) {
	case "", "HS256":
		return jwt.HS256, nil
	case "HS384":
		return jwt.HS384, nil
	case "HS512":
		return jwt.HS512, nil
	}
	return nil, fmt.Errorf("unsupported token algorithm %q", name)
}

func (c *Codec) Lifetime() time.Duration {
	return c.ttl
}

// Issue signs claims with iat, exp and jti set. A non-positive ttl means the
// codec default.
func (c *Codec) Issue(claims Claims, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = c.ttl
	}
	now := c.now()
	payload := map[string]any{
		"jti": uuid.NewString(),
	}
	maps.Copy(payload, claims)
	payload["iat"] = now.Unix()
	payload["exp"] = now.Add(ttl).Unix()

	token, err := jwt.Sign(c.alg, c.secret, payload)
	if err != nil {
		return "", err
	}
	return string(token), nil
}

func (c *Codec) Validate(token string) (Claims, error) {
	if token == "" {
		return nil, ErrRejected
	}
	verifiedToken, err := jwt.Verify(c.alg, c.secret, []byte(token))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRejected, err)
	}

	standard := verifiedToken.StandardClaims
	if standard.Expiry == 0 {
		return nil, fmt.Errorf("%w: missing exp", ErrRejected)
	}
	if !c.now().Before(time.Unix(standard.Expiry, 0)) {
		return nil, fmt.Errorf("%w: expired", ErrRejected)
	}

	claims := Claims{}
	if err = verifiedToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRejected, err)
	}
	if claims.Subject() == "" {
		return nil, fmt.Errorf("%w: missing sub", ErrRejected)
	}
	return claims, nil
}
