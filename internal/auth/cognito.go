package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	gocache "github.com/patrickmn/go-cache"

	"naxine_api/internal/models"
)

// CognitoVerifier verifies RS256 tokens issued by an AWS Cognito user pool
// against the pool's published JWKS. Signing keys are cached for ten
// minutes, matching the pool's rotation window.
type CognitoVerifier struct {
	jwksURL string
	keys    *gocache.Cache
	client  *http.Client
}

func NewCognitoVerifier(region, userPoolID string) *CognitoVerifier {
	return &CognitoVerifier{
		jwksURL: fmt.Sprintf(
			"https://cognito-idp.%s.amazonaws.com/%s/.well-known/jwks.json",
			region, userPoolID,
		),
		keys:   gocache.New(10*time.Minute, 15*time.Minute),
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *CognitoVerifier) Verify(ctx context.Context, tokenStr string) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("token header carries no kid")
		}
		return v.signingKey(ctx, kid)
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	claims := claimsFromMap(mc)
	if rol, ok := rolFromGroups(mc); ok {
		claims.Rol = rol
	}
	return claims, nil
}

// rolFromGroups maps the pool's group membership onto a platform role.
func rolFromGroups(mc jwt.MapClaims) (string, bool) {
	groups, ok := mc["cognito:groups"].([]interface{})
	if !ok {
		return "", false
	}
	for _, g := range groups {
		switch g {
		case "admin":
			return models.RolAdministrador, true
		case "profesionistas":
			return models.RolProfesionista, true
		case "usuarios":
			return models.RolUsuario, true
		}
	}
	return "", false
}

type jwksDocument struct {
	Keys []jsonWebKey `json:"keys"`
}

type jsonWebKey struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	N   string `json:"n"`
	E   string `json:"e"`
}

func (v *CognitoVerifier) signingKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	if cached, ok := v.keys.Get(kid); ok {
		return cached.(*rsa.PublicKey), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.jwksURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching jwks: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching jwks: status %d", resp.StatusCode)
	}

	var doc jwksDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding jwks: %w", err)
	}
	for _, k := range doc.Keys {
		if k.Kid != kid || k.Kty != "RSA" {
			continue
		}
		pub, err := k.publicKey()
		if err != nil {
			return nil, err
		}
		v.keys.Set(kid, pub, gocache.DefaultExpiration)
		return pub, nil
	}
	return nil, fmt.Errorf("no signing key %q in jwks", kid)
}

func (k jsonWebKey) publicKey() (*rsa.PublicKey, error) {
	nb, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, fmt.Errorf("decoding jwk modulus: %w", err)
	}
	eb, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, fmt.Errorf("decoding jwk exponent: %w", err)
	}
	e := 0
	for _, b := range eb {
		e = e<<8 | int(b)
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(nb), E: e}, nil
}
