// Package reveal issues short-lived signed tokens that let the marketing
// site hand a visitor over to the CRM landing page with their contact
// attached.
package reveal

import (
	"fmt"
	"net/url"
	"time"

	"corpintel_backend/platform/apperr"
	"corpintel_backend/platform/config"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by a reveal token.
type Claims struct {
	ContactID   string `json:"contact_id"`
	ContactName string `json:"contact_name"`
	CompanyName string `json:"company_name"`
	CompanyID   string `json:"company_id,omitempty"`
	jwt.RegisteredClaims
}

// Service signs and validates reveal tokens.
type Service struct {
	secret      []byte
	ttl         time.Duration
	landingPage string
}

// NewService creates a reveal token service.
func NewService(cfg config.RevealConfig) *Service {
	ttl := cfg.GetRevealTokenTTL()
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Service{
		secret:      []byte(cfg.GetRevealSecretKey()),
		ttl:         ttl,
		landingPage: cfg.GetCRMLandingPageURL(),
	}
}

// IssueToken signs a reveal token for one contact.
func (s *Service) IssueToken(contactID, contactName, companyName, companyID string) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.ttl)

	claims := Claims{
		ContactID:   contactID,
		ContactName: contactName,
		CompanyName: companyName,
		CompanyID:   companyID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign reveal token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken parses and verifies a reveal token.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnauthorized, "invalid or expired token", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperr.Unauthorized("invalid token claims")
	}
	return claims, nil
}

// LandingURL builds the CRM landing page redirect for validated claims.
func (s *Service) LandingURL(claims *Claims) string {
	u, err := url.Parse(s.landingPage)
	if err != nil || s.landingPage == "" {
		return ""
	}

	q := u.Query()
	q.Set("contact_id", claims.ContactID)
	q.Set("contact_name", claims.ContactName)
	q.Set("company_name", claims.CompanyName)
	if claims.CompanyID != "" {
		q.Set("company_id", claims.CompanyID)
	}
	u.RawQuery = q.Encode()
	return u.String()
}
