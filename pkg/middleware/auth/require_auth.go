package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/marketplace/pkg/tokens"
)

const (
	ContextUserID = "user_id"

	accessCookie = "accessToken"
)

// Verifier turns a raw access token into the id of the user it was issued for.
type Verifier func(token string) (string, error)

// JWTVerifier checks HS256 access tokens signed with secret.
func JWTVerifier(secret []byte) Verifier {
	return func(token string) (string, error) {
		claims, err := tokens.AccessClaimsFromToken(token, secret)
		if err != nil {
			return "", err
		}
		if claims.Subject == "" {
			return "", tokens.ErrInvalidToken
		}
		return claims.Subject, nil
	}
}

type AuthMiddleware struct {
	Verify Verifier
}

func NewAuthMiddleware(verify Verifier) *AuthMiddleware {
	return &AuthMiddleware{Verify: verify}
}

// RequireAuth accepts a bearer token from the Authorization header, falling
// back to the accessToken cookie. On success the caller's id is stored under
// ContextUserID.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := bearerToken(c.Request())
		if raw == "" {
			if ck, err := c.Cookie(accessCookie); err == nil {
				raw = ck.Value
			}
		}
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		userID, err := m.Verify(raw)
		if err != nil || userID == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}

		c.Set(ContextUserID, userID)
		return next(c)
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get(echo.HeaderAuthorization)
	if h == "" {
		return ""
	}
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
