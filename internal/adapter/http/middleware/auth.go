package middleware

import (
	"errors"
	"net/http"
	"strings"

	"furniture_estimates/pkg"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin = "admin"

	// AccessTokenParam carries the token for clients that cannot set headers.
	AccessTokenParam = "access_token"

	identityKey = "identity"
)

var (
	errUnauthorized = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
	errForbidden    = pkg.NewDomainErrorSimple("FORBIDDEN", "Insufficient permissions", http.StatusForbidden)
)

// Identity is the verified caller placed on the gin context by Auth.
type Identity struct {
	UserID string
	Role   string
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// Claims accepts the user id either as "sub" or as "user_id".
type Claims struct {
	UserID string `json:"user_id,omitempty"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) subject() string {
	if v := strings.TrimSpace(c.UserID); v != "" {
		return v
	}
	return strings.TrimSpace(c.Subject)
}

// Auth verifies an HS256 bearer token. An empty secret rejects every request.
func Auth(secret string) gin.HandlerFunc {
	return authenticate(secret, "")
}

// AuthWithQueryToken is Auth that also reads the token from ?access_token=
// when the Authorization header is absent. Browser EventSource needs it.
func AuthWithQueryToken(secret string) gin.HandlerFunc {
	return authenticate(secret, AccessTokenParam)
}

func authenticate(secret, queryParam string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" && queryParam != "" {
			if tok := strings.TrimSpace(c.Query(queryParam)); tok != "" {
				header = "Bearer " + tok
			}
		}
		id, err := parseBearer(header, key)
		if err != nil {
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// RequireRole must run after Auth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := GetIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}
		if id.Role != role {
			c.AbortWithStatusJSON(errForbidden.HTTPStatus, errForbidden.ToHTTPError())
			return
		}
		c.Next()
	}
}

func GetIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	if !ok || id.UserID == "" {
		return Identity{}, false
	}
	return id, true
}

// SetIdentity is used by tests and by callers that authenticate elsewhere.
func SetIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
}

func parseBearer(header string, key []byte) (Identity, error) {
	if len(key) == 0 {
		return Identity{}, errors.New("jwt secret not configured")
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return Identity{}, errors.New("missing bearer token")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(*jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Identity{}, err
	}
	if !token.Valid {
		return Identity{}, errors.New("token is not valid")
	}

	userID := claims.subject()
	if userID == "" {
		return Identity{}, errors.New("token has no subject")
	}
	return Identity{UserID: userID, Role: strings.TrimSpace(claims.Role)}, nil
}
