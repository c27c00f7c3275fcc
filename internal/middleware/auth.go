package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/SAP-F-2025/quiz-service/internal/config"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"
)

const (
	UserIDKey   = "user_id"
	authUserKey = "auth_user"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

// TokenVerifier resolves a bearer token into the authenticated user.
type TokenVerifier interface {
	Verify(token string) (*models.AuthUser, error)
}

// CasdoorVerifier checks tokens issued by a Casdoor application.
type CasdoorVerifier struct {
	client *casdoorsdk.Client
}

func NewCasdoorVerifier(cfg config.AuthConfig) *CasdoorVerifier {
	return &CasdoorVerifier{
		client: casdoorsdk.NewClient(
			cfg.Endpoint,
			cfg.ClientID,
			cfg.ClientSecret,
			cfg.Certificate,
			cfg.OrganizationName,
			cfg.ApplicationName,
		),
	}
}

func (v *CasdoorVerifier) Verify(token string) (*models.AuthUser, error) {
	claims, err := v.client.ParseJwtToken(token)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	id := claims.Id
	if id == "" && claims.Name != "" {
		id = claims.Owner + "/" + claims.Name
	}
	if id == "" {
		return nil, ErrInvalidToken
	}

	return &models.AuthUser{
		ID:          id,
		Name:        claims.Name,
		DisplayName: claims.DisplayName,
		Email:       claims.Email,
	}, nil
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(verifier TokenVerifier, logger utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := authenticate(c, verifier)
		if err != nil {
			logger.Warn("Authentication failed",
				"request_id", utils.GetRequestID(c),
				"path", c.Request.URL.Path,
				"error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "User not authenticated",
			})
			return
		}
		setUser(c, user)
		c.Next()
	}
}

// OptionalAuth attaches the user when a valid token is present and lets
// anonymous requests through. An invalid token is treated as anonymous.
func OptionalAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := authenticate(c, verifier); err == nil {
			setUser(c, user)
		}
		c.Next()
	}
}

// GetAuthUser returns the user stored by RequireAuth or OptionalAuth.
func GetAuthUser(c *gin.Context) (*models.AuthUser, bool) {
	value, exists := c.Get(authUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.AuthUser)
	return user, ok
}

// GetUserID returns the authenticated user id, or "" for anonymous requests.
func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

func authenticate(c *gin.Context, verifier TokenVerifier) (*models.AuthUser, error) {
	token := bearerToken(c.GetHeader("Authorization"))
	if token == "" {
		return nil, ErrMissingToken
	}
	return verifier.Verify(token)
}

func bearerToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func setUser(c *gin.Context, user *models.AuthUser) {
	c.Set(UserIDKey, user.ID)
	c.Set(authUserKey, user)
}
