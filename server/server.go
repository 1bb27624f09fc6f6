package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/newsdeck/newsdeck/server/api"
	"github.com/newsdeck/newsdeck/session"
	"gorm.io/gorm"
)

const (
	identityKey       = "identity"
	requestContextKey = "requestContext"
)

// Server bundles the dependencies of the HTTP layer.
type Server struct {
	DB       *gorm.DB
	Sessions session.Store
}

// NewRouter builds the gin engine: CORS, identity resolution on every
// request, the single action-dispatch API endpoint and a healthcheck.
func NewRouter(s *Server) *gin.Engine {
	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()

	router.Use(cors.Default())
	router.Use(s.IdentityMiddleware())

	handler := s.APIHandler()
	router.POST("/api", handler)
	router.GET("/api", handler)

	router.GET("/api/healthcheck", HealthcheckHandler())

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "newsdeck - API not found"})
	})

	return router
}

// IdentityMiddleware establishes the acting user for every request:
// session token first, then guest cookie, else a newly minted guest. Any
// cookie-issuance instruction from the resolver is applied to the
// response here, the business layer never touches headers.
func (s *Server) IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/api/healthcheck" {
			c.Next()
			return
		}

		sessionToken, _ := c.Cookie(api.SessionCookieName)
		guestCookie, _ := c.Cookie(api.GuestCookieName)
		rc := api.RequestContext{SessionToken: sessionToken, GuestCookie: guestCookie}

		identity, err := api.ResolveIdentity(c.Request.Context(), s.DB, s.Sessions, rc)
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}
		applyCookies(c, identity.SetCookies)

		c.Set(identityKey, identity)
		c.Set(requestContextKey, rc)
		c.Next()
	}
}

func HealthcheckHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func applyCookies(c *gin.Context, cookies []api.CookieInstruction) {
	for _, cookie := range cookies {
		c.SetCookie(cookie.Name, cookie.Value, cookie.MaxAge, "/", "", false, true)
	}
}

func identityFrom(c *gin.Context) *api.Identity {
	return c.MustGet(identityKey).(*api.Identity)
}

func requestContextFrom(c *gin.Context) api.RequestContext {
	return c.MustGet(requestContextKey).(api.RequestContext)
}

func respondOK(c *gin.Context, payload gin.H) {
	if payload == nil {
		payload = gin.H{}
	}
	payload["success"] = true
	c.JSON(http.StatusOK, payload)
}

// respondError reports failure in the body; HTTP status stays 200 because
// the web client treats any non-true success (or presence of error) as
// failure and ignores status codes.
func respondError(c *gin.Context, err error) {
	c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
}
