package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskflow/internal/service"
)

const authClaimsKey = "auth_claims"

// RequireAuth corta con 401 todo request sin un access token válido y
// deja los claims resueltos en el contexto para los handlers.
func RequireAuth(jwtSvc *service.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if jwtSvc == nil {
			// Error de cableado del router, no una condición de request.
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "jwt not configured"})
			return
		}

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		claims, err := jwtSvc.ParseAccessToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(authClaimsKey, claims)
		c.Next()
	}
}

// bearerToken extrae el token de un header "Authorization: Bearer <token>".
// El esquema se compara sin distinguir mayúsculas; un token vacío no cuenta.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// AuthClaims obtiene los claims completos desde el contexto.
func AuthClaims(c *gin.Context) (service.Claims, bool) {
	val, ok := c.Get(authClaimsKey)
	if !ok {
		return service.Claims{}, false
	}
	claims, ok := val.(service.Claims)
	return claims, ok
}

// AuthUserID obtiene la identidad del dueño del request; es lo único que
// necesitan los handlers de tareas.
func AuthUserID(c *gin.Context) (string, bool) {
	claims, ok := AuthClaims(c)
	if !ok || claims.UserID == "" {
		return "", false
	}
	return claims.UserID, true
}
