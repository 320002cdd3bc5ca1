package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storeadmin/internal/admin"
	"storeadmin/internal/apperror"
	"storeadmin/internal/response"
)

const principalKey = "principal"

// AuthGuard rejects requests without a valid bearer token and stores the
// resolved principal on the context. It does not check the admin flag; the
// admin operations do that themselves.
func AuthGuard(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			logrus.WithField("component", "auth").WithError(err).Debug("token rejected")
			response.Error(c, apperror.New(apperror.KindUnauthorized, "Not Authenticated"))
			return
		}

		principal, err := ParseToken(secret, raw)
		if err != nil {
			logrus.WithField("component", "auth").WithError(err).Debug("token rejected")
			response.Error(c, apperror.New(apperror.KindUnauthorized, "Not Authenticated"))
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// PrincipalFrom returns the principal set by AuthGuard. Without one the zero
// principal is returned, which holds no admin rights.
func PrincipalFrom(c *gin.Context) admin.Principal {
	if value, ok := c.Get(principalKey); ok {
		if principal, ok := value.(admin.Principal); ok {
			return principal
		}
	}
	return admin.Principal{}
}
