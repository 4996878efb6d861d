package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/kumar-97/kukkuta-Kendra/internal/auth/principal"
	"github.com/kumar-97/kukkuta-Kendra/internal/i18n"
	"github.com/kumar-97/kukkuta-Kendra/pkg/metrics"
)

// Authenticate resolves the bearer token into a principal and stores it on
// the context. Requests without a usable principal never reach the handler.
func Authenticate(resolver *principal.Resolver, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := principal.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			m.AuthFailure(string(i18n.KindUnauthenticated))
			i18n.RespondWithError(c, i18n.ErrUnauthenticated)
			return
		}

		p, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			m.AuthFailure(string(i18n.KindOf(err)))
			i18n.RespondWithError(c, err)
			return
		}

		principal.WithContext(c, p)
		c.Next()
	}
}
