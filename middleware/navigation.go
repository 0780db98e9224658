package middleware

import (
	"context"
	"net/http"

	"github.com/a7med3yad/Cartify-Frontend/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NavigateHeader tells the view layer where to go next, the login page after
// the API rejected the session.
const NavigateHeader = "X-Navigate-To"

type writerKey struct{}

// Navigation makes the response writer reachable from the request context so
// a HeaderNavigator can flag the pending navigation while the handler runs.
func Navigation() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), writerKey{}, http.ResponseWriter(c.Writer)))
		c.Next()
	}
}

// HeaderNavigator implements the gateway's Navigator by setting
// X-Navigate-To on the in-flight response. Outside a request it only logs.
type HeaderNavigator struct {
	Log *zap.Logger
}

func (n HeaderNavigator) Navigate(ctx context.Context, target string) {
	logger.FromContext(ctx, n.Log).Info("navigation requested", zap.String("target", target))
	if w, ok := ctx.Value(writerKey{}).(http.ResponseWriter); ok {
		w.Header().Set(NavigateHeader, target)
	}
}
