package middlewares

import (
	"ember-emr-service/internal/pkg/constvars"
	"ember-emr-service/internal/pkg/exceptions"
	"ember-emr-service/internal/pkg/utils"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// ErrorHandler turns a panic in a handler into a 500 response.
func (m *Middlewares) ErrorHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				var err error
				switch x := rec.(type) {
				case string:
					err = errors.New(x)
				case error:
					err = x
				default:
					err = fmt.Errorf("unknown panic: %v", x)
				}

				log := m.Log.With(zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())))
				utils.BuildErrorResponse(log, w, exceptions.ErrServerProcess(err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
