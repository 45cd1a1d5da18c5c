package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/fulldump/box"
	"github.com/google/uuid"
)

// RecoverFromPanic turns a handler panic into a 500 response. It must wrap
// PrettyErrorInterceptor, which does not run when the handler panics.
func RecoverFromPanic(next box.H) box.H {
	return func(ctx context.Context) {
		defer func() {
			if r := recover(); r != nil {
				debug.PrintStack()
				err := fmt.Errorf("panic: %v", r)
				box.SetError(ctx, err)

				w := box.GetResponse(ctx)
				w.WriteHeader(http.StatusInternalServerError)
				PrettyError{
					Message:     err.Error(),
					Description: "Unexpected error",
				}.MarshalTo(w)
			}
		}()
		next(ctx)
	}
}

// AccessLog writes one line per request. Every request gets an X-Request-Id
// unless the client sent one.
func AccessLog(l *log.Logger) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			r := box.GetRequest(ctx)
			w := box.GetResponse(ctx)

			requestId := r.Header.Get("X-Request-Id")
			if requestId == "" {
				requestId = uuid.NewString()
			}
			w.Header().Set("X-Request-Id", requestId)

			now := time.Now()
			defer func() {
				l.Println(now.UTC().Format(time.RFC3339Nano), requestId, formatRemoteAddr(r), r.Method, r.URL.String(), time.Since(now))
			}()

			next(ctx)
		}
	}
}

func formatRemoteAddr(r *http.Request) string {
	xorigin := strings.TrimSpace(strings.Split(
		r.Header.Get("X-Forwarded-For"), ",")[0])
	if xorigin != "" {
		return xorigin
	}

	i := strings.LastIndex(r.RemoteAddr, ":")
	if i < 0 {
		return r.RemoteAddr
	}
	return r.RemoteAddr[0:i]
}
