package middleware

import (
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Logging пишет строку лога на каждый запрос
func Logging(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			duration := time.Since(start)
			rid := GetRequestID(r.Context())
			switch {
			case rec.status >= http.StatusInternalServerError:
				logger.Error("%s %s - status=%d duration=%s request_id=%s", r.Method, r.URL.Path, rec.status, duration, rid)
			case rec.status >= http.StatusBadRequest:
				logger.Warn("%s %s - status=%d duration=%s request_id=%s", r.Method, r.URL.Path, rec.status, duration, rid)
			default:
				logger.Info("%s %s - status=%d duration=%s request_id=%s", r.Method, r.URL.Path, rec.status, duration, rid)
			}
		})
	}
}

// Recover превращает панику обработчика в 500
func Recover(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					logger.Error("%s %s - panic: %v request_id=%s", r.Method, r.URL.Path, p, GetRequestID(r.Context()))
					writeError(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
