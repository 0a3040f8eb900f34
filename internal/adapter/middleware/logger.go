package middleware

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const causeKey = "request.cause"

// SetCause records the internal error behind a response the handler has already written,
// so the request line carries it.
func SetCause(c echo.Context, err error) { c.Set(causeKey, err) }

// CauseFrom returns the error recorded by SetCause, nil if there is none.
func CauseFrom(c echo.Context) error {
	err, _ := c.Get(causeKey).(error)
	return err
}

// RequestLogger writes one zap line per request; 5xx at error level.
func RequestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
			}
			if v.RequestID != "" {
				fields = append(fields, zap.String("request_id", v.RequestID))
			}
			if p, ok := PrincipalFrom(c); ok {
				fields = append(fields, zap.String("user_id", p.UserID))
			}
			err := v.Error
			if err == nil {
				err = CauseFrom(c)
			}
			switch {
			case err != nil || v.Status >= 500:
				if err != nil {
					fields = append(fields, zap.Error(err))
				}
				log.Error("request", fields...)
			case v.Status >= 400:
				log.Warn("request", fields...)
			default:
				log.Info("request", fields...)
			}
			return nil
		},
	})
}
