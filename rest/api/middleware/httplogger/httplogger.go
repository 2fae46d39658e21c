package httplogger

import (
	"io/ioutil"
	"os"

	"github.com/buger/jsonparser"

	"github.com/clearlend/loanclear/utils/clock"
	"github.com/clearlend/loanclear/utils/env"
	"github.com/clearlend/loanclear/utils/log"
	"github.com/kataras/iris"
	"github.com/kataras/iris/context"
)

type HTTPLogger struct{}

func New() iris.Handler {
	m := HTTPLogger{}
	return m.ServeHTTP
}

var masks = []string{
	"account",
	"token",
}

func (h *HTTPLogger) ServeHTTP(ctx context.Context) {
	start := clock.Now()
	ctx.Next()
	end := clock.Now()

	var (
		err     error
		service string
		body    []byte
	)

	if podName := env.GetVar("KUBERNETES_POD_NAME"); podName != "" {
		service = podName
	} else {
		service = os.Args[0]
	}

	// mask the sensitive fields
	if body, _ = ioutil.ReadAll(ctx.Request().Body); len(body) > 0 {
		for _, mask := range masks {
			if _, _, _, err = jsonparser.Get(body, mask); err == nil {
				body, _ = jsonparser.Set(body, []byte(`"xxx"`), mask)
			}
		}
	}

	log.Info("http request",
		"service", service,
		"deployment", env.GetVar("LOANCLEAR_MODE"),
		"elapsed", end.Sub(start).Seconds(),
		"status_code", ctx.GetStatusCode(),
		"ip", ctx.RemoteAddr(),
		"method", ctx.Method(),
		"path", ctx.Path(),
		"query", ctx.Request().URL.RawQuery,
		"admin_id", ctx.Values().GetString("admin_id"),
		"body", string(body),
	)
}
