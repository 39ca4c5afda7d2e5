package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danishayman/bobo-game-awards-sub000/internal/common"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/errorx"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/router"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/xcontext"
)

func Prometheus() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		code := 0
		if err := xcontext.Error(ctx); err != nil {
			var errx errorx.Error
			if errors.As(err, &errx) {
				code = int(errx.Code)
			} else {
				code = -1
			}
		}

		path := req.URL.Path
		if counter, ok := common.PromCounters[common.HTTPRequestTotal]; ok {
			counter.WithLabelValues(path, fmt.Sprint(code)).Inc()
		}

		if histogram, ok := common.PromHistograms[common.HTTPRequestDurationSeconds]; ok {
			histogram.WithLabelValues(path, fmt.Sprint(code)).
				Observe(time.Since(xcontext.StartTime(ctx)).Seconds())
		}
	}
}
