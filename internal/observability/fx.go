package observability

import (
	"github.com/smallbiznis/kahraba/internal/observability/metrics"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(metrics.New),
)
