package pricing

import (
	"github.com/smallbiznis/atelier/internal/cache"
	"go.uber.org/fx"
)

var Module = fx.Module("pricing",
	fx.Provide(
		cache.NewProjectionCache,
		NewCalculator,
	),
)
