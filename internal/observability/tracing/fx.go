package tracing

import (
	"github.com/smallbiznis/atelier/internal/config"
	"go.uber.org/fx"
)

func configFromApp(cfg config.Config) Config {
	return Config{
		Enabled:          cfg.Tracing.Enabled,
		ServiceName:      cfg.Service.Name,
		Environment:      cfg.Service.Environment,
		ExporterEndpoint: cfg.Tracing.ExporterEndpoint,
		ExporterProtocol: cfg.Tracing.ExporterProtocol,
		SamplingRatio:    cfg.Tracing.SamplingRatio,
	}
}

var Module = fx.Module("observability.tracing",
	fx.Provide(configFromApp),
	fx.Invoke(NewProvider),
)
