package main

import (
	"context"
	"flag"
	"os"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/atelier/internal/clock"
	"github.com/smallbiznis/atelier/internal/config"
	"github.com/smallbiznis/atelier/internal/editor"
	"github.com/smallbiznis/atelier/internal/events"
	"github.com/smallbiznis/atelier/internal/export"
	"github.com/smallbiznis/atelier/internal/logger"
	"github.com/smallbiznis/atelier/internal/observability/tracing"
	"github.com/smallbiznis/atelier/internal/pricing"
	"github.com/smallbiznis/atelier/internal/template"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	designPath := flag.String("design", "", "path to a saved design document (JSON)")
	exportPath := flag.String("export", "", "write the rendered design to this file")
	format := flag.String("format", "svg", "export format: svg, png, jpg, pdf")
	flag.Parse()

	app := fx.New(
		config.Module,
		logger.Module,
		clock.Module,
		events.Module,
		tracing.Module,
		fx.Provide(func() *snowflake.Node {
			node, err := snowflake.NewNode(1)
			if err != nil {
				panic(err)
			}
			return node
		}),
		pricing.Module,
		editor.Module,
		export.Module,
		fx.Invoke(func(lc fx.Lifecycle, shutdowner fx.Shutdowner, log *zap.Logger, engine *editor.Engine, exporter *export.Service) {
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					go func() {
						code := 0
						if err := run(context.Background(), log, engine, exporter, *designPath, *exportPath, export.Format(*format)); err != nil {
							log.Error("run failed", zap.Error(err))
							code = 1
						}
						_ = shutdowner.Shutdown(fx.ExitCode(code))
					}()
					return nil
				},
			})
		}),
	)
	app.Run()
}

func run(
	ctx context.Context,
	log *zap.Logger,
	engine *editor.Engine,
	exporter *export.Service,
	designPath, exportPath string,
	format export.Format,
) error {
	log.Info("atelier starting", zap.String("version", version))

	if designPath != "" {
		doc, err := template.LoadFile(designPath)
		if err != nil {
			return err
		}
		if err := engine.LoadDesign(ctx, doc); err != nil {
			return err
		}
	}

	breakdown := engine.Breakdown()
	log.Info("design priced",
		zap.Int("elements", len(engine.Elements())),
		zap.Int("areas", len(engine.Areas())),
		zap.Float64("total", breakdown.Base),
	)

	violations, err := engine.CheckConstraints()
	if err != nil {
		return err
	}
	for _, violation := range violations {
		log.Warn("area constraint violated",
			zap.String("area_id", violation.AreaID),
			zap.String("element_id", violation.ElementID),
			zap.String("kind", string(violation.Kind)),
		)
	}

	if exportPath != "" {
		data, err := exporter.Export(ctx, format, engine.Elements(), engine.Canvas())
		if err != nil {
			return err
		}
		if err := os.WriteFile(exportPath, data, 0o644); err != nil {
			return err
		}
		log.Info("design exported",
			zap.String("path", exportPath),
			zap.String("format", string(format)),
			zap.Int("bytes", len(data)),
		)
	}

	return nil
}
