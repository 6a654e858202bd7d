package commands

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/replenix/backend/internal/coverage"
	"github.com/replenix/backend/internal/datasource"
	"github.com/replenix/backend/internal/engineconfig"
	"github.com/replenix/backend/pkg/config"
	"github.com/replenix/backend/pkg/logger"
)

// initDeps wires the process config, logger, engine config and data source.
// 엔진 튜닝 우선순위: --tuning 파일 > --preset > 기본값
func initDeps() (*config.Config, zerolog.Logger, *coverage.Calculator, *datasource.FileSource, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Logger{}, nil, nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	engineCfg, err := resolveEngineConfig(cfg)
	if err != nil {
		return nil, zerolog.Logger{}, nil, nil, err
	}

	calc, err := coverage.NewCalculatorWithConfig(engineCfg, log)
	if err != nil {
		return nil, zerolog.Logger{}, nil, nil, fmt.Errorf("build calculator: %w", err)
	}

	dir := dataDir
	if dir == "" {
		dir = cfg.DataDir
	}
	source := datasource.NewFileSource(dir)

	return cfg, log, calc, source, nil
}

func resolveEngineConfig(cfg *config.Config) (engineconfig.Config, error) {
	path := tuningFile
	if path == "" {
		path = cfg.TuningFile
	}
	if path != "" {
		engineCfg, err := engineconfig.Load(path)
		if err != nil {
			return engineconfig.Config{}, fmt.Errorf("load tuning file: %w", err)
		}
		return engineCfg, nil
	}

	if preset != "" {
		p, ok := engineconfig.Preset(preset)
		if !ok {
			return engineconfig.Config{}, fmt.Errorf("unknown preset %q", preset)
		}
		return engineconfig.MergeAndValidate(p)
	}

	return engineconfig.Default(), nil
}
