package engineconfig

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestValidateBoundInclusivity(t *testing.T) {
	tests := []struct {
		name  string
		tweak func(*Config)
		valid bool
	}{
		{"historical_days lower bound", func(c *Config) { c.HistoricalDays = 7 }, true},
		{"historical_days upper bound", func(c *Config) { c.HistoricalDays = 365 }, true},
		{"historical_days below", func(c *Config) { c.HistoricalDays = 6 }, false},
		{"historical_days above", func(c *Config) { c.HistoricalDays = 366 }, false},
		{"forecast_horizon lower bound", func(c *Config) { c.ForecastHorizon = 1 }, true},
		{"forecast_horizon above", func(c *Config) { c.ForecastHorizon = 91 }, false},
		{"half_life zero excluded", func(c *Config) { c.HalfLife = 0 }, false},
		{"half_life upper bound", func(c *Config) { c.HalfLife = 90 }, true},
		{"min_availability lower bound", func(c *Config) { c.MinAvailabilityFactor = 0.1 }, true},
		{"min_availability below", func(c *Config) { c.MinAvailabilityFactor = 0.05 }, false},
		{"outlier_cap lower bound", func(c *Config) { c.OutlierCapMultiplier = 1 }, true},
		{"outlier_cap above", func(c *Config) { c.OutlierCapMultiplier = 11 }, false},
		{"cache_timeout lower bound", func(c *Config) { c.CacheTimeoutSeconds = 60 }, true},
		{"cache_timeout below", func(c *Config) { c.CacheTimeoutSeconds = 59 }, false},
		{"batch_size lower bound", func(c *Config) { c.BatchSize = 1 }, true},
		{"batch_size above", func(c *Config) { c.BatchSize = 1001 }, false},
		{"service_level lower bound", func(c *Config) { c.ServiceLevel = 0.5 }, true},
		{"service_level above", func(c *Config) { c.ServiceLevel = 0.9999 }, false},
		{"safety_stock_days lower bound", func(c *Config) { c.SafetyStockDays = 0 }, true},
		{"safety_stock_days above", func(c *Config) { c.SafetyStockDays = 31 }, false},
	}

	for _, tc := range tests {
		cfg := Default()
		tc.tweak(&cfg)
		err := Validate(cfg)
		if tc.valid && err != nil {
			t.Errorf("%s: expected valid, got %v", tc.name, err)
		}
		if !tc.valid && err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
		}
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	cfg := Default()
	cfg.HistoricalDays = 0
	cfg.ForecastHorizon = 999
	cfg.HalfLife = -1
	cfg.ServiceLevel = 2

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected error")
	}

	var confErr *ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("expected *ConfigurationError, got %T", err)
	}
	if len(confErr.Violations) != 4 {
		t.Errorf("expected 4 violations reported together, got %d: %v", len(confErr.Violations), confErr)
	}

	// 위반 메시지는 필드/값/제약을 모두 담아야 한다
	msg := confErr.Error()
	for _, want := range []string{"historical_days", "forecast_horizon", "half_life", "service_level", "INVALID_CONFIGURATION"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message missing %q: %s", want, msg)
		}
	}
}

func TestMergeKeepsUnsetFields(t *testing.T) {
	days := 30
	level := 0.9
	merged := Merge(Default(), Partial{
		HistoricalDays: &days,
		ServiceLevel:   &level,
	})

	if merged.HistoricalDays != 30 {
		t.Errorf("expected historical_days=30, got %d", merged.HistoricalDays)
	}
	if merged.ServiceLevel != 0.9 {
		t.Errorf("expected service_level=0.9, got %f", merged.ServiceLevel)
	}
	// 지정하지 않은 필드는 기본값 유지
	if merged.ForecastHorizon != Default().ForecastHorizon {
		t.Errorf("unset field changed: %d", merged.ForecastHorizon)
	}
	if merged.EnableSeasonality != Default().EnableSeasonality {
		t.Error("unset bool field changed")
	}
}

func TestMergeAndValidateAtomic(t *testing.T) {
	days := 6 // 범위 위반
	cfg, err := MergeAndValidate(Partial{HistoricalDays: &days})
	if err == nil {
		t.Fatal("expected error")
	}
	// 원자성: 실패 시 부분 적용 없이 zero value
	if cfg != (Config{}) {
		t.Errorf("expected zero config on failure, got %+v", cfg)
	}
}

func TestPresetsAllValid(t *testing.T) {
	for _, name := range PresetNames() {
		p, ok := Preset(name)
		if !ok {
			t.Fatalf("preset %s not found", name)
		}
		if _, err := MergeAndValidate(p); err != nil {
			t.Errorf("preset %s must validate against defaults: %v", name, err)
		}
	}

	if len(Presets()) != len(PresetNames()) {
		t.Errorf("preset name list out of sync: %d vs %d", len(Presets()), len(PresetNames()))
	}
}

func TestPresetBehaviorDifferences(t *testing.T) {
	conservative, _ := MergeAndValidate(mustPreset(t, "conservative"))
	aggressive, _ := MergeAndValidate(mustPreset(t, "aggressive"))
	minimal, _ := MergeAndValidate(mustPreset(t, "minimal"))

	if conservative.ServiceLevel <= aggressive.ServiceLevel {
		t.Error("conservative should target a higher service level than aggressive")
	}
	if conservative.HistoricalDays <= aggressive.HistoricalDays {
		t.Error("conservative should use a longer history than aggressive")
	}
	if minimal.EnableSeasonality || minimal.EnableTrendCorrection {
		t.Error("minimal preset should disable seasonality and trend correction")
	}
}

func mustPreset(t *testing.T, name string) Partial {
	t.Helper()
	p, ok := Preset(name)
	if !ok {
		t.Fatalf("preset %s not found", name)
	}
	return p
}
