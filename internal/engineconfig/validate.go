package engineconfig

import (
	"fmt"
	"strings"

	"github.com/replenix/backend/internal/contracts"
)

// FieldError 단일 필드의 범위 위반
type FieldError struct {
	Field      string
	Value      interface{}
	Constraint string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %v violates %s", e.Field, e.Value, e.Constraint)
}

// ConfigurationError 설정 검증 실패.
// fail-fast가 아니라 모든 위반을 모아서 한 번에 보고한다.
type ConfigurationError struct {
	Violations []FieldError
}

func (e *ConfigurationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Error()
	}
	return fmt.Sprintf("%s: %s", contracts.ErrInvalidConfiguration, strings.Join(msgs, "; "))
}

// Code returns the engine error code for this failure.
func (e *ConfigurationError) Code() contracts.ErrorCode {
	return contracts.ErrInvalidConfiguration
}

// Validate checks every field independently and reports all violations together.
func Validate(cfg Config) error {
	var violations []FieldError

	if cfg.HistoricalDays < 7 || cfg.HistoricalDays > 365 {
		violations = append(violations, FieldError{"historical_days", cfg.HistoricalDays, "range [7, 365]"})
	}
	if cfg.ForecastHorizon < 1 || cfg.ForecastHorizon > 90 {
		violations = append(violations, FieldError{"forecast_horizon", cfg.ForecastHorizon, "range [1, 90]"})
	}
	if cfg.HalfLife <= 0 || cfg.HalfLife > 90 {
		violations = append(violations, FieldError{"half_life", cfg.HalfLife, "range (0, 90]"})
	}
	if cfg.MinAvailabilityFactor < 0.1 || cfg.MinAvailabilityFactor > 1 {
		violations = append(violations, FieldError{"min_availability_factor", cfg.MinAvailabilityFactor, "range [0.1, 1]"})
	}
	if cfg.OutlierCapMultiplier < 1 || cfg.OutlierCapMultiplier > 10 {
		violations = append(violations, FieldError{"outlier_cap_multiplier", cfg.OutlierCapMultiplier, "range [1, 10]"})
	}
	if cfg.CacheTimeoutSeconds < 60 || cfg.CacheTimeoutSeconds > 86400 {
		violations = append(violations, FieldError{"cache_timeout_seconds", cfg.CacheTimeoutSeconds, "range [60, 86400]"})
	}
	if cfg.BatchSize < 1 || cfg.BatchSize > 1000 {
		violations = append(violations, FieldError{"batch_size", cfg.BatchSize, "range [1, 1000]"})
	}
	if cfg.ServiceLevel < 0.5 || cfg.ServiceLevel > 0.999 {
		violations = append(violations, FieldError{"service_level", cfg.ServiceLevel, "range [0.5, 0.999]"})
	}
	if cfg.SafetyStockDays < 0 || cfg.SafetyStockDays > 30 {
		violations = append(violations, FieldError{"safety_stock_days", cfg.SafetyStockDays, "range [0, 30]"})
	}

	if len(violations) > 0 {
		return &ConfigurationError{Violations: violations}
	}
	return nil
}
