package engineconfig

// Config는 재고 커버리지 엔진의 전체 튜닝 설정
// 검증을 통과한 뒤에는 불변으로 취급한다. 다른 설정 = 다른 Calculator 인스턴스.
type Config struct {
	HistoricalDays            int     `yaml:"historical_days" json:"historical_days"`                         // [7, 365]
	ForecastHorizon           int     `yaml:"forecast_horizon" json:"forecast_horizon"`                       // [1, 90]
	HalfLife                  float64 `yaml:"half_life" json:"half_life"`                                     // (0, 90]
	MinAvailabilityFactor     float64 `yaml:"min_availability_factor" json:"min_availability_factor"`         // [0.1, 1]
	OutlierCapMultiplier      float64 `yaml:"outlier_cap_multiplier" json:"outlier_cap_multiplier"`           // [1, 10]
	EnableSeasonality         bool    `yaml:"enable_seasonality" json:"enable_seasonality"`
	EnableTrendCorrection     bool    `yaml:"enable_trend_correction" json:"enable_trend_correction"`
	EnablePromotionAdjustment bool    `yaml:"enable_promotion_adjustment" json:"enable_promotion_adjustment"`
	EnableCache               bool    `yaml:"enable_cache" json:"enable_cache"`
	CacheTimeoutSeconds       int     `yaml:"cache_timeout_seconds" json:"cache_timeout_seconds"` // [60, 86400]
	BatchSize                 int     `yaml:"batch_size" json:"batch_size"`                       // [1, 1000]
	ServiceLevel              float64 `yaml:"service_level" json:"service_level"`                 // [0.5, 0.999]
	SafetyStockDays           float64 `yaml:"safety_stock_days" json:"safety_stock_days"`         // [0, 30]
}

// Partial 부분 설정. nil 필드는 "지정 안 함"을 의미하며 병합 시 기본값이 유지된다.
type Partial struct {
	HistoricalDays            *int     `yaml:"historical_days,omitempty" json:"historical_days,omitempty"`
	ForecastHorizon           *int     `yaml:"forecast_horizon,omitempty" json:"forecast_horizon,omitempty"`
	HalfLife                  *float64 `yaml:"half_life,omitempty" json:"half_life,omitempty"`
	MinAvailabilityFactor     *float64 `yaml:"min_availability_factor,omitempty" json:"min_availability_factor,omitempty"`
	OutlierCapMultiplier      *float64 `yaml:"outlier_cap_multiplier,omitempty" json:"outlier_cap_multiplier,omitempty"`
	EnableSeasonality         *bool    `yaml:"enable_seasonality,omitempty" json:"enable_seasonality,omitempty"`
	EnableTrendCorrection     *bool    `yaml:"enable_trend_correction,omitempty" json:"enable_trend_correction,omitempty"`
	EnablePromotionAdjustment *bool    `yaml:"enable_promotion_adjustment,omitempty" json:"enable_promotion_adjustment,omitempty"`
	EnableCache               *bool    `yaml:"enable_cache,omitempty" json:"enable_cache,omitempty"`
	CacheTimeoutSeconds       *int     `yaml:"cache_timeout_seconds,omitempty" json:"cache_timeout_seconds,omitempty"`
	BatchSize                 *int     `yaml:"batch_size,omitempty" json:"batch_size,omitempty"`
	ServiceLevel              *float64 `yaml:"service_level,omitempty" json:"service_level,omitempty"`
	SafetyStockDays           *float64 `yaml:"safety_stock_days,omitempty" json:"safety_stock_days,omitempty"`
}

// Default returns the balanced baseline configuration.
func Default() Config {
	return Config{
		HistoricalDays:            90,
		ForecastHorizon:           14,
		HalfLife:                  14,
		MinAvailabilityFactor:     0.5,
		OutlierCapMultiplier:      3,
		EnableSeasonality:         true,
		EnableTrendCorrection:     true,
		EnablePromotionAdjustment: false,
		EnableCache:               true,
		CacheTimeoutSeconds:       3600,
		BatchSize:                 50,
		ServiceLevel:              0.95,
		SafetyStockDays:           3,
	}
}

// Merge applies the non-nil fields of p on top of base.
func Merge(base Config, p Partial) Config {
	out := base
	if p.HistoricalDays != nil {
		out.HistoricalDays = *p.HistoricalDays
	}
	if p.ForecastHorizon != nil {
		out.ForecastHorizon = *p.ForecastHorizon
	}
	if p.HalfLife != nil {
		out.HalfLife = *p.HalfLife
	}
	if p.MinAvailabilityFactor != nil {
		out.MinAvailabilityFactor = *p.MinAvailabilityFactor
	}
	if p.OutlierCapMultiplier != nil {
		out.OutlierCapMultiplier = *p.OutlierCapMultiplier
	}
	if p.EnableSeasonality != nil {
		out.EnableSeasonality = *p.EnableSeasonality
	}
	if p.EnableTrendCorrection != nil {
		out.EnableTrendCorrection = *p.EnableTrendCorrection
	}
	if p.EnablePromotionAdjustment != nil {
		out.EnablePromotionAdjustment = *p.EnablePromotionAdjustment
	}
	if p.EnableCache != nil {
		out.EnableCache = *p.EnableCache
	}
	if p.CacheTimeoutSeconds != nil {
		out.CacheTimeoutSeconds = *p.CacheTimeoutSeconds
	}
	if p.BatchSize != nil {
		out.BatchSize = *p.BatchSize
	}
	if p.ServiceLevel != nil {
		out.ServiceLevel = *p.ServiceLevel
	}
	if p.SafetyStockDays != nil {
		out.SafetyStockDays = *p.SafetyStockDays
	}
	return out
}

// MergeAndValidate merges p over Default() and validates the result.
// 위반이 하나라도 있으면 설정은 전혀 적용되지 않는다 (원자성).
func MergeAndValidate(p Partial) (Config, error) {
	cfg := Merge(Default(), p)
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
