package coverage

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/replenix/backend/internal/contracts"
	"github.com/replenix/backend/internal/engineconfig"
)

// Calculator 재고 커버리지 예측 오케스트레이터
// ⭐ SSOT: 예측 파이프라인의 순서는 여기서만 결정된다
// (전처리 → 품질 → 계절성 → 역계절화 → 추세 → EWMA → 예측 → 권고)
//
// 설정은 생성 시 한 번 검증되고 이후 불변이므로 같은 인스턴스를
// 여러 고루틴에서 동시에 호출해도 안전하다.
type Calculator struct {
	cfg    engineconfig.Config
	pre    *Preprocessor
	season *SeasonalityAdjuster
	trend  *TrendAnalyzer
	ewma   *WeightedMovingAverage
	log    zerolog.Logger

	// now는 테스트에서 고정할 수 있다. calculatedAt/expiresAt에만 쓰인다.
	now func() time.Time
}

// NewCalculator merges the partial tuning over defaults, validates once, and
// wires the pipeline. 검증 실패 시 *engineconfig.ConfigurationError.
func NewCalculator(partial engineconfig.Partial, log zerolog.Logger) (*Calculator, error) {
	cfg, err := engineconfig.MergeAndValidate(partial)
	if err != nil {
		return nil, err
	}
	return NewCalculatorWithConfig(cfg, log)
}

// NewCalculatorWithConfig builds a calculator from a full config.
func NewCalculatorWithConfig(cfg engineconfig.Config, log zerolog.Logger) (*Calculator, error) {
	if err := engineconfig.Validate(cfg); err != nil {
		return nil, err
	}
	clog := log.With().Str("component", "coverage.calculator").Logger()
	return &Calculator{
		cfg:    cfg,
		pre:    NewPreprocessor(cfg, log),
		season: NewSeasonalityAdjuster(cfg, log),
		trend:  NewTrendAnalyzer(cfg, log),
		ewma:   NewWeightedMovingAverage(cfg.HalfLife),
		log:    clog,
		now:    time.Now,
	}, nil
}

// Config returns a copy of the validated configuration.
func (c *Calculator) Config() engineconfig.Config {
	return c.cfg
}

// Calculate runs the full single-item pipeline.
// 순수 CPU 작업이며 I/O와 공유 상태가 없다. 부족한 이력과 수요 0은
// 오류가 아니라 낮은 신뢰도를 가진 정상 결과를 만든다.
func (c *Calculator) Calculate(input contracts.StockCoverageInput) (*contracts.StockCoverageResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	currentDate := input.CurrentDate
	if currentDate.IsZero() {
		currentDate = c.now()
	}

	points, quality := c.pre.Process(input.Sales, currentDate)

	factors := c.season.Factors(points)
	deseasonalized := c.season.Deseasonalize(points, factors)

	trend := c.trend.Analyze(deseasonalized)
	base := c.ewma.Calculate(deseasonalized, currentDate)

	horizonFactor := c.season.HorizonFactor(factors, currentDate, c.cfg.ForecastHorizon)
	forecast, stdDev := c.projectForecast(base, trend, horizonFactor)

	covP50, covP10, covP90 := c.coveragePercentiles(input.Product.CurrentStock, forecast, stdDev)
	reorderPoint, reorderQty := c.reorderRecommendations(input.Product, forecast, stdDev)
	risk := c.stockoutRisk(input.Product, forecast, stdDev)
	confidence := c.overallConfidence(quality, trend, base.Points)

	calculatedAt := c.now()
	result := &contracts.StockCoverageResult{
		SKU:                    input.Product.SKU,
		CoverageDays:           covP50,
		CoverageDaysP10:        covP10,
		CoverageDaysP90:        covP90,
		DemandForecast:         forecast,
		DemandStdDev:           stdDev,
		TrendFactor:            trend.TrendFactor,
		SeasonalityIndex:       horizonFactor,
		AvailabilityAdjustment: quality.AvailabilityIssues,
		Confidence:             confidence,
		DataQuality:            quality,
		ReorderPoint:           reorderPoint,
		ReorderQuantity:        reorderQty,
		StockoutRisk:           risk,
		HistoricalDaysUsed:     len(points),
		Algorithm:              contracts.Algorithm,
		CalculatedAt:           calculatedAt,
		ExpiresAt:              calculatedAt.Add(time.Duration(c.cfg.CacheTimeoutSeconds) * time.Second),
	}

	c.log.Debug().
		Str("sku", input.Product.SKU).
		Float64("forecast", forecast).
		Float64("coverage_days", covP50).
		Float64("stockout_risk", risk).
		Float64("confidence", confidence).
		Msg("coverage calculated")

	return result, nil
}

// projectForecast turns the EWMA base into a horizon-level daily forecast.
// 추세 보정은 신뢰도 게이트를 넘을 때만 적용되며, 구간 중점으로 투영해
// 수평선 양끝의 과/소추정을 피한다. 그 위에 구간 평균 계절 지수를 곱한다.
func (c *Calculator) projectForecast(base EWMAResult, trend TrendResult, horizonFactor float64) (forecast, stdDev float64) {
	level := base.Mean
	if c.cfg.EnableTrendCorrection && trend.Confidence > trendConfidenceGate {
		level = trend.CurrentLevel * math.Pow(trend.TrendFactor, float64(c.cfg.ForecastHorizon)/2)
	}

	forecast = level * horizonFactor
	if forecast < 0 {
		forecast = 0
	}

	// 포아송형 기저 분산에 추세 불확실성을 가중한다.
	stdDev = math.Sqrt(forecast) * (1 + math.Abs(trend.Slope)*float64(c.cfg.ForecastHorizon))
	return forecast, stdDev
}

// coveragePercentiles derives coverage days at three demand scenarios.
// 수요가 0이면 나누기 대신 센티널: 재고가 있으면 "무한", 없으면 0.
func (c *Calculator) coveragePercentiles(currentStock, forecast, stdDev float64) (p50, p10, p90 float64) {
	if forecast <= 0 {
		if currentStock > 0 {
			return contracts.InfiniteCoverageDays, contracts.InfiniteCoverageDays, contracts.InfiniteCoverageDays
		}
		return 0, 0, 0
	}

	demandP10 := math.Max(0.1, forecast+zScoreP10*stdDev) // 낙관 (저수요)
	demandP90 := forecast + zScoreP90*stdDev              // 보수 (고수요)

	p50 = currentStock / forecast
	p10 = currentStock / demandP10
	p90 = currentStock / demandP90
	return p50, p10, p90
}

// reorderRecommendations computes reorder point and quantity.
//
// reorderPoint = ceil(리드타임 수요 + 안전재고)
// 안전재고 = 서비스 수준 z × σ × sqrt(리드타임) + SafetyStockDays × 수요
// reorderQuantity = EOQ를 [minimumStock, maximumStock−currentStock]로 클램프.
// 단가가 0이면 EOQ 대신 최대재고까지의 여유분으로 폴백.
func (c *Calculator) reorderRecommendations(p contracts.Product, forecast, stdDev float64) (point, quantity float64) {
	leadTimeDemand := forecast * p.LeadTimeDays
	serviceZ := normQuantile(c.cfg.ServiceLevel)
	safetyStock := serviceZ*stdDev*math.Sqrt(p.LeadTimeDays) + c.cfg.SafetyStockDays*forecast
	point = math.Ceil(leadTimeDemand + safetyStock)
	if point < 0 {
		point = 0
	}

	headroom := math.Max(0, p.MaximumStock-p.CurrentStock)

	if p.CostPrice <= 0 {
		return point, headroom
	}

	annualDemand := forecast * daysPerYear
	eoq := math.Sqrt(2 * annualDemand * eoqOrderingCost / (eoqHoldingCostRate * p.CostPrice))
	if eoq < p.MinimumStock {
		eoq = p.MinimumStock
	}
	if eoq > headroom {
		eoq = headroom
	}
	return point, math.Ceil(eoq)
}

// stockoutRisk maps days-until-stockout/lead-time into a bounded heuristic risk.
// 닫힌 형식의 분포가 아니라 보정된 휴리스틱이다:
//   - 이미 품절(재고 0, 수요 > 0) → 1
//   - 수요 0 → 0 (소비가 없으면 품절도 없다)
//   - 커버리지 ≥ 2×리드타임 → 0
//   - 그 사이는 선형, 변동계수(CV)로 가중
func (c *Calculator) stockoutRisk(p contracts.Product, forecast, stdDev float64) float64 {
	if forecast <= 0 {
		return 0
	}
	if p.CurrentStock <= 0 {
		return 1
	}

	leadTime := p.LeadTimeDays
	if leadTime <= 0 {
		leadTime = 1
	}

	daysUntilStockout := p.CurrentStock / forecast
	ratio := daysUntilStockout / leadTime
	if ratio >= riskSafeLeadTimeMultiple {
		return 0
	}

	risk := 1 - ratio/riskSafeLeadTimeMultiple

	cv := stdDev / forecast
	risk *= 1 + riskCVInflation*math.Min(cv, 1)

	return clamp01(risk)
}

// overallConfidence blends data quality, trend fit quality and data volume.
// 가중치 0.4 / 0.3 / 0.3, [0,1]로 클램프.
func (c *Calculator) overallConfidence(quality contracts.DataQualityScore, trend TrendResult, pointsUsed int) float64 {
	volume := math.Min(1, float64(pointsUsed)/confVolumeFullDays)
	return clamp01(confWeightQuality*quality.OverallScore +
		confWeightTrend*trend.Confidence +
		confWeightVolume*volume)
}

// CalculateBatch processes inputs in chunks of BatchSize.
// 청크 내부는 동시 실행, 청크 간은 순차. 개별 실패는 SKU 단위로 로깅 후
// 결과 맵에서 제외되며 배치 전체를 중단시키지 않는다. 취소는 청크 사이에서만
// 확인한다 (협조적). onProgress는 nil일 수 있다.
func (c *Calculator) CalculateBatch(ctx context.Context, inputs []contracts.StockCoverageInput, onProgress contracts.ProgressFunc) (map[string]*contracts.StockCoverageResult, error) {
	total := len(inputs)
	results := make(map[string]*contracts.StockCoverageResult, total)

	var mu sync.Mutex
	completed := 0

	for start := 0; start < total; start += c.cfg.BatchSize {
		select {
		case <-ctx.Done():
			c.log.Warn().
				Int("completed", completed).
				Int("total", total).
				Msg("batch cancelled between chunks")
			return results, ctx.Err()
		default:
		}

		end := start + c.cfg.BatchSize
		if end > total {
			end = total
		}
		chunk := inputs[start:end]

		var wg sync.WaitGroup
		for _, input := range chunk {
			wg.Add(1)
			go func(in contracts.StockCoverageInput) {
				defer wg.Done()
				defer func() {
					if r := recover(); r != nil {
						c.log.Error().
							Str("sku", in.Product.SKU).
							Interface("panic", r).
							Msg("calculation panicked")
					}
				}()

				res, err := c.Calculate(in)
				if err != nil {
					c.log.Error().Err(err).
						Str("sku", in.Product.SKU).
						Msg("calculation failed")
					return
				}

				mu.Lock()
				results[res.SKU] = res
				mu.Unlock()
			}(input)
		}
		wg.Wait()

		completed += len(chunk)
		if onProgress != nil {
			onProgress(completed, total)
		}
	}

	c.log.Info().
		Int("total", total).
		Int("succeeded", len(results)).
		Msg("batch calculation completed")

	return results, nil
}

// String describes the calculator for diagnostics.
func (c *Calculator) String() string {
	return fmt.Sprintf("coverage.Calculator{algorithm=%s, historical_days=%d, horizon=%d}",
		contracts.Algorithm, c.cfg.HistoricalDays, c.cfg.ForecastHorizon)
}
