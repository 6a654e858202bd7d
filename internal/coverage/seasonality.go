package coverage

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/replenix/backend/internal/contracts"
	"github.com/replenix/backend/internal/engineconfig"
)

// SeasonalityFactors 요일별 승수 지수. 인덱스는 time.Weekday (일요일=0).
// 1.0 = 평균과 동일, 1.2 = 평균 대비 20% 높은 수요.
type SeasonalityFactors [7]float64

// neutralFactors 계절성 없음 (모든 요일 1.0)
func neutralFactors() SeasonalityFactors {
	return SeasonalityFactors{1, 1, 1, 1, 1, 1, 1}
}

// SeasonalityAdjuster 요일 계절성 산출/제거기 (승수 모델)
type SeasonalityAdjuster struct {
	cfg engineconfig.Config
	log zerolog.Logger
}

// NewSeasonalityAdjuster creates a seasonality adjuster.
func NewSeasonalityAdjuster(cfg engineconfig.Config, log zerolog.Logger) *SeasonalityAdjuster {
	return &SeasonalityAdjuster{
		cfg: cfg,
		log: log.With().Str("component", "coverage.seasonality").Logger(),
	}
}

// Factors derives per-weekday indices: weekday average / overall average.
// 비활성화 상태거나 요일별 관측이 부족하면 해당 요일은 1.0.
func (s *SeasonalityAdjuster) Factors(points []contracts.ProcessedDataPoint) SeasonalityFactors {
	factors := neutralFactors()
	if !s.cfg.EnableSeasonality {
		return factors
	}

	var sums [7]float64
	var counts [7]int
	totalSum := 0.0
	totalCount := 0
	for _, pt := range points {
		if !pt.Available {
			continue
		}
		wd := pt.Date.Weekday()
		sums[wd] += pt.Demand
		counts[wd]++
		totalSum += pt.Demand
		totalCount++
	}

	if totalCount == 0 || totalSum == 0 {
		return factors
	}
	overall := totalSum / float64(totalCount)

	for wd := 0; wd < 7; wd++ {
		if counts[wd] < minWeekdayObservations {
			continue
		}
		factors[wd] = (sums[wd] / float64(counts[wd])) / overall
	}
	return factors
}

// Deseasonalize divides each point's demand by its weekday factor.
// 추세 적합에 쓸 평탄화된 시계열을 새로 만들어 반환한다 (입력 불변).
func (s *SeasonalityAdjuster) Deseasonalize(points []contracts.ProcessedDataPoint, factors SeasonalityFactors) []contracts.ProcessedDataPoint {
	out := make([]contracts.ProcessedDataPoint, len(points))
	copy(out, points)
	for i := range out {
		if !out[i].Available {
			continue
		}
		f := factors[out[i].Date.Weekday()]
		if f < minSeasonalityFactor {
			f = minSeasonalityFactor
		}
		out[i].Demand /= f
	}
	return out
}

// HorizonFactor averages the weekday factors across the forecast horizon.
// 특정 요일 하나의 지수를 쓰면 다일 예측이 그 요일 쪽으로 치우치므로 평균을 쓴다.
func (s *SeasonalityAdjuster) HorizonFactor(factors SeasonalityFactors, from time.Time, horizonDays int) float64 {
	if horizonDays <= 0 {
		return 1
	}
	sum := 0.0
	for i := 1; i <= horizonDays; i++ {
		sum += factors[from.AddDate(0, 0, i).Weekday()]
	}
	return sum / float64(horizonDays)
}
