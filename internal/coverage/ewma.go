package coverage

import (
	"math"
	"time"

	"github.com/replenix/backend/internal/contracts"
)

// EWMAResult 지수 감쇠 가중 평균/분산
type EWMAResult struct {
	Mean     float64
	Variance float64
	StdDev   float64
	// Points 추정에 실제로 기여한 관측 수 (가용률 보정으로 제외된 날 제외)
	Points int
}

// WeightedMovingAverage 반감기 기반 지수 가중 이동 평균
// halfLife일 전의 관측은 최신 관측의 절반 가중치를 받는다:
// weight = 0.5^(age/halfLife)
// 평면 윈도 평균보다 최근 변화에 민감하면서 과거를 버리지 않는다.
type WeightedMovingAverage struct {
	halfLife float64
}

// NewWeightedMovingAverage creates an EWMA estimator. halfLife must be > 0
// (engineconfig validation guarantees this).
func NewWeightedMovingAverage(halfLife float64) *WeightedMovingAverage {
	return &WeightedMovingAverage{halfLife: halfLife}
}

// Calculate computes the decayed mean and variance of the series as of asOf.
func (w *WeightedMovingAverage) Calculate(points []contracts.ProcessedDataPoint, asOf time.Time) EWMAResult {
	weightSum := 0.0
	weightedSum := 0.0
	used := 0

	weights := make([]float64, len(points))
	for i, pt := range points {
		if !pt.Available {
			continue
		}
		age := asOf.Sub(pt.Date).Hours() / 24
		if age < 0 {
			age = 0
		}
		weight := math.Pow(0.5, age/w.halfLife)
		weights[i] = weight
		weightSum += weight
		weightedSum += weight * pt.Demand
		used++
	}

	if used == 0 || weightSum == 0 {
		return EWMAResult{}
	}

	m := weightedSum / weightSum

	varSum := 0.0
	for i, pt := range points {
		if !pt.Available {
			continue
		}
		d := pt.Demand - m
		varSum += weights[i] * d * d
	}
	v := varSum / weightSum

	return EWMAResult{
		Mean:     m,
		Variance: v,
		StdDev:   math.Sqrt(v),
		Points:   used,
	}
}
