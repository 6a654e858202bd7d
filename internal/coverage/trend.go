package coverage

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/replenix/backend/internal/contracts"
	"github.com/replenix/backend/internal/engineconfig"
)

// TrendResult 추세 적합 결과
type TrendResult struct {
	// CurrentLevel 마지막 관측 시점의 적합 수요 수준 (계절성 제거 기준)
	CurrentLevel float64
	// Slope 로그 공간의 일 단위 기울기
	Slope float64
	// TrendFactor 일 단위 승수 성장률 (1.02 = 2%/일). [0.5, 2.0]로 클램프.
	TrendFactor float64
	// Confidence 적합 품질 R² (0~1). 잔차 분산이 클수록 낮다.
	Confidence float64
}

// neutralTrend 추세 없음
func neutralTrend(level float64) TrendResult {
	return TrendResult{CurrentLevel: level, Slope: 0, TrendFactor: 1, Confidence: 0}
}

// TrendAnalyzer 계절성이 제거된 시계열에 로그 공간 최소제곱 추세를 적합한다.
type TrendAnalyzer struct {
	cfg engineconfig.Config
	log zerolog.Logger
}

// NewTrendAnalyzer creates a trend analyzer.
func NewTrendAnalyzer(cfg engineconfig.Config, log zerolog.Logger) *TrendAnalyzer {
	return &TrendAnalyzer{
		cfg: cfg,
		log: log.With().Str("component", "coverage.trend").Logger(),
	}
}

// Analyze fits ln(demand+1) against day index by ordinary least squares.
// 로그 공간이라 기울기의 지수가 곧 승수 성장률이 된다. 관측 결측(갭)은
// 날짜 차이를 x축으로 써서 그대로 반영한다.
func (t *TrendAnalyzer) Analyze(points []contracts.ProcessedDataPoint) TrendResult {
	xs, ys := t.series(points)
	n := len(xs)
	if n < minTrendPoints {
		return neutralTrend(meanOfExp(ys))
	}

	meanX := mean(xs)
	meanY := mean(ys)

	ssXX, ssXY, ssYY := 0.0, 0.0, 0.0
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		ssXX += dx * dx
		ssXY += dx * dy
		ssYY += dy * dy
	}
	if ssXX == 0 {
		return neutralTrend(meanOfExp(ys))
	}

	slope := ssXY / ssXX
	intercept := meanY - slope*meanX

	// 평탄한 시계열: 분산이 없으면 완벽히 예측 가능. 추세 0, 신뢰도 1.
	const eps = 1e-12
	if ssYY < eps {
		return TrendResult{CurrentLevel: meanOfExp(ys), Slope: 0, TrendFactor: 1, Confidence: 1}
	}

	ssRes := 0.0
	for i := 0; i < n; i++ {
		r := ys[i] - (intercept + slope*xs[i])
		ssRes += r * r
	}
	confidence := clamp01(1 - ssRes/ssYY)

	lastX := xs[n-1]
	level := math.Exp(intercept+slope*lastX) - 1
	if level < 0 {
		level = 0
	}

	factor := clamp(math.Exp(slope), minTrendFactor, maxTrendFactor)

	t.log.Debug().
		Int("points", n).
		Float64("slope", slope).
		Float64("trend_factor", factor).
		Float64("confidence", confidence).
		Msg("trend fitted")

	return TrendResult{
		CurrentLevel: level,
		Slope:        slope,
		TrendFactor:  factor,
		Confidence:   confidence,
	}
}

// series extracts (day-index, ln(demand+1)) pairs from available points.
func (t *TrendAnalyzer) series(points []contracts.ProcessedDataPoint) (xs, ys []float64) {
	var origin *contracts.ProcessedDataPoint
	for i := range points {
		if points[i].Available {
			origin = &points[i]
			break
		}
	}
	if origin == nil {
		return nil, nil
	}

	for _, pt := range points {
		if !pt.Available {
			continue
		}
		x := pt.Date.Sub(origin.Date).Hours() / 24
		xs = append(xs, x)
		ys = append(ys, math.Log(pt.Demand+1))
	}
	return xs, ys
}

// meanOfExp 로그 공간 평균을 수요 단위로 되돌린다.
func meanOfExp(ys []float64) float64 {
	if len(ys) == 0 {
		return 0
	}
	v := math.Exp(mean(ys)) - 1
	if v < 0 {
		return 0
	}
	return v
}
