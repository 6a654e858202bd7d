package coverage

import (
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/replenix/backend/internal/contracts"
	"github.com/replenix/backend/internal/engineconfig"
)

// Preprocessor 원시 판매 시계열 정제기
// 이상치 캡, 가용률 보정, 데이터 품질 점수를 담당한다.
type Preprocessor struct {
	cfg engineconfig.Config
	log zerolog.Logger
}

// NewPreprocessor creates a preprocessor with a validated config.
func NewPreprocessor(cfg engineconfig.Config, log zerolog.Logger) *Preprocessor {
	return &Preprocessor{
		cfg: cfg,
		log: log.With().Str("component", "coverage.preprocessor").Logger(),
	}
}

// Process cleans the raw series and scores its quality.
// currentDate 기준 최근 HistoricalDays 내의 관측만 사용한다.
// 이력이 부족해도 합성 데이터를 만들지 않는다. 부족분은 품질 점수에 반영된다.
func (p *Preprocessor) Process(records []contracts.SalesRecord, currentDate time.Time) ([]contracts.ProcessedDataPoint, contracts.DataQualityScore) {
	windowed := p.window(records, currentDate)
	if len(windowed) == 0 {
		// 데이터가 전혀 없으면 품질 0
		return nil, contracts.DataQualityScore{}
	}

	points := make([]contracts.ProcessedDataPoint, 0, len(windowed))
	for _, r := range windowed {
		points = append(points, p.adjustAvailability(r))
	}

	capped := p.capOutliers(points)

	quality := p.scoreQuality(points, capped)

	p.log.Debug().
		Int("records", len(records)).
		Int("windowed", len(windowed)).
		Int("capped", capped).
		Float64("quality", quality.OverallScore).
		Msg("series preprocessed")

	return points, quality
}

// window filters to the trailing HistoricalDays and sorts ascending by date.
func (p *Preprocessor) window(records []contracts.SalesRecord, currentDate time.Time) []contracts.SalesRecord {
	cutoff := currentDate.AddDate(0, 0, -p.cfg.HistoricalDays)

	out := make([]contracts.SalesRecord, 0, len(records))
	for _, r := range records {
		if r.Date.After(cutoff) && !r.Date.After(currentDate) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// adjustAvailability converts a raw record into a processed point.
// 품절 중의 판매 0은 진짜 수요 0이 아니므로:
//   - 가용률 < MinAvailabilityFactor → 수요율 추정에서 제외 (Available=false)
//   - 부분 가용 → 수요를 1/availability로 상향 (상향 폭은 1/MinAvailabilityFactor로 제한됨)
func (p *Preprocessor) adjustAvailability(r contracts.SalesRecord) contracts.ProcessedDataPoint {
	availability := r.Availability
	// 필드 미지정(0)인데 판매가 있으면 당일 재고가 있었다는 뜻
	if availability <= 0 && r.Quantity > 0 {
		availability = 1
	}
	availability = clamp01(availability)

	qty := r.Quantity
	if p.cfg.EnablePromotionAdjustment && r.Promotion {
		qty *= promotionDampening
	}

	point := contracts.ProcessedDataPoint{
		Date:         r.Date,
		RawQuantity:  r.Quantity,
		Availability: availability,
	}

	if availability < p.cfg.MinAvailabilityFactor {
		// 제외: Demand 0, Available false
		return point
	}

	point.Available = true
	point.Demand = qty / availability
	return point
}

// capOutliers caps demand above OutlierCapMultiplier×(robust center) in place.
// 제거가 아니라 캡이다. 신호의 방향은 남기고 영향만 제한한다.
// 반환값은 캡이 적용된 관측 수.
func (p *Preprocessor) capOutliers(points []contracts.ProcessedDataPoint) int {
	demands := availableDemands(points)
	if len(demands) == 0 {
		return 0
	}

	center := median(demands)
	if center == 0 {
		// 중앙값 0이면 평균으로 폴백. 전부 0이면 캡 불가.
		center = mean(demands)
	}
	if center <= 0 {
		return 0
	}

	threshold := center * p.cfg.OutlierCapMultiplier
	capped := 0
	for i := range points {
		if points[i].Available && points[i].Demand > threshold {
			points[i].Demand = threshold
			points[i].Outlier = true
			capped++
		}
	}
	return capped
}

// scoreQuality combines four independent sub-scores.
// 가중치: 완전성 0.30, 일관성 0.25, 가용성 0.25, 이상치 0.20
func (p *Preprocessor) scoreQuality(points []contracts.ProcessedDataPoint, capped int) contracts.DataQualityScore {
	total := len(points)
	available := 0
	for _, pt := range points {
		if pt.Available {
			available++
		}
	}

	completeness := clamp01(float64(total) / float64(p.cfg.HistoricalDays))

	availabilityIssues := 0.0
	if total > 0 {
		availabilityIssues = float64(total-available) / float64(total)
	}

	outlierPct := 0.0
	if available > 0 {
		outlierPct = float64(capped) / float64(available)
	}

	consistency := p.scoreConsistency(points)

	overall := qualityWeightCompleteness*completeness +
		qualityWeightConsistency*consistency +
		qualityWeightAvailability*(1-availabilityIssues) +
		qualityWeightOutliers*(1-outlierPct)

	return contracts.DataQualityScore{
		Completeness:       completeness,
		Consistency:        consistency,
		AvailabilityIssues: availabilityIssues,
		OutlierPercentage:  outlierPct,
		OverallScore:       clamp01(overall),
	}
}

// scoreConsistency 주 단위 블록 분산의 안정성으로 일관성을 본다.
// 블록 분산들의 표준편차(분산의 분산)가 작을수록 1에 가깝다.
func (p *Preprocessor) scoreConsistency(points []contracts.ProcessedDataPoint) float64 {
	demands := availableDemands(points)
	if len(demands) < 14 {
		// 두 블록 미만이면 판단 근거가 없다. 중립값.
		return 0.5
	}

	var blockVars []float64
	for i := 0; i+7 <= len(demands); i += 7 {
		blockVars = append(blockVars, variance(demands[i:i+7]))
	}
	if len(blockVars) < 2 {
		return 0.5
	}

	meanVar := mean(blockVars)
	spread := 0.0
	for _, v := range blockVars {
		d := v - meanVar
		spread += d * d
	}
	spread = spread / float64(len(blockVars))

	// 정규화: 분산 스케일 대비 흔들림. +1은 저수요 시계열의 0 나누기 방지.
	return clamp01(1 - (spread / ((meanVar * meanVar) + 1)))
}

func availableDemands(points []contracts.ProcessedDataPoint) []float64 {
	out := make([]float64, 0, len(points))
	for _, pt := range points {
		if pt.Available {
			out = append(out, pt.Demand)
		}
	}
	return out
}
