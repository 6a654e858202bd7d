package coverage

// 표준정규 분위수. "10/50/90 백분위 수요" 해석에 쓰는 단측 분위수다.
const (
	zScoreP10 = -1.2816 // Φ⁻¹(0.10)
	zScoreP90 = 1.2816  // Φ⁻¹(0.90)
	zScoreP95 = 1.6449  // Φ⁻¹(0.95), 기본 서비스 수준
)

// EOQ 상수. 공식 모델에서 유도된 값이 아니라 보정된 휴리스틱이므로
// 수치를 바꾸면 contracts.Algorithm 버전을 올려야 한다.
const (
	eoqOrderingCost    = 50.0 // 1회 발주 고정비
	eoqHoldingCostRate = 0.25 // 연간 보유비용률 (단가 대비)
	daysPerYear        = 365.0
)

// 품절 위험 휴리스틱
const (
	riskSafeLeadTimeMultiple = 2.0 // 커버리지가 리드타임의 2배 이상이면 위험 0
	riskCVInflation          = 0.5 // 변동계수(CV)에 의한 위험 가중 상한
)

// 종합 신뢰도 가중치 (합 = 1.0)
const (
	confWeightQuality  = 0.4
	confWeightTrend    = 0.3
	confWeightVolume   = 0.3
	confVolumeFullDays = 30.0 // 이 관측 수 이상이면 데이터 볼륨 점수 1.0
)

// trendConfidenceGate 추세 보정 게이트.
// 적합 신뢰도가 이보다 낮으면 추세는 노이즈로 간주하고 기저 수요를 쓴다.
const trendConfidenceGate = 0.3

// 추세 적합 경계
const (
	minTrendPoints = 7   // 이 미만이면 추세 없음 (factor=1, confidence=0)
	minTrendFactor = 0.5 // 일 단위 성장률 하한
	maxTrendFactor = 2.0 // 일 단위 성장률 상한 (폭주 외삽 방지)
)

// 계절성 경계
const (
	minWeekdayObservations = 2   // 요일별 최소 관측 수, 미달 시 지수 1.0
	minSeasonalityFactor   = 0.1 // 역계절화 분모 하한
)

// promotionDampening 프로모션일 수요 감쇠 계수 (EnablePromotionAdjustment)
const promotionDampening = 0.7

// 데이터 품질 가중치 (합 = 1.0)
const (
	qualityWeightCompleteness = 0.30
	qualityWeightConsistency  = 0.25
	qualityWeightAvailability = 0.25
	qualityWeightOutliers     = 0.20
)
