package contracts

import "time"

// Algorithm 결과 계약의 알고리즘 식별자
// 수치 동작이 바뀌면 반드시 버전을 올린다 (외부 캐시/직렬화 계층이 의존)
const Algorithm = "EWMA_TREND_SEASONALITY_V1"

// InfiniteCoverageDays 수요가 0일 때의 커버리지 센티널
// "소비 없음 = 긴급하지 않음"을 나타내며 0으로 나누기를 피한다
const InfiniteCoverageDays = 9999.0

// Product 재고 예측 대상 상품
type Product struct {
	SKU          string  `json:"sku"`
	CurrentStock float64 `json:"currentStock"`
	MinimumStock float64 `json:"minimumStock"`
	MaximumStock float64 `json:"maximumStock"`
	LeadTimeDays float64 `json:"leadTimeDays"`
	CostPrice    float64 `json:"costPrice"` // 단가 (0이면 EOQ 대신 폴백 수량 사용)
}

// SalesRecord 원시 일별 판매 관측치 (달력일당 최대 1건, 결측 가능)
type SalesRecord struct {
	Date         time.Time `json:"date"`
	Quantity     float64   `json:"quantity"`
	Availability float64   `json:"availability"` // 당일 재고 가용률 (0~1, 0=품절)
	Promotion    bool      `json:"promotion"`
}

// StockCoverageInput 단일 계산 입력
type StockCoverageInput struct {
	Product Product      `json:"product"`
	Sales   []SalesRecord `json:"sales"`
	// CurrentDate 기준일. zero value면 계산 시점의 now를 사용한다.
	CurrentDate time.Time `json:"currentDate,omitempty"`
}

// Validate checks product invariants at calculation time.
// 설정 검증과 달리 입력 검증은 첫 위반에서 실패한다.
func (in *StockCoverageInput) Validate() error {
	p := in.Product
	switch {
	case p.SKU == "":
		return &CalculationError{Code: ErrInvalidInput, SKU: p.SKU, Message: "product.sku is required"}
	case p.CurrentStock < 0:
		return &CalculationError{Code: ErrInvalidInput, SKU: p.SKU, Message: "product.currentStock must be >= 0"}
	case p.MinimumStock < 0:
		return &CalculationError{Code: ErrInvalidInput, SKU: p.SKU, Message: "product.minimumStock must be >= 0"}
	case p.MaximumStock < 0:
		return &CalculationError{Code: ErrInvalidInput, SKU: p.SKU, Message: "product.maximumStock must be >= 0"}
	case p.MaximumStock < p.MinimumStock:
		return &CalculationError{Code: ErrInvalidInput, SKU: p.SKU, Message: "product.maximumStock must be >= product.minimumStock"}
	case p.LeadTimeDays < 0:
		return &CalculationError{Code: ErrInvalidInput, SKU: p.SKU, Message: "product.leadTimeDays must be >= 0"}
	}
	return nil
}

// ProcessedDataPoint 전처리된 일별 관측치
// 생성 이후 불변. 하위 단계는 읽기 전용으로 소비한다.
type ProcessedDataPoint struct {
	Date         time.Time `json:"date"`
	Demand       float64   `json:"demand"`       // 가용률 보정 후 수요
	RawQuantity  float64   `json:"rawQuantity"`  // 원본 판매량
	Availability float64   `json:"availability"` // 0~1
	Available    bool      `json:"available"`    // false면 수요율 추정에서 제외
	Outlier      bool      `json:"outlier"`      // 캡 적용 여부
}

// DataQualityScore 데이터 품질 종합 점수
type DataQualityScore struct {
	Completeness       float64 `json:"completeness"`       // 관측일 / 기대일
	Consistency        float64 `json:"consistency"`        // 주간 분산의 안정성
	AvailabilityIssues float64 `json:"availabilityIssues"` // 품절일 비율
	OutlierPercentage  float64 `json:"outlierPercentage"`  // 캡 적용 비율
	OverallScore       float64 `json:"overallScore"`       // 가중 합성 (0~1)
}

// StockCoverageResult 계산 결과 (호출자 소유, 생성 후 불변)
// JSON 필드명은 외부 계층이 의존하는 안정 계약이다.
type StockCoverageResult struct {
	SKU string `json:"sku"`

	// 커버리지 (현재고가 버티는 일수)
	CoverageDays    float64 `json:"coverageDays"`    // 중앙값 수요 시나리오
	CoverageDaysP10 float64 `json:"coverageDaysP10"` // 낙관 (저수요)
	CoverageDaysP90 float64 `json:"coverageDaysP90"` // 보수 (고수요)

	// 수요 예측
	DemandForecast float64 `json:"demandForecast"` // 일 평균 수요
	DemandStdDev   float64 `json:"demandStdDev"`

	TrendFactor            float64 `json:"trendFactor"`            // 일 단위 승수 성장률
	SeasonalityIndex       float64 `json:"seasonalityIndex"`       // 예측 구간 평균 계절 지수
	AvailabilityAdjustment float64 `json:"availabilityAdjustment"` // 가용률 보정으로 제외된 비율

	Confidence  float64          `json:"confidence"` // 0~1
	DataQuality DataQualityScore `json:"dataQuality"`

	// 재주문 권고
	ReorderPoint    float64 `json:"reorderPoint"`
	ReorderQuantity float64 `json:"reorderQuantity"`
	StockoutRisk    float64 `json:"stockoutRisk"` // 0~1

	HistoricalDaysUsed int       `json:"historicalDaysUsed"`
	Algorithm          string    `json:"algorithm"`
	CalculatedAt       time.Time `json:"calculatedAt"`
	ExpiresAt          time.Time `json:"expiresAt"`
}
