package coverage

import (
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/replenix/backend/internal/contracts"
	"github.com/replenix/backend/internal/engineconfig"
)

func newTestPreprocessor(t *testing.T, tweak func(*engineconfig.Config)) *Preprocessor {
	t.Helper()
	return NewPreprocessor(testConfig(t, tweak), zerolog.Nop())
}

func TestProcessWindowFiltersAndSorts(t *testing.T) {
	pre := newTestPreprocessor(t, func(c *engineconfig.Config) { c.HistoricalDays = 30 })

	records := []contracts.SalesRecord{
		{Date: testDate.AddDate(0, 0, -5), Quantity: 5, Availability: 1},
		{Date: testDate.AddDate(0, 0, -100), Quantity: 99, Availability: 1}, // 윈도 밖
		{Date: testDate.AddDate(0, 0, -1), Quantity: 1, Availability: 1},
		{Date: testDate.AddDate(0, 0, 3), Quantity: 77, Availability: 1}, // 미래
	}

	points, _ := pre.Process(records, testDate)
	if len(points) != 2 {
		t.Fatalf("expected 2 points in window, got %d", len(points))
	}
	if !points[0].Date.Before(points[1].Date) {
		t.Error("points must be sorted ascending by date")
	}
}

func TestProcessCapsOutliers(t *testing.T) {
	pre := newTestPreprocessor(t, nil) // outlier_cap_multiplier = 3

	records := constantSeries(30, 10)
	records[15].Quantity = 200 // 중앙값 10의 20배

	points, quality := pre.Process(records, testDate)

	var capped *contracts.ProcessedDataPoint
	for i := range points {
		if points[i].Outlier {
			capped = &points[i]
		}
	}
	if capped == nil {
		t.Fatal("expected one capped point")
	}
	// 제거가 아니라 캡: 3 × median(10) = 30
	if math.Abs(capped.Demand-30) > 1e-9 {
		t.Errorf("expected capped demand 30, got %f", capped.Demand)
	}
	if math.Abs(quality.OutlierPercentage-1.0/30) > 1e-9 {
		t.Errorf("expected outlier pct 1/30, got %f", quality.OutlierPercentage)
	}
}

func TestProcessAllZeroSeriesSkipsCapping(t *testing.T) {
	pre := newTestPreprocessor(t, nil)

	points, quality := pre.Process(constantSeries(20, 0), testDate)
	for _, pt := range points {
		if pt.Outlier {
			t.Error("zero series must not flag outliers")
		}
	}
	if quality.OutlierPercentage != 0 {
		t.Errorf("expected 0 outlier pct, got %f", quality.OutlierPercentage)
	}
}

func TestProcessAvailabilityAdjustment(t *testing.T) {
	pre := newTestPreprocessor(t, nil) // min_availability_factor = 0.5

	records := constantSeries(10, 10)
	records[3].Availability = 0.2 // 기준 미달 → 제외
	records[3].Quantity = 0
	records[7].Availability = 0.8 // 부분 가용 → 상향

	points, quality := pre.Process(records, testDate)

	if points[3].Available {
		t.Error("below-threshold availability must be excluded")
	}
	if points[3].Demand != 0 {
		t.Errorf("excluded point must carry zero demand, got %f", points[3].Demand)
	}

	// 10 / 0.8 = 12.5
	if math.Abs(points[7].Demand-12.5) > 1e-9 {
		t.Errorf("expected scaled demand 12.5, got %f", points[7].Demand)
	}

	if math.Abs(quality.AvailabilityIssues-0.1) > 1e-9 {
		t.Errorf("expected 10%% availability issues, got %f", quality.AvailabilityIssues)
	}
}

func TestProcessUnsetAvailabilityWithSales(t *testing.T) {
	pre := newTestPreprocessor(t, nil)

	// availability 미지정(0)인데 판매가 있으면 당일 재고가 있었다는 뜻
	records := []contracts.SalesRecord{
		{Date: testDate.AddDate(0, 0, -1), Quantity: 10},
	}
	points, _ := pre.Process(records, testDate)

	if !points[0].Available {
		t.Error("point with sales must be treated as available")
	}
	if points[0].Demand != 10 {
		t.Errorf("expected demand 10, got %f", points[0].Demand)
	}
}

func TestProcessPromotionDampening(t *testing.T) {
	records := constantSeries(10, 10)
	records[5].Promotion = true

	// 비활성: 그대로
	pre := newTestPreprocessor(t, nil)
	points, _ := pre.Process(records, testDate)
	if points[5].Demand != 10 {
		t.Errorf("promotion adjustment disabled: expected 10, got %f", points[5].Demand)
	}

	// 활성: 감쇠
	pre = newTestPreprocessor(t, func(c *engineconfig.Config) { c.EnablePromotionAdjustment = true })
	points, _ = pre.Process(records, testDate)
	if math.Abs(points[5].Demand-10*promotionDampening) > 1e-9 {
		t.Errorf("expected dampened demand %f, got %f", 10*promotionDampening, points[5].Demand)
	}
}

func TestProcessQualityPerfectSeries(t *testing.T) {
	pre := newTestPreprocessor(t, nil) // historical_days = 90

	points, quality := pre.Process(constantSeries(90, 10), testDate)
	if len(points) != 90 {
		t.Fatalf("expected 90 points, got %d", len(points))
	}

	if quality.Completeness != 1 {
		t.Errorf("expected completeness 1, got %f", quality.Completeness)
	}
	if quality.Consistency != 1 {
		t.Errorf("uniform series: expected consistency 1, got %f", quality.Consistency)
	}
	if quality.AvailabilityIssues != 0 || quality.OutlierPercentage != 0 {
		t.Errorf("expected no issues, got %+v", quality)
	}
	if quality.OverallScore != 1 {
		t.Errorf("expected overall 1, got %f", quality.OverallScore)
	}
}

func TestProcessShortHistoryNeverInventsData(t *testing.T) {
	pre := newTestPreprocessor(t, nil) // historical_days = 90

	points, quality := pre.Process(constantSeries(9, 10), testDate)

	// 합성 포인트를 만들지 않는다. 부족분은 품질에만 반영된다.
	if len(points) != 9 {
		t.Fatalf("expected 9 points, got %d", len(points))
	}
	if math.Abs(quality.Completeness-0.1) > 1e-9 {
		t.Errorf("expected completeness 0.1, got %f", quality.Completeness)
	}
	if quality.OverallScore >= 1 {
		t.Errorf("short history must lower overall score, got %f", quality.OverallScore)
	}
}

func TestProcessEmptySeries(t *testing.T) {
	pre := newTestPreprocessor(t, nil)

	points, quality := pre.Process(nil, testDate)
	if points != nil {
		t.Errorf("expected nil points, got %d", len(points))
	}
	if quality.OverallScore != 0 {
		t.Errorf("no data means zero quality, got %f", quality.OverallScore)
	}
}

func TestProcessConsistencyReflectsVolatility(t *testing.T) {
	pre := newTestPreprocessor(t, nil)

	_, steady := pre.Process(constantSeries(56, 10), testDate)

	// 주 단위로 분산이 요동치는 시계열
	volatile := makeSeries(56, func(i int) float64 {
		if (i/7)%2 == 0 {
			return 10
		}
		if i%2 == 0 {
			return 200
		}
		return 0
	})
	_, noisy := pre.Process(volatile, testDate)

	if noisy.Consistency >= steady.Consistency {
		t.Errorf("volatile series must score lower consistency: %f vs %f",
			noisy.Consistency, steady.Consistency)
	}
}

func TestProcessWindowBoundary(t *testing.T) {
	pre := newTestPreprocessor(t, func(c *engineconfig.Config) { c.HistoricalDays = 7 })

	records := []contracts.SalesRecord{
		{Date: testDate.AddDate(0, 0, -7), Quantity: 1, Availability: 1}, // 경계 밖 (cutoff 당일)
		{Date: testDate.AddDate(0, 0, -6), Quantity: 2, Availability: 1},
		{Date: testDate, Quantity: 3, Availability: 1}, // 기준일 포함
	}
	points, _ := pre.Process(records, testDate)
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].RawQuantity != 2 || points[1].RawQuantity != 3 {
		t.Errorf("unexpected window contents: %+v", points)
	}
}
