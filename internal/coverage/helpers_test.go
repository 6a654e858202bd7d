package coverage

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/replenix/backend/internal/contracts"
	"github.com/replenix/backend/internal/engineconfig"
)

// 테스트 공통 기준일. 계산이 결정적이도록 고정한다.
var testDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // 월요일

func testConfig(t *testing.T, tweak func(*engineconfig.Config)) engineconfig.Config {
	t.Helper()
	cfg := engineconfig.Default()
	if tweak != nil {
		tweak(&cfg)
	}
	if err := engineconfig.Validate(cfg); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return cfg
}

func newTestCalculator(t *testing.T, tweak func(*engineconfig.Config)) *Calculator {
	t.Helper()
	calc, err := NewCalculatorWithConfig(testConfig(t, tweak), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewCalculatorWithConfig failed: %v", err)
	}
	return calc
}

// makeSeries generates days observations ending the day before testDate.
// qty(i)는 과거→현재 순서의 i번째 관측 수량.
func makeSeries(days int, qty func(i int) float64) []contracts.SalesRecord {
	records := make([]contracts.SalesRecord, days)
	for i := 0; i < days; i++ {
		records[i] = contracts.SalesRecord{
			Date:         testDate.AddDate(0, 0, -(days - i)),
			Quantity:     qty(i),
			Availability: 1,
		}
	}
	return records
}

func constantSeries(days int, qty float64) []contracts.SalesRecord {
	return makeSeries(days, func(int) float64 { return qty })
}

func makePoints(days int, demand func(i int) float64) []contracts.ProcessedDataPoint {
	points := make([]contracts.ProcessedDataPoint, days)
	for i := 0; i < days; i++ {
		points[i] = contracts.ProcessedDataPoint{
			Date:         testDate.AddDate(0, 0, -(days - i)),
			Demand:       demand(i),
			RawQuantity:  demand(i),
			Availability: 1,
			Available:    true,
		}
	}
	return points
}
