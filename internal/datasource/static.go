package datasource

import (
	"context"
	"fmt"
	"sort"

	"github.com/replenix/backend/internal/contracts"
)

// StaticSource 고정 인메모리 소스. 테스트와 데모에서 주입한다.
// 엔진 자체는 환경을 분기하지 않으므로 mock/실데이터 선택은 전적으로 호출자 몫.
type StaticSource struct {
	series map[string][]contracts.SalesRecord
}

// NewStaticSource wraps a fixed sku→series map.
func NewStaticSource(series map[string][]contracts.SalesRecord) *StaticSource {
	return &StaticSource{series: series}
}

var _ contracts.HistoricalSalesSource = (*StaticSource)(nil)

// History returns the fixed series for a SKU.
func (s *StaticSource) History(ctx context.Context, sku string) ([]contracts.SalesRecord, error) {
	records, ok := s.series[sku]
	if !ok {
		return nil, fmt.Errorf("unknown sku %q", sku)
	}
	return records, nil
}

// SKUs returns known SKUs in stable order.
func (s *StaticSource) SKUs(ctx context.Context) ([]string, error) {
	skus := make([]string, 0, len(s.series))
	for sku := range s.series {
		skus = append(skus, sku)
	}
	sort.Strings(skus)
	return skus, nil
}
