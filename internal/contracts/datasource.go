package contracts

import "context"

// HistoricalSalesSource SKU별 판매 이력 공급 인터페이스
// 엔진은 환경을 분기하지 않는다. mock/실데이터 선택은 호출자가 주입으로 결정.
type HistoricalSalesSource interface {
	// History returns the chronologically ordered sales series for a SKU.
	History(ctx context.Context, sku string) ([]SalesRecord, error)
	// SKUs lists every SKU the source can serve.
	SKUs(ctx context.Context) ([]string, error)
}

// ProgressFunc 배치 진행 콜백. 청크가 끝날 때마다 호출된다.
type ProgressFunc func(completed, total int)
