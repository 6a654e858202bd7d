package contracts

import "fmt"

// ErrorCode 엔진 오류 분류
type ErrorCode string

const (
	// ErrInvalidConfiguration 생성 시점 설정 위반 (모든 위반 필드를 한 번에 보고)
	ErrInvalidConfiguration ErrorCode = "INVALID_CONFIGURATION"
	// ErrInvalidInput 계산 시점 입력 위반 (음수 재고 등)
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
)

// CalculationError 계산 단계의 구조화된 오류
// 배치 내 개별 실패는 이 타입으로 로깅 후 결과 맵에서 제외된다.
type CalculationError struct {
	Code    ErrorCode
	SKU     string
	Message string
}

func (e *CalculationError) Error() string {
	if e.SKU == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: sku=%s: %s", e.Code, e.SKU, e.Message)
}
