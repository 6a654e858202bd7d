package engineconfig

// 프리셋은 기본값 위에 병합되는 부분 설정 상수다.
// 모든 프리셋은 MergeAndValidate를 통과해야 한다 (config_test.go에서 보장).

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }
func boolp(v bool) *bool        { return &v }

// Presets returns the named tuning presets.
func Presets() map[string]Partial {
	return map[string]Partial{
		// 긴 이력 + 높은 서비스 수준. 품절 회피 우선.
		"conservative": {
			HistoricalDays:  intp(180),
			HalfLife:        floatp(30),
			ServiceLevel:    floatp(0.98),
			SafetyStockDays: floatp(7),
		},
		// 기본값 그대로.
		"balanced": {},
		// 짧은 이력 + 빠른 반응. 재고 비용 최소화 우선.
		"aggressive": {
			HistoricalDays:  intp(30),
			HalfLife:        floatp(7),
			ServiceLevel:    floatp(0.9),
			SafetyStockDays: floatp(1),
		},
		// 최소 연산. 계절성/추세 보정 없이 EWMA만.
		"minimal": {
			HistoricalDays:        intp(14),
			ForecastHorizon:       intp(7),
			HalfLife:              floatp(7),
			EnableSeasonality:     boolp(false),
			EnableTrendCorrection: boolp(false),
			BatchSize:             intp(10),
		},
	}
}

// Preset looks up a named preset.
func Preset(name string) (Partial, bool) {
	p, ok := Presets()[name]
	return p, ok
}

// PresetNames returns preset names in stable order.
func PresetNames() []string {
	return []string{"conservative", "balanced", "aggressive", "minimal"}
}
