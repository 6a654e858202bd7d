package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/replenix/backend/internal/engineconfig"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "튜닝 프리셋 목록",
	Long: `기본값 위에 병합되는 이름 있는 튜닝 프리셋을 보여줍니다.

Example:
  go run ./cmd/replenix presets`,
	RunE: runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func runPresets(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Tuning Presets ===")

	for _, name := range engineconfig.PresetNames() {
		p, _ := engineconfig.Preset(name)
		cfg, err := engineconfig.MergeAndValidate(p)
		if err != nil {
			return fmt.Errorf("preset %s is invalid: %w", name, err)
		}
		hash, err := engineconfig.Hash(cfg)
		if err != nil {
			return fmt.Errorf("hash preset %s: %w", name, err)
		}

		fmt.Printf("\n[%s] (hash %s)\n", name, hash[:12])
		fmt.Printf("  historical_days: %d, forecast_horizon: %d, half_life: %.0f\n",
			cfg.HistoricalDays, cfg.ForecastHorizon, cfg.HalfLife)
		fmt.Printf("  service_level: %.3f, safety_stock_days: %.0f, batch_size: %d\n",
			cfg.ServiceLevel, cfg.SafetyStockDays, cfg.BatchSize)
		fmt.Printf("  seasonality: %t, trend_correction: %t, promotion_adjustment: %t\n",
			cfg.EnableSeasonality, cfg.EnableTrendCorrection, cfg.EnablePromotionAdjustment)
	}

	return nil
}
