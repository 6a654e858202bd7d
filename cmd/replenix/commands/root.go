package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	tuningFile string
	preset     string
	dataDir    string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "replenix",
	Short: "Replenix - 재고 커버리지 예측 엔진",
	Long: `Replenix Coverage CLI

판매 이력 시계열로부터 수요 예측, 품절 위험, 재주문 권고를 계산합니다.
(EWMA + 추세 + 요일 계절성, 알고리즘 EWMA_TREND_SEASONALITY_V1)

Usage:
  go run ./cmd/replenix [command]

Examples:
  go run ./cmd/replenix forecast --sku WIDGET-001
  go run ./cmd/replenix batch --data ./data
  go run ./cmd/replenix presets
  go run ./cmd/replenix validate --tuning ./tuning.yaml`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&tuningFile, "tuning", "", "engine tuning file (YAML, merged over defaults)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "named tuning preset (conservative|balanced|aggressive|minimal)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "sales history directory (default from DATA_DIR)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
