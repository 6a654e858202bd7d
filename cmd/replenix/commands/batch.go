package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/replenix/backend/internal/contracts"
)

var batchOutFile string

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "전체 SKU 일괄 커버리지 예측",
	Long: `데이터 디렉터리의 모든 SKU에 대해 커버리지를 일괄 계산합니다.

청크(batch_size) 단위로 동시 실행하며, 개별 SKU 실패는 로깅 후 건너뜁니다.

Example:
  go run ./cmd/replenix batch --data ./data
  go run ./cmd/replenix batch --preset aggressive --out results.json`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchOutFile, "out", "", "결과를 저장할 JSON 파일 (기본: 요약만 출력)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Batch Coverage Forecast ===")

	ctx := cmd.Context()

	_, log, calc, source, err := initDeps()
	if err != nil {
		return err
	}

	products, err := source.Products()
	if err != nil {
		return err
	}

	skus, err := source.SKUs(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("📊 SKUs: %d\n\n", len(skus))

	inputs := make([]contracts.StockCoverageInput, 0, len(skus))
	for _, sku := range skus {
		product, ok := products[sku]
		if !ok {
			log.Warn().Str("sku", sku).Msg("no product descriptor, skipping")
			continue
		}
		sales, err := source.History(ctx, sku)
		if err != nil {
			log.Error().Err(err).Str("sku", sku).Msg("failed to read sales history")
			continue
		}
		inputs = append(inputs, contracts.StockCoverageInput{Product: product, Sales: sales})
	}

	results, err := calc.CalculateBatch(ctx, inputs, func(completed, total int) {
		fmt.Printf("  progress: %d/%d\n", completed, total)
	})
	if err != nil {
		return err
	}

	fmt.Printf("\n✅ Batch completed: %d/%d succeeded\n", len(results), len(inputs))

	if batchOutFile != "" {
		f, err := os.Create(batchOutFile)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()

		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
		fmt.Printf("💾 Results written to %s\n", batchOutFile)
		return nil
	}

	// 요약: 품절 위험 상위 출력
	type riskRow struct {
		sku  string
		risk float64
		days float64
	}
	rows := make([]riskRow, 0, len(results))
	for sku, r := range results {
		rows = append(rows, riskRow{sku, r.StockoutRisk, r.CoverageDays})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].risk != rows[j].risk {
			return rows[i].risk > rows[j].risk
		}
		return rows[i].sku < rows[j].sku
	})

	fmt.Println("\n=== Highest Stockout Risk ===")
	limit := 10
	if len(rows) < limit {
		limit = len(rows)
	}
	for _, row := range rows[:limit] {
		fmt.Printf("  %-20s risk %3.0f%%  coverage %.1f days\n", row.sku, row.risk*100, row.days)
	}

	return nil
}
