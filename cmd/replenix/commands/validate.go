package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/replenix/backend/internal/engineconfig"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "튜닝 파일 검증",
	Long: `엔진 튜닝 YAML을 기본값과 병합해 검증합니다.
모든 위반을 한 번에 보고합니다 (fail-fast 아님).

Example:
  go run ./cmd/replenix validate --tuning ./tuning.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if tuningFile == "" {
		return fmt.Errorf("--tuning is required")
	}

	cfg, err := engineconfig.Load(tuningFile)
	if err != nil {
		var confErr *engineconfig.ConfigurationError
		if errors.As(err, &confErr) {
			fmt.Printf("❌ %s: %d violation(s)\n", tuningFile, len(confErr.Violations))
			for _, v := range confErr.Violations {
				fmt.Printf("  - %s\n", v.Error())
			}
			return fmt.Errorf("validation failed")
		}
		return err
	}

	hash, err := engineconfig.Hash(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("✅ %s is valid (hash %s)\n", tuningFile, hash)
	return nil
}
