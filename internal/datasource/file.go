package datasource

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/replenix/backend/internal/contracts"
)

// FileSource 디렉터리 기반 판매 이력 소스
// <dir>/<sku>.csv 에 일별 판매 시계열, <dir>/products.json 에 상품 메타가 있다.
// CSV 형식: date,quantity,availability,promotion (헤더 필수, 날짜는 2006-01-02)
type FileSource struct {
	dir string
}

// NewFileSource creates a source rooted at dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

var _ contracts.HistoricalSalesSource = (*FileSource)(nil)

// History reads and parses the sales series for a SKU.
func (s *FileSource) History(ctx context.Context, sku string) ([]contracts.SalesRecord, error) {
	f, err := os.Open(filepath.Join(s.dir, sku+".csv"))
	if err != nil {
		return nil, fmt.Errorf("open sales file for %s: %w", sku, err)
	}
	defer f.Close()

	return parseSalesCSV(f)
}

// SKUs lists SKUs by scanning *.csv files in the directory.
func (s *FileSource) SKUs(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}

	var skus []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".csv") {
			continue
		}
		skus = append(skus, strings.TrimSuffix(name, ".csv"))
	}
	sort.Strings(skus)
	return skus, nil
}

// Products reads product descriptors from products.json (sku → product).
func (s *FileSource) Products() (map[string]contracts.Product, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, "products.json"))
	if err != nil {
		return nil, fmt.Errorf("read products.json: %w", err)
	}

	var products map[string]contracts.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parse products.json: %w", err)
	}

	// 파일의 키가 곧 SKU. 본문에 비어 있으면 채워준다.
	for sku, p := range products {
		if p.SKU == "" {
			p.SKU = sku
			products[sku] = p
		}
	}
	return products, nil
}

func parseSalesCSV(r io.Reader) ([]contracts.SalesRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	// availability/promotion 열은 선택 사항이라 행마다 열 수가 다를 수 있다
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	// 헤더 행은 건너뛴다
	records := make([]contracts.SalesRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2
		if len(row) < 2 {
			return nil, fmt.Errorf("line %d: expected at least date,quantity", line)
		}

		date, err := time.Parse("2006-01-02", row[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid date %q: %w", line, row[0], err)
		}

		qty, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid quantity %q: %w", line, row[1], err)
		}

		rec := contracts.SalesRecord{Date: date, Quantity: qty, Availability: 1}
		if len(row) > 2 && row[2] != "" {
			avail, err := strconv.ParseFloat(row[2], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid availability %q: %w", line, row[2], err)
			}
			rec.Availability = avail
		}
		if len(row) > 3 && row[3] != "" {
			promo, err := strconv.ParseBool(row[3])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid promotion flag %q: %w", line, row[3], err)
			}
			rec.Promotion = promo
		}

		records = append(records, rec)
	}
	return records, nil
}
