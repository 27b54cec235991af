package testkit

import (
	"fmt"

	"regimen/adapters/excel"
	"regimen/domain/catalog"
)

// WriteDemoWorkbook generates a demo catalog and writes it as an Excel
// workbook in the format CatalogReader consumes. The returned batch is
// what was written, for reporting.
func WriteDemoWorkbook(path string, config CatalogGeneratorConfig) (*catalog.ImportBatch, error) {
	generator := NewCatalogDataGenerator(config)
	batch, err := generator.GenerateBatch()
	if err != nil {
		return nil, fmt.Errorf("failed to generate demo catalog: %w", err)
	}

	if err := excel.WriteWorkbook(path, batch); err != nil {
		return nil, fmt.Errorf("failed to write demo workbook: %w", err)
	}

	return batch, nil
}
