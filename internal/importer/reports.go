// Package importer loads credit reports from JSON fixture files into storage.
package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/bobmcallan/vire-credit/internal/common"
	"github.com/bobmcallan/vire-credit/internal/interfaces"
	"github.com/bobmcallan/vire-credit/internal/models"
	"github.com/bobmcallan/vire-credit/internal/providers"
)

// reportsFile represents the JSON structure of the reports import file.
type reportsFile struct {
	Reports []models.CreditReport `json:"reports"`
}

// ImportReports reads reports from a JSON file and stores them.
// Existing reports (matched by id) are skipped. Returns the number imported.
func ImportReports(ctx context.Context, store interfaces.ReportStorage, logger *common.Logger, jsonPath string) (int, error) {
	logger = common.OrSilent(logger)

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read reports file %s: %w", jsonPath, err)
	}

	var file reportsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return 0, fmt.Errorf("failed to parse reports file %s: %w", jsonPath, err)
	}

	imported := 0
	for i := range file.Reports {
		r := &file.Reports[i]
		if r.ID == "" {
			return imported, fmt.Errorf("report %d in %s has no id", i, jsonPath)
		}
		bureau, ok := providers.ParseBureau(string(r.Bureau))
		if !ok {
			return imported, fmt.Errorf("report %s in %s has unknown bureau %q", r.ID, jsonPath, r.Bureau)
		}
		r.Bureau = bureau

		_, err := store.GetReport(ctx, r.ID)
		if err == nil {
			logger.Debug().Str("report_id", r.ID).Msg("report already exists, skipping")
			continue
		}
		var nf *providers.NotFoundError
		if !errors.As(err, &nf) {
			return imported, fmt.Errorf("failed to check report %s: %w", r.ID, err)
		}

		if err := store.SaveReport(ctx, r); err != nil {
			return imported, fmt.Errorf("failed to insert report %s: %w", r.ID, err)
		}
		imported++
		logger.Info().Str("report_id", r.ID).Str("user_id", r.UserID).Str("bureau", string(r.Bureau)).Msg("report imported")
	}

	return imported, nil
}
