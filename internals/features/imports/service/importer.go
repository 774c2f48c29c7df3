package service

import (
	"context"
	"fmt"
	"io"
	"log"

	"gorm.io/gorm"

	"gatekeeper_backend/internals/constants"
	activityModel "gatekeeper_backend/internals/features/activity/model"
	"gatekeeper_backend/internals/features/imports/dto"
	personModel "gatekeeper_backend/internals/features/people/model"
	personRepo "gatekeeper_backend/internals/features/people/repository"
	"gatekeeper_backend/internals/helpers/assets"
)

// Importer ingests people from uploaded spreadsheets. Analyze is a dry run;
// Commit writes the whole staged batch in one transaction, all-or-nothing.
// Invalid and duplicate rows are skipped row by row, never failing the batch.
type Importer struct {
	DB     *gorm.DB
	People *personRepo.PersonRepository
	Assets *assets.Store
}

func NewImporter(db *gorm.DB, store *assets.Store) *Importer {
	return &Importer{
		DB:     db,
		People: personRepo.NewPersonRepository(db),
		Assets: store,
	}
}

// Analyze parses and validates the file and reports counts, diagnostics and a
// preview of the first staged rows. It performs no mutation.
func (im *Importer) Analyze(ctx context.Context, r io.Reader) (*dto.ImportReport, error) {
	existing, err := im.People.AllBadgeCodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load existing badge codes: %w", err)
	}
	outcome, err := parse(r, existing)
	if err != nil {
		return nil, err
	}
	return &outcome.Report, nil
}

// Commit re-runs the pipeline and inserts every staged row plus one summary
// ledger event inside a single transaction. Any storage fault rolls the whole
// batch back; QR images already rendered for the failed batch are removed.
func (im *Importer) Commit(ctx context.Context, r io.Reader) *dto.ImportResult {
	existing, err := im.People.AllBadgeCodes(ctx)
	if err != nil {
		return &dto.ImportResult{Success: false, Message: fmt.Sprintf("Import failed: %v", err)}
	}
	outcome, err := parse(r, existing)
	if err != nil {
		return &dto.ImportResult{Success: false, Message: fmt.Sprintf("Import failed: %v", err)}
	}

	imported := 0
	var renderedQRs []string

	err = im.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxSeq int
		if err := tx.Model(&personModel.PersonModel{}).
			Select("COALESCE(MAX(sequence_no), 0)").Scan(&maxSeq).Error; err != nil {
			return err
		}

		for _, staged := range outcome.Staged {
			person := staged.Person
			maxSeq++
			person.SequenceNo = maxSeq

			qrRef, err := im.Assets.RenderQR(person.BadgeCode)
			if err != nil {
				return fmt.Errorf("row %d: render QR: %w", staged.RowNum, err)
			}
			renderedQRs = append(renderedQRs, qrRef)
			person.QRImageRef = qrRef

			if err := tx.Create(&person).Error; err != nil {
				return fmt.Errorf("row %d: %w", staged.RowNum, err)
			}
			imported++
		}

		if imported > 0 {
			event := &activityModel.ActivityEventModel{
				BadgeCode:    "BULK_IMPORT",
				PersonName:   fmt.Sprintf("Admin Import (%d users)", imported),
				Action:       constants.ActionBulkImport,
				Method:       constants.MethodCSV,
				ReasonDetail: fmt.Sprintf("Imported %d users via CSV upload", imported),
			}
			if err := tx.Create(event).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		for _, ref := range renderedQRs {
			im.Assets.Remove(ref)
		}
		log.Println("[ERROR] Bulk import rolled back:", err)
		return &dto.ImportResult{Success: false, Message: fmt.Sprintf("Import failed: %v", err)}
	}

	log.Printf("[SUCCESS] Bulk import committed: %d users\n", imported)
	return &dto.ImportResult{
		Success:       true,
		ImportedCount: imported,
		Message:       fmt.Sprintf("Successfully imported %d users", imported),
	}
}
