package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"gatekeeper_backend/internals/constants"
	activityModel "gatekeeper_backend/internals/features/activity/model"
	personModel "gatekeeper_backend/internals/features/people/model"
	"gatekeeper_backend/internals/helpers/assets"
)

func newTestImporter(t *testing.T) (*Importer, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&personModel.PersonModel{}, &activityModel.ActivityEventModel{}))

	store, err := assets.NewStore(t.TempDir())
	require.NoError(t, err)
	return NewImporter(db, store), db
}

func TestAnalyzeSingleValidRow(t *testing.T) {
	im, _ := newTestImporter(t)

	csv := "first_name,last_name,barcode\nJane,Doe,X1\n"
	report, err := im.Analyze(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, report.TotalRecords)
	assert.Equal(t, 1, report.NewRecords)
	assert.Equal(t, 0, report.DuplicateRecords)
	assert.Equal(t, 0, report.ErrorRecords)
	require.Len(t, report.Preview, 1)
	assert.Equal(t, "Jane Doe", report.Preview[0].DisplayName)
	assert.Equal(t, "X1", report.Preview[0].BadgeCode)
	assert.Equal(t, constants.StatusActive, report.Preview[0].Status)
}

func TestAnalyzeBlankIdentifier(t *testing.T) {
	im, _ := newTestImporter(t)

	csv := "first_name,last_name,barcode\nJane,Doe,\n"
	report, err := im.Analyze(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, report.TotalRecords)
	assert.Equal(t, 0, report.NewRecords)
	assert.Equal(t, 1, report.ErrorRecords)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "Row 2: Missing barcode (or qr_code_id / id_number)", report.Errors[0])
}

func TestAnalyzeMissingNameColumnFailsFast(t *testing.T) {
	im, _ := newTestImporter(t)

	_, err := im.Analyze(context.Background(), strings.NewReader("barcode\nX1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first name column")
}

func TestAnalyzeMissingIdentifierColumnFailsFast(t *testing.T) {
	im, _ := newTestImporter(t)

	_, err := im.Analyze(context.Background(), strings.NewReader("first_name,last_name\nJane,Doe\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unique identifier column")
}

func TestAnalyzeHeaderSynonymsAndFallbackIdentifier(t *testing.T) {
	im, _ := newTestImporter(t)

	csv := "Given_Name,Surname,QR_Code_ID,Phone\nJane,Doe,X1,555-0100\n"
	report, err := im.Analyze(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, report.NewRecords)
	require.Len(t, report.Preview, 1)
	assert.Equal(t, "X1", report.Preview[0].BadgeCode)
}

func TestAnalyzeInFileDuplicatesAreCumulative(t *testing.T) {
	im, _ := newTestImporter(t)

	csv := "first_name,last_name,barcode\nJane,Doe,X1\nJohn,Smith,x1\nAmy,Lee,X2\n"
	report, err := im.Analyze(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalRecords)
	assert.Equal(t, 2, report.NewRecords)
	assert.Equal(t, 1, report.DuplicateRecords)
}

func TestAnalyzeUnrecognizedStatusDefaultsActive(t *testing.T) {
	im, _ := newTestImporter(t)

	csv := "first_name,last_name,barcode,status\nJane,Doe,X1,frozen\n"
	report, err := im.Analyze(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, report.NewRecords)
	require.Len(t, report.Preview, 1)
	assert.Equal(t, constants.StatusActive, report.Preview[0].Status)
	require.NotEmpty(t, report.Issues)
	assert.Contains(t, report.Issues[0], `Unrecognized status "frozen"`)
}

func TestAnalyzeLegacyStatusAliases(t *testing.T) {
	im, _ := newTestImporter(t)

	csv := "first_name,last_name,barcode,status\nJane,Doe,X1,banned\nJohn,Smith,X2,allowed\n"
	report, err := im.Analyze(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.Empty(t, report.Issues)
	require.Len(t, report.Preview, 2)
	assert.Equal(t, constants.StatusInactive, report.Preview[0].Status)
	assert.Equal(t, constants.StatusActive, report.Preview[1].Status)
}

func TestAnalyzeWindows1252Fallback(t *testing.T) {
	im, _ := newTestImporter(t)

	// "Renée" with a Windows-1252 e-acute (0xE9), invalid as UTF-8.
	raw := append([]byte("first_name,last_name,barcode\nRen"), 0xE9)
	raw = append(raw, []byte("e,Doe,X1\n")...)

	report, err := im.Analyze(context.Background(), bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 1, report.NewRecords)
	require.Len(t, report.Preview, 1)
	assert.Equal(t, "Renée Doe", report.Preview[0].DisplayName)
}

func TestCommitInsertsAndLogsSummary(t *testing.T) {
	im, db := newTestImporter(t)

	csv := "first_name,last_name,barcode,status\nJane,Doe,X1,active\nJohn,Smith,X2,inactive\n"
	res := im.Commit(context.Background(), strings.NewReader(csv))
	require.True(t, res.Success, res.Message)
	assert.Equal(t, 2, res.ImportedCount)
	assert.Equal(t, "Successfully imported 2 users", res.Message)

	var people []personModel.PersonModel
	require.NoError(t, db.Order("sequence_no").Find(&people).Error)
	require.Len(t, people, 2)
	assert.Equal(t, 1, people[0].SequenceNo)
	assert.Equal(t, 2, people[1].SequenceNo)
	assert.Equal(t, "X1", people[0].BadgeCode)
	assert.Equal(t, constants.StatusInactive, people[1].Status)
	assert.NotEmpty(t, people[0].QRImageRef)

	var event activityModel.ActivityEventModel
	require.NoError(t, db.First(&event, "action = ?", constants.ActionBulkImport).Error)
	assert.Equal(t, "BULK_IMPORT", event.BadgeCode)
	assert.Equal(t, "Admin Import (2 users)", event.PersonName)
	assert.Equal(t, constants.MethodCSV, event.Method)
	assert.Equal(t, "Imported 2 users via CSV upload", event.ReasonDetail)
}

func TestCommitIsIdempotentPerBadge(t *testing.T) {
	im, db := newTestImporter(t)

	csv := "first_name,last_name,barcode\nJane,Doe,X1\n"
	res := im.Commit(context.Background(), strings.NewReader(csv))
	require.True(t, res.Success)
	require.Equal(t, 1, res.ImportedCount)

	res = im.Commit(context.Background(), strings.NewReader(csv))
	require.True(t, res.Success)
	assert.Equal(t, 0, res.ImportedCount)
	assert.Equal(t, "Successfully imported 0 users", res.Message)

	var people int64
	require.NoError(t, db.Model(&personModel.PersonModel{}).Count(&people).Error)
	assert.EqualValues(t, 1, people)

	var summaries int64
	require.NoError(t, db.Model(&activityModel.ActivityEventModel{}).
		Where("action = ?", constants.ActionBulkImport).Count(&summaries).Error)
	assert.EqualValues(t, 1, summaries)
}

func TestCommitRollsBackWholeBatchOnFault(t *testing.T) {
	im, db := newTestImporter(t)

	// With the ledger table gone the summary insert fails after every row was
	// written, which must undo the rows too.
	require.NoError(t, db.Migrator().DropTable(&activityModel.ActivityEventModel{}))

	csv := "first_name,last_name,barcode\nJane,Doe,X1\nJohn,Smith,X2\n"
	res := im.Commit(context.Background(), strings.NewReader(csv))
	require.False(t, res.Success)
	assert.Contains(t, res.Message, "Import failed:")

	var people int64
	require.NoError(t, db.Model(&personModel.PersonModel{}).Count(&people).Error)
	assert.Zero(t, people)
}
