package dto

// PreviewRow is one staged row shown to the operator before committing.
type PreviewRow struct {
	DisplayName  string `json:"display_name"`
	BadgeCode    string `json:"badge_code"`
	Status       string `json:"status"`
	ImportStatus string `json:"import_status"`
}

// ImportReport is the outcome of analyzing a spreadsheet without mutating
// anything. Errors are row-level rejections; Issues are non-fatal warnings and
// advisories (unknown columns, defaulted statuses, odd phone numbers).
type ImportReport struct {
	TotalRecords     int          `json:"total_records"`
	NewRecords       int          `json:"new_records"`
	DuplicateRecords int          `json:"duplicate_records"`
	ErrorRecords     int          `json:"error_records"`
	Errors           []string     `json:"errors"`
	Issues           []string     `json:"issues"`
	Preview          []PreviewRow `json:"preview"`
}

// ImportResult is the outcome of a commit. All-or-nothing at the batch level:
// on failure ImportedCount is zero and nothing was written.
type ImportResult struct {
	Success       bool   `json:"success"`
	ImportedCount int    `json:"imported_count"`
	Message       string `json:"message"`
}
