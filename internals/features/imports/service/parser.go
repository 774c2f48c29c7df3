package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"gorm.io/datatypes"

	"gatekeeper_backend/internals/constants"
	"gatekeeper_backend/internals/features/imports/dto"
	personModel "gatekeeper_backend/internals/features/people/model"
)

const previewLimit = 10

var (
	contactNumberRe = regexp.MustCompile(`^[0-9+\-() ]+$`)

	// Identifier columns in lookup priority order: the first non-blank wins.
	identifierColumns = []string{"barcode", "qr_code_id", "id_number"}

	headerSynonyms = map[string][]string{
		"first_name":    {"first_name", "firstname", "first", "given_name"},
		"middle_name":   {"middle_name", "middlename", "middle"},
		"last_name":     {"last_name", "lastname", "last", "surname", "family_name"},
		"complete_name": {"complete_name", "full_name", "name"},
		"barcode":       {"barcode"},
		"qr_code_id":    {"qr_code_id", "qrcode", "qr_code"},
		"id_number":     {"id_number", "idnumber"},
		"status":        {"status"},
		"role":          {"role", "position"},
		"company":       {"company", "employer"},
		"address":       {"address"},
		"contact_number": {
			"contact_number", "contact", "phone", "phone_number", "mobile",
		},
		"date_registered": {"date_registered", "registered_on", "registration_date"},
	}
)

// stagedRow is a validated, non-duplicate row queued for insertion.
type stagedRow struct {
	RowNum int
	Person personModel.PersonModel
}

// parseOutcome carries everything analyze reports plus the staged rows commit
// inserts.
type parseOutcome struct {
	Report dto.ImportReport
	Staged []stagedRow
}

// columnMap resolves canonical field names to column indexes for one file.
type columnMap map[string]int

func buildColumnMap(header []string) (columnMap, []string) {
	cols := columnMap{}
	var issues []string

	synonymIndex := map[string]string{}
	for canonical, names := range headerSynonyms {
		for _, n := range names {
			synonymIndex[n] = canonical
		}
	}

	for i, raw := range header {
		name := normalizeHeaderCell(raw)
		if name == "" {
			continue
		}
		canonical, ok := synonymIndex[name]
		if !ok {
			issues = append(issues, fmt.Sprintf(
				"Unrecognized column %q ignored. Recognized columns include first_name, last_name, barcode, qr_code_id, id_number, complete_name, status, contact_number, date_registered.", raw))
			continue
		}
		if _, taken := cols[canonical]; !taken {
			cols[canonical] = i
		}
	}
	return cols, issues
}

func normalizeHeaderCell(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimPrefix(s, "\uFEFF")
	return strings.ReplaceAll(s, " ", "_")
}

func (m columnMap) cell(record []string, canonical string) string {
	idx, ok := m[canonical]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func (m columnMap) hasIdentifierColumn() bool {
	for _, c := range identifierColumns {
		if _, ok := m[c]; ok {
			return true
		}
	}
	return false
}

// parse runs the shared pipeline: decode, header mapping, per-row validation
// and cumulative duplicate detection against existingCodes. It never writes.
func parse(r io.Reader, existingCodes map[string]struct{}) (*parseOutcome, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	text, err := decodeText(raw)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("CSV has no header row: %w", err)
	}

	cols, issues := buildColumnMap(header)
	if _, ok := cols["first_name"]; !ok {
		return nil, fmt.Errorf("CSV must contain a first name column (first_name, firstname, first or given_name)")
	}
	if _, ok := cols["last_name"]; !ok {
		return nil, fmt.Errorf("CSV must contain a last name column (last_name, lastname, last, surname or family_name)")
	}
	if !cols.hasIdentifierColumn() {
		return nil, fmt.Errorf("CSV must contain a unique identifier column (barcode, qr_code_id or id_number)")
	}

	out := &parseOutcome{}
	out.Report.Issues = issues

	// Seen codes accumulate as rows are accepted so duplicates within one file
	// are caught too.
	seen := make(map[string]struct{}, len(existingCodes))
	for code := range existingCodes {
		seen[code] = struct{}{}
	}

	for rowNum := 2; ; rowNum++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			out.Report.ErrorRecords++
			out.Report.TotalRecords++
			out.Report.Errors = append(out.Report.Errors,
				fmt.Sprintf("Row %d: Malformed CSV record", rowNum))
			continue
		}
		out.Report.TotalRecords++

		first := cols.cell(record, "first_name")
		middle := cols.cell(record, "middle_name")
		last := cols.cell(record, "last_name")
		if first == "" || last == "" {
			out.Report.ErrorRecords++
			out.Report.Errors = append(out.Report.Errors,
				fmt.Sprintf("Row %d: Missing first name or last name", rowNum))
			continue
		}

		displayName := cols.cell(record, "complete_name")
		if displayName == "" {
			displayName = personModel.ComposeDisplayName(first, middle, last)
		}

		identifier := ""
		for _, col := range identifierColumns {
			if v := cols.cell(record, col); v != "" {
				identifier = v
				break
			}
		}
		if identifier == "" {
			out.Report.ErrorRecords++
			out.Report.Errors = append(out.Report.Errors,
				fmt.Sprintf("Row %d: Missing barcode (or qr_code_id / id_number)", rowNum))
			continue
		}

		badge := personModel.NormalizeBadgeCode(identifier)
		if !personModel.ValidBadgeCode(badge) {
			out.Report.ErrorRecords++
			out.Report.Errors = append(out.Report.Errors,
				fmt.Sprintf("Row %d: Invalid barcode %q: must be at most 50 characters, alphanumerics, hyphen or underscore", rowNum, identifier))
			continue
		}

		rawStatus := cols.cell(record, "status")
		if rawStatus != "" && !constants.RecognizedStatus(rawStatus) {
			out.Report.Issues = append(out.Report.Issues,
				fmt.Sprintf("Row %d: Unrecognized status %q, defaulting to Active", rowNum, rawStatus))
		}
		status := constants.NormalizeStatus(rawStatus)

		contact := cols.cell(record, "contact_number")
		if contact != "" && !contactNumberRe.MatchString(contact) {
			out.Report.Issues = append(out.Report.Issues,
				fmt.Sprintf("Row %d: Invalid contact number %q", rowNum, contact))
			contact = ""
		}

		registeredOn := time.Now()
		if rawDate := cols.cell(record, "date_registered"); rawDate != "" {
			parsed, ok := parseFlexibleDate(rawDate)
			if ok {
				registeredOn = parsed
			} else {
				out.Report.Issues = append(out.Report.Issues,
					fmt.Sprintf("Row %d: Unparseable date %q, using today", rowNum, rawDate))
			}
		}

		if _, dup := seen[badge]; dup {
			out.Report.DuplicateRecords++
			continue
		}
		seen[badge] = struct{}{}
		out.Report.NewRecords++

		person := personModel.PersonModel{
			BadgeCode:     badge,
			FirstName:     first,
			MiddleName:    middle,
			LastName:      last,
			DisplayName:   displayName,
			Status:        status,
			ContactNumber: contact,
			Role:          cols.cell(record, "role"),
			Company:       cols.cell(record, "company"),
			Address:       cols.cell(record, "address"),
			IDNumber:      cols.cell(record, "id_number"),
			RegisteredOn:  datatypes.Date(registeredOn),
		}

		out.Staged = append(out.Staged, stagedRow{RowNum: rowNum, Person: person})
		if len(out.Report.Preview) < previewLimit {
			out.Report.Preview = append(out.Report.Preview, dto.PreviewRow{
				DisplayName:  displayName,
				BadgeCode:    badge,
				Status:       status,
				ImportStatus: "New",
			})
		}
	}

	return out, nil
}

// parseFlexibleDate accepts YYYY-MM-DD or MM/DD/YYYY.
func parseFlexibleDate(s string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", "01/02/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
