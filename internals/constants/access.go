package constants

import "strings"

// Canonical person statuses. Legacy spreadsheets and old API clients still send
// allowed/banned; NormalizeStatus folds those in at every input boundary.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Ledger actions.
const (
	ActionCheckIn      = "check_in"
	ActionCheckOut     = "check_out"
	ActionAccessDenied = "access_denied"
	ActionBulkImport   = "bulk_import"
)

// Access methods. Free-form in storage; these are the ones the clients send today.
const (
	MethodQR     = "QR"
	MethodCamera = "Camera"
	MethodManual = "Manual"
	MethodCSV    = "CSV"
)

// Admin roles.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleGuard      = "guard"
)

// NormalizeStatus maps any accepted status spelling onto the canonical enum.
// Unrecognized (or blank) input defaults to Active; callers that care about
// flagging unknown values should check RecognizedStatus first.
func NormalizeStatus(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "inactive", "banned":
		return StatusInactive
	default:
		return StatusActive
	}
}

// RecognizedStatus reports whether raw is one of the accepted spellings.
func RecognizedStatus(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "active", "allowed", "inactive", "banned":
		return true
	}
	return false
}
