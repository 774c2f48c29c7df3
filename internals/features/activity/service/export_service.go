package service

import (
	"encoding/csv"
	"strings"

	"gatekeeper_backend/internals/features/activity/model"
)

var exportHeader = []string{"Timestamp", "User Name", "Badge Code", "Action", "Method", "Details"}

// ExportCSV renders ledger events as CSV text, newest-first order preserved.
// Actions are rendered Title Case with spaces ("check_in" -> "Check In").
func ExportCSV(events []model.ActivityEventModel) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	if err := w.Write(exportHeader); err != nil {
		return "", err
	}
	for _, ev := range events {
		record := []string{
			ev.OccurredAt.Format("2006-01-02 15:04:05"),
			ev.PersonName,
			ev.BadgeCode,
			TitleAction(ev.Action),
			ev.Method,
			ev.ReasonDetail,
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	return b.String(), w.Error()
}

// TitleAction turns a snake_case ledger action into display form.
func TitleAction(action string) string {
	words := strings.Split(action, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
