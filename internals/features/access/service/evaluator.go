package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"gatekeeper_backend/internals/constants"
	activityModel "gatekeeper_backend/internals/features/activity/model"
	activityRepo "gatekeeper_backend/internals/features/activity/repository"
	activityService "gatekeeper_backend/internals/features/activity/service"
	personModel "gatekeeper_backend/internals/features/people/model"
	personRepo "gatekeeper_backend/internals/features/people/repository"
)

// errConcurrentToggle signals that another scan flipped the same person between
// our read and our compare-and-swap update.
var errConcurrentToggle = errors.New("concurrent toggle detected")

const maxToggleRetries = 3

// Evaluator decides what a badge scan does: deny, check in, or check out.
// Every outcome appends exactly one ledger event; the toggle and its event are
// committed as one transaction so neither can exist without the other.
type Evaluator struct {
	DB     *gorm.DB
	People *personRepo.PersonRepository
	Events *activityRepo.ActivityRepository
}

func NewEvaluator(db *gorm.DB) *Evaluator {
	return &Evaluator{
		DB:     db,
		People: personRepo.NewPersonRepository(db),
		Events: activityRepo.NewActivityRepository(db),
	}
}

// Evaluate processes one scan of badgeCode. granted reports whether access was
// allowed; message is the operator-facing text; person is the matched record
// when one exists. err is non-nil only for persistence faults, in which case
// message is "System error" and no state was changed.
//
// A valid scan always flips the person's checked_in state; there is no notion
// of expected direction. Scans of non-Active people are denied and logged but
// never toggle, regardless of the current checked_in value.
func (e *Evaluator) Evaluate(ctx context.Context, badgeCode, method, reason string) (bool, string, *personModel.PersonModel, error) {
	code := personModel.NormalizeBadgeCode(badgeCode)
	if method == "" {
		method = constants.MethodQR
	}

	for attempt := 0; attempt < maxToggleRetries; attempt++ {
		person, err := e.People.FindByBadge(ctx, code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if err := e.logDenied(ctx, nil, code, "Unknown", method, "User not found"); err != nil {
					return false, "System error", nil, err
				}
				return false, "Access Denied: Invalid QR Code", nil, nil
			}
			return false, "System error", nil, err
		}

		if person.Status != constants.StatusActive {
			if err := e.logDenied(ctx, person, code, person.DisplayName, method,
				fmt.Sprintf("User status: %s", person.Status)); err != nil {
				return false, "System error", person, err
			}
			return false, fmt.Sprintf("Access Denied: User is %s", person.Status), person, nil
		}

		action := constants.ActionCheckIn
		if person.CheckedIn {
			action = constants.ActionCheckOut
		}
		wasCheckedIn := person.CheckedIn

		detail := "Success"
		if reason != "" {
			detail = reason
		}
		event := &activityModel.ActivityEventModel{
			PersonID:     &person.ID,
			BadgeCode:    code,
			PersonName:   person.DisplayName,
			Action:       action,
			Method:       method,
			ReasonDetail: detail,
		}

		err = e.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			// Compare-and-swap on checked_in serializes concurrent scans of the
			// same badge: the loser sees zero rows and retries from the lookup.
			res := tx.Model(&personModel.PersonModel{}).
				Where("id = ? AND checked_in = ?", person.ID, wasCheckedIn).
				Update("checked_in", !wasCheckedIn)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errConcurrentToggle
			}
			return tx.Create(event).Error
		})

		if errors.Is(err, errConcurrentToggle) {
			continue
		}
		if err != nil {
			// Transaction rolled back; the person keeps its pre-toggle state.
			person.CheckedIn = wasCheckedIn
			return false, "System error", person, err
		}

		person.CheckedIn = !wasCheckedIn
		message := fmt.Sprintf("Access Granted: %s successful for %s",
			activityService.TitleAction(action), person.DisplayName)
		return true, message, person, nil
	}

	return false, "System error", nil, errConcurrentToggle
}

// logDenied appends an access_denied event. Every denial must leave a ledger
// entry, so a fault here propagates and the caller answers "System error".
func (e *Evaluator) logDenied(ctx context.Context, person *personModel.PersonModel, code, name, method, detail string) error {
	event := &activityModel.ActivityEventModel{
		BadgeCode:    code,
		PersonName:   name,
		Action:       constants.ActionAccessDenied,
		Method:       method,
		ReasonDetail: detail,
	}
	if person != nil {
		event.PersonID = &person.ID
	}
	if err := e.Events.Append(ctx, event); err != nil {
		log.Println("[ERROR] Failed to log denied access:", err)
		return err
	}
	return nil
}
