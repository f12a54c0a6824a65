package payment

import (
	"strings"
	"time"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/slot"
	"court-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	metaResourceID = "resource_id"
	metaDate       = "date"
	metaTimeSlots  = "time_slots"
	metaCategory   = "category"
	metaUserID     = "user_id"
	metaName       = "contact_name"
	metaPhone      = "contact_phone"
	metaEmail      = "contact_email"
)

var ErrInvalidMetadata = errs.New("invalid checkout metadata")

// CheckoutMetadata is what we ask the processor to carry from checkout to confirmation.
type CheckoutMetadata struct {
	ResourceID uuid.UUID
	Date       time.Time
	TimeSlots  []slot.TimeOfDay
	Category   reservation.Category
	Owner      reservation.Owner
}

// Encode flattens the metadata into the string map processors accept.
func (m CheckoutMetadata) Encode() map[string]string {
	starts := make([]string, len(m.TimeSlots))
	for i, s := range m.TimeSlots {
		starts[i] = s.String()
	}
	out := map[string]string{
		metaResourceID: m.ResourceID.String(),
		metaDate:       m.Date.Format(slot.DateLayout),
		metaTimeSlots:  strings.Join(starts, ","),
		metaCategory:   m.Category.String(),
	}
	if m.Owner.UserID != nil {
		out[metaUserID] = m.Owner.UserID.String()
	}
	setIfNotEmpty(out, metaName, m.Owner.Name)
	setIfNotEmpty(out, metaPhone, m.Owner.Phone)
	setIfNotEmpty(out, metaEmail, m.Owner.Email)
	return out
}

func DecodeMetadata(raw map[string]string) (CheckoutMetadata, error) {
	var m CheckoutMetadata

	resourceID, err := uuid.Parse(raw[metaResourceID])
	if err != nil {
		return m, errs.Wrapf(ErrInvalidMetadata, "%s: %v", metaResourceID, err)
	}
	date, err := slot.ParseDate(raw[metaDate])
	if err != nil {
		return m, errs.Wrapf(ErrInvalidMetadata, "%s: %v", metaDate, err)
	}
	if raw[metaTimeSlots] == "" {
		return m, errs.Wrapf(ErrInvalidMetadata, "%s is empty", metaTimeSlots)
	}
	parts := strings.Split(raw[metaTimeSlots], ",")
	starts := make([]slot.TimeOfDay, 0, len(parts))
	for _, p := range parts {
		s, err := slot.ParseTimeOfDay(p)
		if err != nil {
			return m, errs.Wrapf(ErrInvalidMetadata, "%s: %q", metaTimeSlots, p)
		}
		starts = append(starts, s)
	}
	category, err := reservation.NewCategory(raw[metaCategory])
	if err != nil {
		return m, errs.Wrapf(ErrInvalidMetadata, "%s: %v", metaCategory, err)
	}

	owner := reservation.Owner{
		Name:  raw[metaName],
		Phone: raw[metaPhone],
		Email: raw[metaEmail],
	}
	if v := raw[metaUserID]; v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return m, errs.Wrapf(ErrInvalidMetadata, "%s: %v", metaUserID, err)
		}
		owner.UserID = &id
	}

	m.ResourceID = resourceID
	m.Date = date
	m.TimeSlots = starts
	m.Category = category
	m.Owner = owner
	return m, nil
}

func setIfNotEmpty(m map[string]string, k, v string) {
	if v != "" {
		m[k] = v
	}
}
