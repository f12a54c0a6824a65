package converter

import (
	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/slot"
	"court-booking/internal/infra/query"
	"court-booking/internal/pkg/pgconv"
)

func ReservationToInfra(res *reservation.Reservation) query.CreateReservationParams {
	owner := res.Owner()

	return query.CreateReservationParams{
		ID:               res.ID(),
		ResourceID:       res.ResourceID(),
		Date:             pgconv.DateToPgtype(res.Date()),
		StartTime:        pgconv.DurationToPgTime(res.StartTime().Duration()),
		EndTime:          pgconv.DurationToPgTime(res.EndTime().Duration()),
		Category:         res.Category().String(),
		AmountCents:      res.Amount().Cents(),
		Status:           res.Status().String(),
		PaymentStatus:    res.PaymentStatus().String(),
		PaymentMethod:    res.PaymentMethod().String(),
		PaymentSessionID: pgconv.StringPtrToPgtype(res.PaymentSessionID()),
		UserID:           pgconv.UUIDPtrToPgtype(owner.UserID),
		ContactName:      pgconv.NullableText(owner.Name),
		ContactPhone:     pgconv.NullableText(owner.Phone),
		ContactEmail:     pgconv.NullableText(owner.Email),
		CreatedAt:        pgconv.TimeToPgtype(res.CreatedAt()),
	}
}

func ReservationFromInfra(row query.Reservations) *reservation.Reservation {
	return reservation.ReconstructReservation(
		row.ID,
		reservation.NewParams{
			ResourceID: row.ResourceID,
			Date:       pgconv.DateFromPgtype(row.Date),
			Interval: slot.Interval{
				Start: slot.FromDuration(pgconv.PgTimeToDuration(row.StartTime)),
				End:   slot.FromDuration(pgconv.PgTimeToDuration(row.EndTime)),
			},
			Category:         reservation.Category(row.Category),
			Amount:           reservation.MustMoney(row.AmountCents),
			Status:           reservation.Status(row.Status),
			PaymentStatus:    reservation.PaymentStatus(row.PaymentStatus),
			PaymentMethod:    reservation.PaymentMethod(row.PaymentMethod),
			PaymentSessionID: pgconv.StringPtrFromPgtype(row.PaymentSessionID),
			Owner: reservation.Owner{
				UserID: pgconv.UUIDPtrFromPgtype(row.UserID),
				Name:   pgconv.StringFromPgtype(row.ContactName),
				Phone:  pgconv.StringFromPgtype(row.ContactPhone),
				Email:  pgconv.StringFromPgtype(row.ContactEmail),
			},
		},
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}

func ReservationsFromInfra(rows []query.Reservations) []*reservation.Reservation {
	out := make([]*reservation.Reservation, len(rows))
	for i, row := range rows {
		out[i] = ReservationFromInfra(row)
	}
	return out
}

func RecurringTemplateFromInfra(row query.RecurringTemplates) reservation.RecurringTemplate {
	return reservation.RecurringTemplate{
		ID:         row.ID,
		ResourceID: row.ResourceID,
		Weekday:    weekday(row.DayOfWeek),
		Interval: slot.Interval{
			Start: slot.FromDuration(pgconv.PgTimeToDuration(row.StartTime)),
			End:   slot.FromDuration(pgconv.PgTimeToDuration(row.EndTime)),
		},
		ValidFrom:  pgconv.DateFromPgtype(row.ValidFrom),
		ValidUntil: pgconv.DatePtrFromPgtype(row.ValidUntil),
		Active:     row.IsActive,
	}
}

func ScheduledSessionFromInfra(row query.ScheduledSessions) reservation.ScheduledSession {
	return reservation.ScheduledSession{
		ID:         row.ID,
		ResourceID: row.ResourceID,
		Date:       pgconv.DateFromPgtype(row.Date),
		Interval: slot.Interval{
			Start: slot.FromDuration(pgconv.PgTimeToDuration(row.StartTime)),
			End:   slot.FromDuration(pgconv.PgTimeToDuration(row.EndTime)),
		},
	}
}

func BookedIntervalFromInfra(row query.Reservations) reservation.BookedInterval {
	return reservation.BookedInterval{
		ID:         row.ID,
		ResourceID: row.ResourceID,
		Date:       pgconv.DateFromPgtype(row.Date),
		Interval: slot.Interval{
			Start: slot.FromDuration(pgconv.PgTimeToDuration(row.StartTime)),
			End:   slot.FromDuration(pgconv.PgTimeToDuration(row.EndTime)),
		},
	}
}
