//go:build unit || e2e

// Package memstore is an in-memory shared.UnitOfWork for use case tests.
// It enforces the live-unit uniqueness rule the database index enforces and
// rolls back everything written inside Within when fn fails.
package memstore

import (
	"context"
	"sync"
	"time"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/infra"
	"court-booking/internal/infra/query"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueUnitConstraint = "reservations_active_unit_key"

type Store struct {
	mu sync.Mutex

	resources    map[uuid.UUID]shared.ResourceSnapshot
	reservations []*reservation.Reservation
	templates    []reservation.RecurringTemplate
	sessions     []reservation.ScheduledSession
	jobs         []shared.NotificationJob

	inserts int

	// BeforeInsert runs ahead of every autocommit insert, outside the lock.
	// n counts inserts attempted through AutoCommit, starting at 1.
	BeforeInsert func(n int, res *reservation.Reservation) error
	// BeforeWithin runs ahead of every transaction, outside the lock.
	BeforeWithin func()
	// FailDelete makes compensating deletes fail.
	FailDelete error
}

func New() *Store {
	return &Store{resources: make(map[uuid.UUID]shared.ResourceSnapshot)}
}

func (s *Store) AddResource(name string, active bool) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.resources[id] = shared.ResourceSnapshot{ID: id, Name: name, Active: active}
	return id
}

func (s *Store) AddTemplate(t reservation.RecurringTemplate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates = append(s.templates, t)
}

func (s *Store) AddSession(sess reservation.ScheduledSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = append(s.sessions, sess)
}

// Seed stores a reservation directly, bypassing every hook.
func (s *Store) Seed(res *reservation.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(res)
}

func (s *Store) Reservations() []*reservation.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*reservation.Reservation, len(s.reservations))
	copy(out, s.reservations)
	return out
}

func (s *Store) ActiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.reservations {
		if r.IsActive() {
			n++
		}
	}
	return n
}

func (s *Store) Jobs() []shared.NotificationJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]shared.NotificationJob, len(s.jobs))
	copy(out, s.jobs)
	return out
}

func (s *Store) JobsOfKind(kind string) []shared.NotificationJob {
	var out []shared.NotificationJob
	for _, j := range s.Jobs() {
		if j.Kind == kind {
			out = append(out, j)
		}
	}
	return out
}

// --- shared.UnitOfWork ---

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if s.BeforeWithin != nil {
		s.BeforeWithin()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	savedRes := s.snapshotReservations()
	savedJobs := append([]shared.NotificationJob(nil), s.jobs...)

	if err := fn(ctx, &tx{s: s, locked: true}); err != nil {
		s.reservations = savedRes
		s.jobs = savedJobs
		return err
	}
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db query.DBTX) error) error {
	return fn(ctx, nil)
}

func (s *Store) WithDB(ctx context.Context, fn func(ctx context.Context, db query.DBTX) error) error {
	return fn(ctx, nil)
}

func (s *Store) AutoCommit() shared.Tx {
	return &tx{s: s}
}

func (s *Store) CommandReads() shared.CommandReads {
	return &reads{s: s}
}

func (s *Store) snapshotReservations() []*reservation.Reservation {
	out := make([]*reservation.Reservation, len(s.reservations))
	for i, r := range s.reservations {
		cp := *r
		out[i] = &cp
	}
	return out
}

// --- internals, caller holds mu ---

func (s *Store) insert(res *reservation.Reservation) error {
	if _, ok := s.resources[res.ResourceID()]; !ok {
		return infra.WrapRepoErr("failed to create reservation",
			&pgconn.PgError{Code: "23503", ConstraintName: "reservations_resource_id_fkey"})
	}
	for _, r := range s.reservations {
		if res.IsActive() && r.IsActive() && r.ResourceID() == res.ResourceID() &&
			r.Date().Equal(res.Date()) && r.StartTime() == res.StartTime() {
			return infra.WrapRepoErr("failed to create reservation",
				&pgconn.PgError{Code: "23505", ConstraintName: uniqueUnitConstraint})
		}
	}
	cp := *res
	s.reservations = append(s.reservations, &cp)
	return nil
}

func (s *Store) deleteByIDs(ids []uuid.UUID) int64 {
	drop := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := s.reservations[:0]
	var n int64
	for _, r := range s.reservations {
		if _, ok := drop[r.ID()]; ok {
			n++
			continue
		}
		kept = append(kept, r)
	}
	s.reservations = kept
	return n
}

func (s *Store) find(id uuid.UUID) *reservation.Reservation {
	for _, r := range s.reservations {
		if r.ID() == id {
			return r
		}
	}
	return nil
}

type tx struct {
	s      *Store
	locked bool
}

func (t *tx) lock() func() {
	if t.locked {
		return func() {}
	}
	t.s.mu.Lock()
	return t.s.mu.Unlock
}

func (t *tx) Reservations() shared.ReservationRepository   { return &reservationRepo{tx: t} }
func (t *tx) Notifications() shared.NotificationRepository { return &notificationRepo{tx: t} }
func (t *tx) Reads() shared.CommandReads                   { return &reads{s: t.s, tx: t} }
func (t *tx) DB() query.DBTX                               { return nil }

type reservationRepo struct {
	tx *tx
}

func (r *reservationRepo) Create(ctx context.Context, _ query.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}
	if !r.tx.locked {
		r.tx.s.mu.Lock()
		r.tx.s.inserts++
		n := r.tx.s.inserts
		hook := r.tx.s.BeforeInsert
		r.tx.s.mu.Unlock()
		if hook != nil {
			if err := hook(n, res); err != nil {
				return uuid.Nil, err
			}
		}
	}

	unlock := r.tx.lock()
	defer unlock()
	if err := r.tx.s.insert(res); err != nil {
		return uuid.Nil, err
	}
	return res.ID(), nil
}

func (r *reservationRepo) DeleteByIDs(ctx context.Context, _ query.DBTX, ids []uuid.UUID) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, infra.WrapRepoErr("failed to delete reservations", err)
	}
	unlock := r.tx.lock()
	defer unlock()
	if r.tx.s.FailDelete != nil {
		return 0, infra.WrapRepoErr("failed to delete reservations", r.tx.s.FailDelete)
	}
	return r.tx.s.deleteByIDs(ids), nil
}

func (r *reservationRepo) Cancel(_ context.Context, _ query.DBTX, res *reservation.Reservation) error {
	unlock := r.tx.lock()
	defer unlock()
	stored := r.tx.s.find(res.ID())
	if stored == nil || stored.IsCancelled() {
		return infra.WrapRepoErr("reservation not found or already cancelled", nil, infra.KindNotFound)
	}
	_ = stored.Cancel(res.UpdatedAt())
	return nil
}

type notificationRepo struct {
	tx *tx
}

func (r *notificationRepo) CreateJob(_ context.Context, _ query.DBTX, job shared.NotificationJob) (bool, error) {
	unlock := r.tx.lock()
	defer unlock()
	if job.DedupeKey != nil {
		for _, j := range r.tx.s.jobs {
			if j.DedupeKey != nil && *j.DedupeKey == *job.DedupeKey {
				return false, nil
			}
		}
	}
	r.tx.s.jobs = append(r.tx.s.jobs, job)
	return true, nil
}

type reads struct {
	s  *Store
	tx *tx
}

func (r *reads) lock() func() {
	if r.tx != nil && r.tx.locked {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *reads) ResourceByID(_ context.Context, id uuid.UUID) (*shared.ResourceSnapshot, error) {
	unlock := r.lock()
	defer unlock()
	res, ok := r.s.resources[id]
	if !ok {
		return nil, infra.WrapRepoErr("resource not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return &res, nil
}

func (r *reads) ReservationByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	unlock := r.lock()
	defer unlock()
	found := r.s.find(id)
	if found == nil {
		return nil, infra.WrapRepoErr("reservation not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	cp := *found
	return &cp, nil
}

func (r *reads) ReservationsBySession(_ context.Context, sessionID string) ([]*reservation.Reservation, error) {
	unlock := r.lock()
	defer unlock()
	var out []*reservation.Reservation
	for _, res := range r.s.reservations {
		if sid := res.PaymentSessionID(); sid != nil && *sid == sessionID && res.IsActive() {
			cp := *res
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *reads) ActiveBookings(_ context.Context, resourceID uuid.UUID, date time.Time) ([]reservation.BookedInterval, error) {
	unlock := r.lock()
	defer unlock()
	var out []reservation.BookedInterval
	for _, res := range r.s.reservations {
		if res.IsActive() && res.ResourceID() == resourceID && res.Date().Equal(date) {
			out = append(out, reservation.BookedInterval{
				ID:         res.ID(),
				ResourceID: res.ResourceID(),
				Date:       res.Date(),
				Interval:   res.Interval(),
			})
		}
	}
	return out, nil
}

func (r *reads) RecurringTemplates(_ context.Context, resourceID uuid.UUID, weekday time.Weekday) ([]reservation.RecurringTemplate, error) {
	unlock := r.lock()
	defer unlock()
	var out []reservation.RecurringTemplate
	for _, t := range r.s.templates {
		if t.ResourceID == resourceID && t.Weekday == weekday && t.Active {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *reads) ScheduledSessions(_ context.Context, resourceID uuid.UUID, date time.Time) ([]reservation.ScheduledSession, error) {
	unlock := r.lock()
	defer unlock()
	var out []reservation.ScheduledSession
	for _, sess := range r.s.sessions {
		if sess.ResourceID == resourceID && sess.Date.Equal(date) {
			out = append(out, sess)
		}
	}
	return out, nil
}
