// Package booking owns the slot lifecycle: a mentor opens a slot, a mentee
// books it, and a slot is booked at most once. The at-most-once guarantee
// is delegated to the store's conditional update, not checked in-process,
// because multiple server instances may race on the same slot.
package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mentorhub-api/internal/apperr"
	"mentorhub-api/internal/model"
)

// SlotStore is the persistence contract. BookSlot must be atomic: it either
// transitions the slot OPEN→BOOKED and records the booking, or returns
// apperr.ErrConflict leaving both untouched.
type SlotStore interface {
	CreateSlot(ctx context.Context, s *model.Slot) error
	GetSlot(ctx context.Context, id string) (*model.Slot, error)
	OpenSlots(ctx context.Context, mentorID string) ([]model.Slot, error)
	BookSlot(ctx context.Context, b *model.Booking) error
}

type Engine struct {
	store SlotStore
}

func New(store SlotStore) *Engine {
	return &Engine{store: store}
}

func (e *Engine) CreateSlot(ctx context.Context, mentorID string, start, end time.Time) (*model.Slot, error) {
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("%w: start and end are required", apperr.ErrValidation)
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: start must be before end", apperr.ErrValidation)
	}

	slot := &model.Slot{
		ID:        uuid.New().String(),
		MentorID:  mentorID,
		StartTime: start,
		EndTime:   end,
		Status:    model.SlotOpen,
	}
	if err := e.store.CreateSlot(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// ListOpen returns OPEN slots ordered by start time, optionally for one
// mentor. Pure read.
func (e *Engine) ListOpen(ctx context.Context, mentorID string) ([]model.Slot, error) {
	return e.store.OpenSlots(ctx, mentorID)
}

// Book reserves the slot for the mentee. Exactly one of two concurrent
// callers succeeds; the other sees ErrConflict.
func (e *Engine) Book(ctx context.Context, menteeID, slotID string) (*model.Booking, error) {
	if slotID == "" {
		return nil, fmt.Errorf("%w: slotId required", apperr.ErrValidation)
	}
	// distinguishes 404 from 409; the authoritative check is the
	// conditional update inside BookSlot
	if _, err := e.store.GetSlot(ctx, slotID); err != nil {
		return nil, err
	}

	b := &model.Booking{
		ID:       uuid.New().String(),
		SlotID:   slotID,
		MenteeID: menteeID,
	}
	if err := e.store.BookSlot(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}
