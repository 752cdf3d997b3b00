package shift

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/shift"
)

type ShiftServiceImpl struct {
	shiftRepo shift.ShiftRepository
}

func NewShiftService(shiftRepo shift.ShiftRepository) shift.ShiftService {
	return &ShiftServiceImpl{shiftRepo: shiftRepo}
}

// Create implements shift.ShiftService.
func (s *ShiftServiceImpl) Create(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to generate shift id: %w", err)
	}

	entity := shift.Shift{
		ID:   id.String(),
		Name: req.Name,
	}
	entity.Slots, err = buildSlots(entity.ID, req.Slots)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	created, err := s.shiftRepo.Create(ctx, entity)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return shift.NewShiftResponse(created), nil
}

// Get implements shift.ShiftService.
func (s *ShiftServiceImpl) Get(ctx context.Context, id string) (shift.ShiftResponse, error) {
	entity, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return shift.NewShiftResponse(entity), nil
}

// List implements shift.ShiftService.
func (s *ShiftServiceImpl) List(ctx context.Context) ([]shift.ShiftResponse, error) {
	shifts, err := s.shiftRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, entity := range shifts {
		responses = append(responses, shift.NewShiftResponse(entity))
	}
	return responses, nil
}

// Update implements shift.ShiftService.
func (s *ShiftServiceImpl) Update(ctx context.Context, id string, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	entity, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	if req.Name != nil {
		entity.Name = *req.Name
	}
	if req.Slots != nil {
		entity.Slots, err = buildSlots(entity.ID, req.Slots)
		if err != nil {
			return shift.ShiftResponse{}, err
		}
	}

	if err := s.shiftRepo.Update(ctx, entity); err != nil {
		return shift.ShiftResponse{}, err
	}

	updated, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return shift.NewShiftResponse(updated), nil
}

// Delete implements shift.ShiftService.
func (s *ShiftServiceImpl) Delete(ctx context.Context, id string) error {
	return s.shiftRepo.Delete(ctx, id)
}

func buildSlots(shiftID string, payloads []shift.SlotPayload) ([]shift.TimeSlot, error) {
	slots := make([]shift.TimeSlot, 0, len(payloads))
	for _, p := range payloads {
		slotID, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate slot id: %w", err)
		}

		// Validate guarantees these parse.
		start, _ := time.Parse("15:04", p.StartTime)
		end, _ := time.Parse("15:04", p.EndTime)

		slots = append(slots, shift.TimeSlot{
			ID:              slotID.String(),
			ShiftID:         shiftID,
			Weekday:         shift.Weekday(p.Weekday),
			StartTime:       start,
			EndTime:         end,
			Percent:         p.Percent,
			CrossesMidnight: p.CrossesMidnight,
		})
	}
	return slots, nil
}
