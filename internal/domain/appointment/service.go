package appointment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ErrInvalidProvider indicates the requested provider_id does not refer to an
// existing provider account.
var ErrInvalidProvider = errors.New("invalid provider")

// providerTag marks provider accounts in the user directory.
const providerTag = "provider"

type Service struct {
	directory Directory
	store     Store
	dialogs   DialogUpdater
	adminID   string
	logger    zerolog.Logger
	now       func() time.Time
}

func NewService(directory Directory, store Store, dialogs DialogUpdater, adminID string, logger zerolog.Logger) *Service {
	return &Service{
		directory: directory,
		store:     store,
		dialogs:   dialogs,
		adminID:   adminID,
		logger:    logger,
		now:       time.Now,
	}
}

// UpdateResult is the outcome of an appointment update. RecordErr and
// DialogErr report propagation failures that did not abort the update.
type UpdateResult struct {
	Appointment    *Appointment
	PrevProviderID string
	RecordErr      error
	DialogErr      error
}

// Get reads a single appointment.
func (s *Service) Get(ctx context.Context, id string) (*Appointment, error) {
	return s.store.GetAppointment(ctx, id)
}

// Update applies a partial mutation to an appointment.
//
// When the provider changes, permissions on the appointment and on its
// consultation records are rewritten for the new provider, and the new
// provider joins the appointment's dialog. Those propagations run
// concurrently with the appointment write; only the appointment write
// decides success. A closed consultation (a conclusion without an end date)
// gets its end date stamped with the current time.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*UpdateResult, error) {
	if req.ProviderID != nil {
		user, err := s.directory.GetUserByID(ctx, *req.ProviderID)
		if err != nil {
			return nil, fmt.Errorf("look up provider: %w", err)
		}
		if user == nil || !user.HasTag(providerTag) {
			return nil, ErrInvalidProvider
		}
	}

	patch := req.patch()
	if req.Conclusion != nil && *req.Conclusion != "" && req.DateEnd == nil {
		patch["date_end"] = s.now().UTC().Format(time.RFC3339)
	}

	if req.ProviderID == nil {
		updated, err := s.store.UpdateAppointment(ctx, id, patch)
		if err != nil {
			return nil, err
		}
		return &UpdateResult{Appointment: updated, PrevProviderID: updated.ProviderID}, nil
	}

	current, err := s.store.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	prevProviderID := current.ProviderID
	newProviderID := *req.ProviderID

	patch["permissions"] = AppointmentPermissions(s.adminID, newProviderID, current.ClientID)
	recordPatch := map[string]interface{}{
		"permissions": RecordPermissions(s.adminID, newProviderID),
	}

	var (
		wg      sync.WaitGroup
		updated *Appointment
		apptErr error
		recErr  error
		dlgErr  error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		updated, apptErr = s.store.UpdateAppointment(ctx, id, patch)
	}()
	go func() {
		defer wg.Done()
		recErr = s.store.UpdateRecordsByAppointment(ctx, id, recordPatch)
	}()
	go func() {
		defer wg.Done()
		if current.DialogID == "" {
			return
		}
		dlgErr = s.dialogs.AddOccupants(ctx, current.DialogID, newProviderID)
	}()
	wg.Wait()

	if apptErr != nil {
		return nil, apptErr
	}
	if recErr != nil {
		s.logger.Error().Err(recErr).
			Str("appointment_id", id).
			Msg("record permission propagation failed")
	}
	if dlgErr != nil {
		s.logger.Error().Err(dlgErr).
			Str("appointment_id", id).
			Str("dialog_id", current.DialogID).
			Msg("dialog occupant propagation failed")
	}

	return &UpdateResult{
		Appointment:    updated,
		PrevProviderID: prevProviderID,
		RecordErr:      recErr,
		DialogErr:      dlgErr,
	}, nil
}
