package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"

	apperrors "github.com/stwalsh4118/building/internal/errors"
	"github.com/stwalsh4118/building/internal/logger"
	"github.com/stwalsh4118/building/internal/models"
	"github.com/stwalsh4118/building/internal/repository"
	"github.com/stwalsh4118/building/internal/services"
)

// ApartmentsRequest holds the operations requested in one invocation.
// A nil code means the operation was not requested; an empty one is looked up
// like any other code.
type ApartmentsRequest struct {
	List   bool
	Occupy *string
	Add    *string
}

// ApartmentsHandler runs one invocation of the apartments command:
// load, add, occupy, list, save.
type ApartmentsHandler struct {
	repo    repository.BuildingRepository
	service services.BuildingService
	out     io.Writer
	errOut  io.Writer
	log     *logger.Logger
}

// NewApartmentsHandler creates a new ApartmentsHandler instance.
// Results are written to out and failures to errOut.
func NewApartmentsHandler(repo repository.BuildingRepository, service services.BuildingService, out, errOut io.Writer, log *logger.Logger) *ApartmentsHandler {
	return &ApartmentsHandler{
		repo:    repo,
		service: service,
		out:     out,
		errOut:  errOut,
		log:     log,
	}
}

// Handle executes req against the persisted building and returns the process
// exit status. A failed operation does not stop the ones after it, and the
// building is always saved.
func (h *ApartmentsHandler) Handle(ctx context.Context, req ApartmentsRequest) int {
	building := h.repo.Load(ctx)
	h.service.Seed(building)

	h.log.Debug("Building loaded", map[string]interface{}{
		"floors": len(building.Floors),
	})

	var failures []error

	if req.Add != nil {
		if apt, err := h.service.Add(building, *req.Add); err != nil {
			failures = append(failures, err)
			h.reportFailure(*req.Add, err)
		} else {
			fmt.Fprintf(h.out, "Apartment '%s': Apartment added.\n", apt.Code)
		}
	}

	if req.Occupy != nil {
		if apt, err := h.service.Occupy(building, *req.Occupy); err != nil {
			failures = append(failures, err)
			h.reportFailure(*req.Occupy, err)
		} else {
			fmt.Fprintf(h.out, "Apartment '%s': Apartment occupied now.\n", apt.Code)
		}
	}

	if req.List {
		h.printBuilding(h.service.List(building))
	}

	if err := h.repo.Save(ctx, building); err != nil {
		failures = append(failures, err)
		h.log.Error("Building could not be saved", err, nil)
		fmt.Fprintf(h.errOut, "Building: Configuration save failed: %v\n", err)
	} else {
		fmt.Fprintln(h.out, "Building: Configuration saved.")
	}

	return apperrors.ExitCode(errors.Join(failures...))
}

// reportFailure writes a user-facing message for a failed add or occupy.
func (h *ApartmentsHandler) reportFailure(code string, err error) {
	var reason string
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		reason = "Apartment does not exist!"
	case errors.Is(err, apperrors.ErrLogicConflict):
		var appErr *apperrors.Error
		if errors.As(err, &appErr) && appErr.Op == "add" {
			reason = "Apartment already exists!"
		} else {
			reason = "Apartment is already occupied!"
		}
	default:
		reason = err.Error()
	}
	fmt.Fprintf(h.errOut, "Apartment '%s': %s\n", code, reason)
}

// printBuilding writes the floor listing.
func (h *ApartmentsHandler) printBuilding(floors []models.Floor) {
	fmt.Fprintln(h.out, "Building: Printing Apartments ...")
	for _, floor := range floors {
		fmt.Fprintf(h.out, "Floor No. %d:\n", floor.Number)
		for _, apt := range floor.Apartments {
			fmt.Fprintf(h.out, "  %s\n", apt)
		}
	}
}
