package leave

import (
	"context"
	"time"

	"github.com/salonsuite/salon-scheduler/internal/audit"
	domain "github.com/salonsuite/salon-scheduler/internal/domain/schedule"
	"github.com/salonsuite/salon-scheduler/internal/httperr"
	"github.com/salonsuite/salon-scheduler/internal/models"
)

type SubmitInput struct {
	StaffID   uint
	StartDate string
	EndDate   string
	Reason    string
}

type SubmitRequest struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSubmitRequest(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SubmitRequest {
	return &SubmitRequest{
		repo:  repo,
		audit: audit,
	}
}

// Execute files a pending leave request. A staff member may not hold
// two non-rejected requests with overlapping date ranges.
func (uc *SubmitRequest) Execute(
	ctx context.Context,
	in SubmitInput,
) (*models.LeaveRequest, error) {

	start, err := time.Parse("2006-01-02", in.StartDate)
	if err != nil {
		return nil, httperr.Validation("invalid_start_date", "Start date must be in YYYY-MM-DD format.")
	}

	end, err := time.Parse("2006-01-02", in.EndDate)
	if err != nil {
		return nil, httperr.Validation("invalid_end_date", "End date must be in YYYY-MM-DD format.")
	}

	if end.Before(start) {
		return nil, httperr.Validation("invalid_date_range", "End date must not be before start date.")
	}

	staff, err := uc.repo.GetStaff(ctx, in.StaffID)
	if err != nil {
		return nil, httperr.NotFoundErr("staff_not_found", "Staff member not found.")
	}

	existing, err := uc.repo.FindOverlappingLeave(ctx, in.StaffID, start, end)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, httperr.Conflict(
			"leave_overlap",
			"An overlapping leave request already exists for this period.",
		)
	}

	req := &models.LeaveRequest{
		StaffID:   in.StaffID,
		StartDate: start,
		EndDate:   end,
		Reason:    in.Reason,
		Status:    domain.RequestPending,
	}

	if err := uc.repo.CreateLeaveRequest(ctx, req); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BranchID: staff.PrimaryBranchID,
		UserID:   &staff.UserID,
		Action:   "leave_submitted",
		Entity:   "leave_request",
		EntityID: &req.ID,
		Metadata: map[string]any{"start": in.StartDate, "end": in.EndDate},
	})

	return req, nil
}
