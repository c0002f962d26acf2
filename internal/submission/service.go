// AngelaMos | 2026
// service.go

package submission

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/leadtrack/internal/core"
)

const recentSummaryLimit = 10

type Service interface {
	List(ctx context.Context, params ListParams) (*ListResponse, error)
	Get(ctx context.Context, id string) (*Submission, error)
	UpdateStatus(ctx context.Context, id, status string) (*Submission, error)
	AddNote(
		ctx context.Context,
		id, content, authorID string,
	) (*Submission, error)
	BulkUpdate(ctx context.Context, req BulkUpdateRequest) (int64, error)
	Delete(ctx context.Context, id, actorID string) error
	RecentSummary(ctx context.Context) ([]Summary, error)
	LocationStats(ctx context.Context) ([]LocationStat, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(
	ctx context.Context,
	params ListParams,
) (*ListResponse, error) {
	params = params.Normalize()

	subs, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	echo := FilterEcho{
		Search:  params.Search,
		Status:  params.Status,
		Country: params.Country,
	}
	if params.DateFrom != nil {
		echo.DateFrom = params.DateFrom.Format("2006-01-02")
	}
	if params.DateTo != nil {
		echo.DateTo = params.DateTo.Format("2006-01-02")
	}

	return &ListResponse{
		Submissions: subs,
		Pagination:  NewPagination(total, params.Page, params.Limit),
		Filters:     echo,
	}, nil
}

func (s *service) Get(ctx context.Context, id string) (*Submission, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateStatus(
	ctx context.Context,
	id, status string,
) (*Submission, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf(
			"invalid status %q: %w", status, core.ErrInvalidInput)
	}

	return s.repo.UpdateStatus(ctx, id, status)
}

// AddNote appends a timestamped note and returns the full record. The
// stored quality score is untouched; notes are not a scoring input.
func (s *service) AddNote(
	ctx context.Context,
	id, content, authorID string,
) (*Submission, error) {
	note := &Note{
		ID:           uuid.New().String(),
		SubmissionID: id,
		Content:      content,
		AuthorID:     authorID,
		CreatedAt:    time.Now(),
	}

	return s.repo.AppendNote(ctx, note)
}

func (s *service) BulkUpdate(
	ctx context.Context,
	req BulkUpdateRequest,
) (int64, error) {
	if req.Update.Status != nil && !ValidStatus(*req.Update.Status) {
		return 0, fmt.Errorf(
			"invalid status %q: %w", *req.Update.Status, core.ErrInvalidInput)
	}

	return s.repo.BulkUpdate(ctx, req.IDs, req.Update)
}

func (s *service) Delete(ctx context.Context, id, actorID string) error {
	return s.repo.SoftDelete(ctx, id, actorID)
}

func (s *service) RecentSummary(ctx context.Context) ([]Summary, error) {
	return s.repo.Recent(ctx, recentSummaryLimit)
}

func (s *service) LocationStats(ctx context.Context) ([]LocationStat, error) {
	return s.repo.LocationStats(ctx)
}
