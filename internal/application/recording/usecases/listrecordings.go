package usecases

import (
	"context"
	"fmt"

	"github.com/dreamtalk-inc/dreamtalk/internal/application/recording/dto"
	"github.com/dreamtalk-inc/dreamtalk/internal/domain/recording"
	"github.com/dreamtalk-inc/dreamtalk/internal/domain/user"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/constants"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/errors"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/logger"
)

type ListRecordingsCommand struct {
	UserSID     string
	CategorySID string
	Page        int
	PageSize    int
}

type ListRecordingsUseCase struct {
	userRepo user.Repository
	recRepo  recording.Repository
	catRepo  recording.CategoryRepository
	logger   logger.Interface
}

func NewListRecordingsUseCase(
	userRepo user.Repository,
	recRepo recording.Repository,
	catRepo recording.CategoryRepository,
	logger logger.Interface,
) *ListRecordingsUseCase {
	return &ListRecordingsUseCase{
		userRepo: userRepo,
		recRepo:  recRepo,
		catRepo:  catRepo,
		logger:   logger,
	}
}

func (uc *ListRecordingsUseCase) Execute(ctx context.Context, cmd ListRecordingsCommand) (*dto.ListRecordingsResponse, error) {
	userEntity, err := uc.userRepo.GetBySID(ctx, cmd.UserSID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if userEntity == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	filter := recording.ListFilter{
		Page:     cmd.Page,
		PageSize: cmd.PageSize,
	}
	if cmd.CategorySID != "" {
		cat, err := uc.catRepo.GetBySID(ctx, cmd.CategorySID)
		if err != nil {
			if errors.IsNotFoundError(err) {
				return nil, errors.NewNotFoundError("category not found")
			}
			return nil, fmt.Errorf("failed to get category: %w", err)
		}
		if !cat.IsAccessibleBy(userEntity.ID()) {
			return nil, errors.NewNotFoundError("category not found")
		}
		cid := cat.ID()
		filter.CategoryID = &cid
	}

	recordings, total, err := uc.recRepo.ListByUserID(ctx, userEntity.ID(), filter)
	if err != nil {
		uc.logger.Errorw("failed to list recordings", "user_id", userEntity.ID(), "error", err)
		return nil, fmt.Errorf("failed to list recordings: %w", err)
	}

	sidByCategory := uc.categorySIDs(ctx, recordings)

	items := make([]*dto.RecordingResponse, 0, len(recordings))
	for _, rec := range recordings {
		categorySID := ""
		if cid := rec.CategoryID(); cid != nil {
			categorySID = sidByCategory[*cid]
		}
		items = append(items, dto.RecordingFromEntity(rec, categorySID))
	}

	page := cmd.Page
	if page < 1 {
		page = constants.DefaultPage
	}
	pageSize := cmd.PageSize
	if pageSize < 1 || pageSize > constants.MaxPageSize {
		pageSize = constants.DefaultPageSize
	}

	return &dto.ListRecordingsResponse{
		Recordings: items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

// categorySIDs resolves the category SIDs referenced by the page in one
// pass; a missing category degrades to an empty SID rather than an error.
func (uc *ListRecordingsUseCase) categorySIDs(ctx context.Context, recordings []*recording.Recording) map[uint]string {
	out := make(map[uint]string)
	for _, rec := range recordings {
		cid := rec.CategoryID()
		if cid == nil {
			continue
		}
		if _, seen := out[*cid]; seen {
			continue
		}
		cat, err := uc.catRepo.GetByID(ctx, *cid)
		if err != nil {
			uc.logger.Warnw("failed to resolve category", "category_id", *cid, "error", err)
			out[*cid] = ""
			continue
		}
		out[*cid] = cat.SID()
	}
	return out
}
