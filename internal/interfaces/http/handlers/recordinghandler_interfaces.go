package handlers

import (
	"context"

	recordingdto "github.com/dreamtalk-inc/dreamtalk/internal/application/recording/dto"
	recordingusecases "github.com/dreamtalk-inc/dreamtalk/internal/application/recording/usecases"
)

// Use case interfaces for RecordingHandler and CategoryHandler - enables
// unit testing with mocks.

type saveRecordingUseCase interface {
	Execute(ctx context.Context, cmd recordingusecases.SaveRecordingCommand) (*recordingdto.RecordingResponse, error)
}

type listRecordingsUseCase interface {
	Execute(ctx context.Context, cmd recordingusecases.ListRecordingsCommand) (*recordingdto.ListRecordingsResponse, error)
}

type getRecordingUseCase interface {
	Execute(ctx context.Context, cmd recordingusecases.GetRecordingCommand) (*recordingdto.RecordingResponse, error)
}

type deleteRecordingUseCase interface {
	Execute(ctx context.Context, cmd recordingusecases.DeleteRecordingCommand) error
}

type listCategoriesUseCase interface {
	Execute(ctx context.Context, cmd recordingusecases.ListCategoriesCommand) ([]*recordingdto.CategoryResponse, error)
}

type createCategoryUseCase interface {
	Execute(ctx context.Context, cmd recordingusecases.CreateCategoryCommand) (*recordingdto.CategoryResponse, error)
}

type deleteCategoryUseCase interface {
	Execute(ctx context.Context, cmd recordingusecases.DeleteCategoryCommand) error
}
