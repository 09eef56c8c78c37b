package recording

import (
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/errors"
)

// ErrFreeRecordingTooLong is returned when a free user uploads audio
// exceeding the free tier duration cap.
var ErrFreeRecordingTooLong = errors.NewForbiddenError("recording exceeds the free plan duration limit")

// ErrDefaultCategoryImmutable is returned when a seeded default category
// is modified or deleted.
var ErrDefaultCategoryImmutable = errors.NewForbiddenError("default categories cannot be modified")
