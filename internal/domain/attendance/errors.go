package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")

	// Store conflicts. The clock folds both into no-ops.
	ErrAttendanceExists        = errors.New("attendance record already exists for this date")
	ErrAttendanceAlreadyClosed = errors.New("attendance record already checked out")
)
