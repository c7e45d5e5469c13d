package core

import "errors"

// Error taxonomy shared by the scan, classify and delete stages.
//
// Per-target errors (permission, vanished, partial deletion) are attached to
// a target's outcome and never abort a run. Only ErrInvalidFlags,
// ErrInvalidStartPath and ErrCatastrophicIO stop the pipeline.
var (
	// ErrInvalidFlags reports a rejected combination of mode flags.
	ErrInvalidFlags = errors.New("invalid flag combination")

	// ErrInvalidStartPath reports a start path that is missing, not a
	// directory, or unreadable.
	ErrInvalidStartPath = errors.New("invalid start path")

	// ErrMetadataUnavailable reports that the filesystem does not expose a
	// creation time for a path.
	ErrMetadataUnavailable = errors.New("creation time unavailable")

	// ErrPermissionDenied reports missing read, write or delete permission.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrTargetVanished reports a target removed or replaced between scan
	// and action.
	ErrTargetVanished = errors.New("target vanished")

	// ErrPartialDeletion reports a removal that stopped partway.
	ErrPartialDeletion = errors.New("partial deletion")

	// ErrProtectedPath reports a path on the never-delete list or one that
	// does not carry the marker name.
	ErrProtectedPath = errors.New("protected path")

	// ErrCatastrophicIO reports a traversal failure that makes the rest of
	// the walk meaningless, such as the start path becoming unreadable.
	ErrCatastrophicIO = errors.New("catastrophic I/O failure")
)
