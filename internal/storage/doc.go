// Package storage writes generated images to a fixed output directory.
//
// A Saver is bound to one directory for its whole lifetime. The directory is
// created when the Saver is constructed, so a Saver that exists can always
// write (permissions permitting).
//
// # Naming
//
// Caller-supplied names are passed through Sanitize, which removes characters
// that are invalid in filenames on common filesystems:
//
//   - control characters 0x00-0x1F
//   - < > : " / \ | ? *
//
// Trailing periods are then stripped and surrounding whitespace trimmed. A name
// that sanitizes to nothing (or to a bare extension such as ".png") is saved as
// "image" with the original extension.
//
// # Collisions
//
// Save never overwrites an existing file. If the target name is taken, the
// current UTC time is appended to the base name in a filesystem-safe ISO-8601
// form:
//
//	cat.png -> cat-2025-01-02T15-04-05.123Z.png
//
// If that name is also taken, a numeric suffix is added (-1, -2, ...).
package storage
