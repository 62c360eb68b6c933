// Package mediaapi defines the media platform client contract consumed by the
// caption loader, the shared wire types, and the timeout retry decorator used
// by both backend variants.
//
// Two backends exist with differing trust models. The mivideo subpackage
// talks to the course/user-scoped MiVideo gateway, which enforces access
// server-side. The kaltura subpackage operates against a pre-established
// Kaltura session and scopes media through a course category instead.
package mediaapi
