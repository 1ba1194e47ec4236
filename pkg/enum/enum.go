// Package enum resolves the files a run checks from a glob pattern.
package enum

import "context"

// Enumerator discovers files to check.
type Enumerator interface {
	// Enumerate returns matching file paths in lexical order.
	Enumerate(ctx context.Context) ([]string, error)
}

// Config for enumeration.
type Config struct {
	// Pattern is a glob with "**" support, relative or absolute.
	Pattern string

	// Exclude globs drop matching paths. They are matched against the
	// path as returned and against the path relative to the pattern base.
	Exclude []string

	// IncludeHidden includes hidden files/directories (starting with .).
	IncludeHidden bool

	// RespectGitignore drops paths matched by the .gitignore at the pattern base.
	RespectGitignore bool

	// MaxFileSize is the maximum file size to check (0 = no limit).
	MaxFileSize int64

	// FollowSymlinks follows symbolic links.
	FollowSymlinks bool
}
