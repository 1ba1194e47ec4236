package enum

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/sabhiram/go-gitignore"
)

// FilesystemEnumerator matches a glob against the local filesystem.
type FilesystemEnumerator struct {
	config Config
}

// NewFilesystemEnumerator creates a new filesystem enumerator.
func NewFilesystemEnumerator(config Config) *FilesystemEnumerator {
	return &FilesystemEnumerator{config: config}
}

// Glob is shorthand for NewFilesystemEnumerator(config).Enumerate(ctx).
func Glob(ctx context.Context, config Config) ([]string, error) {
	return NewFilesystemEnumerator(config).Enumerate(ctx)
}

// Enumerate walks the part of the tree the pattern can reach and returns
// the eligible files, sorted.
func (e *FilesystemEnumerator) Enumerate(ctx context.Context) ([]string, error) {
	if e.config.Pattern == "" {
		return nil, fmt.Errorf("glob pattern is required")
	}

	base, pattern := doublestar.SplitPattern(filepath.ToSlash(e.config.Pattern))
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", e.config.Pattern, doublestar.ErrBadPattern)
	}
	for _, ex := range e.config.Exclude {
		if !doublestar.ValidatePattern(filepath.ToSlash(ex)) {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", ex, doublestar.ErrBadPattern)
		}
	}

	root := filepath.FromSlash(base)

	// Load .gitignore patterns if present
	var ignore *gitignore.GitIgnore
	if e.config.RespectGitignore {
		gitignorePath := filepath.Join(root, ".gitignore")
		if _, err := os.Stat(gitignorePath); err == nil {
			ignore, err = gitignore.CompileIgnoreFile(gitignorePath)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", gitignorePath, err)
			}
		}
	}

	opts := []doublestar.GlobOption{doublestar.WithFilesOnly()}
	if !e.config.FollowSymlinks {
		opts = append(opts, doublestar.WithNoFollow())
	}

	var files []string
	err := doublestar.GlobWalk(os.DirFS(root), pattern, func(rel string, d fs.DirEntry) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.Type()&fs.ModeSymlink != 0 && !e.config.FollowSymlinks {
			return nil
		}

		if !e.config.IncludeHidden && hasHiddenElem(rel) {
			return nil
		}

		if ignore != nil && ignore.MatchesPath(rel) {
			return nil
		}

		full := filepath.Join(root, filepath.FromSlash(rel))
		if e.excluded(rel, full) {
			return nil
		}

		if e.config.MaxFileSize > 0 {
			info, err := d.Info()
			if err != nil {
				return fmt.Errorf("stat %s: %w", full, err)
			}
			if info.Size() > e.config.MaxFileSize {
				return nil
			}
		}

		files = append(files, full)
		return nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	slices.Sort(files)
	return files, nil
}

func (e *FilesystemEnumerator) excluded(rel, full string) bool {
	full = filepath.ToSlash(full)
	for _, ex := range e.config.Exclude {
		ex = filepath.ToSlash(ex)
		if doublestar.MatchUnvalidated(ex, rel) || doublestar.MatchUnvalidated(ex, full) {
			return true
		}
	}
	return false
}

// hasHiddenElem reports whether any element of a slash-separated relative
// path is hidden.
func hasHiddenElem(rel string) bool {
	for elem := range strings.SplitSeq(rel, "/") {
		if isHidden(elem) {
			return true
		}
	}
	return false
}

// isHidden checks if a filename is hidden (starts with .).
// The special entries "." and ".." are NOT considered hidden.
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return strings.HasPrefix(name, ".")
}
