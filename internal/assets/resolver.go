package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AssetResolver looks styles up in a custom directory first and falls back to
// the embedded styles when the custom directory does not have them.
type AssetResolver struct {
	custom   StyleLoader // nil without a custom directory
	embedded StyleLoader
}

// NewAssetResolver creates an AssetResolver. An empty customBasePath means
// embedded styles only.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{embedded: NewEmbeddedLoader()}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadStyle loads a style, preferring the custom directory.
// Only ErrStyleNotFound triggers the fallback; validation and read errors are returned.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadStyle(name)
	}

	content, err := r.custom.LoadStyle(name)
	if err == nil {
		return content, nil
	}
	if !errors.Is(err, ErrStyleNotFound) {
		return "", err
	}

	return r.embedded.LoadStyle(name)
}

// HasCustomLoader reports whether a custom directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// FilesystemLoader serves invoice styles from a user asset directory laid out
// as {basePath}/styles/{name}.css, so a company stylesheet can shadow the
// embedded "invoice" or "minimal" style by reusing its name.
type FilesystemLoader struct {
	basePath string // absolute, symlinks resolved
}

// NewFilesystemLoader creates a FilesystemLoader rooted at basePath.
// The directory must exist and be listable; anything else is ErrInvalidBasePath.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	root, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	// Store the real path: containment is checked against resolved style paths,
	// and a symlinked asset directory would otherwise fail the prefix test.
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	info, err := os.Stat(root)
	switch {
	case os.IsNotExist(err):
		return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, root)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, root)
	}

	// The directory must also be listable.
	if _, err := os.ReadDir(root); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{basePath: root}, nil
}

// LoadStyle reads {basePath}/styles/{name}.css.
// A missing file is ErrStyleNotFound so AssetResolver can fall back to the
// embedded copy; other read failures are ErrAssetRead.
func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	stylePath := filepath.Join(f.basePath, "styles", name+".css")
	if err := f.checkContained(stylePath); err != nil {
		return "", err
	}

	css, err := os.ReadFile(stylePath) // #nosec G304 -- name validated, path contained
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
		}
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}

	return string(css), nil
}

// checkContained rejects a style path that leaves basePath.
//
// ValidateAssetName already refuses separators and dots, so this is the second
// line: it resolves symlinks first, which catches styles/invoice.css pointing at
// a file outside the asset directory. A path that does not resolve (missing file)
// is compared as is and fails later on read.
//
// The prefix includes the trailing separator so /assets-evil does not pass as a
// child of /assets.
func (f *FilesystemLoader) checkContained(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	if !strings.HasPrefix(abs, f.basePath+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s escapes %s", ErrPathTraversal, abs, f.basePath)
	}
	return nil
}

// Compile-time interface checks.
var (
	_ StyleLoader = (*AssetResolver)(nil)
	_ StyleLoader = (*FilesystemLoader)(nil)
)
