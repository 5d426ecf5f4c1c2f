// Package fs provides file-based storage for archived articles and batch
// output files.
package fs

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tccs "github.com/Trantu1102/NB-TCCS"
)

// Ensure FileStore implements tccs.PageStore at compile time.
var _ tccs.PageStore = (*FileStore)(nil)

// URLToPath converts an article URL to a relative Markdown file path.
// Example: https://xaydungdang.org.vn/nghien-cuu/bai-viet-123.html → nghien-cuu/bai-viet-123.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", tccs.Errorf(tccs.EINVALID, "invalid page URL: %v", err)
	}

	p := strings.TrimPrefix(u.Path, "/")
	if p == "" {
		return "index.md", nil
	}
	if strings.HasSuffix(p, "/") {
		return p + "index.md", nil
	}
	if ext := path.Ext(p); ext == ".html" || ext == ".htm" {
		p = strings.TrimSuffix(p, ext)
	}
	return p + ".md", nil
}

// FormatPage formats a page with YAML frontmatter.
func FormatPage(page *tccs.Page, archived time.Time) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(page.URL)
	b.WriteString("\ntitle: ")
	b.WriteString(strconv.Quote(page.Title))
	if page.Author != "" {
		b.WriteString("\nauthor: ")
		b.WriteString(strconv.Quote(page.Author))
	}
	if page.Hash != "" {
		b.WriteString("\nhash: ")
		b.WriteString(page.Hash)
	}
	b.WriteString("\narchived: ")
	b.WriteString(archived.Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString(page.Content)
	return b.String()
}

// FileStore implements tccs.PageStore with atomic update semantics.
// Pages are saved to a temporary directory, then moved atomically on Commit.
type FileStore struct {
	baseDir string
	name    string

	// Now returns the archive date. Defaults to time.Now.
	Now func() time.Time
}

// NewFileStore creates a new FileStore.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
		Now:     time.Now,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes page under the temporary directory.
func (s *FileStore) Save(ctx context.Context, page *tccs.Page) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	relPath, err := URLToPath(page.URL)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(s.tempDir(), filepath.FromSlash(relPath))
	if rel, err := filepath.Rel(s.tempDir(), fullPath); err != nil || strings.HasPrefix(rel, "..") {
		return tccs.Errorf(tccs.EINVALID, "path traversal in page URL: %s", page.URL)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(FormatPage(page, s.Now())), 0644)
}

// Commit replaces the final directory with the saved pages.
func (s *FileStore) Commit() error {
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards the saved pages.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
