package files

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/artem13815/cvstudio/pkg/cv"
)

// URLPrefix: публичный префикс, под которым Fiber отдаёт каталог загрузок.
const URLPrefix = "/uploads"

var _ cv.FileStore = (*Disk)(nil)

// Disk хранит загруженные файлы в локальном каталоге. Save возвращает
// публичный путь вида /uploads/<key>, Remove принимает такой же путь.
type Disk struct {
	root string
}

func NewDisk(root string) (*Disk, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Disk{root: root}, nil
}

func (d *Disk) Root() string { return d.root }

func (d *Disk) Save(_ context.Context, key string, data []byte) (string, error) {
	rel, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	full := filepath.Join(d.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return path.Join(URLPrefix, rel), nil
}

// Remove is a no-op for paths that are not under the upload prefix or no
// longer exist.
func (d *Disk) Remove(_ context.Context, p string) error {
	if p == "" || !strings.HasPrefix(p, URLPrefix+"/") {
		return nil
	}
	rel, err := cleanKey(strings.TrimPrefix(p, URLPrefix+"/"))
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(d.root, filepath.FromSlash(rel)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func cleanKey(key string) (string, error) {
	rel := path.Clean("/" + strings.ReplaceAll(key, "\\", "/"))[1:]
	if rel == "" || rel == "." {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return rel, nil
}
