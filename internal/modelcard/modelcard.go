// Package modelcard locates the device model library on disk,
// fetching it from the foundry/PTM mirror when the local cache is
// empty. Acquisition is idempotent: an existing file is never
// re-downloaded or rewritten.
package modelcard

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// Ensure returns the path of the model file under dir, downloading it
// from url on a cache miss. A fetch failure leaves no partial file
// behind.
func Ensure(dir, file, url string) (string, error) {
	path := filepath.Join(dir, file)

	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("modelcard: stat %s: %w", path, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("modelcard: %w", err)
	}

	if err := fetch(path, url); err != nil {
		return "", fmt.Errorf("modelcard: fetch %s: %w", url, err)
	}
	return path, nil
}

func fetch(path, url string) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %s", ErrFetch, resp.Status)
	}

	// write to a sibling temp file first so a broken transfer never
	// looks like a valid cache entry
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
