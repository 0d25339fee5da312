// Package registry implements the Registry port against the crates.io API
// with local response caching.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/dupes/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

const (
	cratesAPIPath     = "/api/v1/crates/"
	httpClientTimeout = 30 * time.Second

	// cacheTTL bounds how long a cached newest_version is trusted. New
	// releases happen; a stale answer only delays a report line, so a short
	// TTL is enough.
	cacheTTL = time.Hour

	// crates.io requires a identifiable User-Agent for API consumers.
	userAgent = "dupes (go.trai.ch/dupes)"
)

// Client implements ports.Registry using the crates.io API.
type Client struct {
	baseURL      string
	cacheDir     string
	httpClient   *http.Client
	requestGroup singleflight.Group
}

// NewClient creates a new Registry client for the given base URL.
func NewClient(baseURL string) (*Client, error) {
	return newClientWithPath(baseURL, domain.DefaultRegistryCachePath(), &http.Client{
		Timeout: httpClientTimeout,
	})
}

// newClientWithPath creates a Client with a custom cache path and http
// client (used for testing).
func newClientWithPath(baseURL, path string, client *http.Client) (*Client, error) {
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(cleanPath, domain.DirPerm); err != nil {
		return nil, zerr.Wrap(err, domain.ErrCacheCreateFailed.Error())
	}

	return &Client{
		baseURL:    baseURL,
		cacheDir:   cleanPath,
		httpClient: client,
	}, nil
}

// crateResponse mirrors the crates.io payload; only newest_version crosses
// into the core.
type crateResponse struct {
	Crate struct {
		NewestVersion string `json:"newest_version"`
	} `json:"crate"`
}

// cacheEntry is the on-disk cache format for one crate lookup.
type cacheEntry struct {
	Name          string    `json:"name"`
	NewestVersion string    `json:"newest_version"`
	FetchedAt     time.Time `json:"fetched_at"`
}

// Latest returns the newest published version of the named crate. Concurrent
// lookups for the same name are collapsed via singleflight; successful
// answers are cached on disk for cacheTTL.
func (c *Client) Latest(ctx context.Context, name string) (string, error) {
	result, err, _ := c.requestGroup.Do(name, func() (any, error) {
		cachePath := c.getCachePath(name)
		if version, err := c.loadFromCache(cachePath); err == nil {
			return version, nil
		}

		version, err := c.queryRegistry(ctx, name)
		if err != nil {
			return "", err
		}

		// A cache write failure is not critical; the lookup already succeeded.
		_ = c.saveToCache(cachePath, name, version)

		return version, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// getCachePath returns the cache file path for a crate name.
func (c *Client) getCachePath(name string) string {
	key := fmt.Sprintf("%016x", xxhash.Sum64String(name))
	return filepath.Join(c.cacheDir, key+".json")
}

// loadFromCache returns the cached newest version if present and fresh.
func (c *Client) loadFromCache(path string) (string, error) {
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", domain.ErrCacheReadFailed
		}
		return "", zerr.Wrap(err, domain.ErrCacheReadFailed.Error())
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return "", zerr.Wrap(err, domain.ErrCacheReadFailed.Error())
	}

	if entry.NewestVersion == "" || time.Since(entry.FetchedAt) > cacheTTL {
		return "", domain.ErrCacheReadFailed
	}

	return entry.NewestVersion, nil
}

// saveToCache persists a lookup result atomically.
func (c *Client) saveToCache(path, name, version string) error {
	entry := cacheEntry{
		Name:          name,
		NewestVersion: version,
		FetchedAt:     time.Now(),
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}

	if err := c.atomicWriteFile(path, data); err != nil {
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}

	return nil
}

// atomicWriteFile writes data to a temp file and renames it into place.
func (c *Client) atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, "registry-cache-*.json")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// queryRegistry performs the crates.io lookup.
func (c *Client) queryRegistry(ctx context.Context, name string) (string, error) {
	endpoint := c.baseURL + cratesAPIPath + url.PathEscape(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrRegistryRequestFailed.Error())
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrRegistryRequestFailed.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return "", zerr.With(domain.ErrCrateNotFound, "crate", name)
	}

	if resp.StatusCode != http.StatusOK {
		reqErr := zerr.With(domain.ErrRegistryRequestFailed, "status_code", resp.StatusCode)
		return "", zerr.With(reqErr, "crate", name)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrRegistryRequestFailed.Error())
	}

	var payload crateResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", zerr.Wrap(err, domain.ErrRegistryParseFailed.Error())
	}

	if payload.Crate.NewestVersion == "" {
		return "", zerr.With(domain.ErrRegistryParseFailed, "crate", name)
	}

	return payload.Crate.NewestVersion, nil
}
