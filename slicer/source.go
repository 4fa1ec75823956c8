package slicer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrImageLoad marks every failure to fetch or decode a puzzle image.
var ErrImageLoad = errors.New("slicer: image load failed")

const maxImageBytes = 32 << 20

// Source opens the raw bytes of an image addressed by src.
type Source interface {
	Open(ctx context.Context, src string) (io.ReadCloser, error)
}

// HTTPSource fetches http and https URLs.
type HTTPSource struct {
	Client *http.Client
}

func (s HTTPSource) Open(ctx context.Context, src string) (io.ReadCloser, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "image/*")
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: %s", src, resp.Status)
	}
	return limitedReadCloser{Reader: io.LimitReader(resp.Body, maxImageBytes), Closer: resp.Body}, nil
}

type limitedReadCloser struct {
	io.Reader
	io.Closer
}

// FileSource reads plain paths and file:// URLs. Relative paths resolve
// against Root when it is set.
type FileSource struct {
	Root string
}

func (s FileSource) Open(ctx context.Context, src string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := strings.TrimPrefix(src, "file://")
	if s.Root != "" && !filepath.IsAbs(path) {
		path = filepath.Join(s.Root, filepath.FromSlash(path))
	}
	return os.Open(path)
}

// Router dispatches on the URL scheme: http(s) to HTTP, placeholder to
// Placeholder and everything else to File.
type Router struct {
	HTTP        Source
	File        Source
	Placeholder Source
}

// DefaultSource routes to the stock sources.
func DefaultSource() Router {
	return Router{
		HTTP:        HTTPSource{},
		File:        FileSource{},
		Placeholder: PlaceholderSource{},
	}
}

func (r Router) Open(ctx context.Context, src string) (io.ReadCloser, error) {
	var target Source
	scheme := ""
	if u, err := url.Parse(src); err == nil {
		scheme = strings.ToLower(u.Scheme)
	}
	switch scheme {
	case "http", "https":
		target = r.HTTP
	case placeholderScheme:
		target = r.Placeholder
	default:
		target = r.File
	}
	if target == nil {
		return nil, fmt.Errorf("no source for scheme %q", scheme)
	}
	return target.Open(ctx, src)
}
