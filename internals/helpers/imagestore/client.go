package imagestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrStore covers every transport/API failure from the CDN. Callers report a
// generic retry-later message; the detail stays in the logs.
var ErrStore = errors.New("image store unavailable")

type UploadedFile struct {
	ID  string
	URL string
}

// Store is what the pipeline and the assemblers talk to; Client is the real
// CDN, tests swap in a mock.
type Store interface {
	Upload(ctx context.Context, filename string, r io.Reader) (UploadedFile, error)
	Delete(ctx context.Context, fileURL string) error
}

// Client uploads to and deletes from the image CDN's HTTP API. Issued URLs
// always have the shape https://<cdn-domain>/<id>/.
type Client struct {
	apiBaseURL string
	publicKey  string
	secretKey  string
	cdnDomain  string
	http       *http.Client
}

func New(apiBaseURL, publicKey, secretKey, cdnDomain string) *Client {
	return &Client{
		apiBaseURL: strings.TrimRight(apiBaseURL, "/"),
		publicKey:  publicKey,
		secretKey:  secretKey,
		cdnDomain:  strings.TrimRight(cdnDomain, "/"),
		http:       &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (UploadedFile, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	if err := mw.WriteField("pub_key", c.publicKey); err != nil {
		return UploadedFile{}, fmt.Errorf("%w: %v", ErrStore, err)
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return UploadedFile{}, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return UploadedFile{}, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if err := mw.Close(); err != nil {
		return UploadedFile{}, fmt.Errorf("%w: %v", ErrStore, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBaseURL+"/base/", body)
	if err != nil {
		return UploadedFile{}, fmt.Errorf("%w: %v", ErrStore, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return UploadedFile{}, fmt.Errorf("%w: %v", ErrStore, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return UploadedFile{}, fmt.Errorf("%w: status %d: %s", ErrStore, resp.StatusCode, msg)
	}

	var out struct {
		File string `json:"file"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.File == "" {
		return UploadedFile{}, fmt.Errorf("%w: bad upload response", ErrStore)
	}

	return UploadedFile{
		ID:  out.File,
		URL: fmt.Sprintf("%s/%s/", c.cdnDomain, out.File),
	}, nil
}

func (c *Client) Delete(ctx context.Context, fileURL string) error {
	id, err := FileID(fileURL)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		fmt.Sprintf("%s/files/%s/", c.apiBaseURL, id), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s:%s", c.publicKey, c.secretKey))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("%w: delete status %d", ErrStore, resp.StatusCode)
	}
	return nil
}

// FileID extracts the trailing path segment from an issued URL
// (.../{id}/ shape).
func FileID(fileURL string) (string, error) {
	u, err := url.Parse(fileURL)
	if err != nil {
		return "", fmt.Errorf("%w: bad file url %q", ErrStore, fileURL)
	}
	path := strings.Trim(u.Path, "/")
	if path == "" {
		return "", fmt.Errorf("%w: bad file url %q", ErrStore, fileURL)
	}
	segs := strings.Split(path, "/")
	return segs[len(segs)-1], nil
}
