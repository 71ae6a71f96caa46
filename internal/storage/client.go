package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/jlaffaye/ftp"

	"github.com/pism/pism-cloud/pkg/logger"
)

// Client moves bytes between remote resources and local files, dispatching
// on the URL scheme. S3 traffic goes through the ObjectStorage backend;
// HTTP(S) and FTP use the generic transfer path.
type Client struct {
	store ObjectStorage
	httpc *http.Client
}

// NewClient creates a transfer client backed by the given object storage.
func NewClient(store ObjectStorage) *Client {
	return &Client{
		store: store,
		httpc: &http.Client{},
	}
}

// Fetch downloads the resource at rawURL into destPath. On failure the
// destination file may be absent or partially written.
func (c *Client) Fetch(ctx context.Context, rawURL, destPath string) error {
	loc, err := ParseURL(rawURL)
	if err != nil {
		return err
	}

	switch loc.Scheme {
	case SchemeS3:
		logger.Log.Info().Str("bucket", loc.Bucket).Str("key", loc.Key).Str("file", destPath).Msg("downloading from object storage")
		if err := c.store.DownloadObject(ctx, loc.Bucket, loc.Key, destPath); err != nil {
			return &TransferError{URL: rawURL, Op: "fetch", Err: err}
		}
		return nil
	case SchemeHTTP:
		logger.Log.Info().Str("url", rawURL).Str("file", destPath).Msg("downloading over http")
		return c.fetchHTTP(ctx, loc, destPath)
	case SchemeFTP:
		logger.Log.Info().Str("url", rawURL).Str("file", destPath).Msg("downloading over ftp")
		return c.fetchFTP(ctx, loc, destPath)
	}
	return &MalformedURLError{URL: rawURL, Reason: "unsupported scheme"}
}

func (c *Client) fetchHTTP(ctx context.Context, loc Location, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc.URL, nil)
	if err != nil {
		return &TransferError{URL: loc.URL, Op: "fetch", Err: err}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &TransferError{URL: loc.URL, Op: "fetch", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &TransferError{URL: loc.URL, Op: "fetch", Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	if err := writeStream(destPath, resp.Body); err != nil {
		return &TransferError{URL: loc.URL, Op: "fetch", Err: err}
	}
	return nil
}

func (c *Client) fetchFTP(ctx context.Context, loc Location, destPath string) error {
	addr := loc.Bucket
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, "21")
	}

	conn, err := ftp.Dial(addr, ftp.DialWithContext(ctx))
	if err != nil {
		return &TransferError{URL: loc.URL, Op: "fetch", Err: err}
	}
	defer conn.Quit()

	if err := conn.Login("anonymous", "anonymous"); err != nil {
		return &TransferError{URL: loc.URL, Op: "fetch", Err: err}
	}

	resp, err := conn.Retr(strings.TrimPrefix(loc.Key, "/"))
	if err != nil {
		return &TransferError{URL: loc.URL, Op: "fetch", Err: err}
	}
	defer resp.Close()

	if err := writeStream(destPath, resp); err != nil {
		return &TransferError{URL: loc.URL, Op: "fetch", Err: err}
	}
	return nil
}

// Push uploads a local file to an object-storage location. Only S3
// destinations are supported.
func (c *Client) Push(ctx context.Context, localPath string, dest Location) error {
	if dest.Scheme != SchemeS3 {
		return &TransferError{URL: dest.String(), Op: "push", Err: errors.New("only s3 destinations are supported")}
	}

	logger.Log.Info().Str("file", localPath).Str("bucket", dest.Bucket).Str("key", dest.Key).Msg("uploading to object storage")
	if err := c.store.UploadObject(ctx, localPath, dest.Bucket, dest.Key); err != nil {
		return &TransferError{URL: dest.String(), Op: "push", Err: err}
	}
	return nil
}

func writeStream(destPath string, r io.Reader) error {
	f, err := os.Create(destPath)
	if err != nil {
		return err
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
