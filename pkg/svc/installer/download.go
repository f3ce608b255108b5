package installer

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// ErrBinaryNotInArchive is returned when the expected binary path is absent
// from a downloaded archive.
var ErrBinaryNotInArchive = errors.New("binary not found in archive")

// Downloader fetches artifacts over HTTP to local files.
type Downloader struct {
	httpClient *http.Client
}

// NewDownloader creates a downloader. A nil httpClient falls back to
// http.DefaultClient.
func NewDownloader(httpClient *http.Client) *Downloader {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Downloader{httpClient: httpClient}
}

// Download streams url into destinationPath, overwriting any existing file.
func (d *Downloader) Download(ctx context.Context, url, destinationPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build download request: %w", err)
	}

	logrus.WithField("url", url).Debug("downloading artifact")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download %s: status %d", url, resp.StatusCode)
	}

	destination, err := os.OpenFile(destinationPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", destinationPath, err)
	}

	_, err = io.Copy(destination, resp.Body)
	if err != nil {
		_ = destination.Close()

		return fmt.Errorf("failed to write %s: %w", destinationPath, err)
	}

	err = destination.Close()
	if err != nil {
		return fmt.Errorf("failed to finalize %s: %w", destinationPath, err)
	}

	return nil
}

// extractFromTarGz locates archivePath inside the gzipped tarball at
// archiveFile and writes that entry to destinationPath.
func extractFromTarGz(archiveFile, archivePath, destinationPath string) error {
	archive, err := os.Open(archiveFile)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() { _ = archive.Close() }()

	gzipReader, err := gzip.NewReader(archive)
	if err != nil {
		return fmt.Errorf("failed to read archive: %w", err)
	}
	defer func() { _ = gzipReader.Close() }()

	tarReader := tar.NewReader(gzipReader)

	for {
		header, err := tarReader.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return fmt.Errorf("failed to scan archive: %w", err)
		}

		if header.Typeflag != tar.TypeReg {
			continue
		}

		if strings.TrimPrefix(header.Name, "./") != archivePath {
			continue
		}

		destination, err := os.OpenFile(destinationPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", destinationPath, err)
		}

		_, err = io.Copy(destination, tarReader)
		if err != nil {
			_ = destination.Close()

			return fmt.Errorf("failed to extract %s: %w", archivePath, err)
		}

		err = destination.Close()
		if err != nil {
			return fmt.Errorf("failed to finalize %s: %w", destinationPath, err)
		}

		return nil
	}

	return fmt.Errorf("%w: %s", ErrBinaryNotInArchive, archivePath)
}
