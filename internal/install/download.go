package install

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/conn-castle/modsync/internal/messages"
)

const (
	// DefaultMaxDownloadBytes caps a single archive download.
	DefaultMaxDownloadBytes = int64(512 * 1024 * 1024)
	downloadRetryCount      = 1
	downloadRetryBackoff    = 250 * time.Millisecond
)

var downloadSleep = func(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// download fetches url into dest, retrying once on network errors and 5xx responses.
// Every returned error wraps ErrNetwork.
func download(ctx context.Context, client *http.Client, url string, dest *os.File, maxBytes int64) error {
	for attempt := 0; attempt <= downloadRetryCount; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf(messages.InstallDownloadFailedFmt, ErrNetwork, url, err)
		}
		resp, err := client.Do(req)
		if err != nil {
			if shouldRetryDownload(attempt, err, 0) {
				if err := downloadSleep(ctx, downloadRetryBackoff); err != nil {
					return fmt.Errorf(messages.InstallDownloadFailedFmt, ErrNetwork, url, err)
				}
				continue
			}
			if isTimeoutError(err) {
				return fmt.Errorf(messages.InstallDownloadTimeoutFmt, ErrNetwork, url)
			}
			return fmt.Errorf(messages.InstallDownloadFailedFmt, ErrNetwork, url, err)
		}

		if resp.StatusCode == http.StatusNotFound {
			_ = resp.Body.Close()
			return fmt.Errorf(messages.InstallDownload404Fmt, ErrNetwork, url)
		}
		if resp.StatusCode != http.StatusOK {
			status := resp.StatusCode
			statusText := resp.Status
			_ = resp.Body.Close()
			if shouldRetryDownload(attempt, nil, status) {
				if err := downloadSleep(ctx, downloadRetryBackoff); err != nil {
					return fmt.Errorf(messages.InstallDownloadFailedFmt, ErrNetwork, url, err)
				}
				continue
			}
			return fmt.Errorf(messages.InstallDownloadUnexpectedStatusFmt, ErrNetwork, url, statusText)
		}

		if err := dest.Truncate(0); err != nil {
			_ = resp.Body.Close()
			return fmt.Errorf(messages.InstallTruncateTempFileFmt, ErrNetwork, err)
		}
		if _, err := dest.Seek(0, io.SeekStart); err != nil {
			_ = resp.Body.Close()
			return fmt.Errorf(messages.InstallTruncateTempFileFmt, ErrNetwork, err)
		}

		n, copyErr := io.Copy(dest, io.LimitReader(resp.Body, maxBytes+1))
		_ = resp.Body.Close()
		if copyErr != nil {
			if shouldRetryDownload(attempt, copyErr, 0) {
				if err := downloadSleep(ctx, downloadRetryBackoff); err != nil {
					return fmt.Errorf(messages.InstallDownloadFailedFmt, ErrNetwork, url, err)
				}
				continue
			}
			return fmt.Errorf(messages.InstallDownloadFailedFmt, ErrNetwork, url, copyErr)
		}
		if n > maxBytes {
			return fmt.Errorf(messages.InstallDownloadTooLargeFmt, ErrNetwork, url, maxBytes)
		}
		return nil
	}
	return fmt.Errorf(messages.InstallDownloadFailedFmt, ErrNetwork, url, errors.New("retry budget exhausted"))
}

// isTimeoutError reports whether err is a network timeout.
func isTimeoutError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}

func shouldRetryDownload(attempt int, err error, statusCode int) bool {
	if attempt >= downloadRetryCount {
		return false
	}
	if err != nil {
		var netErr net.Error
		return errors.As(err, &netErr)
	}
	return statusCode >= 500 && statusCode <= 599
}
