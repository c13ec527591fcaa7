package telegram

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// DownloadURL is the address of a file returned by GetFile. It embeds the
// bot token and must not be shown to users.
func (c *Client) DownloadURL(filePath string) string {
	return c.fileURL + strings.TrimLeft(filePath, "/")
}

// DownloadFile fetches the bytes of a file returned by GetFile. It is a
// plain GET: no envelope, no retry.
func (c *Client) DownloadFile(ctx context.Context, filePath string) ([]byte, error) {
	slog.Debug("telegram API download file", "component", "telegram", "operation", "download_file", "file_path", filePath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.DownloadURL(filePath), nil)
	if err != nil {
		return nil, fmt.Errorf("telegram: download file: create request: %w", redact(err, c.redactedFile+filePath))
	}

	resp, err := httpDo(c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("telegram: download file: %w", redact(err, c.redactedFile+filePath))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("telegram: download file: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("telegram: download file: read body: %w", err)
	}

	slog.Debug("file downloaded", "component", "telegram", "operation", "download_file", "size", len(data))
	return data, nil
}
