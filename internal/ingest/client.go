package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/AngelCh415/bookings-analysis/internal/utils"
)

var ErrTooLarge = errors.New("file exceeds upload limit")

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

func NewHTTPClient(timeout time.Duration) HTTPClient {
	return &http.Client{Timeout: timeout}
}

// 5xx y errores de red se reintentan; 4xx es definitivo
func fetch(ctx context.Context, c HTTPClient, b utils.Backoff, url string, limit int64) ([]byte, error) {
	if url == "" {
		return nil, errors.New("empty url")
	}
	var body []byte
	err := b.Do(ctx, func(int) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return utils.Permanent{Err: err}
		}
		req.Header.Set("Accept", "text/csv")
		resp, err := c.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
			err := fmt.Errorf("non-2xx: %d body=%s", resp.StatusCode, string(snippet))
			if resp.StatusCode < 500 {
				return utils.Permanent{Err: err}
			}
			return err
		}
		r := io.Reader(resp.Body)
		if limit > 0 {
			r = io.LimitReader(resp.Body, limit+1)
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		if limit > 0 && int64(len(data)) > limit {
			return utils.Permanent{Err: ErrTooLarge}
		}
		body = data
		return nil
	})
	return body, err
}
