package dataset

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/Karunya-Muddana/CBSE-RESULT-ANALASYS-streamlit/internal/logger"
)

var httpClient = &http.Client{
	Timeout: 12 * time.Second,
}

// IsURL reports whether the input path should be fetched over HTTP.
func IsURL(path string) bool {
	l := strings.ToLower(path)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// Fetch downloads an export over HTTP. Transport errors and 5xx responses
// are retried with exponential backoff; 4xx responses fail immediately.
func Fetch(url string) (string, error) {
	log := logger.New().WithComponent("dataset.fetch").WithField("url", url)

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second

	var body []byte
	operation := func() error {
		resp, err := httpClient.Get(url)
		if err != nil {
			log.WithError(err).Warn("fetch attempt failed")
			return err
		}
		defer resp.Body.Close()

		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode >= 500 {
			log.WithField("status", resp.StatusCode).Warn("server error, retrying")
			return fmt.Errorf("server status %d", resp.StatusCode)
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(fmt.Errorf("status %d", resp.StatusCode))
		}
		body = b
		return nil
	}

	if err := backoff.Retry(operation, bo); err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	return string(body), nil
}

// LoadURL fetches and parses a remote export.
func LoadURL(url string) (*Result, error) {
	text, err := Fetch(url)
	if err != nil {
		return nil, err
	}
	return FromText(text)
}
