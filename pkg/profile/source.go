package profile

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/pkg/errors"
)

// MaxRemoteSize caps how much of a remote profile document is read.
const MaxRemoteSize = 1 << 20

// LoadSource reads a profile from a file path or an http(s) URL.
func LoadSource(ctx context.Context, input string) (p Profile, err error) {
	var data []byte
	data, err = Fetch(ctx, input)
	if err != nil {
		return p, err
	}

	p, err = Parse(data)
	if err != nil {
		err = errors.Wrapf(err, "failed to load profile: %s", input)
		return p, err
	}

	return p, err
}

// Fetch returns the raw profile document at input.
func Fetch(ctx context.Context, input string) (data []byte, err error) {
	parsedURL, urlErr := url.Parse(input)
	if urlErr == nil && (parsedURL.Scheme == "http" || parsedURL.Scheme == "https") {
		data, err = fetchFromURL(ctx, input)
		if err != nil {
			err = errors.Wrapf(err, "failed to fetch profile from URL: %s", input)
			return data, err
		}
		return data, err
	}

	data, err = fetchFromFile(input)
	if err != nil {
		err = errors.Wrapf(err, "failed to read profile file: %s", input)
		return data, err
	}

	return data, err
}

func fetchFromFile(path string) (data []byte, err error) {
	data, err = os.ReadFile(path)
	if err != nil {
		return data, err
	}

	if len(data) == 0 {
		err = errors.New("file is empty")
		return data, err
	}

	return data, err
}

func fetchFromURL(ctx context.Context, urlStr string) (data []byte, err error) {
	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return data, err
	}

	req.Header.Set("User-Agent", "career-roadmap/1.0")
	req.Header.Set("Accept", "application/json")

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	var resp *http.Response
	resp, err = client.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return data, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("HTTP request failed with status: %d", resp.StatusCode)
		return data, err
	}

	data, err = io.ReadAll(io.LimitReader(resp.Body, MaxRemoteSize+1))
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return data, err
	}

	if len(data) > MaxRemoteSize {
		err = errors.Errorf("profile document exceeds %d bytes", MaxRemoteSize)
		return nil, err
	}

	if len(data) == 0 {
		err = errors.New("fetched profile is empty")
		return data, err
	}

	return data, err
}
