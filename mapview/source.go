package mapview

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"atmlocator/logger"
	"atmlocator/model"
)

var ErrReadOnlySource = errors.New("source is read-only")

// Source is where the view loads records from and sends new ones to.
type Source interface {
	List(ctx context.Context) ([]model.Atm, error)
	Create(ctx context.Context, atm model.Atm) (model.Atm, error)
}

// StatusError is returned for non-2xx answers from the endpoint.
type StatusError struct {
	Method string
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.URL, e.Status, e.Body)
}

// NewSource picks an HTTP or file source from raw. field names the array
// inside an object-shaped payload.
func NewSource(raw, field string) Source {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return NewHTTPSource(raw, field)
	}
	return &FileSource{Path: strings.TrimPrefix(raw, "file://"), Field: field}
}

type HTTPSource struct {
	URL      string
	Field    string
	Client   *http.Client
	WriteKey string
	Log      *logger.Logger
}

func NewHTTPSource(url, field string) *HTTPSource {
	return &HTTPSource{
		URL:    url,
		Field:  field,
		Client: &http.Client{Timeout: 10 * time.Second},
		Log:    logger.Discard(),
	}
}

func (s *HTTPSource) List(ctx context.Context) ([]model.Atm, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	body, err := s.do(req)
	if err != nil {
		return nil, err
	}
	return decodeAtms(body, s.Field)
}

func (s *HTTPSource) Create(ctx context.Context, atm model.Atm) (model.Atm, error) {
	payload, err := json.Marshal(atm)
	if err != nil {
		return model.Atm{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(payload))
	if err != nil {
		return model.Atm{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.WriteKey != "" {
		req.Header.Set("X-Api-Key", s.WriteKey)
	}

	body, err := s.do(req)
	if err != nil {
		return model.Atm{}, err
	}

	// The echo confirms creation; keep what we sent if it says nothing useful.
	var created model.Atm
	if err := json.Unmarshal(body, &created); err != nil || created.Name == "" {
		if s.Log != nil {
			s.Log.Debug("create echo unusable, keeping submitted record",
				slog.String("url", s.URL),
				slog.Int("bytes", len(body)),
				slog.Any("decode_error", err),
			)
		}
		return atm, nil
	}
	return created, nil
}

func (s *HTTPSource) do(req *http.Request) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, s.URL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", req.Method, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Method: req.Method,
			URL:    s.URL,
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(body)),
		}
	}
	return body, nil
}

// FileSource reads a static JSON asset.
type FileSource struct {
	Path  string
	Field string
}

func (s *FileSource) List(ctx context.Context) ([]model.Atm, error) {
	body, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return decodeAtms(body, s.Field)
}

func (s *FileSource) Create(ctx context.Context, atm model.Atm) (model.Atm, error) {
	return model.Atm{}, ErrReadOnlySource
}

// decodeAtms accepts either a bare array or an object holding the array
// under field.
func decodeAtms(body []byte, field string) ([]model.Atm, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errors.New("empty location payload")
	}

	if trimmed[0] == '[' {
		var atms []model.Atm
		if err := json.Unmarshal(trimmed, &atms); err != nil {
			return nil, fmt.Errorf("decode location array: %w", err)
		}
		return atms, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("decode location payload: %w", err)
	}
	raw, ok := envelope[field]
	if !ok {
		return nil, fmt.Errorf("location payload has no %q field", field)
	}

	var atms []model.Atm
	if err := json.Unmarshal(raw, &atms); err != nil {
		return nil, fmt.Errorf("decode %q field: %w", field, err)
	}
	return atms, nil
}
