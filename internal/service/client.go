package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/yildizm/jim/internal/config"
	"github.com/yildizm/jim/internal/exercise"
	"github.com/yildizm/jim/internal/logger"
)

// RequestIDHeader carries a per-request id the service can log
const RequestIDHeader = "X-Request-ID"

// Client talks to the analysis service
type Client struct {
	http          *resty.Client
	baseURL       string
	submitPath    string
	livePath      string
	staticPath    string
	uploadTimeout time.Duration
	liveTimeout   time.Duration
	log           *logger.Logger
}

// New creates a client from configuration. log may be nil.
func New(cfg *config.Config, log *logger.Logger) (*Client, error) {
	u, err := url.Parse(cfg.Service.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid service base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid service base URL: %q", cfg.Service.BaseURL)
	}
	if log == nil {
		log = logger.NewWithCallback("service", func() bool { return cfg.Output.Verbose })
	}

	baseURL := strings.TrimRight(cfg.Service.BaseURL, "/")

	return &Client{
		http:          resty.New().SetBaseURL(baseURL),
		baseURL:       baseURL,
		submitPath:    cfg.Service.SubmitPath,
		livePath:      cfg.Service.LivePath,
		staticPath:    cfg.Service.StaticPath,
		uploadTimeout: cfg.Upload.Timeout,
		liveTimeout:   cfg.Live.Timeout,
		log:           log,
	}, nil
}

// BaseURL returns the service root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// StaticBase returns the prefix processed video references are joined onto
func (c *Client) StaticBase() string {
	return c.baseURL + c.staticPath
}

// VideoURL resolves a relative processed-video reference into a playable URL
func (c *Client) VideoURL(ref string) string {
	if ref == "" {
		return ""
	}
	base := c.StaticBase()
	if strings.HasSuffix(base, "/") {
		ref = strings.TrimPrefix(ref, "/")
	}
	return base + ref
}

// SubmitVideo posts a video and its exercise type and decodes the result
func (c *Client) SubmitVideo(ctx context.Context, upload VideoUpload) (*AnalysisResponse, error) {
	endpoint := c.submitPath
	if !upload.ExerciseType.Valid() {
		return nil, newError(ErrTypeValidation, endpoint, "exercise type not set", nil)
	}
	if upload.Content == nil {
		return nil, newError(ErrTypeValidation, endpoint, "video content not set", nil)
	}

	ctx, cancel := withTimeout(ctx, c.uploadTimeout)
	defer cancel()

	requestID := uuid.NewString()
	start := time.Now()

	res, err := c.http.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, requestID).
		SetHeader("Accept", "application/json").
		SetFileReader(FieldVideo, upload.FileName, upload.Content).
		SetMultipartFormData(map[string]string{
			FieldExerciseType: upload.ExerciseType.String(),
		}).
		Post(endpoint)
	if err != nil {
		return nil, transportError(endpoint, err)
	}

	c.log.DebugWithFields("video submission answered", []logger.Field{
		logger.F("request_id", requestID),
		logger.F("status", res.StatusCode()),
		logger.Duration(time.Since(start)),
	})

	if !res.IsSuccess() {
		return nil, statusError(endpoint, res)
	}

	var out AnalysisResponse
	if err := json.Unmarshal(res.Body(), &out); err != nil {
		return nil, newError(ErrTypeDecode, endpoint, "response is not a JSON object", err)
	}

	return &out, nil
}

// StartLive asks the service to begin a live capture session. Any 2xx is
// success; the body is not interpreted.
func (c *Client) StartLive(ctx context.Context, exerciseType exercise.Type) error {
	endpoint := c.livePath
	if !exerciseType.Valid() {
		return newError(ErrTypeValidation, endpoint, "exercise type not set", nil)
	}

	ctx, cancel := withTimeout(ctx, c.liveTimeout)
	defer cancel()

	requestID := uuid.NewString()

	res, err := c.http.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, requestID).
		SetDoNotParseResponse(true).
		SetMultipartFormData(map[string]string{
			FieldLiveExerciseType: exerciseType.String(),
		}).
		Post(endpoint)
	if err != nil {
		return transportError(endpoint, err)
	}
	// the live endpoint may stream indefinitely, so the body is never read
	if raw := res.RawBody(); raw != nil {
		_ = raw.Close()
	}

	c.log.DebugWithFields("live session answered", []logger.Field{
		logger.F("request_id", requestID),
		logger.F("status", res.StatusCode()),
	})

	if !res.IsSuccess() {
		return &Error{
			Type:       ErrTypeStatus,
			Message:    fmt.Sprintf("unexpected status %d", res.StatusCode()),
			Endpoint:   endpoint,
			StatusCode: res.StatusCode(),
		}
	}

	return nil
}

// Download fetches a processed video into dest. The body is written to a
// temporary file beside dest and renamed into place only on a 2xx status, so
// a failed request never leaves a file at dest.
func (c *Client) Download(ctx context.Context, ref, dest string) error {
	target := c.VideoURL(ref)
	if target == "" {
		return newError(ErrTypeValidation, c.staticPath, "video reference not set", nil)
	}

	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create download directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".*.part")
	if err != nil {
		return fmt.Errorf("failed to create download file: %w", err)
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	defer func() { _ = os.Remove(tmpPath) }()

	res, err := c.http.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, uuid.NewString()).
		SetOutput(tmpPath).
		Get(target)
	if err != nil {
		return transportError(target, err)
	}
	if !res.IsSuccess() {
		return &Error{
			Type:       ErrTypeStatus,
			Message:    fmt.Sprintf("unexpected status %d", res.StatusCode()),
			Endpoint:   target,
			StatusCode: res.StatusCode(),
		}
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("failed to save download: %w", err)
	}
	return nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func transportError(endpoint string, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return newError(ErrTypeTimeout, endpoint, "request timed out", err)
	}
	return newError(ErrTypeNetwork, endpoint, "request failed", err)
}

func statusError(endpoint string, res *resty.Response) *Error {
	body := strings.TrimSpace(res.String())
	if len(body) > 200 {
		body = body[:200]
	}
	return &Error{
		Type:       ErrTypeStatus,
		Message:    fmt.Sprintf("unexpected status %d", res.StatusCode()),
		Endpoint:   endpoint,
		StatusCode: res.StatusCode(),
		Body:       body,
	}
}
