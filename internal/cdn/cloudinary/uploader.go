// Package cloudinary uploads images to the media CDN using unsigned upload
// presets.
package cloudinary

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"Hearth/internal/core/media"

	"resty.dev/v3"
)

const (
	DefaultAPIURL       = "https://api.cloudinary.com"
	DefaultUploadPreset = "ml_default"
	uploadPath          = "/v1_1/{cloudName}/image/upload"
)

type Config struct {
	TransportSettings   *resty.TransportSettings
	APIURL              string
	CloudName           string
	UploadPreset        string
	Folder              string
	ResponseMiddlewares []resty.ResponseMiddleware
	Timeout             time.Duration
}

// Uploader implements media.Uploader against the CDN upload endpoint.
type Uploader struct {
	client *resty.Client
	cfg    Config
}

func NewUploader(cfg Config) (*Uploader, error) {
	if cfg.CloudName == "" {
		return nil, errors.New("cloud name is required")
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.UploadPreset == "" {
		cfg.UploadPreset = DefaultUploadPreset
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	var client *resty.Client
	if cfg.TransportSettings != nil {
		client = resty.NewWithTransportSettings(cfg.TransportSettings)
	} else {
		client = resty.New()
	}
	client.SetBaseURL(strings.TrimRight(cfg.APIURL, "/")).
		SetTimeout(cfg.Timeout).
		SetPathParam("cloudName", cfg.CloudName)
	for _, m := range cfg.ResponseMiddlewares {
		client.AddResponseMiddleware(m)
	}

	return &Uploader{client: client, cfg: cfg}, nil
}

func (u *Uploader) Close() error {
	return u.client.Close()
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	PublicID  string `json:"public_id"`
	Format    string `json:"format"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Bytes     int64  `json:"bytes"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// UploadImage posts the image as multipart form data and returns the
// secure URL of the hosted asset.
func (u *Uploader) UploadImage(ctx context.Context, data []byte, filename, mimeType string) (*media.Upload, error) {
	if filename == "" {
		filename = "upload"
	}

	form := map[string]string{"upload_preset": u.cfg.UploadPreset}
	if u.cfg.Folder != "" {
		form["folder"] = u.cfg.Folder
	}

	res, err := u.client.R().
		WithContext(ctx).
		SetMultipartField("file", filename, mimeType, bytes.NewReader(data)).
		SetMultipartFormData(form).
		SetResult(&uploadResponse{}).
		SetError(&errorResponse{}).
		Post(uploadPath)
	if err != nil {
		return nil, fmt.Errorf("upload request failed: %w", err)
	}

	if res.IsError() {
		msg := http.StatusText(res.StatusCode())
		if e, ok := res.Error().(*errorResponse); ok && e.Error.Message != "" {
			msg = e.Error.Message
		}
		return nil, &media.UploadError{StatusCode: res.StatusCode(), Message: msg}
	}

	body, ok := res.Result().(*uploadResponse)
	if !ok || (body.SecureURL == "" && body.URL == "") {
		return nil, &media.UploadError{StatusCode: res.StatusCode(), Message: "response has no asset url"}
	}

	url := body.SecureURL
	if url == "" {
		url = body.URL
	}
	return &media.Upload{
		URL:      url,
		PublicID: body.PublicID,
		Format:   body.Format,
		Width:    body.Width,
		Height:   body.Height,
		Bytes:    body.Bytes,
	}, nil
}
