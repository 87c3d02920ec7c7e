package clerk

import (
	"time"

	"resty.dev/v3"
)

// ClientConfig configures the backend API client.
type ClientConfig struct {
	TransportSettings   *resty.TransportSettings
	BaseURL             string
	SecretKey           string
	ResponseMiddlewares []resty.ResponseMiddleware
	Timeout             time.Duration
}

var DefaultTransportSettings = &resty.TransportSettings{
	DialerTimeout:         2 * time.Second,
	DialerKeepAlive:       30 * time.Second,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   2 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
	ResponseHeaderTimeout: 5 * time.Second,
}
