package clerk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"Hearth/internal/core/identity"

	"resty.dev/v3"
)

const getUserPath = "/v1/users/{userID}"

// ProfileClient fetches user profiles from the provider's backend API.
type ProfileClient struct {
	client *resty.Client
}

// NewProfileClient creates a client authenticated with the backend secret key.
func NewProfileClient(cfg ClientConfig) (*ProfileClient, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("identity API url is required")
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("identity secret key is required")
	}

	settings := cfg.TransportSettings
	if settings == nil {
		settings = DefaultTransportSettings
	}

	client := resty.NewWithTransportSettings(settings).
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetAuthToken(cfg.SecretKey).
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	for _, m := range cfg.ResponseMiddlewares {
		client.AddResponseMiddleware(m)
	}

	return &ProfileClient{client: client}, nil
}

func (c *ProfileClient) Close() error {
	return c.client.Close()
}

type emailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

type userResponse struct {
	Username              *string        `json:"username"`
	ID                    string         `json:"id"`
	FirstName             string         `json:"first_name"`
	LastName              string         `json:"last_name"`
	ImageURL              string         `json:"image_url"`
	PrimaryEmailAddressID string         `json:"primary_email_address_id"`
	EmailAddresses        []emailAddress `json:"email_addresses"`
}

// GetProfile implements identity.ProfileProvider.
func (c *ProfileClient) GetProfile(ctx context.Context, externalID string) (*identity.Profile, error) {
	if externalID == "" {
		return nil, identity.ErrProfileNotFound
	}

	res, err := c.client.R().
		WithContext(ctx).
		SetPathParam("userID", externalID).
		SetResult(&userResponse{}).
		Get(getUserPath)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}

	switch {
	case res.StatusCode() == http.StatusNotFound:
		return nil, identity.ErrProfileNotFound
	case res.IsError():
		return nil, fmt.Errorf("identity API returned %d: %s", res.StatusCode(), res.String())
	}

	body, ok := res.Result().(*userResponse)
	if !ok || body.ID == "" {
		return nil, errors.New("identity API returned an empty user")
	}
	return body.toProfile(), nil
}

// toProfile orders emails so the primary address comes first.
func (u *userResponse) toProfile() *identity.Profile {
	emails := make([]string, 0, len(u.EmailAddresses))
	for _, e := range u.EmailAddresses {
		if e.ID == u.PrimaryEmailAddressID {
			emails = append([]string{e.EmailAddress}, emails...)
			continue
		}
		emails = append(emails, e.EmailAddress)
	}

	return &identity.Profile{
		Username:   u.Username,
		ExternalID: u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		ImageURL:   u.ImageURL,
		Emails:     emails,
	}
}
