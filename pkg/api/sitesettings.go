package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/nbmdigital/siteclient/pkg/apiclient"
)

const siteSettingsBasePath = "/site-settings"

// SiteSettings exposes the site-configuration endpoints. Reads are
// public; mutations require authentication and are superadmin-gated
// server-side.
type SiteSettings struct {
	client *apiclient.Client
}

// NewSiteSettings creates the site-settings module over the given
// transport.
func NewSiteSettings(client *apiclient.Client) *SiteSettings {
	return &SiteSettings{client: client}
}

// List returns all site settings visible to the caller.
func (s *SiteSettings) List(ctx context.Context) ([]SiteSetting, error) {
	resp, err := s.client.Request(ctx, http.MethodGet, siteSettingsBasePath, nil)
	if err != nil {
		return nil, err
	}
	return apiclient.Decode[[]SiteSetting](resp)
}

// Get returns a single setting addressed either by numeric ID or by
// its string key.
func (s *SiteSettings) Get(ctx context.Context, idOrKey string) (*SiteSetting, error) {
	resp, err := s.client.Request(ctx, http.MethodGet, siteSettingsBasePath+"/"+idOrKey, nil)
	if err != nil {
		return nil, err
	}
	setting, err := apiclient.Decode[SiteSetting](resp)
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// CreateSiteSettingInput is the payload for creating a setting. Value
// may be any JSON-encodable value.
type CreateSiteSettingInput struct {
	Key         string `json:"key"`
	Category    string `json:"category"`
	Value       any    `json:"value"`
	IsPublic    bool   `json:"isPublic"`
	Description string `json:"description,omitempty"`
}

// Create creates a new setting.
func (s *SiteSettings) Create(ctx context.Context, in CreateSiteSettingInput) (*SiteSetting, error) {
	resp, err := s.client.AuthRequest(ctx, http.MethodPost, siteSettingsBasePath, in)
	if err != nil {
		return nil, err
	}
	setting, err := apiclient.Decode[SiteSetting](resp)
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// UpdateSiteSettingInput is a partial update; nil fields are left
// unchanged.
type UpdateSiteSettingInput struct {
	Category    *string `json:"category,omitempty"`
	Value       any     `json:"value,omitempty"`
	IsPublic    *bool   `json:"isPublic,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Update applies a partial update to a setting.
func (s *SiteSettings) Update(ctx context.Context, id int64, in UpdateSiteSettingInput) (*SiteSetting, error) {
	resp, err := s.client.AuthRequest(ctx, http.MethodPut, siteSettingsBasePath+"/"+strconv.FormatInt(id, 10), in)
	if err != nil {
		return nil, err
	}
	setting, err := apiclient.Decode[SiteSetting](resp)
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// Delete removes a setting.
func (s *SiteSettings) Delete(ctx context.Context, id int64) error {
	_, err := s.client.AuthRequest(ctx, http.MethodDelete, siteSettingsBasePath+"/"+strconv.FormatInt(id, 10), nil)
	return err
}
