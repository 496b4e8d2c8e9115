// Package client is a typed Go consumer for the KeepTrack REST API, the same
// thin wrapper tier the web frontend uses: every call attaches the bearer
// token when one is set and decodes {error} bodies into *APIError.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/keeptrack-dev/keeptrack/internal/types"
)

type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: http.DefaultClient,
	}
}

// APIError is any non-2xx response, carrying the server's {error} message.
type APIError struct {
	Status  int
	Message string
	Details string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("keeptrack: %d %s", e.Status, e.Message)
}

type AuthResponse struct {
	User  types.UserResponse `json:"user"`
	Token string             `json:"token"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateAssetRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateAssetRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type CreateRecordRequest struct {
	AssetID              uint     `json:"asset_id"`
	ServiceType          string   `json:"service_type"`
	ServiceDate          string   `json:"service_date"`
	Description          *string  `json:"description,omitempty"`
	Cost                 *float64 `json:"cost,omitempty"`
	PerformedBy          *string  `json:"performed_by,omitempty"`
	NextMaintenanceDate  *string  `json:"next_maintenance_date,omitempty"`
	NextMaintenanceNotes *string  `json:"next_maintenance_notes,omitempty"`
}

// UpdateRecordRequest marshals only the fields that were set, so the server
// sees omitted fields as "keep the stored value". NextMaintenanceDate keeps
// the absent/null/value distinction.
type UpdateRecordRequest struct {
	ServiceType          *string
	ServiceDate          *string
	Description          *string
	Cost                 *float64
	PerformedBy          *string
	NextMaintenanceDate  types.OptionalString
	NextMaintenanceNotes *string
}

func (r UpdateRecordRequest) MarshalJSON() ([]byte, error) {
	payload := make(map[string]interface{})

	if r.ServiceType != nil {
		payload["service_type"] = *r.ServiceType
	}
	if r.ServiceDate != nil {
		payload["service_date"] = *r.ServiceDate
	}
	if r.Description != nil {
		payload["description"] = *r.Description
	}
	if r.Cost != nil {
		payload["cost"] = *r.Cost
	}
	if r.PerformedBy != nil {
		payload["performed_by"] = *r.PerformedBy
	}
	if r.NextMaintenanceDate.Set {
		payload["next_maintenance_date"] = r.NextMaintenanceDate.Value
	}
	if r.NextMaintenanceNotes != nil {
		payload["next_maintenance_notes"] = *r.NextMaintenanceNotes
	}

	return json.Marshal(payload)
}

type assetEnvelope struct {
	Asset types.AssetResponse `json:"asset"`
}

type recordEnvelope struct {
	Record types.MaintenanceRecordResponse `json:"record"`
}

type userEnvelope struct {
	User types.UserResponse `json:"user"`
}

// Register creates an account and keeps the issued token on the client.
func (c *Client) Register(req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse

	if err := c.do(http.MethodPost, "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}

	c.Token = resp.Token
	return &resp, nil
}

// Login authenticates and keeps the issued token on the client.
func (c *Client) Login(req LoginRequest) (*AuthResponse, error) {
	var resp AuthResponse

	if err := c.do(http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}

	c.Token = resp.Token
	return &resp, nil
}

func (c *Client) Me() (*types.UserResponse, error) {
	var envelope userEnvelope

	if err := c.do(http.MethodGet, "/api/auth/me", nil, &envelope); err != nil {
		return nil, err
	}

	return &envelope.User, nil
}

// Logout is server-side stateless; the client drops its token.
func (c *Client) Logout() error {
	if err := c.do(http.MethodPost, "/api/auth/logout", nil, nil); err != nil {
		return err
	}

	c.Token = ""
	return nil
}

func (c *Client) CreateAsset(req CreateAssetRequest) (*types.AssetResponse, error) {
	var envelope assetEnvelope

	if err := c.do(http.MethodPost, "/api/assets", req, &envelope); err != nil {
		return nil, err
	}

	return &envelope.Asset, nil
}

func (c *Client) ListAssets() ([]types.AssetResponse, error) {
	var assets []types.AssetResponse

	if err := c.do(http.MethodGet, "/api/assets", nil, &assets); err != nil {
		return nil, err
	}

	return assets, nil
}

func (c *Client) GetAsset(id uint) (*types.AssetResponse, error) {
	var asset types.AssetResponse

	if err := c.do(http.MethodGet, fmt.Sprintf("/api/assets/%d", id), nil, &asset); err != nil {
		return nil, err
	}

	return &asset, nil
}

func (c *Client) UpdateAsset(id uint, req UpdateAssetRequest) (*types.AssetResponse, error) {
	var envelope assetEnvelope

	if err := c.do(http.MethodPut, fmt.Sprintf("/api/assets/%d", id), req, &envelope); err != nil {
		return nil, err
	}

	return &envelope.Asset, nil
}

func (c *Client) DeleteAsset(id uint) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/api/assets/%d", id), nil, nil)
}

func (c *Client) ListAssetRecords(assetID uint) ([]types.MaintenanceRecordResponse, error) {
	var records []types.MaintenanceRecordResponse

	if err := c.do(http.MethodGet, fmt.Sprintf("/api/assets/%d/maintenance-records", assetID), nil, &records); err != nil {
		return nil, err
	}

	return records, nil
}

func (c *Client) CreateRecord(req CreateRecordRequest) (*types.MaintenanceRecordResponse, error) {
	var envelope recordEnvelope

	if err := c.do(http.MethodPost, "/api/maintenance-records", req, &envelope); err != nil {
		return nil, err
	}

	return &envelope.Record, nil
}

func (c *Client) GetRecord(id uint) (*types.MaintenanceRecordResponse, error) {
	var record types.MaintenanceRecordResponse

	if err := c.do(http.MethodGet, fmt.Sprintf("/api/maintenance-records/%d", id), nil, &record); err != nil {
		return nil, err
	}

	return &record, nil
}

func (c *Client) UpdateRecord(id uint, req UpdateRecordRequest) (*types.MaintenanceRecordResponse, error) {
	var envelope recordEnvelope

	if err := c.do(http.MethodPut, fmt.Sprintf("/api/maintenance-records/%d", id), req, &envelope); err != nil {
		return nil, err
	}

	return &envelope.Record, nil
}

func (c *Client) DeleteRecord(id uint) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/api/maintenance-records/%d", id), nil, nil)
}

func (c *Client) Upcoming() ([]types.UpcomingMaintenance, error) {
	var upcoming []types.UpcomingMaintenance

	if err := c.do(http.MethodGet, "/api/maintenance-records/panel/upcoming", nil, &upcoming); err != nil {
		return nil, err
	}

	return upcoming, nil
}

func (c *Client) do(method, path string, body, out interface{}) error {
	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reader)

	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)

	if err != nil {
		return err
	}

	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)

	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var serverErr struct {
			Error   string `json:"error"`
			Details string `json:"details"`
		}
		_ = json.Unmarshal(data, &serverErr)

		message := serverErr.Error
		if message == "" {
			message = resp.Status
		}

		return &APIError{Status: resp.StatusCode, Message: message, Details: serverErr.Details}
	}

	if out != nil {
		return json.Unmarshal(data, out)
	}

	return nil
}
