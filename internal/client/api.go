// Package client talks to the OneStop API and renders the terminal forms.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HarishP23/OneStop/internal/model"
)

// APIError is a non 2xx answer from the server
type APIError struct {
	Status  int
	Message string
	Detail  string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Message
}

// RegisterRequest is the signup form payload
type RegisterRequest struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role"`
}

// ApplicationRequest is the job application payload
type ApplicationRequest struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Resume string `json:"resume"`
	JobID  string `json:"jobId"`
	UserID string `json:"userId"`
}

// JobFilter holds the optional job listing queries
type JobFilter struct {
	Search   string
	Location string
	Type     string
	Tag      string
	Company  string
	Desc     bool
}

func (f JobFilter) values() url.Values {
	v := url.Values{}
	for key, value := range map[string]string{
		"search":   f.Search,
		"location": f.Location,
		"type":     f.Type,
		"tag":      f.Tag,
		"company":  f.Company,
	} {
		if value != "" {
			v.Set(key, value)
		}
	}
	if f.Desc {
		v.Set("desc", "true")
	}
	return v
}

type messageBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Client calls the API under BaseURL, sending Token as a bearer token when set
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// New creates a Client with a 15 second request timeout
func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	return req, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out interface{}) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var msg messageBody
		if json.Unmarshal(data, &msg) == nil {
			apiErr.Message = msg.Message
			apiErr.Detail = msg.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// Register creates an account and returns the server message
func (c *Client) Register(ctx context.Context, r RegisterRequest) (string, error) {
	var out messageBody
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", r, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Login exchanges credentials for a token
func (c *Client) Login(ctx context.Context, email, password string) (*model.LoginResponse, error) {
	var out model.LoginResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes the current token
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// ListJobs returns jobs matching f
func (c *Client) ListJobs(ctx context.Context, f JobFilter) ([]model.Job, error) {
	path := "/jobs"
	if q := f.values().Encode(); q != "" {
		path += "?" + q
	}
	jobs := []model.Job{}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// Apply submits an application and returns the server message
func (c *Client) Apply(ctx context.Context, r ApplicationRequest) (string, error) {
	var out messageBody
	if err := c.doJSON(ctx, http.MethodPost, "/applications", r, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// UserApplications lists the applications of userID.
// A user without applications gets an empty slice.
func (c *Client) UserApplications(ctx context.Context, userID string) ([]model.Application, error) {
	apps := []model.Application{}
	err := c.doJSON(ctx, http.MethodGet, "/applications/user/"+url.PathEscape(userID), nil, &apps)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return []model.Application{}, nil
	}
	if err != nil {
		return nil, err
	}
	return apps, nil
}

// UploadResume sends the file at path and returns its absolute download URL
func (c *Client) UploadResume(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("resume", filepath.Base(path))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/files/resume", body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var out model.FileResponse
	if err := c.send(req, &out); err != nil {
		return "", err
	}
	return c.absoluteURL(out.URL), nil
}

// absoluteURL resolves a server path such as /api/v1/files/3 against BaseURL
func (c *Client) absoluteURL(path string) string {
	base, err := url.Parse(c.BaseURL)
	if err != nil || strings.HasPrefix(path, "http") {
		return path
	}
	ref, err := url.Parse(path)
	if err != nil {
		return path
	}
	return base.ResolveReference(ref).String()
}
