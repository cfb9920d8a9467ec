package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/athena/internal/models"
)

const usersPath = "/api/users"

var errNotAnArray = errors.New("expected a JSON array")

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// APIClient talks to the employee API.
type APIClient struct {
	log     *slog.Logger
	http    *http.Client
	baseURL string
}

func NewAPIClient(log *slog.Logger, baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		log:     log,
		http:    CreateHTTPClient(log, timeout),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// ListEmployees fetches every employee.
func (c *APIClient) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var result []models.Employee
	if err := c.do(ctx, http.MethodGet, usersPath, nil, &result); err != nil {
		return nil, err
	}

	if result == nil {
		return nil, fmt.Errorf("invalid data format received from server: %w", errNotAnArray)
	}

	return result, nil
}

// CreateEmployee stores a new employee and returns it with its identifier.
func (c *APIClient) CreateEmployee(ctx context.Context, data models.EmployeeData) (models.Employee, error) {
	var result models.Employee
	if err := c.do(ctx, http.MethodPost, usersPath, data, &result); err != nil {
		return models.Employee{}, err
	}

	return result, nil
}

// UpdateEmployee replaces every field of the employee with the given identifier.
func (c *APIClient) UpdateEmployee(
	ctx context.Context,
	identifier int,
	data models.EmployeeData,
) (models.Employee, error) {
	var result models.Employee
	if err := c.do(ctx, http.MethodPut, userPath(identifier), data, &result); err != nil {
		return models.Employee{}, err
	}

	return result, nil
}

// DeleteEmployee removes the employee and returns its last representation.
func (c *APIClient) DeleteEmployee(ctx context.Context, identifier int) (models.Employee, error) {
	var result models.Employee
	if err := c.do(ctx, http.MethodDelete, userPath(identifier), nil, &result); err != nil {
		return models.Employee{}, err
	}

	return result, nil
}

func userPath(identifier int) string {
	return usersPath + "/" + strconv.Itoa(identifier)
}

func (c *APIClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create new request %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.log.DebugContext(ctx, "Sending request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to request %s: %w", path, err)
	}
	defer resp.Body.Close()

	c.log.DebugContext(ctx, "Received response", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeAPIError(resp)
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}

	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
	} else {
		apiErr.Message = fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)
	}

	return apiErr
}
