package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/UnknownOlympus/athena/internal/repository"
	"github.com/UnknownOlympus/athena/internal/services/employees"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const (
	msgRunning        = "Backend server is running!"
	msgFetchFailed    = "Failed to fetch users"
	msgCreateFailed   = "Failed to add user"
	msgUpdateFailed   = "Failed to update user"
	msgDeleteFailed   = "Failed to delete user"
	msgNotFound       = "User not found"
	msgInvalidJSON    = "Invalid JSON body"
	msgRouteNotFound  = "Not found"
	msgInternalServer = "Internal server error"
)

// StaffService is the set of employee operations the API exposes.
type StaffService interface {
	List(ctx context.Context) ([]models.Employee, error)
	Create(ctx context.Context, payload employees.Payload) (models.Employee, error)
	Update(ctx context.Context, identifier int, payload employees.Payload) (models.Employee, error)
	Delete(ctx context.Context, identifier int) (models.Employee, error)
}

type EmployeeHandler struct {
	staff StaffService
	log   *slog.Logger
}

func NewEmployeeHandler(staff StaffService, log *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{staff: staff, log: log}
}

func (h *EmployeeHandler) List(c *gin.Context) {
	result, err := h.staff.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgFetchFailed})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	created, err := h.staff.Create(c.Request.Context(), payload)
	if err != nil {
		h.writeError(c, err, msgCreateFailed)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	identifier := parseID(c)

	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	updated, err := h.staff.Update(c.Request.Context(), identifier, payload)
	if err != nil {
		h.writeError(c, err, msgUpdateFailed)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	deleted, err := h.staff.Delete(c.Request.Context(), parseID(c))
	if err != nil {
		h.writeError(c, err, msgDeleteFailed)
		return
	}

	c.JSON(http.StatusOK, deleted)
}

func (h *EmployeeHandler) writeError(c *gin.Context, err error, fallback string) {
	var validationErr *employees.ValidationError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
	case errors.Is(err, repository.ErrEmployeeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
	default:
		h.log.ErrorContext(c.Request.Context(), "Request failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// bindPayload decodes the JSON body. An empty body counts as an empty object,
// anything after the first JSON value makes the whole body invalid.
func bindPayload(c *gin.Context) (employees.Payload, bool) {
	var payload employees.Payload

	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidJSON})
		return employees.Payload{}, false
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return payload, true
	}

	if !json.Valid(raw) {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidJSON})
		return employees.Payload{}, false
	}

	if err = binding.JSON.BindBody(raw, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidJSON})
		return employees.Payload{}, false
	}

	return payload, true
}

var leadingInt = regexp.MustCompile(`^\s*[+-]?\d+`)

// parseID reads the integer the path segment starts with, so "1abc" is 1.
// Segments without one become 0, which no record ever has.
func parseID(c *gin.Context) int {
	identifier, err := strconv.Atoi(strings.TrimSpace(leadingInt.FindString(c.Param("id"))))
	if err != nil {
		return 0
	}

	return identifier
}

func root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": msgRunning})
}
