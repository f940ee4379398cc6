package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tokosakti/pos-api/internal/domain/enum"
	"github.com/tokosakti/pos-api/pkg/pagination"
)

const dateLayout = "2006-01-02"

// GetUserID extracts the authenticated user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserRole extracts the authenticated user's role from the Gin context
func GetUserRole(c *gin.Context) enum.UserRole {
	roleVal, exists := c.Get("user_role")
	if !exists {
		return ""
	}
	role, ok := roleVal.(enum.UserRole)
	if !ok {
		return ""
	}
	return role
}

// paginationParams reads page/per_page query parameters
func paginationParams(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	return &pagination.PaginationParams{Page: page, PerPage: perPage}
}

// parseDate parses a YYYY-MM-DD query or body value
func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

// parseDateQuery parses an optional YYYY-MM-DD query parameter. The bool is
// false when the parameter is absent.
func parseDateQuery(c *gin.Context, name string) (time.Time, bool, error) {
	value := c.Query(name)
	if value == "" {
		return time.Time{}, false, nil
	}
	t, err := parseDate(value)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}
