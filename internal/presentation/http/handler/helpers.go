package handler

import (
	"strings"
	"time"

	"github.com/barberoil/fuelpos/pkg/apperror"
	"github.com/barberoil/fuelpos/pkg/pagination"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) string {
	return c.GetString("user_id")
}

// GetUserName extracts the user's display name from the Gin context
func GetUserName(c *gin.Context) string {
	return c.GetString("user_name")
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) string {
	return c.GetString("user_role")
}

// IsAdmin checks if the user has the admin role
func IsAdmin(c *gin.Context) bool {
	return GetUserRole(c) == "admin"
}

func paginationParams(page, perPage int) *pagination.PaginationParams {
	params := pagination.DefaultPagination()
	if page > 0 {
		params.Page = page
	}
	if perPage > 0 {
		params.PerPage = perPage
	}
	params.Validate()
	return params
}

// parseDay parses a YYYY-MM-DD query value as local midnight. When endOfDay
// is set the last instant of that day is returned instead.
func parseDay(field, value string, endOfDay bool) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	day, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid " + field + " date, expected YYYY-MM-DD")
	}
	if endOfDay {
		day = day.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &day, nil
}
