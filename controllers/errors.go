package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/a7med3yad/Cartify-Frontend/apperrors"
	"github.com/a7med3yad/Cartify-Frontend/services"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError writes err with the status its kind maps to. Messages of
// typed errors are user-facing; anything else is reported generically.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	status := apperrors.HTTPStatus(err)

	var appErr *apperrors.Error
	if !apperrors.As(err, &appErr) {
		c.JSON(status, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(status, gin.H{"error": appErr.Message, "kind": appErr.Kind})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": describeBindError(err)})
}

// describeBindError names each failing field instead of echoing the
// validator's struct paths.
func describeBindError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

// pageFromQuery reads page and pageSize, ignoring values that do not parse.
func pageFromQuery(c *gin.Context) services.PageRequest {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("pageSize"))
	return services.PageRequest{Page: page, PageSize: size}
}
