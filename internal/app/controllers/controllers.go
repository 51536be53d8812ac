package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yigit/coursemanager/internal/app/models/dto"
	"github.com/yigit/coursemanager/internal/middleware"
	"github.com/yigit/coursemanager/internal/pkg/apperrors"
	"github.com/yigit/coursemanager/internal/pkg/helpers"
)

// parseIDParam reads a positive int64 path parameter. On failure it writes a
// 400 response and returns false.
func parseIDParam(ctx *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid "+label+" ID"))
		return 0, false
	}
	return id, true
}

// respondList writes items, paginated when the request asks for a page
func respondList[T any](ctx *gin.Context, items []T) {
	if page, size, ok := helpers.ParsePaginationParams(ctx); ok {
		ctx.JSON(http.StatusOK, dto.NewAPIResponse(helpers.Paginate(items, page, size), ""))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(items, ""))
}
