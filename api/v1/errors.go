package v1

import (
	"net/http"
	"strconv"

	"cms/internal/apperr"

	"github.com/gin-gonic/gin"
)

// kindNames 供错误响应使用
var kindNames = map[apperr.Kind]string{
	apperr.KindValidation:         "validation_error",
	apperr.KindDuplicate:          "duplicate_key",
	apperr.KindNotFound:           "not_found",
	apperr.KindForbidden:          "forbidden",
	apperr.KindConflict:           "conflict",
	apperr.KindInactive:           "inactive",
	apperr.KindInvalidCredentials: "invalid_credentials",
	apperr.KindStorage:            "storage_error",
}

// writeError maps a service failure onto the HTTP status contract:
// Forbidden→403, NotFound→404, Duplicate/Validation→422, Conflict→409,
// credential failures→401, everything else→500.
func writeError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case apperr.KindValidation, apperr.KindDuplicate:
		status = http.StatusUnprocessableEntity
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindForbidden:
		status = http.StatusForbidden
	case apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindInactive, apperr.KindInvalidCredentials:
		status = http.StatusUnauthorized
	}
	msg := err.Error()
	if kind == apperr.KindStorage {
		msg = "internal error" // 不泄露存储层细节
	}
	c.JSON(status, gin.H{"kind": kindNames[kind], "error": msg})
}

// pathID parses the :id path parameter.
func pathID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"kind": "validation_error", "error": "invalid id"})
		return 0, false
	}
	return id, true
}

// queryInt reads an integer query parameter with a default.
func queryInt(c *gin.Context, name string, def int) int {
	v := c.Query(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
