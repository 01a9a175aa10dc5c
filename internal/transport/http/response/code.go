package response

import (
	"net/http"

	"leasehub/internal/domain"
)

// StatusOf 错误类别 → HTTP 状态码
func StatusOf(k domain.Kind) int {
	switch k {
	case domain.KindValidation, domain.KindConflict:
		return http.StatusBadRequest
	case domain.KindInvalidCredentials, domain.KindUnauthenticated:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindRateLimited:
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

// CodeMsgMap 用于集中管理 code - msg（不便透出细节时的默认文案）
var CodeMsgMap = map[int]string{
	http.StatusBadRequest:            "Bad Request",
	http.StatusUnauthorized:          "Unauthorized",
	http.StatusForbidden:             "Forbidden",
	http.StatusNotFound:              "Not Found",
	http.StatusRequestEntityTooLarge: "Request body too large",
	http.StatusTooManyRequests:       "Too many requests",
	http.StatusInternalServerError:   "Internal server error",
	http.StatusServiceUnavailable:    "Server busy",
	http.StatusGatewayTimeout:        "Request timed out",
}
