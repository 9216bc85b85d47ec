package response

import (
	"errors"
	"net/http"

	domainErrors "github.com/freshdeli/console/internal/domain/errors"
)

type ErrorMapping struct {
	HTTPStatus int
	Status     Status
	Message    string
}

var errorMappings = map[error]ErrorMapping{
	domainErrors.ErrItemNotFound: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Item not found",
	},
	domainErrors.ErrBucketNotFound: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Bucket not found",
	},
	domainErrors.ErrNoItemsSelected: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusValidationError,
		Message:    "No items selected",
	},
	domainErrors.ErrRankOutOfRange: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusValidationError,
		Message:    "Rank out of range for bucket",
	},
	domainErrors.ErrEditSessionNotFound: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Edit session not found",
	},
	domainErrors.ErrNothingToUndo: {
		HTTPStatus: http.StatusConflict,
		Status:     StatusConflict,
		Message:    "Nothing to undo",
	},
	domainErrors.ErrOperatorNotFound: {
		HTTPStatus: http.StatusUnauthorized,
		Status:     StatusUnauthorized,
		Message:    "Invalid credentials",
	},
	domainErrors.ErrInvalidCredentials: {
		HTTPStatus: http.StatusUnauthorized,
		Status:     StatusUnauthorized,
		Message:    "Invalid credentials",
	},
	domainErrors.ErrSessionNotFound: {
		HTTPStatus: http.StatusUnauthorized,
		Status:     StatusUnauthorized,
		Message:    "Session expired or not found",
	},
	domainErrors.ErrOrderNotFound: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Order not found",
	},
	domainErrors.ErrWindowNotFound: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusValidationError,
		Message:    "Delivery window not found",
	},
	domainErrors.ErrInvalidStatusChange: {
		HTTPStatus: http.StatusConflict,
		Status:     StatusConflict,
		Message:    "Invalid order status change",
	},
	domainErrors.ErrImageTooLarge: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusValidationError,
		Message:    "Image exceeds maximum size",
	},
	domainErrors.ErrUnsupportedImageType: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusValidationError,
		Message:    "Unsupported image type",
	},
}

func MapDomainError(err error) (int, *ErrorResponse) {
	for domainErr, mapping := range errorMappings {
		if errors.Is(err, domainErr) {
			return mapping.HTTPStatus, Error(mapping.Status, mapping.Message, err.Error())
		}
	}

	return http.StatusInternalServerError, Error(StatusInternalError, "Internal server error", err.Error())
}

func WriteDomainError(w http.ResponseWriter, err error) {
	statusCode, errorResponse := MapDomainError(err)
	WriteJSON(w, statusCode, errorResponse)
}
