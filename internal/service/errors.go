package service

import (
	"errors"

	"gorm.io/gorm"

	"teamup-board-api/internal/response"
)

// notFoundOr maps gorm.ErrRecordNotFound to NOT_FOUND and anything else to INTERNAL_ERROR
func notFoundOr(err error, notFoundMsg, internalMsg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewAppError(response.ErrCodeNotFound, notFoundMsg, "")
	}
	return response.NewAppError(response.ErrCodeInternal, internalMsg, err.Error())
}

func internalError(msg string, err error) error {
	return response.NewAppError(response.ErrCodeInternal, msg, err.Error())
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
