package serverutils

import "errors"

var (
	ErrNotFound           = errors.New("the requested resource was not found")
	ErrUnauthorized       = errors.New("missing or invalid credentials")
	ErrForbidden          = errors.New("you are not authorized to access this resource")
	ErrBadRequest         = errors.New("the request could not be processed due to invalid input")
	ErrServiceUnavailable = errors.New("the service is temporarily unavailable, please try again later")
	ErrInternal           = errors.New("something went wrong on our end, please try again later")
)
