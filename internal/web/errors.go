package web

import (
	"errors"
	"net/http"

	"github.com/alexanderramin/itinerary/internal/domain"
	"github.com/alexanderramin/itinerary/internal/repository"
	"github.com/alexanderramin/itinerary/internal/service"
)

var validationErrors = []error{
	domain.ErrTitleRequired,
	domain.ErrDateRequired,
	domain.ErrDateOutOfRange,
	domain.ErrNegativeBudget,
	domain.ErrInvalidPriority,
	service.ErrAmbiguousID,
}

func isValidation(err error) bool {
	var in inputError
	if errors.As(err, &in) {
		return true
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// storeDown reports errors that stop the whole page from rendering.
func storeDown(err error) bool {
	return errors.Is(err, repository.ErrConnection) || errors.Is(err, repository.ErrProvision)
}

func statusFor(err error) int {
	switch {
	case storeDown(err):
		return http.StatusServiceUnavailable
	case errors.Is(err, repository.ErrPlanNotFound):
		return http.StatusNotFound
	case isValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// message is the user-facing text for a failed action.
func message(err error) string {
	switch {
	case errors.Is(err, domain.ErrTitleRequired), errors.Is(err, domain.ErrDateRequired):
		return errMissingRequired.msg
	case errors.Is(err, repository.ErrPlanNotFound):
		return "That plan no longer exists. It may have been deleted in another window."
	default:
		return err.Error()
	}
}
