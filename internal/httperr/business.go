package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Recoverable-by-caller conditions. Everything else propagates as an
// unclassified failure and becomes a 500 at the boundary.
const (
	CodeServicesNotFound = "services_not_found"
	CodeShopClosed       = "shop_closed"
	CodeOutsideHours     = "outside_opening_hours"
	CodeDoubleBooking    = "double_booking"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// IsExclusionConflict reports whether err is a Postgres exclusion-constraint
// violation (SQLSTATE 23P01), raised when a concurrent writer won the slot.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01"
	}
	return false
}
