package app

import (
	"time"

	"redmine-cli/internal/apperr"
)

const dateLayout = "2006-01-02"

// validateDate accepts an empty value or a YYYY-MM-DD calendar date.
func validateDate(flag, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		return apperr.Validationf("invalid --%s date %q", flag, value).
			WithHint("Dates use the YYYY-MM-DD format, e.g. 2024-05-01.")
	}
	return nil
}

func validatePage(limit, offset int) error {
	if limit < 1 || limit > 100 {
		return apperr.Validationf("--limit must be between 1 and 100, got %d", limit)
	}
	if offset < 0 {
		return apperr.Validationf("--offset must not be negative, got %d", offset)
	}
	return nil
}

func validateID(flag string, id int) error {
	if id <= 0 {
		return apperr.Validationf("--%s must be a positive id", flag)
	}
	return nil
}
