package jobs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"jobmarket-go/internal/gateway"
)

// MaxJobPrice is the upper bound accepted for a fixed-price listing.
const MaxJobPrice = 10_000_000

const (
	minTitleLen       = 6
	minCategoryLen    = 6
	minDescriptionLen = 12
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Lenient: digits plus the symbols people type into phone fields.
	phonePattern = regexp.MustCompile(`^[0-9+()\-\s.]{6,20}$`)
)

func invalid(field, format string, args ...interface{}) error {
	return &gateway.ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// validateJobInput applies the submission rules in a fixed order and stops
// at the first violation, before any network call is made.
func validateJobInput(in CreateJobInput) error {
	if len(strings.TrimSpace(in.Title)) < minTitleLen {
		return invalid("title", "title must be at least %d characters", minTitleLen)
	}
	if len(strings.TrimSpace(in.Category)) < minCategoryLen {
		return invalid("category", "category must be at least %d characters", minCategoryLen)
	}
	if len(strings.TrimSpace(in.Description)) < minDescriptionLen {
		return invalid("description", "description must be at least %d characters", minDescriptionLen)
	}
	if !emailPattern.MatchString(strings.TrimSpace(in.Email)) {
		return invalid("email", "email address is not valid")
	}
	if phone := strings.TrimSpace(in.PhoneNumber); phone != "" && !phonePattern.MatchString(phone) {
		return invalid("phone_number", "phone number is not valid")
	}

	if in.Negotiable {
		return nil
	}

	maxStr := strings.TrimSpace(in.MaxPrice)
	if maxStr == "" {
		return invalid("max_price", "maximum price is required for a fixed-price listing")
	}
	maxPrice, err := strconv.ParseFloat(maxStr, 64)
	if err != nil || maxPrice <= 0 {
		return invalid("max_price", "maximum price must be a number greater than zero")
	}
	if maxPrice > MaxJobPrice {
		return invalid("max_price", "maximum price cannot exceed %d", MaxJobPrice)
	}

	minPrice := 0.0
	if minStr := strings.TrimSpace(in.MinPrice); minStr != "" {
		minPrice, err = strconv.ParseFloat(minStr, 64)
		if err != nil || minPrice < 0 {
			return invalid("min_price", "minimum price must be a non-negative number")
		}
	}
	if minPrice > maxPrice {
		return invalid("min_price", "minimum price cannot exceed the maximum price")
	}
	return nil
}
