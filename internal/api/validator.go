package api

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

const (
	defaultNewsCount    = 10
	maxNewsCount        = 50
	defaultHistoryLimit = 20
	maxHistoryLimit     = 500
	maxQueryLen         = 64
)

// Validator handles validation logic separate from HTTP concerns.
type Validator struct {
	symbolRegex *regexp.Regexp
}

var (
	validatorInstance *Validator
	validatorOnce     sync.Once
)

// GetValidator returns the singleton validator instance.
func GetValidator() *Validator {
	validatorOnce.Do(func() {
		validatorInstance = &Validator{
			// Tickers, indices (^GSPC), share classes (BRK.B, BF-B) and
			// futures or currencies (CL=F, EURUSD=X).
			symbolRegex: regexp.MustCompile(`^[A-Za-z0-9^.\-=]{1,15}$`),
		}
	})
	return validatorInstance
}

// ValidateSymbol sanitizes and upper-cases a symbol.
func (v *Validator) ValidateSymbol(symbol string) (string, error) {
	s := sanitizeInput(symbol)
	if s == "" {
		return "", errors.New("symbol parameter is required")
	}
	if !v.symbolRegex.MatchString(s) {
		return "", fmt.Errorf("invalid symbol %q: use 1-15 letters, digits or ^ . - =", s)
	}
	return strings.ToUpper(s), nil
}

// ValidateQuery checks a free-text search query.
func (v *Validator) ValidateQuery(q string) (string, error) {
	q = sanitizeInput(q)
	if q == "" {
		return "", errors.New("q parameter is required")
	}
	if len(q) > maxQueryLen {
		return "", fmt.Errorf("q must be at most %d characters", maxQueryLen)
	}
	return q, nil
}

// ValidateCount parses the news count parameter.
func (v *Validator) ValidateCount(s string) (int, error) {
	return parseBounded("count", s, defaultNewsCount, maxNewsCount)
}

// ValidateHistoryLimit parses the quote history limit parameter.
func (v *Validator) ValidateHistoryLimit(s string) (int, error) {
	return parseBounded("limit", s, defaultHistoryLimit, maxHistoryLimit)
}

func parseBounded(name, s string, def, max int) (int, error) {
	s = sanitizeInput(s)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number", name)
	}
	if n < 1 || n > max {
		return 0, fmt.Errorf("%s must be between 1 and %d", name, max)
	}
	return n, nil
}

// sanitizeInput trims whitespace and strips control characters.
func sanitizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, input)
	if len(input) > 100 {
		input = input[:100]
	}
	return input
}
