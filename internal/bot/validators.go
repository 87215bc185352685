package bot

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	errNotInteger = errors.New("please enter a whole number")
	errNotNumber  = errors.New("please enter a number, for example 5.25")
)

// ParseBeanCount accepts a non-negative whole number of beans.
func ParseBeanCount(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, errNotInteger
	}
	if n < 0 {
		return 0, errors.New("the number of beans cannot be negative")
	}
	return n, nil
}

// ParseFolds accepts a fold level of at least 1.
func ParseFolds(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, errNotInteger
	}
	if n < 1 {
		return 0, errors.New("the number of folds must be at least 1")
	}
	return n, nil
}

// ParseDecimal accepts "5.25", "5,25" or " 5 ". NaN and infinities are
// rejected.
func ParseDecimal(text string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotNumber
	}
	return v, nil
}
