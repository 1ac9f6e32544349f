package mcp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"coinone-mcp/internal/domain"
	"coinone-mcp/internal/provider"
)

// arguments is the decoded "arguments" object of a tools/call request.
type arguments map[string]any

func parseArguments(raw json.RawMessage) (arguments, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return arguments{}, nil
	}
	var args arguments
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("%w: arguments must be a JSON object", domain.ErrInvalidArgument)
	}
	if args == nil {
		args = arguments{}
	}
	return args, nil
}

func (a arguments) present(name string) bool {
	v, ok := a[name]
	return ok && v != nil
}

func (a arguments) requiredString(name string) (string, error) {
	if !a.present(name) {
		return "", fmt.Errorf("%w: %s is required", domain.ErrInvalidArgument, name)
	}
	s, err := a.optionalString(name, "")
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", fmt.Errorf("%w: %s is required", domain.ErrInvalidArgument, name)
	}
	return s, nil
}

func (a arguments) optionalString(name, fallback string) (string, error) {
	if !a.present(name) {
		return fallback, nil
	}
	s, ok := a[name].(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string", domain.ErrInvalidArgument, name)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback, nil
	}
	return s, nil
}

// optionalInt64 accepts a JSON number or a numeric string holding a whole number.
func (a arguments) optionalInt64(name string) (*int64, error) {
	if !a.present(name) {
		return nil, nil
	}
	var n int64
	switch v := a[name].(type) {
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || math.Abs(v) > 1<<53 {
			return nil, fmt.Errorf("%w: %s must be a whole number", domain.ErrInvalidArgument, name)
		}
		n = int64(v)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a whole number", domain.ErrInvalidArgument, name)
		}
		n = parsed
	default:
		return nil, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidArgument, name)
	}
	return &n, nil
}

func (a arguments) optionalInt(name string, fallback int) (int, error) {
	n, err := a.optionalInt64(name)
	if err != nil {
		return 0, err
	}
	if n == nil {
		return fallback, nil
	}
	if *n > math.MaxInt32 || *n < math.MinInt32 {
		return 0, fmt.Errorf("%w: %s is out of range", domain.ErrInvalidArgument, name)
	}
	return int(*n), nil
}

func (a arguments) limit(fallback int) (int, error) {
	limit, err := a.optionalInt("limit", fallback)
	if err != nil {
		return 0, err
	}
	if limit < 1 || limit > provider.MaxKlineLimit {
		return 0, fmt.Errorf("%w: limit must be between 1 and %d", domain.ErrInvalidArgument, provider.MaxKlineLimit)
	}
	return limit, nil
}

func (a arguments) rsiPeriod(fallback int) (int, error) {
	period, err := a.optionalInt("rsiPeriod", fallback)
	if err != nil {
		return 0, err
	}
	if period < 1 {
		return 0, fmt.Errorf("%w: rsiPeriod must be positive", domain.ErrInvalidArgument)
	}
	return period, nil
}
