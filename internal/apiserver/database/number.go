package database

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	reportNumberPrefix = "RPT"
	orderNumberPrefix  = "ORD"
)

// NewReportNumber returns RPT, the UTC date as YYYYMMDD and eight upper-case
// hex characters of a random UUID.
func NewReportNumber(now time.Time) string {
	return newNumber(reportNumberPrefix, now)
}

// NewOrderNumber returns an order number in the same shape as report numbers
func NewOrderNumber(now time.Time) string {
	return newNumber(orderNumberPrefix, now)
}

func newNumber(prefix string, now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return prefix + now.UTC().Format("20060102") + suffix
}
