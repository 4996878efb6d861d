package handler

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kumar-97/kukkuta-Kendra/internal/apiserver/cache"
	"github.com/kumar-97/kukkuta-Kendra/internal/apiserver/database"
	"github.com/kumar-97/kukkuta-Kendra/internal/auth/principal"
	"github.com/kumar-97/kukkuta-Kendra/internal/common/cnst"
	"github.com/kumar-97/kukkuta-Kendra/internal/i18n"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 1000
)

// storeError maps a database error onto the API error taxonomy. notFound is
// reported for ErrNotFound so that a missing row and a row owned by someone
// else look the same to the caller.
func storeError(err error, notFound *i18n.ErrorWithCode) error {
	var (
		withCode    *i18n.ErrorWithCode
		unavailable *database.FeedTypeUnavailableError
		closed      *database.OrderClosedError
	)
	switch {
	case errors.As(err, &withCode):
		return withCode
	case errors.Is(err, database.ErrNotFound):
		if notFound == nil {
			return i18n.ErrNotFound
		}
		return notFound
	case errors.Is(err, database.ErrReportLocked):
		return i18n.ErrReportLocked
	case errors.Is(err, database.ErrAlreadyApproved):
		return i18n.ErrReportAlreadyApproved
	case errors.Is(err, database.ErrNotApproved):
		return i18n.ErrReportNotApproved
	case errors.Is(err, database.ErrOrderNotPending):
		return i18n.ErrOrderNotCancellable
	case errors.As(err, &closed):
		return i18n.ErrOrderClosed.WithParam("Status", string(closed.Status))
	case errors.Is(err, database.ErrInvalidState):
		return i18n.ErrInvalidState
	case errors.Is(err, database.ErrEmptyIDs):
		return i18n.ErrEmptyFarmerIDs
	case errors.Is(err, database.ErrEmptyOrder):
		return i18n.ErrEmptyOrder
	case errors.As(err, &unavailable):
		return i18n.ErrFeedTypeUnavailable.WithParam("ID", unavailable.ID)
	case errors.Is(err, database.ErrInvalidArgument):
		return i18n.ErrBadRequest.WithParam("Reason", err.Error())
	case errors.Is(err, database.ErrConflict):
		return i18n.ErrConflict
	}
	return err
}

// respondStoreError logs unexpected failures and writes the mapped error
func respondStoreError(c *gin.Context, logger *zap.Logger, msg string, err error, notFound *i18n.ErrorWithCode) {
	mapped := storeError(err, notFound)
	if i18n.KindOf(mapped) == i18n.KindInternal {
		logger.Error(msg, zap.Error(err), zap.String("path", c.Request.URL.Path))
	} else {
		logger.Debug(msg, zap.Error(err))
	}
	i18n.RespondWithError(c, mapped)
}

// clearStats drops cached admin aggregates after an admin write that
// changes them. Other writes show up once entries expire.
func clearStats(ctx context.Context, stats *cache.Cache, logger *zap.Logger) {
	if err := stats.Clear(ctx); err != nil {
		logger.Warn("failed to clear stats cache", zap.Error(err))
	}
}

// bindJSON decodes the body into req and answers InvalidArgument on failure
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest.WithParam("Reason", err.Error()))
		return false
	}
	return true
}

func currentPrincipal(c *gin.Context) (principal.Principal, bool) {
	p, ok := principal.FromContext(c)
	if !ok {
		i18n.RespondWithError(c, i18n.ErrUnauthenticated)
	}
	return p, ok
}

// pathID parses a positive numeric path parameter
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		i18n.RespondWithError(c, i18n.ErrInvalidID.WithParam("Name", name))
		return 0, false
	}
	return uint(id), true
}

func queryPage(c *gin.Context) (database.Page, error) {
	page := database.Page{Limit: defaultPageLimit}
	if v := c.Query("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return page, errors.New("skip must be a non-negative integer")
		}
		page.Skip = n
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxPageLimit {
			return page, errors.New("limit must be between 1 and 1000")
		}
		page.Limit = n
	}
	return page, nil
}

func queryBool(c *gin.Context, key string) (*bool, error) {
	v, ok := c.GetQuery(key)
	if !ok || v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, errors.New(key + " must be a boolean")
	}
	return &b, nil
}

func queryUint(c *gin.Context, key string) (*uint, error) {
	v, ok := c.GetQuery(key)
	if !ok || v == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return nil, errors.New(key + " must be a positive integer")
	}
	id := uint(n)
	return &id, nil
}

// queryTime accepts RFC 3339 timestamps or plain dates
func queryTime(c *gin.Context, key string) (*time.Time, error) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, v); err == nil {
			return &t, nil
		}
	}
	return nil, errors.New(key + " must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
}

func queryDateRange(c *gin.Context, from, to string) (database.DateRange, error) {
	var (
		r   database.DateRange
		err error
	)
	if r.Start, err = queryTime(c, from); err != nil {
		return r, err
	}
	if r.End, err = queryTime(c, to); err != nil {
		return r, err
	}
	return r, nil
}

// badQuery answers InvalidArgument for a malformed query string
func badQuery(c *gin.Context, err error) {
	i18n.RespondWithError(c, i18n.ErrBadRequest.WithParam("Reason", err.Error()))
}

// adminLog builds the audit row for an admin action taken in this request
func adminLog(c *gin.Context, admin *principal.Admin, action cnst.AdminAction, targetType string, targetID uint, description string) *database.AdminLog {
	log := &database.AdminLog{
		UserID:      admin.User().ID,
		Action:      string(action),
		TargetType:  targetType,
		Description: description,
		IPAddress:   c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
	}
	if targetID != 0 {
		log.TargetID = &targetID
	}
	return log
}
