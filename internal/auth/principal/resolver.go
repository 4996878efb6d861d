package principal

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/kumar-97/kukkuta-Kendra/internal/apiserver/database"
	"github.com/kumar-97/kukkuta-Kendra/internal/auth/jwt"
	"github.com/kumar-97/kukkuta-Kendra/internal/auth/revocation"
	"github.com/kumar-97/kukkuta-Kendra/internal/common/cnst"
	"github.com/kumar-97/kukkuta-Kendra/internal/i18n"
	"github.com/kumar-97/kukkuta-Kendra/pkg/trace"
)

// Users loads accounts by id
type Users interface {
	GetUserByID(ctx context.Context, id uint) (*database.User, error)
}

// Resolver turns a bearer token into a Principal
type Resolver struct {
	tokens  *jwt.Service
	revoked revocation.Store
	users   Users
	logger  *zap.Logger
}

// NewResolver creates a Resolver
func NewResolver(tokens *jwt.Service, revoked revocation.Store, users Users, logger *zap.Logger) *Resolver {
	return &Resolver{
		tokens:  tokens,
		revoked: revoked,
		users:   users,
		logger:  logger.Named("auth.principal"),
	}
}

// BearerToken extracts the token from an Authorization header value
func BearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// Resolve validates the token and loads its user. Any credential problem is
// Unauthenticated; a disabled account is InactiveAccount.
func (r *Resolver) Resolve(ctx context.Context, token string) (Principal, error) {
	span := trace.Tracer(cnst.TraceAPIServer).Start(ctx, cnst.SpanResolvePrincipal)
	defer span.End()
	ctx = span.Ctx

	p, err := r.resolve(ctx, token)
	if err != nil {
		span.RecordError(err)
		span.WithAttrs(attribute.String(cnst.AttrErrorKind, string(i18n.KindOf(err))))
		return nil, err
	}
	span.WithAttrs(
		attribute.Int64(cnst.AttrUserID, int64(p.User().ID)),
		attribute.String(cnst.AttrUserRole, string(p.Role())),
	)
	return p, nil
}

func (r *Resolver) resolve(ctx context.Context, token string) (Principal, error) {
	claims, err := r.tokens.ValidateToken(token)
	if err != nil {
		r.logger.Debug("rejected bearer token", zap.Error(err))
		return nil, i18n.ErrUnauthenticated
	}

	revoked, err := r.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check token revocation: %w", err)
	}
	if revoked {
		r.logger.Debug("revoked token presented", zap.String("jti", claims.ID))
		return nil, i18n.ErrUnauthenticated
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, i18n.ErrUnauthenticated
	}
	user, err := r.users.GetUserByID(ctx, uint(userID))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, i18n.ErrUnauthenticated
		}
		return nil, fmt.Errorf("load user %d: %w", userID, err)
	}
	if !user.IsActive {
		return nil, i18n.ErrInactiveAccount
	}

	p := New(user, claims)
	if p == nil {
		r.logger.Warn("user has unknown role", zap.Uint("user_id", user.ID), zap.String("role", string(user.Role)))
		return nil, i18n.ErrUnauthenticated
	}
	return p, nil
}
