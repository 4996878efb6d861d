package principal

import (
	"github.com/gin-gonic/gin"

	"github.com/kumar-97/kukkuta-Kendra/internal/apiserver/database"
	"github.com/kumar-97/kukkuta-Kendra/internal/auth/jwt"
	"github.com/kumar-97/kukkuta-Kendra/internal/common/cnst"
)

// Principal is the authenticated caller of a request. The concrete type
// names the role: *Farmer, *Mill, *Admin or *Reporter.
type Principal interface {
	User() *database.User
	Claims() *jwt.Claims
	Role() database.UserRole

	principal()
}

// Identity is the part every principal shares
type Identity struct {
	user   *database.User
	claims *jwt.Claims
}

func (i *Identity) User() *database.User    { return i.user }
func (i *Identity) Claims() *jwt.Claims     { return i.claims }
func (i *Identity) Role() database.UserRole { return i.user.Role }
func (i *Identity) principal()              {}

type (
	Farmer   struct{ Identity }
	Mill     struct{ Identity }
	Admin    struct{ Identity }
	Reporter struct{ Identity }
)

// New builds the principal variant matching the user's role. Unknown roles
// yield nil.
func New(user *database.User, claims *jwt.Claims) Principal {
	id := Identity{user: user, claims: claims}
	switch user.Role {
	case database.RoleFarmer:
		return &Farmer{id}
	case database.RoleMill:
		return &Mill{id}
	case database.RoleAdmin:
		return &Admin{id}
	case database.RoleReport:
		return &Reporter{id}
	}
	return nil
}

// WithContext stores p on the gin context for the rest of the request
func WithContext(c *gin.Context, p Principal) {
	c.Set(cnst.CtxKeyPrincipal, p)
	c.Set(cnst.CtxKeyToken, p.Claims())
}

// FromContext returns the principal resolved for this request
func FromContext(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(cnst.CtxKeyPrincipal)
	if !ok {
		return nil, false
	}
	p, ok := v.(Principal)
	return p, ok
}
