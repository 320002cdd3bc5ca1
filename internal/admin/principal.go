// Package admin holds the catalog and order operations behind the admin API:
// product upsert with the color/image invariant, order status changes, and
// the order summaries joined against the catalog.
package admin

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storeadmin/internal/apperror"
)

// Principal is the caller identity resolved from the access token. It is
// passed explicitly into every operation that needs authorization.
type Principal struct {
	UserID  primitive.ObjectID
	IsAdmin bool
}

// RequireAdmin fails with Unauthorized unless p holds admin rights.
func RequireAdmin(p Principal) error {
	if !p.IsAdmin {
		return apperror.Unauthorized()
	}
	return nil
}
