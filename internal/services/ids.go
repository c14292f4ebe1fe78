package service

import (
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// canonicalID returns the form the stores write back for id, so lock and cache
// keys agree however the caller spelled it. Unknown formats are kept as is.
func canonicalID(id string) string {
	if u, err := uuid.Parse(id); err == nil {
		return u.String()
	}
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return oid.Hex()
	}

	return id
}
