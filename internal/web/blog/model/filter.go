package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// PostFilter narrows published-post listings. The zero value lists all
// published posts.
type PostFilter struct {
	// Search full-text query over title/excerpt
	Search string
	// CategoryIDs match posts referencing any of these categories
	CategoryIDs []primitive.ObjectID
	// TagIDs match posts referencing any of these tags
	TagIDs []primitive.ObjectID
	// Limit caps the result count when positive
	Limit int64
}
