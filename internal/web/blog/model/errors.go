package model

import "github.com/Laisky/errors/v2"

var (
	// ErrValidation indicates malformed input shape.
	ErrValidation = errors.New("validation error")
	// ErrDuplicateSlug indicates a name/title collides with an existing entity.
	ErrDuplicateSlug = errors.New("slug already exists")
	// ErrDanglingReference indicates referenced category/tag ids do not exist.
	ErrDanglingReference = errors.New("referenced entity does not exist")
	// ErrCategoryInUse indicates the category is referenced by a post.
	ErrCategoryInUse = errors.New("category is referenced by posts")
	// ErrCategoryHasChildren indicates the category has child categories.
	ErrCategoryHasChildren = errors.New("category has child categories")
	// ErrTagInUse indicates the tag is referenced by a post.
	ErrTagInUse = errors.New("tag is referenced by posts")
	// ErrNotFound indicates the entity id/slug does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates the login credentials are invalid.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidRefreshToken indicates the presented refresh token does not
	// match the stored session.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	// ErrTokenExpired indicates the access token is past its expiry.
	ErrTokenExpired = errors.New("access token expired")
	// ErrTokenInvalid indicates the access token is malformed or forged.
	ErrTokenInvalid = errors.New("access token invalid")
	// ErrUnauthorized indicates the request carries no usable credential.
	ErrUnauthorized = errors.New("unauthorized")
)
