package domain

import "errors"

var (
	ErrUsage                = errors.New("usage error")
	ErrInvalidEnvironment   = errors.New("invalid environment")
	ErrTagQueryFailed       = errors.New("tag query failed")
	ErrTagCreateFailed      = errors.New("tag creation failed")
	ErrTagPushFailed        = errors.New("tag push failed")
	ErrReleasePublishFailed = errors.New("release publication failed")
	ErrLockUnavailable      = errors.New("working copy lock unavailable")
	ErrMalformedTag         = errors.New("malformed tag")
)
