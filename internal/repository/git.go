package repository

import "context"

// TagRepository defines the version-control operations needed to deploy a tag.
type TagRepository interface {
	// ListTags returns tag names matching the glob, highest version first.
	ListTags(ctx context.Context, pattern string) ([]string, error)
	// CreateTag creates a tag at HEAD, annotated when msg is not empty.
	CreateTag(ctx context.Context, tag, msg string) error
	// PushTag pushes the tag to the configured remote.
	PushTag(ctx context.Context, tag string) error
	// Remote returns the name of the remote tags are pushed to.
	Remote() string
}
