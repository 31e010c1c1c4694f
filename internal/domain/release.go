package domain

// Release holds the metadata of a published release for a pushed tag.
type Release struct {
	Tag        Tag
	Name       string
	Body       string
	Prerelease bool
	URL        string
}

// NewRelease describes the release for tag. Non-production tags are prereleases.
func NewRelease(tag Tag, body string) *Release {
	return &Release{
		Tag:        tag,
		Name:       tag.String(),
		Body:       body,
		Prerelease: tag.Environment != EnvironmentProduction,
	}
}
