package domain

import "fmt"

// Plan is a resolved deployment that has not been materialized yet.
type Plan struct {
	Environment Environment
	Pattern     string
	Candidates  []string
	LatestTag   string
	NewTag      Tag
	Remote      string
	Skipped     []string
}

// HasLatest reports whether a previous tag exists for the month.
func (p *Plan) HasLatest() bool {
	return p.LatestTag != ""
}

// LatestOrNone returns the latest tag, or "<none>" when there is none.
func (p *Plan) LatestOrNone() string {
	if !p.HasLatest() {
		return "<none>"
	}
	return p.LatestTag
}

// Commands returns the git commands that materialize the plan.
func (p *Plan) Commands() []string {
	tag := p.NewTag.String()
	return []string{
		fmt.Sprintf("git tag %s", tag),
		fmt.Sprintf("git push %s %s", p.Remote, tag),
	}
}
