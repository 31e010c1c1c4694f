package domain

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// tagRegex matches <env>-<year>-<month>-v<seq>.
var tagRegex = regexp.MustCompile(`^([a-z]+)-(\d{4})-(\d{2})-v(\d+)$`)

// Tag is a deployment tag of the form <env>-<year>-<month>-v<seq>.
type Tag struct {
	Environment Environment
	Year        int
	Month       time.Month
	Sequence    int
}

// NewTag builds the tag for env at the UTC year/month of now.
func NewTag(env Environment, now time.Time, seq int) Tag {
	utc := now.UTC()
	return Tag{
		Environment: env,
		Year:        utc.Year(),
		Month:       utc.Month(),
		Sequence:    seq,
	}
}

// ParseTag parses a tag name. Names that do not follow the tag grammar,
// or carry an unknown environment, fail with ErrMalformedTag.
func ParseTag(name string) (Tag, error) {
	m := tagRegex.FindStringSubmatch(name)
	if m == nil {
		return Tag{}, fmt.Errorf("%w: %s", ErrMalformedTag, name)
	}
	env, err := ParseEnvironment(m[1])
	if err != nil {
		return Tag{}, fmt.Errorf("%w: %s", ErrMalformedTag, name)
	}
	year, _ := strconv.Atoi(m[2])
	month, _ := strconv.Atoi(m[3])
	if month < 1 || month > 12 {
		return Tag{}, fmt.Errorf("%w: month out of range in %s", ErrMalformedTag, name)
	}
	seq, err := strconv.Atoi(m[4])
	// the sequence must leave room for its successor
	if err != nil || seq < 1 || seq == math.MaxInt {
		return Tag{}, fmt.Errorf("%w: invalid sequence in %s", ErrMalformedTag, name)
	}
	return Tag{
		Environment: env,
		Year:        year,
		Month:       time.Month(month),
		Sequence:    seq,
	}, nil
}

// Prefix returns <env>-<year>-<month>, shared by every tag of the same month.
func (t Tag) Prefix() string {
	return MonthPrefix(t.Environment, t.Year, t.Month)
}

// Pattern returns the glob matching every tag of the same environment and month.
func (t Tag) Pattern() string {
	return t.Prefix() + "-v*"
}

// Next returns the tag that follows t within the same month.
func (t Tag) Next() Tag {
	t.Sequence++
	return t
}

// Version returns the calendar version of the tag.
func (t Tag) Version() *Version {
	return NewVersion(t.Year, int(t.Month), t.Sequence)
}

func (t Tag) String() string {
	return fmt.Sprintf("%s-v%d", t.Prefix(), t.Sequence)
}

// MonthPrefix formats <env>-<year>-<month> with a zero padded month.
func MonthPrefix(env Environment, year int, month time.Month) string {
	return fmt.Sprintf("%s-%04d-%02d", env, year, int(month))
}

// TagPattern returns the glob for every tag of env in the UTC month of now.
func TagPattern(env Environment, now time.Time) string {
	utc := now.UTC()
	return MonthPrefix(env, utc.Year(), utc.Month()) + "-v*"
}
