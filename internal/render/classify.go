package render

import (
	"strings"
	"unicode/utf8"
)

// Kind classifies a content line for PDF layout.
type Kind int

const (
	Paragraph Kind = iota
	SectionHeading
	SubsectionHeading
	Bullet
)

// Section headings longer than this are treated as body text.
const maxHeadingRunes = 100

// Classify determines how a content line is laid out. Section headings are
// recognized only at the first line of a block; everywhere else an all-caps
// line falls through to the body rules.
func Classify(line string, first bool) Kind {
	if first && isSectionHeading(line) {
		return SectionHeading
	}
	if isSubsectionHeading(line) {
		return SubsectionHeading
	}
	if strings.HasPrefix(line, "- ") {
		return Bullet
	}
	return Paragraph
}

// isSectionHeading reports whether the line is fully uppercase: at least
// one cased letter and no lowercase ones.
func isSectionHeading(line string) bool {
	if utf8.RuneCountInString(line) >= maxHeadingRunes {
		return false
	}
	return strings.ToUpper(line) == line && strings.ToLower(line) != line
}

// isSubsectionHeading matches timed sub-phase lines such as
// "Introduction/Hook (10 minutes)" or "Guided practice - 15 minutes".
func isSubsectionHeading(line string) bool {
	if strings.Contains(line, "(") && strings.Contains(line, "minutes)") {
		return true
	}
	return strings.HasSuffix(line, "minutes")
}
