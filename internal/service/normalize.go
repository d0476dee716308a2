package service

import (
	"regexp"
	"strings"
)

var (
	// [text](url), removed whole including the link text.
	markdownLinkRe = regexp.MustCompile(`\[[^\]]*\]\([^)]*\)`)
	// Any parenthetical; web answers use them for citations and asides.
	parentheticalRe = regexp.MustCompile(`\([^)]*\)`)
	// Bullet markers at the start of a line, including a marker alone on
	// its line such as a "* * *" rule.
	bulletRe      = regexp.MustCompile(`(?m)^[ \t]*(?:[-*•](?:[ \t\r]+|$))+`)
	newlineRe     = regexp.MustCompile(`[\r\n]+`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
	spaceBeforeRe = regexp.MustCompile(`\s+([.,])`)
)

// Normalize flattens web-search output into a single line of plain prose:
// markdown links and parentheticals are dropped, bullets and newlines become
// spaces, runs of whitespace collapse, and no space is left before "." or ",".
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	text = markdownLinkRe.ReplaceAllString(text, "")
	text = parentheticalRe.ReplaceAllString(text, "")
	text = bulletRe.ReplaceAllString(text, "")
	text = newlineRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = spaceBeforeRe.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
