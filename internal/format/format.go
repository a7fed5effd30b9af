// Package format holds the small text helpers shared by the JSON API and the
// HTML pages: slugs, Indian price/area formatting and contact validation.
package format

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
	emailRe      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe      = regexp.MustCompile(`^[6-9]\d{9}$`)
)

// Slugify lowercases text and joins its alphanumeric runs with dashes.
func Slugify(text string) string {
	s := nonSlugChars.ReplaceAllString(strings.ToLower(text), "-")
	return strings.Trim(s, "-")
}

// SplitList turns "Gym, Parking,,Lift " into [Gym Parking Lift].
func SplitList(csv string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(csv, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinList is the inverse of SplitList.
func JoinList(items []string) string {
	return strings.Join(SplitList(strings.Join(items, ",")), ", ")
}

// Price renders an INR amount in crores / lakhs.
func Price(price float64) string {
	switch {
	case price <= 0:
		return "Price on Request"
	case price >= 10000000:
		return fmt.Sprintf("₹%.2f Cr", price/10000000)
	case price >= 100000:
		return fmt.Sprintf("₹%.2f Lakhs", price/100000)
	default:
		return "₹" + GroupIndian(int64(math.Round(price)))
	}
}

// Area renders a carpet area in square feet.
func Area(sqft float64) string {
	if sqft <= 0 {
		return "N/A"
	}
	return GroupIndian(int64(math.Round(sqft))) + " sq.ft"
}

// GroupIndian formats n with the Indian digit grouping (12,34,567).
func GroupIndian(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return sign + s
	}

	head, tail := s[:len(s)-3], s[len(s)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return sign + strings.Join(groups, ",") + "," + tail
}

// Truncate shortens text to max runes and appends "...".
func Truncate(text string, max int) string {
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:max])) + "..."
}

func ValidEmail(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(email))
}

// ValidPhone accepts Indian mobile numbers, with or without +91 / 0 prefix.
func ValidPhone(phone string) bool {
	p := strings.Join(strings.Fields(phone), "")
	p = strings.ReplaceAll(p, "-", "")
	p = strings.TrimPrefix(p, "+91")
	if len(p) == 11 && strings.HasPrefix(p, "0") {
		p = p[1:]
	}
	return phoneRe.MatchString(p)
}
