// Package namegen derives username and email candidates from a person's
// full name. All functions are pure: the same name always yields the same
// sorted candidate set.
package namegen

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	slugStrip  = regexp.MustCompile(`[^a-z0-9]`)
	localStrip = regexp.MustCompile(`[^a-z0-9._-]`)
)

// Name is a full name split into its ordered whitespace-separated tokens.
// Last is empty for single-token names.
type Name struct {
	Tokens   []string
	First    string
	Last     string
	Initials string
}

// ParseName splits a free-text full name on whitespace and lowercases the
// derived parts. A blank input yields a zero Name.
func ParseName(fullName string) Name {
	tokens := strings.Fields(fullName)
	n := Name{Tokens: tokens}
	if len(tokens) == 0 {
		return n
	}

	n.First = strings.ToLower(tokens[0])
	if len(tokens) > 1 {
		n.Last = strings.ToLower(tokens[len(tokens)-1])
	}

	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(initial(t))
	}
	n.Initials = b.String()

	return n
}

// Slug reduces a string to lowercase alphanumeric characters only.
func Slug(s string) string {
	return slugStrip.ReplaceAllString(strings.ToLower(s), "")
}

// Usernames generates common username permutations for a full name.
// Every candidate is slug-normalized; the result is deduplicated and
// sorted. Single-token names degrade combined forms to the first token
// alone, which can include the empty string among the candidates.
func Usernames(fullName string) []string {
	n := ParseName(fullName)
	if len(n.Tokens) == 0 {
		return nil
	}

	first, last := n.First, n.Last

	seen := make(map[string]struct{})
	add := func(c string) { seen[c] = struct{}{} }

	add(first)
	add(last)
	add(n.Initials)
	add(first + last)
	add(first + "." + last)
	add(first + "_" + last)
	add(initial(first) + last)
	add(first + initial(last))
	add(first + "-" + last)

	if len(n.Tokens) > 2 {
		mid := strings.ToLower(n.Tokens[1])
		add(first + mid)
		add(first + initial(mid) + last)
		add(initial(first) + initial(mid) + last)
	}

	// Small numeric suffixes are common enough to always try.
	base := make([]string, 0, len(seen))
	for c := range seen {
		base = append(base, c)
	}
	for _, c := range base {
		for i := 1; i <= 3; i++ {
			add(c + strconv.Itoa(i))
		}
	}

	out := make(map[string]struct{}, len(seen))
	for c := range seen {
		out[Slug(c)] = struct{}{}
	}

	result := make([]string, 0, len(out))
	for c := range out {
		result = append(result, c)
	}
	sort.Strings(result)
	return result
}

// Emails generates likely email permutations for the given domains.
// Local parts are restricted to [a-z0-9._-]; patterns referencing a part
// the name does not have fall back to the empty string for that slot.
func Emails(fullName string, domains []string) []string {
	n := ParseName(fullName)
	if len(n.Tokens) == 0 {
		return nil
	}

	first, last := n.First, n.Last
	locals := []string{
		first + "." + last,
		first + last,
		initial(first) + last,
		first + initial(last),
		first,
		last,
		n.Initials,
		first + "_" + last,
	}

	seen := make(map[string]struct{})
	for _, domain := range domains {
		for _, local := range locals {
			seen[localStrip.ReplaceAllString(local, "")+"@"+domain] = struct{}{}
		}
	}

	result := make([]string, 0, len(seen))
	for e := range seen {
		result = append(result, e)
	}
	sort.Strings(result)
	return result
}

// initial returns the lowercased first rune of s, or "" when s is empty.
func initial(s string) string {
	for _, r := range s {
		return strings.ToLower(string(r))
	}
	return ""
}
