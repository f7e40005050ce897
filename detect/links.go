package detect

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Link is a hyperlink-like substring of a text. Start and Length are counted
// in runes.
type Link struct {
	Start  int
	Length int
	Text   string // the substring as it appears in the text
	URL    string // Text, prefixed by a scheme if Text has none
}

// linkPattern matches URLs with an http(s) scheme and bare domain names with
// an optional port and path. The object replacement character never is part
// of a link.
var linkPattern = regexp.MustCompile(`(?i)https?://[^\s<>"\x{FFFC}]+` +
	`|(?:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,24}(?::[0-9]{2,5})?(?:/[^\s<>"\x{FFFC}]*)?`)

// topLevelDomains holds the generic top-level domains accepted for bare
// domain names. Two-letter country code domains are always accepted.
var topLevelDomains = map[string]bool{
	"com": true, "org": true, "net": true, "edu": true, "gov": true, "mil": true,
	"int": true, "info": true, "biz": true, "name": true, "pro": true, "app": true,
	"dev": true, "page": true, "blog": true, "shop": true, "site": true, "online": true,
	"xyz": true, "tech": true, "cloud": true, "media": true, "news": true, "art": true,
	"mobi": true, "museum": true, "travel": true, "aero": true, "coop": true,
}

const trailingPunctuation = `.,;:!?'"`

// Links finds hyperlink-like substrings of text, in text order. Matches do
// not overlap.
func Links(text string) []Link {
	matches := linkPattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}
	links := make([]Link, 0, len(matches))
	bytepos, runepos := 0, 0 // matches arrive in ascending order
	for _, m := range matches {
		from, to := m[0], trimLink(text, m[0], m[1])
		candidate := text[from:to]
		hasScheme := hasScheme(candidate)
		if hasScheme && strings.HasSuffix(candidate, "://") {
			continue
		}
		if !hasScheme && !acceptBareDomain(text, from, candidate) {
			tracer().Debugf("detect: rejected bare domain candidate %q", candidate)
			continue
		}
		runepos += utf8.RuneCountInString(text[bytepos:from])
		bytepos = from
		link := Link{
			Start:  runepos,
			Length: utf8.RuneCountInString(candidate),
			Text:   candidate,
			URL:    candidate,
		}
		if !hasScheme {
			link.URL = "https://" + candidate
		}
		links = append(links, link)
	}
	return links
}

func hasScheme(s string) bool {
	l := strings.ToLower(s)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// trimLink removes trailing punctuation and unbalanced closing parentheses
// from a match text[from:to] and returns the new end position.
func trimLink(text string, from, to int) int {
	for to > from {
		r, size := utf8.DecodeLastRuneInString(text[from:to])
		if strings.ContainsRune(trailingPunctuation, r) {
			to -= size
			continue
		}
		if r == ')' {
			s := text[from:to]
			if strings.Count(s, "(") < strings.Count(s, ")") {
				to -= size
				continue
			}
		}
		break
	}
	return to
}

// acceptBareDomain checks a domain-like candidate starting at byte position
// from. Candidates glued to a preceding word (or e-mail local part) and
// candidates with an unknown top-level domain are rejected.
func acceptBareDomain(text string, from int, candidate string) bool {
	if from > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:from])
		if r == '@' || r == '.' || r == '/' || r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	host := candidate
	if i := strings.IndexAny(host, ":/"); i >= 0 {
		host = host[:i]
	}
	dot := strings.LastIndexByte(host, '.')
	if dot < 0 {
		return false
	}
	tld := strings.ToLower(host[dot+1:])
	return len(tld) == 2 || topLevelDomains[tld]
}
