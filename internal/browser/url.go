package browser

import (
	"net/url"
	"regexp"
	"strings"
)

var schemeRe = regexp.MustCompile(`(?i)^https?://`)

// NormalizeURL turns address bar input into a url. Input with an http(s)
// scheme or an about: url is kept, input without a dot is a search query
// for searchURL, and anything else gets an https:// prefix. Empty input
// returns "".
func NormalizeURL(input, searchURL string) string {
	input = strings.TrimSpace(input)
	switch {
	case input == "":
		return ""
	case schemeRe.MatchString(input), strings.HasPrefix(strings.ToLower(input), "about:"):
		return input
	case !strings.Contains(input, "."):
		return searchURL + strings.ReplaceAll(url.QueryEscape(input), "+", "%20")
	default:
		return "https://" + input
	}
}
