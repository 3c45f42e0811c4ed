package chat

import "regexp"

// linkPattern recognizes URLs in message text, with or without an explicit
// scheme. Hosts are unicode-aware so internationalized domains autolink too.
var linkPattern = regexp.MustCompile(`(https?://)?([\p{L}\p{N}_-]+(?:\.[\p{L}\p{N}_-]+)+[\p{L}\p{N}.,@?^=%&:/~+#-]*[\p{L}\p{N}@?^=%&/~+#-])`)

// Autolink wraps every URL in body in an anchor tag. Scheme-less URLs get
// http:// prefixed in the href while the visible text stays as typed.
// Surrounding text is passed through untouched.
func Autolink(body string) string {
	return linkPattern.ReplaceAllStringFunc(body, func(match string) string {
		sub := linkPattern.FindStringSubmatch(match)
		protocol, path := sub[1], sub[2]
		href := match
		if protocol == "" {
			href = "http://" + path
		}
		return `<a href="` + href + `" rel="noopener noreferrer" target="_blank">` + match + `</a>`
	})
}
