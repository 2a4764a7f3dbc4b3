package record

import "mvdan.cc/xurls/v2"

// urlPattern matches URL-like substrings with or without an explicit scheme,
// mirroring the permissive extraction chat exports need (bare domains included).
var urlPattern = xurls.Relaxed()

// CountURLs returns the number of URL-like substrings in the message.
func CountURLs(message string) int {
	return len(urlPattern.FindAllString(message, -1))
}

// ExtractURLs returns the URL-like substrings in order of appearance.
func ExtractURLs(message string) []string {
	return urlPattern.FindAllString(message, -1)
}
