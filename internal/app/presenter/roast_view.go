package presenter

import (
	"net/url"
	"strings"
)

const shareIntentURL = "https://twitter.com/intent/tweet?text="

// Paragraphs splits roast text into the lines revealed one by one.
// Blank lines only separate paragraphs and are dropped.
func Paragraphs(roast string) []string {
	roast = strings.ReplaceAll(roast, "\r\n", "\n")
	lines := strings.Split(roast, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// ShareText is the post text offered for sharing a roast.
func ShareText(appURL, roast string) string {
	return "I just got roasted by SUI Roast Agent: check it out at " + appURL + " || " + roast
}

// ShareURL returns an X (Twitter) intent link prefilled with ShareText.
// Spaces are encoded as %20, matching encodeURIComponent.
func ShareURL(appURL, roast string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(ShareText(appURL, roast)), "+", "%20")
	return shareIntentURL + escaped
}
