package presenter

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParagraphs(t *testing.T) {
	roast := "Hey whale 🐳\r\n\nYour NFTs: none.  \n   \nKeep going! 🚀"
	assert.Equal(t, []string{"Hey whale 🐳", "Your NFTs: none.", "Keep going! 🚀"}, Paragraphs(roast))
	assert.Empty(t, Paragraphs("\n \n"))
	assert.Equal(t, []string{"one line"}, Paragraphs("one line"))
}

func TestShareURL(t *testing.T) {
	roast := "You hold 0.00 SUI & 2 NFTs + dust"
	link := ShareURL("https://roast.example", roast)

	require.True(t, strings.HasPrefix(link, "https://twitter.com/intent/tweet?text="))
	assert.NotContains(t, link, "+")
	assert.NotContains(t, link, " ")
	assert.Contains(t, link, "%20")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, ShareText("https://roast.example", roast), u.Query().Get("text"))
	assert.Equal(t, "I just got roasted by SUI Roast Agent: check it out at https://roast.example || "+roast, u.Query().Get("text"))
}
