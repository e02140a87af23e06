// Package content holds the fixed page copy shared by the web page and the
// terminal card.
package content

import "github.com/Zachkp/linkpage/internal/profile"

var (
	LeadIn = "I am "

	Loading = "Loading..."

	ConnectHeading = "Connect with me"

	PaymentsHeading = "Send me some coin"
	PaymentsHint    = "Click to copy address"
	PaymentsKeyHint = "Press enter or 1-9 to copy an address"
	CopiedLabel     = "Copied!"

	MadeWith = "Made with"
	MadeBy   = "by"
)

// DefaultFooter is the attribution used when the data file has none.
var DefaultFooter = profile.Footer{
	Text: "Zach",
	URL:  "https://github.com/Zachkp",
}

// Footer returns the attribution for p.
func Footer(p *profile.Profile) profile.Footer {
	if p != nil && p.Footer != nil {
		return *p.Footer
	}
	return DefaultFooter
}
