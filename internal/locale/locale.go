// Package locale picks the visitor's site language and formats money and
// coupon labels for it.
package locale

import (
	"fmt"
	"math"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Supported lists the site languages; the first is the fallback.
var Supported = []language.Tag{
	language.English,
	language.German,
	language.Vietnamese,
}

var matcher = language.NewMatcher(Supported)

// Match resolves an Accept-Language header (and an optional explicit
// choice, e.g. from a cookie) to one of the Supported tags.
func Match(preferred, acceptLanguage string) language.Tag {
	tags, _, _ := language.ParseAcceptLanguage(acceptLanguage)
	if preferred != "" {
		if t, err := language.Parse(preferred); err == nil {
			tags = append([]language.Tag{t}, tags...)
		}
	}
	_, idx, _ := matcher.Match(tags...)
	return Supported[idx]
}

// FormatAmount renders minor units of an ISO currency, e.g. 1450 EUR as
// "€ 14.50" in English. Unknown currencies print the raw code.
func FormatAmount(tag language.Tag, minor int64, code string) string {
	p := message.NewPrinter(tag)
	unit, err := currency.ParseISO(code)
	if err != nil {
		return p.Sprintf("%d %s", minor, code)
	}
	scale, _ := currency.Standard.Rounding(unit)
	amount := float64(minor) / math.Pow10(scale)
	return p.Sprint(currency.Symbol(unit.Amount(amount)))
}

// CouponLabel is the short display text for an applied coupon.
func CouponLabel(tag language.Tag, code string, amountOff, percentOff *int64, cur string) string {
	switch {
	case amountOff != nil && *amountOff > 0:
		return fmt.Sprintf("%s (-%s)", code, FormatAmount(tag, *amountOff, cur))
	case percentOff != nil && *percentOff > 0:
		return fmt.Sprintf("%s (-%d%%)", code, *percentOff)
	default:
		return code
	}
}
