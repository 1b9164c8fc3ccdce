package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// supportedRegions lets national-format numbers (no country code) parse
// against the markets in pkg/locale. Order matters: the first region that
// yields a valid number wins, so France leads.
var supportedRegions = []string{"FR", "MA", "BE", "CH", "GB", "ES", "IT", "DE", "AE", "IL", "US"}

// NormalizePhone parses phone against the supported regions and returns the
// E.164 form. Input that is not a valid number in any supported region comes
// back empty.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}

	for _, region := range supportedRegions {
		parsedNumber, err := phonenumbers.Parse(phone, region)
		if err != nil {
			continue
		}
		if phonenumbers.IsValidNumber(parsedNumber) {
			return phonenumbers.Format(parsedNumber, phonenumbers.E164)
		}
	}

	return ""
}
