package locale

import "strings"

// InferCountryFromPhone maps an E.164 phone number to a country by calling
// code. Returns nil when no known prefix matches.
func InferCountryFromPhone(phone string) *Country {
	normalized := strings.TrimSpace(phone)
	if normalized == "" {
		return nil
	}

	for i := range Countries {
		for _, prefix := range Countries[i].PhonePrefixes {
			if strings.HasPrefix(normalized, prefix) {
				return &Countries[i]
			}
		}
	}
	return nil
}
