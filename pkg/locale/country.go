package locale

type Country struct {
	Code          string   // ISO 3166-1 alpha-2 country code (e.g., "FR", "US")
	Name          string   // Human-readable country name
	PhonePrefixes []string // E.164 calling-code prefixes, longest first where ambiguous
}

// Countries covers the markets the dossier tool is used in. Prefix matching
// is best-effort: +1 spans all of NANP, so "United States" stands in for the
// whole numbering plan.
var Countries = []Country{
	{Code: "FR", Name: "France", PhonePrefixes: []string{"+33"}},
	{Code: "MA", Name: "Morocco", PhonePrefixes: []string{"+212"}},
	{Code: "BE", Name: "Belgium", PhonePrefixes: []string{"+32"}},
	{Code: "CH", Name: "Switzerland", PhonePrefixes: []string{"+41"}},
	{Code: "GB", Name: "United Kingdom", PhonePrefixes: []string{"+44"}},
	{Code: "ES", Name: "Spain", PhonePrefixes: []string{"+34"}},
	{Code: "IT", Name: "Italy", PhonePrefixes: []string{"+39"}},
	{Code: "DE", Name: "Germany", PhonePrefixes: []string{"+49"}},
	{Code: "AE", Name: "United Arab Emirates", PhonePrefixes: []string{"+971"}},
	{Code: "IL", Name: "Israel", PhonePrefixes: []string{"+972"}},
	{Code: "US", Name: "United States", PhonePrefixes: []string{"+1"}},
}
