package patterns

import (
	"regexp"
	"strings"
)

// Sources of the predefined patterns. All of them are RE2 compatible.
const (
	onlyAlphaUnicode = `[\p{L}]*`
	alphaNumeric     = `[\p{L}\p{N}]*`
	number           = `-?(\d*\.\d+|\d+)`
	positiveInt      = `([1-9]\d*)`
	anInteger        = `-?(\d+)`
	aDouble          = `-?(\d*\.\d+)`
	anyBoolean       = `(true|false)`

	ipAddress = `([01]?\d\d?|2[0-4]\d|25[0-5])\.([01]?\d\d?|2[0-4]\d|25[0-5])\.([01]?\d\d?|2[0-4]\d|25[0-5])\.([01]?\d\d?|2[0-4]\d|25[0-5])`
	hostname  = `((http[s]?|ftp):/)/?([^:/\s]+)(:[0-9]{1,5})?`
	email     = `[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,6}`

	uuidExpr  = `[a-fA-F0-9]{8}-[a-fA-F0-9]{4}-[a-fA-F0-9]{4}-[a-fA-F0-9]{4}-[a-fA-F0-9]{12}`
	uuid4Expr = `[a-fA-F0-9]{8}-[a-fA-F0-9]{4}-4[a-fA-F0-9]{3}-[89abAB][a-fA-F0-9]{3}-[a-fA-F0-9]{12}`

	isoDate           = `(\d\d\d\d)-(0[1-9]|1[012])-(0[1-9]|[12][0-9]|3[01])`
	isoTime           = `(2[0-3]|[01][0-9]):([0-5][0-9]):([0-5][0-9])`
	isoDateTime       = isoDate + `T` + isoTime + `(\.\d+)?`
	iso8601WithOffset = isoDate + `T` + isoTime + `(\.\d{1,6})?(Z|[+-][01]\d:[0-5]\d)`

	nonEmpty = `[\s\S]+`
	nonBlank = `[\s\S]*\S[\s\S]*`
)

// URL building blocks. The host grammar rejects labels starting or ending with
// a dash, bare numeric hosts and trailing dots.
const (
	urlUserInfo = `(?:\S+(?::\S*)?@)?`
	urlIPv4     = `(?:[1-9]\d?|1\d\d|2[01]\d|22[0-3])(?:\.(?:1?\d{1,2}|2[0-4]\d|25[0-5])){2}(?:\.(?:[0-9]\d?|1\d\d|2[0-4]\d|25[0-4]))`
	urlLabel    = `(?:[a-zA-Z\x{00a1}-\x{ffff}0-9]+-?)*[a-zA-Z\x{00a1}-\x{ffff}0-9]+`
	urlDomain   = urlLabel + `(?:\.` + urlLabel + `)*(?:\.(?:[a-zA-Z\x{00a1}-\x{ffff}]{2,}))`
	urlHost     = `(?:` + urlIPv4 + `|` + urlDomain + `|localhost)`
	urlTail     = `(?::\d{2,5})?(?:[/?#]\S*)?`

	url      = `(?:[A-Za-z][+-.\w^_]*://)?` + urlUserInfo + urlHost + urlTail
	httpsURL = `https://` + urlUserInfo + urlHost + urlTail
)

var (
	onlyAlphaUnicodePattern  = MustCompile(onlyAlphaUnicode)
	alphaNumericPattern      = MustCompile(alphaNumeric)
	numberPattern            = MustCompile(number)
	positiveIntPattern       = MustCompile(positiveInt)
	anIntegerPattern         = MustCompile(anInteger)
	aDoublePattern           = MustCompile(aDouble)
	anyBooleanPattern        = MustCompile(anyBoolean)
	ipAddressPattern         = MustCompile(ipAddress)
	hostnamePattern          = MustCompile(hostname)
	emailPattern             = MustCompile(email)
	urlPattern               = MustCompile(url)
	httpsURLPattern          = MustCompile(httpsURL)
	uuidPattern              = MustCompile(uuidExpr)
	uuid4Pattern             = MustCompile(uuid4Expr)
	isoDatePattern           = MustCompile(isoDate)
	isoDateTimePattern       = MustCompile(isoDateTime)
	isoTimePattern           = MustCompile(isoTime)
	iso8601WithOffsetPattern = MustCompile(iso8601WithOffset)
	nonEmptyPattern          = MustCompile(nonEmpty)
	nonBlankPattern          = MustCompile(nonBlank)
)

// OnlyAlphaUnicode matches any run of unicode letters, including the empty string.
func OnlyAlphaUnicode() Pattern { return onlyAlphaUnicodePattern }

// AlphaNumeric matches any run of unicode letters and digits.
func AlphaNumeric() Pattern { return alphaNumericPattern }

// Number matches integers and decimals. A decimal point needs a digit after it.
func Number() Pattern { return numberPattern }

// PositiveInt matches unsigned, non-zero integers.
func PositiveInt() Pattern { return positiveIntPattern }

// AnInteger matches optionally signed integers.
func AnInteger() Pattern { return anIntegerPattern }

// ADouble matches decimals that contain a decimal point.
func ADouble() Pattern { return aDoublePattern }

// AnyBoolean matches "true" or "false".
func AnyBoolean() Pattern { return anyBooleanPattern }

// IPAddress matches dotted IPv4 addresses.
func IPAddress() Pattern { return ipAddressPattern }

// Hostname matches a scheme plus host with an optional port and no path.
func Hostname() Pattern { return hostnamePattern }

// Email matches e-mail addresses.
func Email() Pattern { return emailPattern }

// URL matches URLs with any scheme, or with no scheme at all.
func URL() Pattern { return urlPattern }

// HTTPSURL matches URLs using the https scheme.
func HTTPSURL() Pattern { return httpsURLPattern }

// UUID matches 8-4-4-4-12 hex groups in either case.
func UUID() Pattern { return uuidPattern }

// UUID4 matches version 4 UUIDs with an RFC 4122 variant nibble.
func UUID4() Pattern { return uuid4Pattern }

// ISODate matches yyyy-MM-dd.
func ISODate() Pattern { return isoDatePattern }

// ISODateTime matches yyyy-MM-ddTHH:mm:ss with optional fractional seconds.
func ISODateTime() Pattern { return isoDateTimePattern }

// ISOTime matches HH:mm:ss.
func ISOTime() Pattern { return isoTimePattern }

// ISO8601WithOffset matches a date-time with up to six fractional digits and a
// mandatory Z or ±HH:MM offset.
func ISO8601WithOffset() Pattern { return iso8601WithOffsetPattern }

// NonEmpty matches anything but the empty string.
func NonEmpty() Pattern { return nonEmptyPattern }

// NonBlank matches input containing at least one non-whitespace character.
func NonBlank() Pattern { return nonBlankPattern }

// AnyOf matches exactly one of values. Values are matched literally.
func AnyOf(values ...string) Pattern {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = regexp.QuoteMeta(v)
	}
	return MustCompile("(" + strings.Join(quoted, "|") + ")")
}

// Predefined returns a predefined pattern by its snake_case name as used in
// contract files ("iso_date", "email", ...).
func Predefined(name string) (Pattern, bool) {
	p, ok := predefinedByName[name]
	return p, ok
}

var predefinedByName = map[string]Pattern{
	"only_alpha_unicode":   onlyAlphaUnicodePattern,
	"alpha_numeric":        alphaNumericPattern,
	"number":               numberPattern,
	"positive_int":         positiveIntPattern,
	"any_integer":          anIntegerPattern,
	"any_double":           aDoublePattern,
	"any_boolean":          anyBooleanPattern,
	"ip_address":           ipAddressPattern,
	"hostname":             hostnamePattern,
	"email":                emailPattern,
	"url":                  urlPattern,
	"https_url":            httpsURLPattern,
	"uuid":                 uuidPattern,
	"uuid4":                uuid4Pattern,
	"iso_date":             isoDatePattern,
	"iso_date_time":        isoDateTimePattern,
	"iso_time":             isoTimePattern,
	"iso_8601_with_offset": iso8601WithOffsetPattern,
	"non_empty":            nonEmptyPattern,
	"non_blank":            nonBlankPattern,
}
