// Package patterns provides the regular expressions used to describe and
// generate contract values.
//
// A Pattern always matches whole inputs. The predefined patterns cover the
// value domains contracts commonly need:
//
//   - Numbers: Number, PositiveInt, AnInteger, ADouble, AnyBoolean
//   - Text: OnlyAlphaUnicode, AlphaNumeric, NonEmpty, NonBlank, AnyOf
//   - Network: IPAddress, Hostname, Email, URL, HTTPSURL
//   - Identifiers: UUID, UUID4
//   - Time: ISODate, ISOTime, ISODateTime, ISO8601WithOffset
//
// None of the constructors fail; a value that does not fit a pattern is
// reported later, when the contract using it is validated.
package patterns
