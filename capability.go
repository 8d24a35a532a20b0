package crumb

// Format selects which JSON grammar a Serializer writes and reads.
// Use these constants in settings files: `format: compact`
type Format string

const (
	// FormatCompact writes unions as strings or single-member objects and
	// collapses Some(x) to x wherever that is unambiguous.
	FormatCompact Format = "compact"

	// FormatVerbose writes the older structural grammar: {"Case":...,"Fields":[...]}.
	FormatVerbose Format = "verbose"

	// FormatBackwardCompatible writes compact and reads either grammar.
	FormatBackwardCompatible Format = "backward-compatible"
)

// TupleEncoding selects how tuples are written. Both are always accepted on read.
type TupleEncoding string

const (
	// TupleArray writes tuples as heterogeneous JSON arrays (default).
	TupleArray TupleEncoding = "array"

	// TupleLegacyObject writes tuples as objects keyed Item1..Item7 and Rest.
	TupleLegacyObject TupleEncoding = "legacy-object"
)

// Naming selects the NameTransform applied to case names and the "Some" key.
type Naming string

const (
	// NamingIdentity leaves names untouched.
	NamingIdentity Naming = "identity"

	// NamingCamelCase lowers the leading capital run: "Some" becomes "some".
	NamingCamelCase Naming = "camel"
)

// validFormats contains all valid formats for settings validation.
var validFormats = map[Format]bool{
	FormatCompact:            true,
	FormatVerbose:            true,
	FormatBackwardCompatible: true,
}

// validTupleEncodings contains all valid tuple encodings for settings validation.
var validTupleEncodings = map[TupleEncoding]bool{
	TupleArray:        true,
	TupleLegacyObject: true,
}

// validNamings contains all valid namings for settings validation.
var validNamings = map[Naming]bool{
	NamingIdentity:  true,
	NamingCamelCase: true,
}

// IsValidFormat returns true if f is a known format.
func IsValidFormat(f Format) bool {
	return validFormats[f]
}

// IsValidTupleEncoding returns true if te is a known tuple encoding.
func IsValidTupleEncoding(te TupleEncoding) bool {
	return validTupleEncodings[te]
}

// IsValidNaming returns true if n is a known naming convention.
func IsValidNaming(n Naming) bool {
	return validNamings[n]
}
