package crumb

import "unicode"

// NameTransform rewrites a case name or the "Some" key before it is written.
// Decoding compares case-insensitively against both the raw and transformed name.
type NameTransform func(string) string

// Identity returns name unchanged.
func Identity(name string) string {
	return name
}

// LowerCamel lowers the leading run of capitals, keeping the last capital of a
// run that is followed by lower case: "URLValue" becomes "urlValue".
func LowerCamel(name string) string {
	if name == "" {
		return name
	}
	r := []rune(name)
	if !unicode.IsUpper(r[0]) {
		return name
	}
	for i := range r {
		if !unicode.IsUpper(r[i]) {
			break
		}
		if i > 0 && i+1 < len(r) && !unicode.IsUpper(r[i+1]) {
			break
		}
		r[i] = unicode.ToLower(r[i])
	}
	return string(r)
}

// transformFor returns the NameTransform for a naming convention.
func transformFor(n Naming) NameTransform {
	if n == NamingCamelCase {
		return LowerCamel
	}
	return Identity
}
