package domain

import "strconv"

// maxTokenURILength bounds the length of descriptor strings handed out by the
// metadata surface.
const maxTokenURILength = 256

// TokenURI builds the metadata descriptor string for a token by appending the
// token identifier to the configured base URI. If the concatenation would
// exceed the maximum descriptor length, the base URI alone is returned.
func TokenURI(baseURI string, tokenID uint64) string {
	uri := baseURI + strconv.FormatUint(tokenID, 10)
	if len(uri) > maxTokenURILength {
		return baseURI
	}
	return uri
}
