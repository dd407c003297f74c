package scraper

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
)

// decodeUTF8 returns body as UTF-8 text. The collector already converts
// bodies whose Content-Type names a charset; anything else that is not valid
// UTF-8 is decoded using the BOM or <meta> declaration of the page.
func decodeUTF8(body []byte, contentType string) (string, error) {
	if len(body) == 0 {
		return "", nil
	}
	if utf8.Valid(body) {
		return string(body), nil
	}
	if strings.Contains(strings.ToLower(contentType), "charset") {
		return strings.ToValidUTF8(string(body), "\uFFFD"), nil
	}

	enc, name, _ := charset.DetermineEncoding(body, contentType)
	if name == "utf-8" {
		return strings.ToValidUTF8(string(body), "\uFFFD"), nil
	}
	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return "", fmt.Errorf("decode %s body: %w", name, err)
	}
	return string(decoded), nil
}
