package content

import (
	"strings"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/taxogen/internal/frontmatter"
)

// Fields that change without the content changing.
var volatileFields = map[string]struct{}{
	mdfp.FingerprintField: {},
	"lastmod":             {},
	"uid":                 {},
	"aliases":             {},
}

// Fingerprint computes the content fingerprint of one source file from its
// frontmatter fields and body. Volatile fields are excluded.
func Fingerprint(fields map[string]any, body []byte) (string, error) {
	hashed := make(map[string]any, len(fields))
	for k, v := range fields {
		if _, skip := volatileFields[k]; skip {
			continue
		}
		hashed[k] = v
	}

	fm := ""
	if len(hashed) > 0 {
		serialized, err := frontmatter.Canonical(hashed)
		if err != nil {
			return "", err
		}
		fm = strings.TrimSuffix(string(serialized), "\n")
	}
	return mdfp.CalculateFingerprintFromParts(fm, string(body)), nil
}
