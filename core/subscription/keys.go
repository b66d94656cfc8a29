package subscription

import (
	"encoding/base64"
	"strings"

	"github.com/pkg/errors"

	"github.com/aamritt0/FermiToday-pwa/core"
)

// DecodeServerKey converts the server's URL-safe base64 VAPID public key to
// the raw bytes the platform push manager expects: pad to a multiple of 4
// with '=', swap the URL-safe alphabet for the standard one, then decode.
func DecodeServerKey(key string) ([]byte, error) {
	if key == "" {
		return nil, core.ErrKeyUnavailable
	}
	padded := key + strings.Repeat("=", (4-len(key)%4)%4)
	std := strings.NewReplacer("-", "+", "_", "/").Replace(padded)
	raw, err := base64.StdEncoding.DecodeString(std)
	if err != nil {
		return nil, errors.Wrap(core.ErrKeyUnavailable, err.Error())
	}
	return raw, nil
}
