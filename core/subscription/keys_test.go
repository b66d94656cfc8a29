package subscription

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/pkg/errors"

	"github.com/aamritt0/FermiToday-pwa/core"
)

func TestDecodeServerKey(t *testing.T) {
	raw := []byte{0x04, 0xfb, 0xff, 0xfe, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06}
	urlSafe := base64.RawURLEncoding.EncodeToString(raw) // unpadded, -_ alphabet

	tests := []struct {
		name    string
		key     string
		want    []byte
		wantErr error
	}{
		{name: "empty key", key: "", wantErr: core.ErrKeyUnavailable},
		{name: "garbage", key: "!!!not base64!!!", wantErr: core.ErrKeyUnavailable},
		{name: "url-safe unpadded", key: urlSafe, want: raw},
		{name: "already padded", key: base64.URLEncoding.EncodeToString(raw), want: raw},
		{name: "standard alphabet", key: base64.StdEncoding.EncodeToString(raw), want: raw},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeServerKey(tt.key)
			if tt.wantErr != nil {
				if errors.Cause(err) != tt.wantErr {
					t.Errorf("DecodeServerKey() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeServerKey() error = %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("DecodeServerKey() = %x, want %x", got, tt.want)
			}
		})
	}
}
