package pipeline

import (
	"encoding/base64"
	"time"

	"encimg/internal/classify"
)

func defaultNowMillis() int64 {
	return time.Now().UnixMilli()
}

func base64Encode(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

func base64Decode(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, classify.NewCryptoError("base64-decode", err)
	}
	return b, nil
}
