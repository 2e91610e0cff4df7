package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Fingerprint derives a deterministic cache key for an operation and its
// parameters. Only primitive scalars (strings, bools, numbers, nil) take part;
// other values are dropped. Keys are sorted, so insertion order never matters.
func Fingerprint(operation string, params map[string]any) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if isPrimitive(v) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(operation)
	b.WriteString("_{")
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, _ := json.Marshal(k)
		b.Write(kb)
		b.WriteByte(':')
		b.WriteString(encodeScalar(params[k]))
	}
	b.WriteByte('}')

	sum := md5.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func isPrimitive(v any) bool {
	switch v.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

func encodeScalar(v any) string {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return strconv.Quote(strconv.FormatFloat(x, 'g', -1, 64))
		}
	case float32:
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return strconv.Quote(strconv.FormatFloat(f, 'g', -1, 32))
		}
	}
	out, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(out)
}
