package httpclient

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode"
	"unicode/utf8"
)

// camelizeJSON reescribe las keys snake_case de cualquier objeto a camelCase.
// Los guiones bajos de borde se conservan ("_id" sigue siendo "_id").
// Si ya existe la key camelCase, gana la original.
func camelizeJSON(raw []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return json.Marshal(camelizeValue(v))
}

func camelizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if camelKey(k) == k {
				out[k] = camelizeValue(val)
			}
		}
		for k, val := range t {
			ck := camelKey(k)
			if ck == k {
				continue
			}
			if _, exists := out[ck]; exists {
				continue
			}
			out[ck] = camelizeValue(val)
		}
		return out
	case []any:
		for i := range t {
			t[i] = camelizeValue(t[i])
		}
		return t
	default:
		return v
	}
}

func camelKey(k string) string {
	if !strings.Contains(k, "_") {
		return k
	}

	lead := len(k) - len(strings.TrimLeft(k, "_"))
	trail := len(k) - len(strings.TrimRight(k, "_"))
	if lead+trail >= len(k) {
		return k
	}
	core := k[lead : len(k)-trail]
	if !strings.Contains(core, "_") {
		return k
	}

	var b strings.Builder
	b.WriteString(k[:lead])
	first := true
	for _, part := range strings.Split(core, "_") {
		if part == "" {
			continue
		}
		if first {
			b.WriteString(part)
			first = false
			continue
		}
		r, size := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(part[size:])
	}
	b.WriteString(k[len(k)-trail:])
	return b.String()
}
