package fetcher

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FlexFloat decodes a JSON value that may be a number, a numeric string, an
// empty string or null. The upstream API mixes all of these for the same
// field across records. Unparseable values decode to 0 rather than failing
// the whole payload; a zero modal price already means "no observation" to
// the reconciler.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*f = 0
		return nil
	}

	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexFloat(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*f = 0
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

// Value returns the decoded float
func (f FlexFloat) Value() float64 {
	return float64(f)
}
