package utils

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FlexInt accepts a JSON number or a numeric string. Anything that is not a
// whole number (null, booleans, garbage, fractions) decodes to zero instead
// of failing the whole payload.
type FlexInt int64

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	*f = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	}

	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	if n != math.Trunc(n) || n > math.MaxInt32 || n < math.MinInt32 {
		return nil
	}
	*f = FlexInt(n)
	return nil
}

func (f FlexInt) Int() int64 {
	return int64(f)
}
