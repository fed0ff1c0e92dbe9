package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// offerList is a repeatable --offer flag. Each value may hold several
// comma-separated amounts; a leading "$" is ignored.
type offerList []float64

var _ pflag.Value = (*offerList)(nil)

func (o *offerList) String() string {
	parts := make([]string, len(*o))
	for i, v := range *o {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func (o *offerList) Set(raw string) error {
	for _, part := range strings.Split(raw, ",") {
		v, err := parseAmount(part)
		if err != nil {
			return err
		}
		*o = append(*o, v)
	}
	return nil
}

func (o *offerList) Type() string { return "amounts" }

func parseAmount(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", strings.TrimSpace(raw))
	}
	if v < 0 {
		return 0, fmt.Errorf("amount %q must not be negative", strings.TrimSpace(raw))
	}
	return v, nil
}
