package hostapi

import (
	"strconv"
	"strings"
)

// ParseLine reads a console line such as "setYawPitch 0.5 -0.2" into a
// call. Arguments are numbers, true/false or bare words. Empty lines yield
// ok == false.
func ParseLine(line string) (c Call, ok bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Call{}, false, nil
	}
	values := make([]interface{}, 0, len(fields)-1)
	for _, f := range fields[1:] {
		values = append(values, parseValue(f))
	}
	c, err = Positional(fields[0], values...)
	if err != nil {
		return Call{}, false, err
	}
	return c, true, nil
}

func parseValue(s string) interface{} {
	switch s {
	case "true", "false":
		return s == "true"
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
