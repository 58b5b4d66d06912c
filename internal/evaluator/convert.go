package evaluator

import (
	"fmt"
	"strconv"
	"strings"
)

// convertTo parses a line of INPUT text into the target slot's declared
// type. INPUT's source text is always a raw line of STRING; this is the
// one place outside the scanner that turns text into a typed value.
func convertTo(typ, line string) (any, error) {
	switch typ {
	case "STRING":
		return line, nil
	case "INTEGER":
		v, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid INTEGER", line)
		}
		return v, nil
	case "REAL":
		v, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid REAL", line)
		}
		return v, nil
	case "BOOLEAN":
		switch strings.ToUpper(strings.TrimSpace(line)) {
		case "TRUE":
			return true, nil
		case "FALSE":
			return false, nil
		}
		return nil, fmt.Errorf("%q is not a valid BOOLEAN", line)
	}
	return nil, fmt.Errorf("cannot INPUT into a %s target", typ)
}
