package filter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Cast converts v to dt. Casting to NoneType returns v unchanged.
func Cast(dt DataType, v Value) (Value, error) {
	if v == nil {
		return nil, fmt.Errorf("filter: %w: NULL to %s", ErrCast, dt)
	}

	switch dt {
	case NoneType:
		return v, nil
	case BooleanType:
		switch v := v.(type) {
		case BoolValue:
			return v, nil
		case NumberValue:
			return BoolValue(v != 0), nil
		case StringValue:
			s := strings.Trim(string(v), " \t\n")
			switch strings.ToLower(s) {
			case "t", "true", "y", "yes", "on", "1":
				return BoolValue(true), nil
			case "f", "false", "n", "no", "off", "0":
				return BoolValue(false), nil
			}
			return BoolValue(s != ""), nil
		}
	case NumberType:
		switch v := v.(type) {
		case NumberValue:
			return v, nil
		case BoolValue:
			if v {
				return NumberValue(1), nil
			}
			return NumberValue(0), nil
		case StringValue:
			f, err := strconv.ParseFloat(strings.Trim(string(v), " \t\n"), 64)
			if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, fmt.Errorf("filter: %w: %v to number", ErrCast, v)
			}
			return NumberValue(f), nil
		}
	case StringType:
		switch v := v.(type) {
		case StringValue:
			return v, nil
		case BoolValue:
			return StringValue(v.String()), nil
		case NumberValue:
			return StringValue(v.String()), nil
		}
	default:
		panic(fmt.Sprintf("expected a valid data type; got %v", dt))
	}

	return nil, fmt.Errorf("filter: %w: %v to %s", ErrCast, v, dt)
}
