package filter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	NullString  = "NULL"
	TrueString  = "true"
	FalseString = "false"
)

type DataType int

const (
	NoneType DataType = iota
	BooleanType
	NumberType
	StringType
)

var dataTypes = [...]string{
	NoneType:    "none",
	BooleanType: "boolean",
	NumberType:  "number",
	StringType:  "string",
}

func (dt DataType) String() string {
	if dt < 0 || int(dt) >= len(dataTypes) {
		return fmt.Sprintf("DataType(%d)", int(dt))
	}
	return dataTypes[dt]
}

// ParseDataType accepts the names used in table headers and config files.
func ParseDataType(s string) (DataType, bool) {
	switch strings.ToLower(s) {
	case "", "none":
		return NoneType, true
	case "bool", "boolean":
		return BooleanType, true
	case "number", "num", "float":
		return NumberType, true
	case "string", "str":
		return StringType, true
	}
	return NoneType, false
}

type Value interface {
	fmt.Stringer

	// return -1 if v1 < v2
	// return 0 if v1 == v2
	// return 1 if v1 > v2
	Compare(v2 Value) (int, error)
	DataType() DataType
}

type BoolValue bool

func (b BoolValue) String() string {
	if b {
		return TrueString
	}
	return FalseString
}

func (_ BoolValue) DataType() DataType {
	return BooleanType
}

func (b1 BoolValue) Compare(v2 Value) (int, error) {
	if b2, ok := v2.(BoolValue); ok {
		if b1 == b2 {
			return 0, nil
		} else if b1 {
			return 1, nil
		}
		return -1, nil
	}
	return 0, fmt.Errorf("filter: want boolean got %v", v2)
}

type NumberValue float64

func (n NumberValue) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

func (_ NumberValue) DataType() DataType {
	return NumberType
}

func (n1 NumberValue) Compare(v2 Value) (int, error) {
	if n2, ok := v2.(NumberValue); ok {
		if math.IsNaN(float64(n1)) || math.IsNaN(float64(n2)) {
			return 0, fmt.Errorf("filter: unordered number: %v, %v", n1, n2)
		}
		if n1 < n2 {
			return -1, nil
		} else if n1 > n2 {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("filter: want number got %v", v2)
}

type StringValue string

func (s StringValue) String() string {
	return strconv.Quote(string(s))
}

func (_ StringValue) DataType() DataType {
	return StringType
}

func (s1 StringValue) Compare(v2 Value) (int, error) {
	if s2, ok := v2.(StringValue); ok {
		return strings.Compare(string(s1), string(s2)), nil
	}
	return 0, fmt.Errorf("filter: want string got %v", v2)
}

func Format(v Value) string {
	if v == nil {
		return NullString
	}
	return v.String()
}
