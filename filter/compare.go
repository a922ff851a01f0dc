package filter

import (
	"fmt"
	"regexp"
	"sync"
)

const maxPatterns = 256

type patternCache struct {
	mutex    sync.Mutex
	patterns map[string]*regexp.Regexp
}

var patterns = patternCache{
	patterns: map[string]*regexp.Regexp{},
}

// compile returns the POSIX extended regular expression for pattern. The cache is dropped
// whenever it fills up.
func (pc *patternCache) compile(pattern string) (*regexp.Regexp, error) {
	pc.mutex.Lock()
	defer pc.mutex.Unlock()

	if re, ok := pc.patterns[pattern]; ok {
		return re, nil
	}
	re, err := regexp.CompilePOSIX(pattern)
	if err != nil {
		return nil, err
	}
	if len(pc.patterns) >= maxPatterns {
		pc.patterns = map[string]*regexp.Regexp{}
	}
	pc.patterns[pattern] = re
	return re, nil
}

// Compare applies op to two values of the same type. For MatchOp and NotMatchOp, r is the
// pattern and both values must be strings.
func Compare(op Op, l, r Value) (bool, error) {
	if l == nil || r == nil {
		return false, fmt.Errorf("filter: %w: %s %s %s", ErrCompare, Format(l), op, Format(r))
	}

	switch op {
	case MatchOp, NotMatchOp:
		ls, ok := l.(StringValue)
		if !ok {
			return false, fmt.Errorf("filter: %w: %v is not a string", ErrCast, l)
		}
		rs, ok := r.(StringValue)
		if !ok {
			return false, fmt.Errorf("filter: %w: %v is not a string", ErrCast, r)
		}
		re, err := patterns.compile(string(rs))
		if err != nil {
			return false, fmt.Errorf("filter: %w: %s: %s", ErrCompare, rs, err)
		}
		return re.MatchString(string(ls)) == (op == MatchOp), nil
	case EqualOp, NotEqualOp, LessThanOp, LessEqualOp, GreaterThanOp, GreaterEqualOp:
		cmp, err := l.Compare(r)
		if err != nil {
			return false, fmt.Errorf("%w: %s", ErrCompare, err)
		}
		switch op {
		case EqualOp:
			return cmp == 0, nil
		case NotEqualOp:
			return cmp != 0, nil
		case LessThanOp:
			return cmp < 0, nil
		case LessEqualOp:
			return cmp <= 0, nil
		case GreaterThanOp:
			return cmp > 0, nil
		default:
			return cmp >= 0, nil
		}
	}
	return false, fmt.Errorf("filter: %w: %s is not a comparison", ErrInvalidTree, op.Name())
}
