package thumbnail

import (
	"fmt"
	"image"
	"math"
	"sort"
	"strings"
)

const (
	keyWatermark       = "watermark"
	keyWatermarkOffset = "watermark_offset"
	keyFormat          = "format"
)

var ruleKeys = []RuleKind{KindWidth, KindHeight, KindShorter, KindLonger, KindFit, KindSquare}

var outputFormats = map[string]string{
	"jpeg": "jpeg",
	"jpg":  "jpeg",
	"png":  "png",
	"gif":  "gif",
	"bmp":  "bmp",
	"tiff": "tiff",
	"tif":  "tiff",
}

// ParseSpecs normalises loosely typed thumbnail definitions, keyed by name, into
// specs sorted by name. The first malformed definition aborts parsing.
func ParseSpecs(raw map[string]map[string]any) ([]ThumbnailSpec, error) {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	specs := make([]ThumbnailSpec, 0, len(names))
	for _, name := range names {
		spec, err := ParseSpec(name, raw[name])
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// ParseSpec builds one spec from a definition such as
//
//	{"fit": [400, 300, true], "watermark": 9, "watermark_offset": [10, 10]}
//
// The rule is the first of width, height, shorter, longer, fit and square that
// is present with a usable shape. An array of the wrong length is passed over in
// favour of the next key; if no key qualifies the arity error is reported.
func ParseSpec(name string, raw map[string]any) (ThumbnailSpec, error) {
	spec := ThumbnailSpec{Name: name}

	if strings.TrimSpace(name) == "" {
		return spec, configError(name, "name is empty")
	}

	kind, err := selectRule(name, raw)
	if err != nil {
		return spec, err
	}

	rule, err := parseRule(name, kind, raw[string(kind)])
	if err != nil {
		return spec, err
	}
	spec.Rule = rule

	for key, value := range raw {
		if isRuleKey(key) {
			continue
		}

		switch key {
		case keyWatermark:
			n, ok := toInt(value)
			if !ok || !Anchor(n).Valid() {
				return spec, configError(name, "watermark anchor must be an integer between 1 and 9, got %v", value)
			}
			spec.Watermark = Anchor(n)
		case keyWatermarkOffset:
			xy, err := ints(name, key, value, 2)
			if err != nil {
				return spec, err
			}
			if xy[0] < 0 || xy[1] < 0 {
				return spec, configError(name, "watermark offset must not be negative, got %v", value)
			}
			spec.WatermarkOffset = image.Pt(xy[0], xy[1])
		case keyFormat:
			s, _ := value.(string)
			format, ok := outputFormats[strings.ToLower(s)]
			if !ok {
				return spec, configError(name, "unknown output format %v", value)
			}
			spec.Format = format
		default:
			return spec, configError(name, "unknown key %q", key)
		}
	}

	return spec, nil
}

func selectRule(name string, raw map[string]any) (RuleKind, error) {
	var arityErr error
	for _, kind := range ruleKeys {
		value, ok := raw[string(kind)]
		if !ok || value == nil {
			continue
		}
		minLen, maxLen := ruleArity(kind)
		if minLen == 0 {
			return kind, nil
		}
		if list, ok := value.([]any); ok && len(list) >= minLen && len(list) <= maxLen {
			return kind, nil
		}
		if arityErr == nil {
			arityErr = configError(name, "%s expects %s, got %v", kind, arity(minLen, maxLen), value)
		}
	}

	if arityErr != nil {
		return "", arityErr
	}
	return "", configError(name, "no layout rule, expected one of width, height, shorter, longer, fit, square")
}

// ruleArity is the accepted array length of a rule value; zero means a scalar.
func ruleArity(kind RuleKind) (minLen, maxLen int) {
	switch kind {
	case KindShorter, KindLonger:
		return 2, 2
	case KindFit:
		return 2, 3
	case KindSquare:
		return 1, 2
	}
	return 0, 0
}

func isRuleKey(key string) bool {
	for _, kind := range ruleKeys {
		if string(kind) == key {
			return true
		}
	}
	return false
}

func parseRule(name string, kind RuleKind, value any) (LayoutRule, error) {
	switch kind {
	case KindWidth, KindHeight:
		n, ok := toInt(value)
		if !ok || n <= 0 {
			return nil, configError(name, "%s must be a positive integer, got %v", kind, value)
		}
		if kind == KindWidth {
			return ByWidthRule{Width: n}, nil
		}
		return ByHeightRule{Height: n}, nil

	case KindShorter, KindLonger:
		wh, err := sizes(name, string(kind), value, 2, 2)
		if err != nil {
			return nil, err
		}
		if kind == KindShorter {
			return ByShorterSideRule{Width: wh[0], Height: wh[1]}, nil
		}
		return ByLongerSideRule{Width: wh[0], Height: wh[1]}, nil

	case KindFit:
		wh, err := sizes(name, string(kind), value, 2, 3)
		if err != nil {
			return nil, err
		}
		keep, err := keepAspect(name, kind, value, 2)
		if err != nil {
			return nil, err
		}
		return FitRule{Width: wh[0], Height: wh[1], KeepAspect: keep}, nil

	case KindSquare:
		side, err := sizes(name, string(kind), value, 1, 2)
		if err != nil {
			return nil, err
		}
		keep, err := keepAspect(name, kind, value, 1)
		if err != nil {
			return nil, err
		}
		return SquareRule{Side: side[0], KeepAspect: keep}, nil
	}

	return nil, configError(name, "unknown layout rule %q", kind)
}

// sizes reads the leading positive integers of an array value whose length is
// between minLen and maxLen. The first minLen elements are returned.
func sizes(name, key string, value any, minLen, maxLen int) ([]int, error) {
	list, ok := value.([]any)
	if !ok || len(list) < minLen || len(list) > maxLen {
		return nil, configError(name, "%s expects %s, got %v", key, arity(minLen, maxLen), value)
	}

	out := make([]int, minLen)
	for i := range out {
		n, ok := toInt(list[i])
		if !ok || n <= 0 {
			return nil, configError(name, "%s[%d] must be a positive integer, got %v", key, i, list[i])
		}
		out[i] = n
	}
	return out, nil
}

func ints(name, key string, value any, n int) ([]int, error) {
	list, ok := value.([]any)
	if !ok || len(list) != n {
		return nil, configError(name, "%s expects %s, got %v", key, arity(n, n), value)
	}

	out := make([]int, n)
	for i, v := range list {
		x, ok := toInt(v)
		if !ok {
			return nil, configError(name, "%s[%d] must be an integer, got %v", key, i, v)
		}
		out[i] = x
	}
	return out, nil
}

func keepAspect(name string, kind RuleKind, value any, index int) (bool, error) {
	list := value.([]any)
	if len(list) <= index {
		return false, nil
	}
	switch v := list[index].(type) {
	case bool:
		return v, nil
	default:
		n, ok := toInt(v)
		if ok && (n == 0 || n == 1) {
			return n == 1, nil
		}
	}
	return false, configError(name, "%s[%d] must be a boolean, got %v", kind, index, list[index])
}

func arity(minLen, maxLen int) string {
	if minLen == maxLen {
		return fmt.Sprintf("%d values", minLen)
	}
	return fmt.Sprintf("%d or %d values", minLen, maxLen)
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	}
	return 0, false
}

func floatToInt(f float64) (int, bool) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return int(f), true
}
