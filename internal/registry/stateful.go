package registry

import (
	"strings"

	"github.com/ritamzico/lognorm/internal/value"
)

// charToData/charSepData hold a single stop byte; stringToData holds a
// multi-byte stop string. All three are the stateful, non-literal rows
// of the registry (grounded on liblognorm's char-to/string-to/char-sep
// rows, which are the only non-literal PARSER_ENTRY()s in pdag.c).

type charToData struct{ stop byte }

func constructCharTo(extraData string, _ map[string]any) (any, error) {
	if len(extraData) == 0 {
		return nil, Error{Kind: "InvalidConfig", Message: "char-to requires a single stop character"}
	}
	return &charToData{stop: extraData[0]}, nil
}

func destructCharTo(data any) { _ = data }

// matchCharTo consumes up to (not including) the stop byte. The stop
// byte must actually appear, or the parser fails outright.
func matchCharTo(str string, offs int, data any, wantValue bool) (int, *value.Value, bool) {
	cd := data.(*charToData)
	idx := strings.IndexByte(str[offs:], cd.stop)
	if idx < 0 {
		return 0, nil, false
	}
	if wantValue {
		return idx, value.NewString(str[offs : offs+idx]), true
	}
	return idx, nil, true
}

type stringToData struct{ stop string }

func constructStringTo(extraData string, _ map[string]any) (any, error) {
	if extraData == "" {
		return nil, Error{Kind: "InvalidConfig", Message: "string-to requires a non-empty stop string"}
	}
	return &stringToData{stop: extraData}, nil
}

func destructStringTo(data any) { _ = data }

func matchStringTo(str string, offs int, data any, wantValue bool) (int, *value.Value, bool) {
	sd := data.(*stringToData)
	idx := strings.Index(str[offs:], sd.stop)
	if idx < 0 {
		return 0, nil, false
	}
	if wantValue {
		return idx, value.NewString(str[offs : offs+idx]), true
	}
	return idx, nil, true
}

type charSepData struct{ sep byte }

func constructCharSep(extraData string, _ map[string]any) (any, error) {
	if len(extraData) == 0 {
		return nil, Error{Kind: "InvalidConfig", Message: "char-sep requires a single separator character"}
	}
	return &charSepData{sep: extraData[0]}, nil
}

func destructCharSep(data any) { _ = data }

// matchCharSep is char-to's lenient sibling: it consumes a field up to
// the separator, but if the separator never appears it consumes the
// remainder of the string instead of failing — the behavior a
// "last field in a separated list" rule needs.
func matchCharSep(str string, offs int, data any, wantValue bool) (int, *value.Value, bool) {
	cd := data.(*charSepData)
	rest := str[offs:]
	idx := strings.IndexByte(rest, cd.sep)
	if idx < 0 {
		idx = len(rest)
	}
	if wantValue {
		return idx, value.NewString(rest[:idx]), true
	}
	return idx, nil, true
}
