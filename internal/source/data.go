package source

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/wecco-dev/wecco/internal/errors"
)

// Format is a data document encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// FormatOf infers the format from a file extension. Unknown extensions
// are treated as JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".msgpack", ".mpk", ".mp":
		return FormatMsgpack
	default:
		return FormatJSON
	}
}

// ReadData loads the data document at path.
func ReadData(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("W012").WithDetail(err.Error()).Wrap(err)
	}
	data, err := DecodeData(raw, FormatOf(path))
	if err != nil {
		return nil, errors.New("W012").
			WithDetailf("cannot decode %s: %v", filepath.Base(path), err).
			Wrap(err)
	}
	return data, nil
}

// DecodeData decodes a data document. The top level must be a map.
func DecodeData(raw []byte, format Format) (map[string]any, error) {
	data := make(map[string]any)
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(raw, &data)
	case FormatMsgpack:
		err = msgpack.Unmarshal(raw, &data)
	default:
		err = json.Unmarshal(raw, &data)
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// EncodeData encodes a data document.
func EncodeData(data map[string]any, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(data)
	case FormatMsgpack:
		return msgpack.Marshal(data)
	default:
		return json.MarshalIndent(data, "", "  ")
	}
}

// Lookup resolves a dotted path in data. Map segments select keys, numeric
// segments index lists.
func Lookup(data any, path string) (any, bool) {
	cur := data
	for _, seg := range strings.Split(path, ".") {
		switch v := cur.(type) {
		case map[string]any:
			next, ok := v[seg]
			if !ok {
				return nil, false
			}
			cur = next
		case map[any]any:
			next, ok := v[seg]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(v) {
				return nil, false
			}
			cur = v[i]
		default:
			return nil, false
		}
	}
	return cur, true
}
