package input

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fxamacker/cbor/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"engulf/internal/errors"
)

// Format names a document syntax.
type Format string

const (
	FormatAuto  Format = "auto"
	FormatCBOR  Format = "cbor"
	FormatJSON  Format = "json"
	FormatJSONC Format = "jsonc"
	FormatTOML  Format = "toml"
	FormatYAML  Format = "yaml"
)

var errTrailingData = stderrors.New("trailing data after JSON value")

// ParseFormat validates a format name. The empty string means FormatAuto.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatAuto, nil
	case FormatAuto, FormatCBOR, FormatJSON, FormatJSONC, FormatTOML, FormatYAML:
		return f, nil
	default:
		return "", errors.Wrap(errors.UnsupportedFormat,
			fmt.Sprintf("unknown input format %q (want auto, cbor, json, jsonc, toml or yaml)", s), nil)
	}
}

// DetectFormat guesses the syntax from the file extension, ignoring a
// trailing compression suffix. Unknown extensions and stdin are JSON.
func DetectFormat(path string) Format {
	name := strings.ToLower(path)
	for _, suffix := range []string{".gz", ".zst", ".zstd", ".lz4"} {
		name = strings.TrimSuffix(name, suffix)
	}
	switch filepath.Ext(name) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".jsonc", ".json5":
		return FormatJSONC
	case ".toml":
		return FormatTOML
	case ".cbor":
		return FormatCBOR
	default:
		return FormatJSON
	}
}

// Decode reads exactly one document from r.
func Decode(r io.Reader, format Format) (any, error) {
	var (
		v   any
		err error
	)
	switch format {
	case FormatJSON, FormatAuto, "":
		v, err = parseJSON(r)
	case FormatJSONC:
		var data []byte
		data, err = io.ReadAll(r)
		if err != nil {
			return nil, errors.Wrap(errors.IOError, "cannot read input", err)
		}
		v, err = parseJSON(bytes.NewReader(jsonc.ToJSON(data)))
	case FormatTOML:
		v, err = parseTOML(r)
	case FormatCBOR:
		v, err = parseCBOR(r)
	case FormatYAML:
		v, err = parseYAML(r)
	default:
		return nil, errors.Wrap(errors.UnsupportedFormat, fmt.Sprintf("unknown input format %q", format), nil)
	}
	if err != nil {
		return nil, errors.Wrap(errors.InvalidInput, fmt.Sprintf("invalid %s document", format), err)
	}
	return v, nil
}

// ParseEmbedded reports whether s holds one complete JSON document and
// returns its tree. Strings whose first significant byte cannot start a JSON
// value are rejected without running the decoder.
func ParseEmbedded(s string) (any, bool) {
	if !mayStartValue(s) {
		return nil, false
	}
	v, err := parseJSON(strings.NewReader(s))
	if err != nil {
		return nil, false
	}
	return v, true
}

func mayStartValue(s string) bool {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case ' ', '\t', '\n', '\r':
			continue
		case '{', '[', '"', 't', 'f', 'n', '-':
			return true
		default:
			return c >= '0' && c <= '9'
		}
	}
	return false
}

func parseJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			return nil, errTrailingData
		}
		return nil, err
	}
	return v, nil
}

func parseYAML(r io.Reader) (any, error) {
	var v any
	if err := yaml.NewDecoder(r).Decode(&v); err != nil {
		if err == io.EOF {
			return nil, stderrors.New("empty document")
		}
		return nil, err
	}
	return normalize(v)
}

// parseTOML decodes a TOML document. The root is always a table.
func parseTOML(r io.Reader) (any, error) {
	var v map[string]any
	if _, err := toml.NewDecoder(r).Decode(&v); err != nil {
		return nil, err
	}
	return normalize(v)
}

// cborDecMode keeps the default map[any]any so documents with integer keys
// decode; normalize stringifies the keys.
var cborDecMode cbor.DecMode

func init() {
	var err error
	cborDecMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("input: cbor decoder initialization failed: " + err.Error())
	}
}

// parseCBOR decodes exactly one CBOR data item.
func parseCBOR(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, stderrors.New("empty document")
	}
	var v any
	if err := cborDecMode.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return normalize(v)
}

// normalize rewrites a yaml.v3, TOML or CBOR tree into the JSON tree shape.
// Byte strings become base64 text, as encoding/json would write them.
func normalize(v any) (any, error) {
	switch val := v.(type) {
	case nil, bool, string:
		return val, nil
	case int:
		return json.Number(strconv.Itoa(val)), nil
	case int64:
		return json.Number(strconv.FormatInt(val, 10)), nil
	case uint64:
		return json.Number(strconv.FormatUint(val, 10)), nil
	case float64:
		if math.IsInf(val, 0) || math.IsNaN(val) {
			return nil, fmt.Errorf("non-finite number %v has no JSON form", val)
		}
		return json.Number(strconv.FormatFloat(val, 'g', -1, 64)), nil
	case time.Time:
		return val.Format(time.RFC3339Nano), nil
	case []byte:
		return base64.StdEncoding.EncodeToString(val), nil
	case big.Int:
		return json.Number(val.String()), nil
	case *big.Int:
		return json.Number(val.String()), nil
	case cbor.Tag:
		return normalize(val.Content)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			n, err := normalize(item)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case []map[string]any:
		out := make([]any, len(val))
		for i, item := range val {
			n, err := normalize(item)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			n, err := normalize(item)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			n, err := normalize(item)
			if err != nil {
				return nil, err
			}
			out[fmt.Sprint(k)] = n
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported YAML value of type %T", v)
	}
}
