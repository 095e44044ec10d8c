package plist

import (
	"fmt"
	"os"
	"time"

	hplist "howett.net/plist"
)

// Load reads and decodes the property list at path. XML, binary, and
// OpenStep formats are all accepted, as Xcode emits all three.
func Load(path string) (Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Absent, fmt.Errorf("reading plist: %w", err)
	}

	return Parse(data)
}

// Parse decodes raw property list bytes into a Value tree.
func Parse(data []byte) (Value, error) {
	var root any
	if _, err := hplist.Unmarshal(data, &root); err != nil {
		return Absent, fmt.Errorf("decoding plist: %w", err)
	}

	return fromAny(root), nil
}

func fromAny(v any) Value {
	switch t := v.(type) {
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case int64:
		return Number(float64(t))
	case uint64:
		return Number(float64(t))
	case float32:
		return Number(float64(t))
	case float64:
		return Number(t)
	case time.Time:
		return Value{kind: KindDate, date: t}
	case []byte:
		return Value{kind: KindData, data: t}
	case []any:
		arr := make([]Value, 0, len(t))
		for _, item := range t {
			arr = append(arr, fromAny(item))
		}

		return Value{kind: KindArray, arr: arr}
	case map[string]any:
		dict := make(map[string]Value, len(t))
		for k, item := range t {
			dict[k] = fromAny(item)
		}

		return Value{kind: KindDict, dict: dict}
	default:
		return Absent
	}
}
