package composer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/goliatone/go-widgetkit/internal/classes"
)

var jsIdentifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Literal renders value as a JavaScript expression. Maps are emitted with
// sorted keys so identical input always yields identical text. classes.Raw
// values are emitted verbatim.
func Literal(value any) (string, error) {
	var buf strings.Builder
	if err := writeLiteral(&buf, value); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeLiteral(buf *strings.Builder, value any) error {
	switch v := value.(type) {
	case nil:
		buf.WriteString("null")
		return nil
	case classes.Raw:
		buf.WriteString(string(v))
		return nil
	case classes.Menu:
		return writeLiteral(buf, menuValue(v))
	case []classes.Menu:
		items := make([]any, 0, len(v))
		for _, menu := range v {
			items = append(items, menuValue(menu))
		}
		return writeLiteral(buf, items)
	case string:
		return writeJSON(buf, v)
	case map[string]any:
		return writeObject(buf, v)
	case []any:
		return writeArray(buf, len(v), func(i int) any { return v[i] })
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return writeJSON(buf, value)
		}
		object := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			object[iter.Key().String()] = iter.Value().Interface()
		}
		return writeObject(buf, object)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			buf.WriteString("[]")
			return nil
		}
		return writeArray(buf, rv.Len(), func(i int) any { return rv.Index(i).Interface() })
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			buf.WriteString("null")
			return nil
		}
		return writeLiteral(buf, rv.Elem().Interface())
	}
	return writeJSON(buf, value)
}

func writeObject(buf *strings.Builder, object map[string]any) error {
	keys := make([]string, 0, len(object))
	for key := range object {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	buf.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			buf.WriteString(", ")
		}
		if jsIdentifier.MatchString(key) {
			buf.WriteString(key)
		} else if err := writeJSON(buf, key); err != nil {
			return err
		}
		buf.WriteString(": ")
		if err := writeLiteral(buf, object[key]); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeArray(buf *strings.Builder, n int, at func(int) any) error {
	buf.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteString(", ")
		}
		if err := writeLiteral(buf, at(i)); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

func writeJSON(buf *strings.Builder, value any) error {
	var out bytes.Buffer
	encoder := json.NewEncoder(&out)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("composer: encode %T: %w", value, err)
	}
	buf.Write(bytes.TrimRight(out.Bytes(), "\n"))
	return nil
}

func menuValue(menu classes.Menu) map[string]any {
	out := map[string]any{"name": menu.Name}
	if menu.Text != "" {
		out["text"] = menu.Text
	}
	if len(menu.Items) > 0 {
		out["items"] = menu.Items
	}
	return out
}
