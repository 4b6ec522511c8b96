package resolve

import (
	"fmt"
	"sort"
	"strconv"
)

// Param is one caller-supplied parameter.
type Param struct {
	Name  string
	Value any
}

// Params is an ordered parameter bag. Query parameters appear in the resolved
// URL in bag order.
type Params []Param

// FromMap builds a bag from a map with names sorted, so the resulting URL
// does not depend on map iteration order.
func FromMap(m map[string]any) Params {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make(Params, 0, len(names))
	for _, name := range names {
		out = append(out, Param{Name: name, Value: m[name]})
	}
	return out
}

// Set replaces the value of an existing parameter in place or appends a new one.
func (p *Params) Set(name string, value any) {
	for i := range *p {
		if (*p)[i].Name == name {
			(*p)[i].Value = value
			return
		}
	}
	*p = append(*p, Param{Name: name, Value: value})
}

// Get returns the value of the named parameter.
func (p Params) Get(name string) (any, bool) {
	for _, param := range p {
		if param.Name == name {
			return param.Value, true
		}
	}
	return nil, false
}

// Names returns the parameter names in order.
func (p Params) Names() []string {
	out := make([]string, 0, len(p))
	for _, param := range p {
		out = append(out, param.Name)
	}
	return out
}

// String coerces a parameter value to its URL text. Strings pass through,
// bools become "true"/"false", numbers use their shortest decimal form.
func String(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int8:
		return strconv.FormatInt(int64(val), 10)
	case int16:
		return strconv.FormatInt(int64(val), 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint8:
		return strconv.FormatUint(uint64(val), 10)
	case uint16:
		return strconv.FormatUint(uint64(val), 10)
	case uint32:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
