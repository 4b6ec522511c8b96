package statsapi

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Text decodes a JSON string or number as its literal text. The Stats API is
// not consistent about quoting figures such as jersey numbers, games back and
// leader values.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}

func (t Text) String() string { return string(t) }

type teamRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type personRef struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
}

type labelValue struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// center pads s to width the way a centered table cell is laid out: odd
// padding goes to the right.
func center(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}

func padRight(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
