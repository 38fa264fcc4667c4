package portabletext

import (
	"errors"
	"fmt"
)

// ErrUnknownStyle is returned for style names outside the closed set.
var ErrUnknownStyle = errors.New("unknown style")

// Style identifies the semantic role of a block and keys the renderer table.
type Style int

const (
	StyleH1 Style = iota
	StyleH2
	StyleH3
	StyleH4
	StyleH5
	StyleH6
	StyleNormal
	StyleBlockquote
)

// styleNames holds the wire names, indexed by Style.
var styleNames = [...]string{
	StyleH1:         "h1",
	StyleH2:         "h2",
	StyleH3:         "h3",
	StyleH4:         "h4",
	StyleH5:         "h5",
	StyleH6:         "h6",
	StyleNormal:     "normal",
	StyleBlockquote: "blockquote",
}

// Styles returns every style in declaration order.
func Styles() []Style {
	styles := make([]Style, len(styleNames))
	for i := range styleNames {
		styles[i] = Style(i)
	}
	return styles
}

// String returns the wire name of the style.
func (s Style) String() string {
	if !s.valid() {
		return fmt.Sprintf("Style(%d)", int(s))
	}
	return styleNames[s]
}

func (s Style) valid() bool {
	return s >= 0 && int(s) < len(styleNames)
}

// ParseStyle converts a wire name into a Style.
// Unknown names are rejected rather than coerced to a default.
func ParseStyle(name string) (Style, error) {
	for i, n := range styleNames {
		if n == name {
			return Style(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownStyle, name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Style) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("%w %d", ErrUnknownStyle, int(s))
	}
	return []byte(styleNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Style) UnmarshalText(text []byte) error {
	parsed, err := ParseStyle(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
