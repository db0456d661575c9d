package merge

import (
	"fmt"
	"strings"
)

// Mode selects which channels of the two inputs end up in the output.
type Mode int

const (
	// ModeRGBAlphaFromR keeps A.rgb and moves B.r into alpha.
	ModeRGBAlphaFromR Mode = iota
	// ModeRGRG packs A.rg followed by B.rg.
	ModeRGRG
	// ModeRARG packs A.r, A.a followed by B.rg.
	ModeRARG
)

// Modes lists every supported mode in declaration order.
var Modes = []Mode{ModeRGBAlphaFromR, ModeRGRG, ModeRARG}

var modeNames = map[Mode]string{
	ModeRGBAlphaFromR: "rgb_r",
	ModeRGRG:          "rg_rg",
	ModeRARG:          "ra_rg",
}

// long names as they appear in pipeline descriptions
var modeAliases = map[string]Mode{
	"a_rgb_b_r_to_alpha": ModeRGBAlphaFromR,
	"a_rg_b_rg":          ModeRGRG,
	"a_ra_b_rg":          ModeRARG,
	"abc1":               ModeRGBAlphaFromR,
	"ab12":               ModeRGRG,
	"ad12":               ModeRARG,
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	_, ok := modeNames[m]
	return ok
}

// ParseMode accepts the short names ("rgb_r", "rg_rg", "ra_rg") and the
// long a_*_b_* names, case-insensitively.
func ParseMode(s string) (Mode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if name == key {
			return m, nil
		}
	}
	if m, ok := modeAliases[key]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("unknown merge mode %q", s)
}

// MarshalText implements encoding.TextMarshaler so modes round-trip
// through YAML job files by name.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid merge mode %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
