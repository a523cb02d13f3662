package hagelin

import (
	"fmt"
	"strconv"
	"strings"
)

// ToothType describes when a bar's tooth engages the displacement drum.
type ToothType int

const (
	DisplaceWhenShifted ToothType = iota
	NeverDisplace
	DisplaceWhenNotShifted
)

func (t ToothType) String() string {
	switch t {
	case DisplaceWhenShifted:
		return "DisplaceWhenShifted"
	case NeverDisplace:
		return "NeverDisplace"
	case DisplaceWhenNotShifted:
		return "DisplaceWhenNotShifted"
	}
	return fmt.Sprintf("ToothType(%d)", int(t))
}

// symbol is the one-letter code used inside BarType identifiers.
func (t ToothType) symbol() byte {
	switch t {
	case NeverDisplace:
		return 'n'
	case DisplaceWhenNotShifted:
		return 'i'
	}
	return 'd'
}

// ParseToothType accepts either the full name or the one-letter code.
func ParseToothType(s string) (ToothType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "d", "displacewhenshifted":
		return DisplaceWhenShifted, nil
	case "n", "neverdisplace":
		return NeverDisplace, nil
	case "i", "displacewhennotshifted":
		return DisplaceWhenNotShifted, nil
	}
	return DisplaceWhenShifted, fmt.Errorf("%w: tooth type %q", ErrMalformedAttribute, s)
}

// Cam characters. A cam pattern holds one of these per wheel.
const (
	CamNever         = '0'
	CamDisplaced     = 'A'
	CamNotDisplaced  = 'B'
	CamAlways        = 'C'
	catalogCamLength = 6
)

// BarType is a catalog identifier of a historical bar variant, in the fixed
// form <lug><tooth><cam x6>num<id>, for example "ldB00000num2".
type BarType string

const (
	BarLd000000Num1  BarType = "ld000000num1"
	BarLdB00000Num2  BarType = "ldB00000num2"
	BarLdA00000Num3  BarType = "ldA00000num3"
	BarLdC00000Num4  BarType = "ldC00000num4"
	BarLd0B0000Num5  BarType = "ld0B0000num5"
	BarLd00B000Num6  BarType = "ld00B000num6"
	BarLd000B00Num7  BarType = "ld000B00num7"
	BarLd0000B0Num8  BarType = "ld0000B0num8"
	BarLd00000BNum9  BarType = "ld00000Bnum9"
	BarLdBBBBBBNum10 BarType = "ldBBBBBBnum10"
	BarLdAAAAAANum11 BarType = "ldAAAAAAnum11"
	BarLdCCCCCCNum12 BarType = "ldCCCCCCnum12"
	BarUd000000Num13 BarType = "ud000000num13"
	BarUdB00000Num14 BarType = "udB00000num14"
	BarUdA00000Num15 BarType = "udA00000num15"
	BarUdC00000Num16 BarType = "udC00000num16"
	BarUdCCCCCCNum17 BarType = "udCCCCCCnum17"
	BarUdBBBBBBNum18 BarType = "udBBBBBBnum18"
	BarUdAAAAAANum19 BarType = "udAAAAAAnum19"
	BarLn000000Num20 BarType = "ln000000num20"
	BarLnB00000Num21 BarType = "lnB00000num21"
	BarLnCCCCCCNum22 BarType = "lnCCCCCCnum22"
	BarUn000000Num23 BarType = "un000000num23"
	BarUnCCCCCCNum24 BarType = "unCCCCCCnum24"
	BarLi000000Num25 BarType = "li000000num25"
	BarLiB00000Num26 BarType = "liB00000num26"
	BarLiCCCCCCNum27 BarType = "liCCCCCCnum27"
	BarUi000000Num28 BarType = "ui000000num28"
	BarUiCCCCCCNum29 BarType = "uiCCCCCCnum29"
	BarLdB0B0B0Num30 BarType = "ldB0B0B0num30"
	BarLd0B0B0BNum31 BarType = "ld0B0B0Bnum31"
	BarUdB0B0B0Num32 BarType = "udB0B0B0num32"
)

// BarTypes is the closed catalog, ordered by id.
var BarTypes = []BarType{
	BarLd000000Num1, BarLdB00000Num2, BarLdA00000Num3, BarLdC00000Num4,
	BarLd0B0000Num5, BarLd00B000Num6, BarLd000B00Num7, BarLd0000B0Num8,
	BarLd00000BNum9, BarLdBBBBBBNum10, BarLdAAAAAANum11, BarLdCCCCCCNum12,
	BarUd000000Num13, BarUdB00000Num14, BarUdA00000Num15, BarUdC00000Num16,
	BarUdCCCCCCNum17, BarUdBBBBBBNum18, BarUdAAAAAANum19, BarLn000000Num20,
	BarLnB00000Num21, BarLnCCCCCCNum22, BarUn000000Num23, BarUnCCCCCCNum24,
	BarLi000000Num25, BarLiB00000Num26, BarLiCCCCCCNum27, BarUi000000Num28,
	BarUiCCCCCCNum29, BarLdB0B0B0Num30, BarLd0B0B0BNum31, BarUdB0B0B0Num32,
}

// DecodedBar is the attribute tuple carried by a BarType.
type DecodedBar struct {
	HasLugs    bool
	ToothType  ToothType
	CamPattern string
	CatalogID  int
}

// Decode splits a BarType into its attributes. An unrecognised tooth letter
// leaves prior unchanged; a bad lug flag, cam character or id is malformed.
func Decode(bt BarType, prior ToothType) (DecodedBar, error) {
	s := string(bt)
	if len(s) < 12 || s[8:11] != "num" {
		return DecodedBar{}, fmt.Errorf("%w: bar type %q", ErrMalformedAttribute, s)
	}
	if s[0] != 'l' && s[0] != 'u' {
		return DecodedBar{}, fmt.Errorf("%w: bar type %q has lug flag %q", ErrMalformedAttribute, s, s[0])
	}
	if err := validateCams(s[2:2+catalogCamLength], catalogCamLength); err != nil {
		return DecodedBar{}, err
	}
	id, err := strconv.Atoi(s[11:])
	if err != nil || id < 1 {
		return DecodedBar{}, fmt.Errorf("%w: bar type id %q", ErrMalformedAttribute, s[11:])
	}

	d := DecodedBar{
		HasLugs:    s[0] == 'l',
		ToothType:  prior,
		CamPattern: s[2 : 2+catalogCamLength],
		CatalogID:  id,
	}
	switch s[1] {
	case 'd':
		d.ToothType = DisplaceWhenShifted
	case 'n':
		d.ToothType = NeverDisplace
	case 'i':
		d.ToothType = DisplaceWhenNotShifted
	}
	return d, nil
}

// LookupBarType finds the catalog entry with the given id.
func LookupBarType(id int) (BarType, bool) {
	for _, bt := range BarTypes {
		d, err := Decode(bt, DisplaceWhenShifted)
		if err == nil && d.CatalogID == id {
			return bt, true
		}
	}
	return "", false
}

// Encode returns the id of the first catalog entry whose attributes match,
// comparing only the first wheels cam positions. 0 means no match.
func Encode(hasLugs bool, tooth ToothType, cams string, wheels int) int {
	for _, bt := range BarTypes {
		d, err := Decode(bt, DisplaceWhenShifted)
		if err != nil {
			continue
		}
		if d.HasLugs == hasLugs && d.ToothType == tooth && fitCams(d.CamPattern, wheels) == cams {
			return d.CatalogID
		}
	}
	return 0
}

// Symbol renders attributes in BarType form without the id suffix,
// e.g. "ldB00000".
func Symbol(hasLugs bool, tooth ToothType, cams string) string {
	lug := byte('u')
	if hasLugs {
		lug = 'l'
	}
	return string([]byte{lug, tooth.symbol()}) + cams
}

// fitCams pads with CamNever or truncates so the pattern covers n wheels.
func fitCams(cams string, n int) string {
	if len(cams) >= n {
		return cams[:n]
	}
	return cams + strings.Repeat(string(rune(CamNever)), n-len(cams))
}

func validateCams(cams string, n int) error {
	if len(cams) != n {
		return fmt.Errorf("%w: cam pattern %q has %d positions, want %d", ErrMalformedAttribute, cams, len(cams), n)
	}
	for _, c := range cams {
		switch c {
		case CamNever, CamDisplaced, CamNotDisplaced, CamAlways:
		default:
			return fmt.Errorf("%w: cam pattern %q contains %q", ErrMalformedAttribute, cams, c)
		}
	}
	return nil
}
