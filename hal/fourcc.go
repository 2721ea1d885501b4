package hal

import "fmt"

// FourCC is a packed four character code. The HAL uses these for
// property selectors, scopes, class identifiers and status codes.
type FourCC uint32

// FourCCFromString packs a four character string into a FourCC.
func FourCCFromString(s string) (FourCC, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("four character code must have exactly 4 bytes, got %q", s)
	}
	return FourCC(s[0])<<24 | FourCC(s[1])<<16 | FourCC(s[2])<<8 | FourCC(s[3]), nil
}

// MustFourCC is like FourCCFromString but panics on malformed input.
// It is intended for constant-like package level declarations.
func MustFourCC(s string) FourCC {
	f, err := FourCCFromString(s)
	if err != nil {
		panic(err)
	}
	return f
}

// String renders the code as 'abcd' when all four bytes are printable
// ASCII, otherwise as a hex number. This mirrors how the OS itself
// reports status codes in logs.
func (f FourCC) String() string {
	b := [4]byte{byte(f >> 24), byte(f >> 16), byte(f >> 8), byte(f)}
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return fmt.Sprintf("0x%08X", uint32(f))
		}
	}
	return "'" + string(b[:]) + "'"
}
