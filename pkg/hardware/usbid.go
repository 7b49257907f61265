package hardware

import (
	"fmt"
	"strconv"
	"strings"
)

// USB vendor/product ids are stored and transmitted as decimal
// integers. Vendors publish them in hex, so UIs and import files often
// carry the 0x form; these helpers keep that conversion at the
// presentation boundary instead of inside the validated model.

// FormatUSBID renders an id the way vendors publish it, e.g. "0x04B8".
func FormatUSBID(id uint16) string {
	return fmt.Sprintf("0x%04X", id)
}

// ParseUSBID parses a decimal integer or a 0x-prefixed hex string.
func ParseUSBID(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
		base = 16
	}

	v, err := strconv.ParseUint(s, base, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid usb id %q", s)
	}
	return uint16(v), nil
}
