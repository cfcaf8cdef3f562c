package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFaceLayout is returned for an unparsable face layout string.
var ErrInvalidFaceLayout = errors.New("invalid face layout")

// FaceLayout names the channel read from each slot of a face tuple, using the
// OBJ record keywords separated by "/". An empty or "-" slot is skipped:
// "v/vt/vn" reads all three, "v//vn" reads position and normal, "v" positions only.
type FaceLayout string

// Slots returns the tuple slot of each channel, or -1 when it is absent.
func (f FaceLayout) Slots() (position, normal, texcoord int, err error) {
	position, normal, texcoord = -1, -1, -1
	if strings.TrimSpace(string(f)) == "" {
		return 0, 0, 0, fmt.Errorf("%w: empty", ErrInvalidFaceLayout)
	}

	for i, name := range strings.Split(string(f), "/") {
		var dst *int
		switch strings.TrimSpace(name) {
		case "", "-":
			continue
		case "v":
			dst = &position
		case "vn":
			dst = &normal
		case "vt":
			dst = &texcoord
		default:
			return 0, 0, 0, fmt.Errorf("%w: unknown channel %q in %q", ErrInvalidFaceLayout, name, f)
		}
		if *dst >= 0 {
			return 0, 0, 0, fmt.Errorf("%w: %q listed twice in %q", ErrInvalidFaceLayout, name, f)
		}
		*dst = i
	}

	if position < 0 {
		return 0, 0, 0, fmt.Errorf("%w: %q has no position slot", ErrInvalidFaceLayout, f)
	}
	return position, normal, texcoord, nil
}
