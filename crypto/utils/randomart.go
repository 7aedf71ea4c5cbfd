package utils

import (
	"strings"

	"github.com/carillon-io/carillon-core/crypto"
)

const (
	baseSz = 8
	sizeY  = baseSz + 1
	sizeX  = baseSz*2 + 1
)

const (
	artDict  = " .o+=*BOX@%&#/^SE"
	artLevel = len(artDict) - 2
	artStart = artLevel
	artEnd   = artLevel + 1
)

// walk moves a bishop across the field two bits of digest at a time, the way
// OpenSSH visualises host key fingerprints
func walk(digest []byte) []int {
	field := make([]int, sizeX*sizeY)
	x := sizeX / 2
	y := sizeY / 2

	for _, input := range digest {
		for range 4 {
			if input&0x1 != 0 {
				x++
			} else {
				x--
			}
			if input&0x2 != 0 {
				y++
			} else {
				y--
			}
			x = min(max(x, 0), sizeX-1)
			y = min(max(y, 0), sizeY-1)

			idx := x + y*sizeX
			if field[idx] < artLevel-1 {
				field[idx]++
			}
			input >>= 2
		}
	}

	field[sizeX/2+(sizeY/2)*sizeX] = artStart
	field[x+y*sizeX] = artEnd
	return field
}

func border(out *strings.Builder, label string) {
	out.WriteByte('+')
	if label == "" {
		out.WriteString(strings.Repeat("-", sizeX))
	} else {
		label = "[" + label + "]"
		if len(label) > sizeX {
			label = label[:sizeX-1] + "]"
		}
		left := (sizeX - len(label)) / 2
		out.WriteString(strings.Repeat("-", left))
		out.WriteString(label)
		out.WriteString(strings.Repeat("-", sizeX-len(label)-left))
	}
	out.WriteString("+\n")
}

// FingerprintRandomArt renders digest as a framed ASCII picture with optional head and foot labels
func FingerprintRandomArt(head, foot string, digest []byte) string {
	field := walk(digest)
	var out strings.Builder
	border(&out, head)
	for row := range sizeY {
		out.WriteByte('|')
		for col := range sizeX {
			out.WriteByte(artDict[field[col+row*sizeX]])
		}
		out.WriteString("|\n")
	}
	border(&out, foot)
	return out.String()
}

// PublicKeyRandomArt draws the fingerprint of a public key
func PublicKeyRandomArt(pub crypto.PublicKey) string {
	fp := crypto.Fingerprint(pub)
	return FingerprintRandomArt(strings.ToUpper(pub.Algorithm()), crypto.BLAKE2b_256.String(), fp[:])
}
