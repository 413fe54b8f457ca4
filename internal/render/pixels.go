package render

import "image/color"

// fillTrailRGBA converts trail cell data into RGBA pixels in buf, blending
// each pixel between the off and on colors by the cell value so recently
// dead cells fade out instead of vanishing.
func fillTrailRGBA(buf []byte, cells []uint8, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	for i, c := range cells {
		base := i * 4
		t := uint32(c)
		buf[base+0] = uint8(lerp(rOff, rOn, t) >> 8)
		buf[base+1] = uint8(lerp(gOff, gOn, t) >> 8)
		buf[base+2] = uint8(lerp(bOff, bOn, t) >> 8)
		buf[base+3] = uint8(lerp(aOff, aOn, t) >> 8)
	}
}

// lerp blends two 16-bit channel values by t in [0, 255].
func lerp(a, b, t uint32) uint32 {
	return (a*(255-t) + b*t) / 255
}
