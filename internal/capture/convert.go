package capture

import "fmt"

// ConvertFrame converts one raw device frame in src into the canonical
// 32-bit layout in dst, dispatching on the format's encoding. dst must hold
// exactly Width*Height*4 bytes; the output is tightly packed with a zero
// padding byte per pixel.
func ConvertFrame(dst, src []byte, f Format) error {
	switch f.Encoding {
	case EncodingRGB32:
		convertRGB32(dst, src, f.Height, f.Stride)
	case EncodingRGB24:
		convertRGB24(dst, src, f.Width, f.Height, f.Stride)
	case EncodingYUY2:
		convertYUY2(dst, src, f.Width, f.Height, f.Stride)
	case EncodingNV12:
		convertNV12(dst, src, f.Width, f.Height, f.Stride)
	default:
		return NewError(ErrCodeUnsupportedEncoding,
			fmt.Sprintf("cannot convert encoding %q", f.Encoding), nil)
	}
	return nil
}

// convertRGB32 copies the frame through unchanged; the source already uses
// the canonical channel order at 4 bytes per pixel.
func convertRGB32(dst, src []byte, height, stride int) {
	n := stride * height
	if n > len(src) {
		n = len(src)
	}
	copy(dst, src[:n])
}

// convertRGB24 widens 3-byte pixels to 4 bytes, appending a zero padding
// byte to each.
func convertRGB24(dst, src []byte, width, height, stride int) {
	for y := 0; y < height; y++ {
		in := src[y*stride:]
		out := dst[y*width*4:]
		for x := 0; x < width; x++ {
			out[x*4+0] = in[x*3+0]
			out[x*4+1] = in[x*3+1]
			out[x*4+2] = in[x*3+2]
			out[x*4+3] = 0
		}
	}
}

// convertYUY2 expands 4-byte YUY2 macropixels into pairs of canonical
// pixels using integer BT.601 coefficients. Each macropixel carries two
// luma samples and one shared chroma pair.
func convertYUY2(dst, src []byte, width, height, stride int) {
	for y := 0; y < height; y++ {
		in := src[y*stride:]
		out := dst[y*width*4:]
		for x := 0; x < width/2; x++ {
			y0 := int(in[x*4+0])
			u := int(in[x*4+1])
			y1 := int(in[x*4+2])
			v := int(in[x*4+3])

			c := y0 - 16
			d := u - 128
			e := v - 128

			out[x*8+0] = clip8((298*c + 516*d + 128) >> 8)
			out[x*8+1] = clip8((298*c - 100*d - 208*e + 128) >> 8)
			out[x*8+2] = clip8((298*c + 409*e + 128) >> 8)
			out[x*8+3] = 0

			c = y1 - 16

			out[x*8+4] = clip8((298*c + 516*d + 128) >> 8)
			out[x*8+5] = clip8((298*c - 100*d - 208*e + 128) >> 8)
			out[x*8+6] = clip8((298*c + 409*e + 128) >> 8)
			out[x*8+7] = 0
		}
	}
}

// convertNV12 converts a full-resolution luma plane followed by a
// half-resolution interleaved UV plane, using floating-point BT.601
// coefficients. Chroma rows are addressed with the luma stride; devices
// this was written against lay the UV plane out that way.
func convertNV12(dst, src []byte, width, height, stride int) {
	luma := src
	chroma := src[stride*height:]
	for y := 0; y < height; y++ {
		inY := luma[y*stride:]
		inUV := chroma[(y/2)*stride:]
		out := dst[y*width*4:]
		for x := 0; x < width; x++ {
			yv := float64(inY[x])
			u := float64(inUV[(x/2)*2+0]) - 128
			v := float64(inUV[(x/2)*2+1]) - 128

			r := yv + 1.402*v
			g := yv - 0.34414*u - 0.71414*v
			b := yv + 1.772*u

			out[x*4+0] = clipf(b)
			out[x*4+1] = clipf(g)
			out[x*4+2] = clipf(r)
			out[x*4+3] = 0
		}
	}
}

// clip8 clamps v to the 0..255 range.
func clip8(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

// clipf truncates v toward zero and clamps it to the 0..255 range.
func clipf(v float64) byte {
	return clip8(int(v))
}
