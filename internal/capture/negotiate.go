package capture

// ListFormats returns the image formats of the given device that the
// converter can consume. The device ordinal is zero-based; out-of-range
// ordinals and activation failures yield an empty list, never an error.
//
// Native format indices are walked from zero until the device reports the
// end of the list or a format cannot be inspected; either condition stops
// the walk. Compressed formats, variable-size formats, and unrecognized
// pixel tags are skipped without stopping. Each returned Format keeps the
// device's native index, which is the value Session.Open expects.
func ListFormats(b Backend, device int) []Format {
	dev, err := activateByOrdinal(b, device)
	if err != nil {
		return []Format{}
	}
	defer dev.Close()

	formats := []Format{}
	for index := 0; ; index++ {
		nf, err := dev.NativeFormat(index)
		if err != nil {
			break
		}
		if !nf.Supported() {
			continue
		}
		formats = append(formats, formatFromNative(index, nf))
	}
	return formats
}

// formatFromNative builds a Format from raw native attributes, preserving
// the native index.
func formatFromNative(index int, nf NativeFormat) Format {
	return Format{
		Index:     index,
		Width:     nf.Width,
		Height:    nf.Height,
		Stride:    nf.Stride,
		FrameSize: nf.SampleSize,
		Encoding:  encodingFromFourCC(nf.Pixel),
	}
}
