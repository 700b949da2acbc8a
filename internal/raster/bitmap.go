package raster

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"

	xdraw "golang.org/x/image/draw"
)

const dataURLPrefix = "data:image/png;base64,"

// ExportBitmap encodes the committed surface as a base64 PNG data URL.
// The scratch buffer is never part of the export.
func (c *Compositor) ExportBitmap() (string, error) {
	img := c.Committed()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("could not encode committed surface: %w", err)
	}
	return dataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeBitmap decodes a bitmap from a base64 PNG string, with or without
// the data URL prefix. Raw PNG bytes passed as a string also decode.
func DecodeBitmap(src string) (image.Image, error) {
	trimmed := strings.TrimPrefix(src, dataURLPrefix)
	data, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		// Not base64; try the string bytes directly.
		data = []byte(src)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not decode bitmap: %w", err)
	}
	return img, nil
}

// Placeholder is the 1x1 transparent image substituted when a bitmap
// fails to decode, so a bad load never takes the session down.
func Placeholder() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 1, 1))
}

// scaleInto draws src scaled onto the full destination surface.
func scaleInto(dst *image.RGBA, src image.Image) {
	if src == nil {
		return
	}
	sb := src.Bounds()
	if sb.Dx() == dst.Bounds().Dx() && sb.Dy() == dst.Bounds().Dy() {
		xdraw.Copy(dst, image.Point{}, src, sb, xdraw.Src, nil)
		return
	}
	xdraw.BiLinear.Scale(dst, dst.Bounds(), src, sb, xdraw.Src, nil)
}
