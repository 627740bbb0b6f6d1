package acesrender

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

const exrZipBlockLines = 16

// Channels are written in alphabetical order as OpenEXR requires.
var exrWriteChannels = [4]struct {
	name string
	off  int // channel offset within an RGBA pixel
}{
	{name: "A", off: 3},
	{name: "B", off: 2},
	{name: "G", off: 1},
	{name: "R", off: 0},
}

// WriteEXRFile stores a scene-linear image as an OpenEXR file.
func WriteEXRFile(path string, img *SceneImage) error {
	data, err := EncodeEXR(img)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Clean(path), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// EncodeEXR serializes a scene-linear image as a scanline OpenEXR image
// with half-float A/B/G/R channels and ZIP compression (16-line blocks,
// byte reorder plus delta predictor, zlib).
func EncodeEXR(img *SceneImage) ([]byte, error) {
	if img == nil || img.W <= 0 || img.H <= 0 {
		return nil, errors.New("invalid image dimensions")
	}
	if len(img.Pix) != img.W*img.H*4 {
		return nil, fmt.Errorf("pixel buffer length %d does not match %dx%d", len(img.Pix), img.W, img.H)
	}

	var buf bytes.Buffer
	var u32 [4]byte
	binary.LittleEndian.PutUint32(u32[:], exrMagic)
	buf.Write(u32[:])
	binary.LittleEndian.PutUint32(u32[:], 2) // version 2, scanline
	buf.Write(u32[:])

	writeEXRAttr(&buf, "channels", "chlist", exrChannelListPayload())
	writeEXRAttr(&buf, "compression", "compression", []byte{exrCompressionZip})
	window := exrBox2i(img.W, img.H)
	writeEXRAttr(&buf, "dataWindow", "box2i", window)
	writeEXRAttr(&buf, "displayWindow", "box2i", window)
	writeEXRAttr(&buf, "lineOrder", "lineOrder", []byte{0}) // increasing Y
	writeEXRAttr(&buf, "pixelAspectRatio", "float", exrFloatPayload(1))
	writeEXRAttr(&buf, "screenWindowCenter", "v2f", append(exrFloatPayload(0), exrFloatPayload(0)...))
	writeEXRAttr(&buf, "screenWindowWidth", "float", exrFloatPayload(1))
	buf.WriteByte(0) // end of header

	blockCount := (img.H + exrZipBlockLines - 1) / exrZipBlockLines
	blocks := make([][]byte, blockCount)
	for b := 0; b < blockCount; b++ {
		startY := b * exrZipBlockLines
		lines := exrZipBlockLines
		if startY+lines > img.H {
			lines = img.H - startY
		}
		packed, err := exrCompressBlock(exrEncodeBlock(img, startY, lines))
		if err != nil {
			return nil, err
		}
		blocks[b] = packed
	}

	// The offset table points at the start of each block, counted from
	// the beginning of the file.
	offset := uint64(buf.Len() + 8*blockCount)
	var u64 [8]byte
	for b := 0; b < blockCount; b++ {
		binary.LittleEndian.PutUint64(u64[:], offset)
		buf.Write(u64[:])
		offset += uint64(8 + len(blocks[b]))
	}

	for b := 0; b < blockCount; b++ {
		binary.LittleEndian.PutUint32(u32[:], uint32(b*exrZipBlockLines))
		buf.Write(u32[:])
		binary.LittleEndian.PutUint32(u32[:], uint32(len(blocks[b])))
		buf.Write(u32[:])
		buf.Write(blocks[b])
	}

	return buf.Bytes(), nil
}

func writeEXRAttr(buf *bytes.Buffer, name, typ string, payload []byte) {
	buf.WriteString(name)
	buf.WriteByte(0)
	buf.WriteString(typ)
	buf.WriteByte(0)
	var size [4]byte
	binary.LittleEndian.PutUint32(size[:], uint32(len(payload)))
	buf.Write(size[:])
	buf.Write(payload)
}

func exrChannelListPayload() []byte {
	var buf bytes.Buffer
	var i32 [4]byte
	for _, ch := range exrWriteChannels {
		buf.WriteString(ch.name)
		buf.WriteByte(0)
		binary.LittleEndian.PutUint32(i32[:], exrPixelHalf)
		buf.Write(i32[:])
		buf.Write([]byte{0, 0, 0, 0}) // pLinear + reserved
		binary.LittleEndian.PutUint32(i32[:], 1)
		buf.Write(i32[:]) // xSampling
		binary.LittleEndian.PutUint32(i32[:], 1)
		buf.Write(i32[:]) // ySampling
	}
	buf.WriteByte(0)
	return buf.Bytes()
}

func exrBox2i(w, h int) []byte {
	payload := make([]byte, 16)
	binary.LittleEndian.PutUint32(payload[8:12], uint32(w-1))
	binary.LittleEndian.PutUint32(payload[12:16], uint32(h-1))
	return payload
}

func exrFloatPayload(v float32) []byte {
	payload := make([]byte, 4)
	binary.LittleEndian.PutUint32(payload, math.Float32bits(v))
	return payload
}

// exrEncodeBlock packs scanlines as half floats, one channel at a time
// per line, in the layout exrDecodeBlock expects back.
func exrEncodeBlock(img *SceneImage, startY, lines int) []byte {
	out := make([]byte, lines*img.W*len(exrWriteChannels)*2)
	pos := 0
	for row := 0; row < lines; row++ {
		y := startY + row
		for _, ch := range exrWriteChannels {
			base := (y*img.W)*4 + ch.off
			for x := 0; x < img.W; x++ {
				h := float32ToHalf(img.Pix[base+x*4])
				binary.LittleEndian.PutUint16(out[pos:pos+2], h)
				pos += 2
			}
		}
	}
	return out
}

func exrCompressBlock(raw []byte) ([]byte, error) {
	shuffled := shuffleBytes(raw)
	applyPredictor(shuffled)
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(shuffled); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func shuffleBytes(data []byte) []byte {
	n := len(data) / 2
	out := make([]byte, len(data))
	for i := 0; i < n; i++ {
		out[i] = data[2*i]
		out[i+n] = data[2*i+1]
	}
	return out
}

func applyPredictor(data []byte) {
	if len(data) == 0 {
		return
	}
	prev := data[0]
	for i := 1; i < len(data); i++ {
		cur := data[i]
		data[i] = byte(int(cur) - int(prev) + 128)
		prev = cur
	}
}

func float32ToHalf(f float32) uint16 {
	bits := math.Float32bits(f)
	sign := uint16((bits >> 16) & 0x8000)
	exp := int32((bits>>23)&0xFF) - 127 + 15
	mant := bits & 0x7FFFFF

	if exp >= 31 {
		// Overflow and infinity collapse to infinity; NaN keeps a payload.
		if bits&0x7FFFFFFF > 0x7F800000 {
			return sign | 0x7C00 | 0x0200
		}
		return sign | 0x7C00
	}
	if exp <= 0 {
		if exp < -10 {
			return sign
		}
		mant |= 0x800000
		shift := uint32(14 - exp)
		half := uint16(mant >> shift)
		if mant>>(shift-1)&1 != 0 {
			half++
		}
		return sign | half
	}
	half := sign | uint16(exp)<<10 | uint16(mant>>13)
	if mant&0x1000 != 0 {
		// Round to nearest; a mantissa carry correctly bumps the exponent.
		half++
	}
	return half
}
