// Package wav reads and writes 16-bit PCM WAV files, the container
// format both the sender and the receiver exchange. Reading scans
// subchunks instead of assuming a fixed 44-byte header, and down-mixes
// to mono by channel-averaging when the source file is stereo (or
// more).
package wav

import (
	"encoding/binary"
	"io"

	"aethersteg/internal/linkerr"
)

const bitsPerSample = 16
const audioFormatPCM = 1

// Read decodes a 16-bit PCM WAV stream into normalised float64 samples
// in [-1, 1], down-mixing to mono by averaging channels if necessary,
// and returns the file's native sample rate.
func Read(r io.Reader) (samples []float64, sampleRate int, err error) {
	var riffHeader [12]byte
	if _, err := io.ReadFull(r, riffHeader[:]); err != nil {
		return nil, 0, linkerr.Wrap(linkerr.InputError, err, "reading RIFF header")
	}
	if string(riffHeader[0:4]) != "RIFF" || string(riffHeader[8:12]) != "WAVE" {
		return nil, 0, linkerr.New(linkerr.InputError, "not a RIFF/WAVE file (got %q/%q)", riffHeader[0:4], riffHeader[8:12])
	}

	var channels uint16
	var bits uint16
	var rate uint32
	haveFmt := false
	var data []byte

	for {
		var chunkHeader [8]byte
		if _, err := io.ReadFull(r, chunkHeader[:]); err != nil {
			if err == io.EOF {
				break
			}
			return nil, 0, linkerr.Wrap(linkerr.InputError, err, "reading chunk header")
		}
		id := string(chunkHeader[0:4])
		size := binary.LittleEndian.Uint32(chunkHeader[4:8])

		body := make([]byte, size)
		if _, err := io.ReadFull(r, body); err != nil {
			return nil, 0, linkerr.Wrap(linkerr.InputError, err, "reading %q chunk body", id)
		}
		if size%2 == 1 {
			var pad [1]byte
			io.ReadFull(r, pad[:])
		}

		switch id {
		case "fmt ":
			if len(body) < 16 {
				return nil, 0, linkerr.New(linkerr.InputError, "fmt chunk too short (%d bytes)", len(body))
			}
			audioFormat := binary.LittleEndian.Uint16(body[0:2])
			if audioFormat != audioFormatPCM {
				return nil, 0, linkerr.New(linkerr.InputError, "unsupported WAV audio format %d, want PCM (1)", audioFormat)
			}
			channels = binary.LittleEndian.Uint16(body[2:4])
			rate = binary.LittleEndian.Uint32(body[4:8])
			bits = binary.LittleEndian.Uint16(body[14:16])
			haveFmt = true
		case "data":
			data = body
		}
	}

	if !haveFmt {
		return nil, 0, linkerr.New(linkerr.InputError, "WAV file has no fmt chunk")
	}
	if data == nil {
		return nil, 0, linkerr.New(linkerr.InputError, "WAV file has no data chunk")
	}
	if bits != bitsPerSample {
		return nil, 0, linkerr.New(linkerr.InputError, "unsupported bit depth %d, want %d", bits, bitsPerSample)
	}
	if channels == 0 {
		return nil, 0, linkerr.New(linkerr.InputError, "fmt chunk declares zero channels")
	}

	frameBytes := int(channels) * 2
	nFrames := len(data) / frameBytes
	samples = make([]float64, nFrames)

	for i := 0; i < nFrames; i++ {
		var sum float64
		for c := 0; c < int(channels); c++ {
			off := i*frameBytes + c*2
			v := int16(binary.LittleEndian.Uint16(data[off : off+2]))
			sum += float64(v) / 32768.0
		}
		samples[i] = sum / float64(channels)
	}

	return samples, int(rate), nil
}

// Write encodes mono float64 samples in [-1, 1] as a 16-bit PCM WAV
// file at sampleRate.
func Write(w io.Writer, samples []float64, sampleRate int) error {
	const channels = 1
	dataSize := uint32(len(samples) * 2)
	fileSize := 36 + dataSize

	var header [44]byte
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], fileSize)
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], audioFormatPCM)
	binary.LittleEndian.PutUint16(header[22:24], channels)
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))

	byteRate := sampleRate * channels * (bitsPerSample / 8)
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))

	blockAlign := channels * (bitsPerSample / 8)
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header[:]); err != nil {
		return linkerr.Wrap(linkerr.InternalInconsistency, err, "writing WAV header")
	}

	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		v := quantize(s)
		binary.LittleEndian.PutUint16(buf[i*2:i*2+2], uint16(v))
	}
	if _, err := w.Write(buf); err != nil {
		return linkerr.Wrap(linkerr.InternalInconsistency, err, "writing WAV data")
	}
	return nil
}

func quantize(s float64) int16 {
	if s > 1.0 {
		s = 1.0
	}
	if s < -1.0 {
		s = -1.0
	}
	v := s * 32767.0
	if v >= 0 {
		return int16(v + 0.5)
	}
	return int16(v - 0.5)
}
