// File: pkg/combine/binary.go
package combine

import (
	"bytes"
	"errors"
	"io"
	"os"
	"unicode/utf8"
)

// Reason explains a classification verdict.
type Reason string

const (
	ReasonNone          Reason = ""                    // accepted as text
	ReasonEmptyFile     Reason = "zero-length file"    // size is 0
	ReasonNoBytesRead   Reason = "no bytes read"       // probe came back empty
	ReasonNullByte      Reason = "null byte present"   // NUL within the probe
	ReasonLowPrintable  Reason = "low printable ratio" // ratio <= PrintableThreshold
	ReasonDecodeFailure Reason = "invalid UTF-8 sample"
)

// Verdict is the result of classifying a file.
type Verdict struct {
	Text   bool
	Reason Reason
	Ratio  float64 // printable ratio of the sample, when computed
}

// IsText reports whether the file at path looks like text worth including.
// A sample that is not valid UTF-8 is returned as a KindDecode *Error.
func IsText(path string) (bool, error) {
	v, err := Classify(path)
	return v.Text, err
}

// Classify reads at most ProbeSize bytes from path and applies ClassifyProbe.
func Classify(path string) (Verdict, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Verdict{}, err
	}
	if info.Size() == 0 {
		return Verdict{Reason: ReasonEmptyFile}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return Verdict{}, err
	}
	defer file.Close()

	buffer := make([]byte, ProbeSize)
	n, err := io.ReadFull(file, buffer)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return Verdict{}, err
	}

	v := ClassifyProbe(buffer[:n])
	if v.Reason == ReasonDecodeFailure {
		return v, &Error{Kind: KindDecode, Path: path}
	}
	return v, nil
}

// ClassifyProbe classifies the first bytes of a file.
//
// The probe is rejected if it is empty or contains a NUL byte. Otherwise its
// first SampleSize bytes must be valid UTF-8 as they stand, so a rune cut by
// the sample boundary is a ReasonDecodeFailure. Finally the share of ASCII
// graphic and whitespace characters among the sample bytes must be strictly
// above PrintableThreshold.
func ClassifyProbe(probe []byte) Verdict {
	if len(probe) == 0 {
		return Verdict{Reason: ReasonNoBytesRead}
	}
	if bytes.IndexByte(probe, 0) >= 0 {
		return Verdict{Reason: ReasonNullByte}
	}

	sample := probe[:min(len(probe), SampleSize)]
	if !utf8.Valid(sample) {
		return Verdict{Reason: ReasonDecodeFailure}
	}

	printable := 0
	for _, r := range string(sample) {
		if isPrintable(r) {
			printable++
		}
	}

	ratio := float64(printable) / float64(len(sample))
	if ratio > PrintableThreshold {
		return Verdict{Text: true, Ratio: ratio}
	}
	return Verdict{Reason: ReasonLowPrintable, Ratio: ratio}
}

// isPrintable reports whether r is an ASCII graphic or ASCII whitespace character.
func isPrintable(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return r >= 0x21 && r <= 0x7e
}
