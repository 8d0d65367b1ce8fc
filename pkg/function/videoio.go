package function

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// IOType is the transport of a video stream.
type IOType int

const (
	IOTypeUnknown IOType = iota
	IOTypeRTMP
)

var (
	digitalFormatPattern = regexp.MustCompile(`(?i)^\d{3,4}[ip]\d{2,3}$`)
	analogFormatPattern  = regexp.MustCompile(`(?i)^(pal|ntsc)$`)
	anyPattern           = regexp.MustCompile(`(?i)^any$`)
	aspectRatioPattern   = regexp.MustCompile(`^\d+(\.\d+)?(:\d+)?$`)
)

// VideoIO represents one video stream attached to a function. Format and
// aspect ratio are validated on every assignment. An output stream must be
// fully specified: "any" is rejected for both fields.
type VideoIO struct {
	Name string
	ID   string
	Type IOType

	format      string
	aspectRatio string
	output      bool
}

// NewVideoIO builds an input (adaptive) video stream.
func NewVideoIO(name, id string, ioType IOType, format, aspectRatio string) (*VideoIO, error) {
	v := &VideoIO{Name: name, ID: id, Type: ioType}
	if err := v.SetFormat(format); err != nil {
		return nil, err
	}
	if err := v.SetAspectRatio(aspectRatio); err != nil {
		return nil, err
	}
	return v, nil
}

// NewVideoOutput builds an output stream, which forbids "any" for format and
// aspect ratio.
func NewVideoOutput(name, id string, ioType IOType, format, aspectRatio string) (*VideoIO, error) {
	v := &VideoIO{Name: name, ID: id, Type: ioType, output: true}
	if err := v.SetFormat(format); err != nil {
		return nil, err
	}
	if err := v.SetAspectRatio(aspectRatio); err != nil {
		return nil, err
	}
	return v, nil
}

// IsOutput reports whether this stream carries output strictness.
func (v *VideoIO) IsOutput() bool { return v.output }

// Format returns the normalized (lowercased) format token.
func (v *VideoIO) Format() string { return v.format }

// AspectRatio returns the normalized aspect ratio.
func (v *VideoIO) AspectRatio() string { return v.aspectRatio }

// SetFormat validates and assigns a format: 1080i50-style digital tokens,
// pal/ntsc, or "any" (inputs only).
func (v *VideoIO) SetFormat(format string) error {
	if len(format) == 0 {
		return fmt.Errorf("no format specified")
	}

	allowAny := !v.output
	if digitalFormatPattern.MatchString(format) ||
		analogFormatPattern.MatchString(format) ||
		(allowAny && anyPattern.MatchString(format)) {
		v.format = strings.ToLower(format)
		return nil
	}
	return fmt.Errorf("invalid format: %s", format)
}

// SetAspectRatio validates and assigns an aspect ratio: 16:9, 1.85, or "any"
// (inputs only).
func (v *VideoIO) SetAspectRatio(ratio string) error {
	if len(ratio) == 0 {
		return fmt.Errorf("no aspect ratio specified")
	}

	allowAny := !v.output
	if aspectRatioPattern.MatchString(ratio) || (allowAny && anyPattern.MatchString(ratio)) {
		v.aspectRatio = strings.ToLower(ratio)
		return nil
	}
	return fmt.Errorf("invalid aspect ratio: %s", ratio)
}

// MakeOutput upgrades an input stream to output strictness; fails if either
// field currently holds "any".
func (v *VideoIO) MakeOutput() error {
	if v.format == "any" {
		return fmt.Errorf("output %s: format must not be any", v.ID)
	}
	if v.aspectRatio == "any" {
		return fmt.Errorf("output %s: aspect ratio must not be any", v.ID)
	}
	v.output = true
	return nil
}

type videoIOJSON struct {
	Name        string `json:"name"`
	ID          string `json:"id"`
	Type        IOType `json:"type"`
	Format      string `json:"format"`
	AspectRatio string `json:"aspectRatio"`
}

// MarshalJSON serializes the stream with its wire field names.
func (v *VideoIO) MarshalJSON() ([]byte, error) {
	return json.Marshal(videoIOJSON{
		Name:        v.Name,
		ID:          v.ID,
		Type:        v.Type,
		Format:      v.format,
		AspectRatio: v.aspectRatio,
	})
}

// UnmarshalJSON decodes a stream without output strictness; callers promote
// outputs via MakeOutput after decoding.
func (v *VideoIO) UnmarshalJSON(data []byte) error {
	var raw videoIOJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	decoded := VideoIO{Name: raw.Name, ID: raw.ID, Type: raw.Type}
	if err := decoded.SetFormat(raw.Format); err != nil {
		return err
	}
	if err := decoded.SetAspectRatio(raw.AspectRatio); err != nil {
		return err
	}

	*v = decoded
	return nil
}
