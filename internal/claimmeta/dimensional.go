// Package claimmeta is the metadata shims (C7): thin typed projections a
// stream claim's source/fee/language/location/dimension fields are read
// and written through, ported from the corresponding classes in attrs.py.
package claimmeta

// Dimensional holds a media file's pixel dimensions, the Go analogue of
// Dimmensional in attrs.py (misspelling not carried forward).
type Dimensional struct {
	Width  int
	Height int
}

// Update sets whichever of height/width is non-nil. The original also
// falls back to extracting values from a file-metadata probe
// (hachoir-metadata); this module has no Go equivalent in scope, so only
// the explicit-value path is carried.
func (d *Dimensional) Update(height, width *int) {
	if height != nil {
		d.Height = *height
	}
	if width != nil {
		d.Width = *width
	}
}

// Dimensions returns (width, height) as a pair, mirroring the original's
// dimensions property.
func (d Dimensional) Dimensions() (width, height int) { return d.Width, d.Height }

// Playable holds a media file's duration in seconds.
type Playable struct {
	DurationSeconds int
}

func (p *Playable) Update(duration *int) {
	if duration != nil {
		p.DurationSeconds = *duration
	}
}

// Image is a Dimensional with no playback component.
type Image struct {
	Dimensional
}

// Audio is a Playable with no dimensions.
type Audio struct {
	Playable
}

// Video is both Dimensional and Playable, matching the original's
// multiple inheritance via Go embedding.
type Video struct {
	Dimensional
	Playable
}

func (v *Video) Update(height, width, duration *int) {
	v.Dimensional.Update(height, width)
	v.Playable.Update(duration)
}
