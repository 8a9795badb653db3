// Package fake provides a capture Driver for headless runs and tests.
package fake

// Driver records every frame written to it.
type Driver struct {
	Frames int
	Last   []byte
	// Err, when set, is returned by Write without recording the frame.
	Err error
}

func (d *Driver) Write(rgb []byte) error {
	if d.Err != nil {
		return d.Err
	}
	d.Frames++
	d.Last = make([]byte, len(rgb))
	copy(d.Last, rgb)
	return nil
}

func (d *Driver) Close() error { return nil }
