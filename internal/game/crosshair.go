package game

// Crosshair is the on-screen reticle. It has no rendering here; the
// simulator only tracks whether it is shown.
type Crosshair struct {
	visible bool
}

// SetVisible shows or hides the crosshair.
func (c *Crosshair) SetVisible(visible bool) {
	c.visible = visible
}

// Visible reports whether the crosshair is shown.
func (c *Crosshair) Visible() bool {
	return c.visible
}
