package position

// Position is the persisted window placement record. X/Y are stored
// relative to the owning monitor's origin and interpreted as absolute
// during solve. W/H are in the record's own scale units.
type Position struct {
	X          int    `json:"x"`
	Y          int    `json:"y"`
	W          int    `json:"w"`
	H          int    `json:"h"`
	Scale      int    `json:"scale"`     // percent; 0 = no scale recorded
	Maximized  bool   `json:"maximized"` // when true, x/y/w/h are stale
	MonitorCRC uint32 `json:"moncrc"`    // 0 = no monitor affinity
}

// Unset reports whether the record carries no usable rectangle.
// An unset position always resolves to a computed default geometry.
func (p Position) Unset() bool {
	return p.W == 0 || p.H == 0
}

// Equal compares every field. The save path skips the write when the
// computed snapshot equals the last saved value.
func (p Position) Equal(o Position) bool {
	return p == o
}
