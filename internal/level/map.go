package level

// Map is a complete arena layout: heights and prefabs aligned cell for cell.
// The zero value is the default map (all heights 0, all prefabs None).
type Map struct {
	Heights Grid[Height]
	Prefabs Grid[Prefab]
}

// Default returns a map with all-zero heights and no prefabs.
func Default() Map {
	return Map{}
}

// Equal reports whether both maps hold the same cells.
func (m *Map) Equal(other *Map) bool {
	return *m == *other
}

// HeightAt returns the height at p, or false when p is out of range.
func (m *Map) HeightAt(p Point) (Height, bool) {
	return m.Heights.Get(p.X, p.Y)
}

// PrefabAt returns the prefab at p, or false when p is out of range.
func (m *Map) PrefabAt(p Point) (Prefab, bool) {
	return m.Prefabs.Get(p.X, p.Y)
}

// AppendText appends the file encoding of m.
func (m *Map) AppendText(b []byte) ([]byte, error) {
	b, _ = m.Heights.AppendText(b)
	b = append(b, '\n', '\n')
	return m.Prefabs.AppendText(b)
}

// MarshalText implements encoding.TextMarshaler.
func (m *Map) MarshalText() ([]byte, error) {
	return m.AppendText(nil)
}

// UnmarshalText implements encoding.TextUnmarshaler. On failure m is left
// unchanged.
func (m *Map) UnmarshalText(text []byte) error {
	parsed, err := ParseBytes(text)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m *Map) String() string {
	return Serialize(m)
}
