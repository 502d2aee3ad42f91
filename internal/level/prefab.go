package level

// Prefab marks special tile behavior on a cell.
type Prefab uint8

const (
	PrefabNone Prefab = iota
	PrefabMelee
	PrefabProjectile
	PrefabJumpPad
	PrefabStairs
	PrefabHideous
)

var prefabCodes = [...]byte{
	PrefabNone:       '0',
	PrefabMelee:      'n',
	PrefabProjectile: 'p',
	PrefabJumpPad:    'J',
	PrefabStairs:     's',
	PrefabHideous:    'H',
}

var prefabNames = [...]string{
	PrefabNone:       "none",
	PrefabMelee:      "melee",
	PrefabProjectile: "projectile",
	PrefabJumpPad:    "jump pad",
	PrefabStairs:     "stairs",
	PrefabHideous:    "hideous",
}

// Prefabs returns every prefab in declaration order.
func Prefabs() []Prefab {
	return []Prefab{PrefabNone, PrefabMelee, PrefabProjectile, PrefabJumpPad, PrefabStairs, PrefabHideous}
}

// Valid reports whether p is one of the declared prefabs.
func (p Prefab) Valid() bool {
	return int(p) < len(prefabCodes)
}

// Code returns the single-character file encoding of p.
func (p Prefab) Code() byte {
	if !p.Valid() {
		return '?'
	}
	return prefabCodes[p]
}

func (p Prefab) String() string {
	if !p.Valid() {
		return "unknown"
	}
	return prefabNames[p]
}

// PrefabFromCode maps a file character back to its prefab.
func PrefabFromCode(c byte) (Prefab, bool) {
	for p, code := range prefabCodes {
		if code == c {
			return Prefab(p), true
		}
	}
	return PrefabNone, false
}

// AppendCell appends the one-character encoding of p.
func (p Prefab) AppendCell(b []byte) []byte {
	return append(b, p.Code())
}

// DecodeCell decodes one prefab character from the start of src.
func (Prefab) DecodeCell(src []byte) (Prefab, int, error) {
	if len(src) == 0 {
		return PrefabNone, 0, cellError(ErrBadPrefab, 0, "expected prefab, found end of input")
	}
	p, ok := PrefabFromCode(src[0])
	if !ok {
		return PrefabNone, 0, cellError(ErrBadPrefab, 0, "unexpected %s (want one of 0 n p J s H)", describeByte(src))
	}
	return p, 1, nil
}
