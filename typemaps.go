package argfmt

import (
	"math/bits"
	"reflect"

	"github.com/creachadair/mds/mapset"
	"github.com/danderson/argfmt/object"
)

// intSpec describes the native integer a numeric directive converts
// to or from.
type intSpec struct {
	// bits is the native width.
	bits int
	// signed is whether the native type is signed.
	signed bool
	// checked is whether out-of-range values are rejected rather
	// than truncated to the native width.
	checked bool
	// desc names the native type in overflow messages.
	desc string
}

var (
	// slotTypes maps decode directives to the element type of the
	// pointer they store through.
	slotTypes = map[byte]reflect.Type{
		'b': reflect.TypeFor[uint8](),
		'B': reflect.TypeFor[uint8](),
		'h': reflect.TypeFor[int16](),
		'H': reflect.TypeFor[uint16](),
		'i': reflect.TypeFor[int32](),
		'I': reflect.TypeFor[uint32](),
		'l': reflect.TypeFor[int64](),
		'k': reflect.TypeFor[uint64](),
		'L': reflect.TypeFor[int64](),
		'K': reflect.TypeFor[uint64](),
		'n': reflect.TypeFor[int](),
		'c': reflect.TypeFor[byte](),
		'C': reflect.TypeFor[rune](),
		'f': reflect.TypeFor[float32](),
		'd': reflect.TypeFor[float64](),
		'p': reflect.TypeFor[bool](),
		's': reflect.TypeFor[string](),
		'z': reflect.TypeFor[string](),
		'y': reflect.TypeFor[[]byte](),
		'S': objectType,
		'Y': objectType,
		'U': objectType,
		'O': objectType,
	}

	// decodeInts describes the native integers of decode directives.
	decodeInts = map[byte]intSpec{
		'b': {8, false, true, "unsigned byte integer"},
		'B': {8, false, false, ""},
		'h': {16, true, true, "signed short integer"},
		'H': {16, false, false, ""},
		'i': {32, true, true, "signed integer"},
		'I': {32, false, false, ""},
		'l': {64, true, true, "signed long integer"},
		'k': {64, false, false, ""},
		'L': {64, true, true, "signed long long integer"},
		'K': {64, false, false, ""},
		'n': {bits.UintSize, true, true, "ssize_t integer"},
	}

	// buildInts describes the native integers the builder reads for
	// numeric directives. Narrow types arrive promoted to the width
	// of a C int.
	buildInts = map[byte]intSpec{
		'b': {32, true, false, ""},
		'h': {32, true, false, ""},
		'i': {32, true, false, ""},
		'B': {32, false, false, ""},
		'H': {32, false, false, ""},
		'I': {32, false, false, ""},
		'l': {64, true, false, ""},
		'L': {64, true, false, ""},
		'k': {64, false, false, ""},
		'K': {64, false, false, ""},
		'n': {bits.UintSize, true, false, ""},
	}

	// decodeAtoms is the set of single-character atoms of the decode
	// grammar, excluding brackets and markers.
	decodeAtoms = mapset.New[byte](
		's', 'z', 'y', 'S', 'Y', 'U', 'u', 'Z', 'w', 'e',
		'b', 'B', 'h', 'H', 'i', 'I', 'l', 'k', 'L', 'K', 'n',
		'c', 'C', 'f', 'd', 'D', 'O', 'p',
	)

	// buildAtoms is the set of atoms the builder converts.
	buildAtoms = mapset.New[byte](
		's', 'z', 'U', 'y',
		'b', 'B', 'h', 'H', 'i', 'I', 'l', 'k', 'L', 'K', 'n',
		'c', 'C', 'f', 'd', 'O', 'S', 'N',
	)

	// unsupportedAtoms are recognized by the grammar but have no
	// working conversion.
	unsupportedAtoms = mapset.New[byte]('u', 'Z', 'w', 'e', 'D')

	// decodeMods and buildMods give the modifiers each atom accepts.
	decodeMods = map[byte]string{
		's': "#*",
		'z': "#*",
		'y': "#*",
		'O': "!&",
	}
	buildMods = map[byte]string{
		's': "#",
		'z': "#",
		'U': "#",
		'y': "#",
		'O': "&",
	}

	// closers maps each opening bracket to its closer.
	closers = map[byte]byte{
		'(': ')',
		'[': ']',
		'{': '}',
	}
)

var objectType = reflect.TypeFor[object.Object]()
