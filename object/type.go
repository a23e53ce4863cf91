package object

// An Object is a value in the host object model.
type Object interface {
	// Type returns the object's type. It is never nil.
	Type() *Type
}

// A Type describes a class of objects.
type Type struct {
	name string
	base *Type
}

// Builtin types.
var (
	ObjectType    = &Type{name: "object"}
	TypeType      = &Type{name: "type", base: ObjectType}
	NoneType      = &Type{name: "NoneType", base: ObjectType}
	IntType       = &Type{name: "int", base: ObjectType}
	BoolType      = &Type{name: "bool", base: IntType}
	FloatType     = &Type{name: "float", base: ObjectType}
	StrType       = &Type{name: "str", base: ObjectType}
	BytesType     = &Type{name: "bytes", base: ObjectType}
	ByteArrayType = &Type{name: "bytearray", base: ObjectType}
	TupleType     = &Type{name: "tuple", base: ObjectType}
	ListType      = &Type{name: "list", base: ObjectType}
	DictType      = &Type{name: "dict", base: ObjectType}
)

// NewType returns a new type with the given name. If base is nil,
// the type derives directly from [ObjectType].
func NewType(name string, base *Type) *Type {
	if base == nil {
		base = ObjectType
	}
	return &Type{name: name, base: base}
}

// Type returns [TypeType]; types are objects too.
func (t *Type) Type() *Type { return TypeType }

// Name returns the type's name.
func (t *Type) Name() string { return t.name }

// Base returns the type's parent, or nil for [ObjectType].
func (t *Type) Base() *Type { return t.base }

// IsSubtype reports whether t is super or derives from it.
func (t *Type) IsSubtype(super *Type) bool {
	for c := t; c != nil; c = c.base {
		if c == super {
			return true
		}
	}
	return false
}

func (t *Type) String() string { return t.name }

// IsInstance reports whether o's type is t or a subtype of t. A nil
// Object is not an instance of anything.
func IsInstance(o Object, t *Type) bool {
	if o == nil {
		return false
	}
	return o.Type().IsSubtype(t)
}

// TypeName returns the name of o's type, or "NULL" for a nil Object.
func TypeName(o Object) string {
	if o == nil {
		return "NULL"
	}
	return o.Type().Name()
}

// An Instance is a plain instance of a user-defined type.
type Instance struct {
	typ *Type
	// Attrs holds arbitrary per-instance state.
	Attrs map[string]Object
}

// NewInstance returns a new, attribute-less instance of t.
func NewInstance(t *Type) *Instance {
	return &Instance{typ: t, Attrs: map[string]Object{}}
}

func (i *Instance) Type() *Type { return i.typ }
