// Package object is a minimal host object model for the argfmt
// engine.
//
// Every value is an [Object], which reports its [Type]. Types form a
// single-inheritance hierarchy rooted at [ObjectType], and
// [Type.IsSubtype] implements the instance check used by typed
// argument directives.
//
// The package provides the allocation primitives the engine needs
// (str, bytes, bytearray, int, float, bool, None, tuple, list and
// dict values), a truthiness predicate ([IsTrue]) and a repr-style
// formatter ([Repr]). It deliberately stops there: there is no
// attribute lookup, method dispatch or arithmetic.
package object
