package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"syscall"

	"github.com/creachadair/command"
	"github.com/creachadair/flax"
	"github.com/creachadair/mds/heapq"
	"github.com/creachadair/mds/slice"
	"github.com/danderson/argfmt"
	"github.com/danderson/argfmt/handles"
	"github.com/danderson/argfmt/object"
	"github.com/kr/pretty"
	"go.uber.org/zap"
)

var globalArgs struct {
	Verbose bool `flag:"verbose,Log format compilation and handle release to stderr"`
}

// logger returns the logger selected by the global flags, and installs
// it as the argfmt package logger.
func logger() *zap.Logger {
	if !globalArgs.Verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	argfmt.SetLogger(log)
	return log
}

func main() {
	root := &command.C{
		Name:     "argfmt",
		Usage:    "command args...",
		SetFlags: command.Flags(flax.MustBind, &globalArgs),
		Commands: []*command.C{
			{
				Name:  "check",
				Usage: "check [--build] [--flat] format",
				Help: `Compile a format string and print its directives.

By default the format is compiled with the argument decoding grammar.
With --build, the value building grammar is used instead.

With --flat, groups are flattened and only the directives that consume
output slots are listed, in format order.`,
				SetFlags: command.Flags(flax.MustBind, &checkArgs),
				Run:      command.Adapt(runCheck),
			},
			{
				Name:  "decode",
				Usage: "decode [--kwnames a,b] [--kwargs yaml] format args",
				Help: `Decode an argument tuple and print the output slots.

args is a YAML sequence, for example '[1, "two", [3, 4]]'. Sequences
become tuples, mappings become dicts, and strings written as b'..' or
ba'..' become bytes and bytearrays.

Keyword arguments are given as a YAML mapping with --kwargs, and the
keyword names for each directive with --kwnames.`,
				SetFlags: command.Flags(flax.MustBind, &decodeArgs),
				Run:      command.Adapt(runDecode),
			},
			{
				Name:  "build",
				Usage: "build format values",
				Help: `Build an object from a YAML sequence of native values.

Integers, floats, strings and null are passed to the builder as Go
values. Sequences and mappings are converted to objects first, for use
with O and S.`,
				Run: command.Adapt(runBuild),
			},
			{
				Name:     "unpack",
				Usage:    "unpack [--name fn] --min n --max n args",
				Help:     "Check the arity of an argument tuple and print its items.",
				SetFlags: command.Flags(flax.MustBind, &unpackArgs),
				Run:      command.Adapt(runUnpack),
			},
			command.HelpCommand(nil),
			command.VersionCommand(),
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	env := root.NewEnv(nil).SetContext(ctx)
	command.RunOrFail(env, os.Args[1:])
}

var checkArgs struct {
	Build bool `flag:"build,Compile with the value building grammar"`
	Flat  bool `flag:"flat,List slot-consuming directives in format order"`
}

func runCheck(env *command.Env, format string) error {
	logger()
	compile := argfmt.CompileArgs
	if checkArgs.Build {
		compile = argfmt.CompileBuild
	}
	f, err := compile(format)
	if err != nil {
		return err
	}

	var out indenter
	out.f("%q (%s)", f.String(), f.Grammar())
	if f.Name() != "" {
		out.f("name: %s", f.Name())
	}
	if f.Message() != "" {
		out.f("message: %s", f.Message())
	}

	if !checkArgs.Flat {
		printDirectives(&out, f.Directives(), 1)
		return nil
	}

	out.indent(1)
	slot := 0
	for _, d := range slotDirectives(f.Directives()) {
		out.f("%d: %s (pos %d, %d slot(s))", slot, d, d.Pos, d.Slots())
		slot += d.Slots()
	}
	return nil
}

// slotDirectives flattens groups and returns the directives that
// consume output slots, ordered by position in the format.
func slotDirectives(dirs []argfmt.Directive) []argfmt.Directive {
	q := heapq.New(func(a, b argfmt.Directive) int {
		return cmp.Compare(a.Pos, b.Pos)
	})
	for _, d := range dirs {
		q.Add(d)
	}
	var ret []argfmt.Directive
	for !q.IsEmpty() {
		d, _ := q.Pop()
		if d.IsGroup() {
			for _, s := range d.Sub {
				q.Add(s)
			}
			continue
		}
		ret = append(ret, d)
	}
	return slices.Collect(slice.Select(ret, func(d argfmt.Directive) bool {
		return d.Slots() > 0
	}))
}

func printDirectives(out *indenter, dirs []argfmt.Directive, depth int) {
	for _, d := range dirs {
		out.indent(depth)
		if !d.IsGroup() {
			out.f("%s (pos %d)", d, d.Pos)
			continue
		}
		out.f("%c group (pos %d)", d.Code, d.Pos)
		printDirectives(out, d.Sub, depth+1)
	}
}

var decodeArgs struct {
	KWNames string `flag:"kwnames,Comma-separated keyword names, one per directive"`
	KWArgs  string `flag:"kwargs,YAML mapping of keyword arguments"`
}

func runDecode(env *command.Env, format, args string) error {
	logger()
	posargs, err := parseObjects(args)
	if err != nil {
		return err
	}
	kwargs, err := parseKwargs(decodeArgs.KWArgs)
	if err != nil {
		return err
	}
	var kwnames []string
	if decodeArgs.KWNames != "" {
		kwnames = strings.Split(decodeArgs.KWNames, ",")
	}

	slots, err := argfmt.NewSlots(format)
	if err != nil {
		return err
	}
	if err := argfmt.ParseTupleAndKeywords(object.NewTuple(posargs...), kwargs, format, kwnames, slots...); err != nil {
		return describeError(err)
	}

	var out indenter
	for i, s := range slots {
		out.f("%d: %s", i, slotString(s))
	}
	return nil
}

// slotString formats the value an output slot points to.
func slotString(slot any) string {
	switch v := slot.(type) {
	case *object.Type:
		return v.Name()
	case *object.Object:
		if *v == nil {
			return "<unset>"
		}
		return object.Repr(*v)
	}
	rv := reflect.ValueOf(slot)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return pretty.Sprint(slot)
	}
	v := rv.Elem()
	switch v.Kind() {
	case reflect.String:
		return strconv.Quote(v.String())
	case reflect.Bool, reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fmt.Sprint(v.Interface())
	}
	return pretty.Sprintf("%# v", v.Interface())
}

func runBuild(env *command.Env, format, values string) error {
	log := logger()
	in, err := parseInputs(values)
	if err != nil {
		return err
	}
	ret, err := argfmt.BuildValue(format, in...)
	if err != nil {
		return describeError(err)
	}

	tbl := handles.NewTable(0, log)
	defer tbl.Drain()
	h := tbl.New(ret)
	defer tbl.Close(h)

	fmt.Printf("%v: %s\n", h, object.Repr(ret))
	if t, ok := ret.(*object.Tuple); ok {
		var out indenter
		out.indent(1)
		for i, item := range t.All() {
			ih := tbl.New(item)
			out.f("%d: %v %s", i, ih, object.TypeName(item))
			tbl.Close(ih)
		}
	}
	return nil
}

var unpackArgs struct {
	Name string `flag:"name,Function name for error messages"`
	Min  int    `flag:"min,Minimum number of arguments"`
	Max  int    `flag:"max,Maximum number of arguments"`
}

func runUnpack(env *command.Env, args string) error {
	logger()
	items, err := parseObjects(args)
	if err != nil {
		return err
	}
	out := make([]*object.Object, max(unpackArgs.Max, 0))
	for i := range out {
		out[i] = new(object.Object)
	}
	if err := argfmt.UnpackTuple(object.NewTuple(items...), unpackArgs.Name, unpackArgs.Min, unpackArgs.Max, out...); err != nil {
		return describeError(err)
	}
	var ind indenter
	for i, o := range out {
		ind.f("%d: %s", i, slotString(o))
	}
	return nil
}

// describeError prefixes argfmt errors with the exception they map to.
func describeError(err error) error {
	var e *argfmt.Error
	if errors.As(err, &e) {
		return fmt.Errorf("%s: %w", e.Kind.Exception(), err)
	}
	return err
}
