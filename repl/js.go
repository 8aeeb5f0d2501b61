package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/console"
	"github.com/dop251/goja_nodejs/require"
)

// printer routes console output to the REPL writers.
type printer struct {
	out, err io.Writer
}

func (p printer) Log(s string)   { fmt.Fprintln(p.out, s) }
func (p printer) Warn(s string)  { fmt.Fprintln(p.err, s) }
func (p printer) Error(s string) { fmt.Fprintln(p.err, s) }

// newRuntime builds the JavaScript context: CommonJS require resolving the
// project's node_modules, a console bound to the REPL writers and one global
// function per command.
func (r *REPL) newRuntime() *goja.Runtime {
	vm := goja.New()
	registry := require.NewRegistry()
	registry.RegisterNativeModule(console.ModuleName, console.RequireWithPrinter(printer{out: r.out, err: r.err}))
	registry.Enable(vm)
	console.Enable(vm)

	set := func(name string, fn func(call goja.FunctionCall) goja.Value) {
		if err := vm.Set(name, fn); err != nil {
			panic(fmt.Sprintf("repl: define %s: %v", name, err))
		}
	}
	undefined := goja.Undefined()

	set("help", func(call goja.FunctionCall) goja.Value {
		r.help(optionalString(call, 0))
		return undefined
	})
	set("version", func(goja.FunctionCall) goja.Value {
		r.version()
		return undefined
	})
	set("exit", func(goja.FunctionCall) goja.Value {
		r.exit()
		return undefined
	})
	set("samples", func(call goja.FunctionCall) goja.Value {
		r.report(r.samples(requiredString(vm, call, "samples")))
		return undefined
	})
	set("packageSamples", func(call goja.FunctionCall) goja.Value {
		r.packageSamples(requiredString(vm, call, "packageSamples"))
		return undefined
	})
	set("packages", func(call goja.FunctionCall) goja.Value {
		task := requiredString(vm, call, "packages")
		index := 0
		if v := call.Argument(1); !goja.IsUndefined(v) && !goja.IsNull(v) {
			index = int(v.ToInteger())
		}
		r.report(r.packages(task, index))
		return undefined
	})
	set("editor", func(goja.FunctionCall) goja.Value {
		r.editor()
		return undefined
	})
	set("install", func(call goja.FunctionCall) goja.Value {
		r.install(r.ctx, packageNames(stringArgs(call)))
		return undefined
	})
	set("uninstall", func(call goja.FunctionCall) goja.Value {
		r.uninstall(r.ctx, packageNames(stringArgs(call)))
		return undefined
	})
	return vm
}

func optionalString(call goja.FunctionCall, i int) string {
	v := call.Argument(i)
	if goja.IsUndefined(v) || goja.IsNull(v) {
		return ""
	}
	return v.String()
}

func requiredString(vm *goja.Runtime, call goja.FunctionCall, name string) string {
	v := call.Argument(0)
	if goja.IsUndefined(v) || goja.IsNull(v) {
		panic(vm.NewTypeError(fmt.Sprintf("%s expects a string argument", name)))
	}
	return v.String()
}

func stringArgs(call goja.FunctionCall) []string {
	out := make([]string, 0, len(call.Arguments))
	for _, v := range call.Arguments {
		if goja.IsUndefined(v) || goja.IsNull(v) {
			continue
		}
		out = append(out, v.String())
	}
	return out
}

// callForm matches inputs that can only be a command call or a bare name.
var callForm = regexp.MustCompile(`^[A-Za-z_$][\w$]*\s*(\(.*\))?\s*;?$`)

var commandCall = regexp.MustCompile(`^([A-Za-z_$][\w$]*)\s*\(`)

// eval runs src in the JavaScript context and prints its value. Undefined
// results print nothing. It reports whether src ran without error.
func (r *REPL) eval(ctx context.Context, src string) bool {
	vm := r.vm
	stop := context.AfterFunc(ctx, func() { vm.Interrupt(ctx.Err()) })
	v, err := vm.RunString(src)
	stop()
	vm.ClearInterrupt()

	if err != nil {
		r.reportJS(src, err)
		return false
	}
	if s, ok := r.format(v); ok {
		r.println(s)
	}
	return true
}

// isCommandCall reports whether src starts with a call to a command.
func isCommandCall(src string) bool {
	m := commandCall.FindStringSubmatch(src)
	if m == nil {
		return false
	}
	_, ok := lookupCommand(m[1])
	return ok
}

func (r *REPL) format(v goja.Value) (string, bool) {
	if v == nil || goja.IsUndefined(v) {
		return "", false
	}
	obj, ok := v.(*goja.Object)
	if !ok {
		return v.String(), true
	}
	if _, isFn := goja.AssertFunction(v); isFn {
		return "[Function]", true
	}
	data, err := obj.MarshalJSON()
	if err != nil {
		return v.String(), true
	}
	return string(data), true
}

func (r *REPL) reportJS(src string, err error) {
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		r.eprintln("Interrupted")
		return
	}
	var ex *goja.Exception
	if !errors.As(err, &ex) {
		r.eprintln("Uncaught " + err.Error())
		return
	}
	switch exceptionName(ex) {
	case "SyntaxError":
		r.println("*** Unknown syntax: " + src)
		return
	case "ReferenceError":
		if callForm.MatchString(src) {
			r.println("*** Unknown syntax: " + src)
			return
		}
	}
	r.log.Debug("uncaught exception", "input", src, "error", ex.Error())
	r.eprintln("Uncaught " + ex.Value().String())
}

func exceptionName(ex *goja.Exception) string {
	obj, ok := ex.Value().(*goja.Object)
	if !ok {
		return ""
	}
	name := obj.Get("name")
	if name == nil {
		return ""
	}
	return name.String()
}
