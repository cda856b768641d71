// Package emitter walks a parsed Zen program and writes an equivalent
// C translation unit. It performs no optimization and only the light
// type inference spec.md section 4.3 describes; its job is a faithful,
// syntax-directed rendering, not analysis.
package emitter

import (
	"fmt"
	"strings"

	"github.com/zenlang/zenc/internal/ast"
	"github.com/zenlang/zenc/internal/diagnostic"
)

const preamble = `#include <stdio.h>
#include <stdlib.h>
#include <stdbool.h>
#include <string.h>

typedef struct {
	bool is_some;
	union {
		long value;
		double fvalue;
		const char *svalue;
		void *pvalue;
	};
} zen_option_t;

typedef struct {
	bool is_ok;
	union {
		long value;
		double fvalue;
		const char *svalue;
		void *pvalue;
	};
} zen_result_t;

`

// builtinTypes maps the source language's primitive type names to
// their C spelling (spec.md section 4.3's type mapping table). Any
// name absent from this table is emitted verbatim, covering both
// struct/enum type names and an unrecognized primitive.
var builtinTypes = map[string]string{
	"i32":    "int",
	"i64":    "long",
	"f32":    "float",
	"f64":    "double",
	"bool":   "bool",
	"string": "const char*",
	"void":   "void",
	"option": "zen_option_t",
	"result": "zen_result_t",
}

// Emitter holds the output buffer and the per-block defer stacks
// needed to replay deferred expressions in LIFO order at every exit.
type Emitter struct {
	out        strings.Builder
	diags      *diagnostic.Bag
	indent     int
	tempCount  int
	deferStack [][]ast.Expr // one slice of pending defers per enclosing block, innermost last
	loopBase   []int        // deferStack index of each enclosing Loop's own scope, innermost last
}

// New creates an Emitter. diags receives semantic-fallback warnings
// (e.g. an unrecognized intrinsic call); it may be nil.
func New(diags *diagnostic.Bag) *Emitter {
	return &Emitter{diags: diags}
}

// Emit renders program as a complete C translation unit.
func Emit(program *ast.Program, diags *diagnostic.Bag) string {
	e := New(diags)
	e.out.WriteString(preamble)
	for _, stmt := range program.Statements {
		e.emitTopLevel(stmt)
	}
	return e.out.String()
}

func (e *Emitter) writeIndent() {
	e.out.WriteString(strings.Repeat("\t", e.indent))
}

func (e *Emitter) warnf(format string, args ...any) {
	if e.diags != nil {
		e.diags.Warnf(0, 0, format, args...)
	}
}

func (e *Emitter) nextTemp() string {
	e.tempCount++
	return fmt.Sprintf("__zen_tmp%d", e.tempCount)
}

// --- top level --------------------------------------------------------

func (e *Emitter) emitTopLevel(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.StructDecl:
		e.emitStructDecl(s)
	case *ast.EnumDecl:
		e.emitEnumDecl(s)
	case *ast.FunctionDecl:
		e.emitFunctionDecl(s)
	case *ast.VarDecl:
		e.emitVarDecl(s)
		e.out.WriteString("\n")
	default:
		e.emitStatement(stmt)
	}
}

func (e *Emitter) emitStructDecl(s *ast.StructDecl) {
	fmt.Fprintf(&e.out, "typedef struct %s {\n", s.Name)
	for _, f := range s.Fields {
		e.out.WriteString("\t")
		e.out.WriteString(cType(f.TypeName))
		e.out.WriteString(" ")
		e.out.WriteString(f.Name)
		e.out.WriteString(";")
		if f.Default != nil {
			fmt.Fprintf(&e.out, " // default: %s", e.exprString(f.Default))
		}
		e.out.WriteString("\n")
	}
	fmt.Fprintf(&e.out, "} %s;\n\n", s.Name)
}

func (e *Emitter) emitEnumDecl(s *ast.EnumDecl) {
	fmt.Fprintf(&e.out, "typedef enum %s {\n", s.Name)
	for _, v := range s.Variants {
		fmt.Fprintf(&e.out, "\t%s_%s,\n", s.Name, v)
	}
	fmt.Fprintf(&e.out, "} %s;\n\n", s.Name)
}

func (e *Emitter) emitFunctionDecl(f *ast.FunctionDecl) {
	returnType := "void"
	if f.ReturnType != "" {
		returnType = cType(f.ReturnType)
	}
	var params []string
	for _, p := range f.Params {
		pt := "int"
		if p.TypeName != "" {
			pt = cType(p.TypeName)
		}
		params = append(params, fmt.Sprintf("%s %s", pt, p.Name))
	}
	if len(params) == 0 {
		if f.Name == "main" {
			params = append(params, "void")
		}
	}
	if f.Name == "main" {
		returnType = "int"
	}
	fmt.Fprintf(&e.out, "%s %s(%s) {\n", returnType, f.Name, strings.Join(params, ", "))
	e.indent++
	e.pushDeferScope()
	e.emitBlockStatements(f.Body)
	endsInReturn := blockEndsInReturn(f.Body)
	e.flushDeferScope(len(e.deferStack) - 1)
	if f.Name == "main" && !endsInReturn {
		e.writeIndent()
		e.out.WriteString("return 0;\n")
	}
	e.popDeferScope()
	e.indent--
	e.out.WriteString("}\n\n")
}

func blockEndsInReturn(b *ast.Block) bool {
	if len(b.Statements) == 0 {
		return false
	}
	_, ok := b.Statements[len(b.Statements)-1].(*ast.ReturnStmt)
	return ok
}

// --- defer bookkeeping --------------------------------------------------

func (e *Emitter) pushDeferScope() {
	e.deferStack = append(e.deferStack, nil)
}

func (e *Emitter) popDeferScope() {
	e.deferStack = e.deferStack[:len(e.deferStack)-1]
}

func (e *Emitter) recordDefer(expr ast.Expr) {
	top := len(e.deferStack) - 1
	e.deferStack[top] = append(e.deferStack[top], expr)
}

// flushDeferScope replays level's deferred expressions in LIFO order,
// per design note 9 and SPEC_FULL.md section 14's defer-lowering
// decision, then clears that scope's list. Clearing is what makes it
// safe to flush the same level twice — once via an early exit
// (break/continue/return) and again when the block it belongs to
// reaches its normal end — since the second call then has nothing
// left to replay.
func (e *Emitter) flushDeferScope(level int) {
	pending := e.deferStack[level]
	for i := len(pending) - 1; i >= 0; i-- {
		e.writeIndent()
		e.out.WriteString(e.exprString(pending[i]))
		e.out.WriteString(";\n")
	}
	e.deferStack[level] = nil
}

// --- blocks and statements --------------------------------------------

func (e *Emitter) emitBlockStatements(b *ast.Block) {
	for _, stmt := range b.Statements {
		e.emitStatement(stmt)
	}
}

func (e *Emitter) emitStatement(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		e.writeIndent()
		e.emitVarDecl(s)
		e.out.WriteString("\n")

	case *ast.Assignment:
		e.writeIndent()
		fmt.Fprintf(&e.out, "%s = %s;\n", s.Target, e.exprString(s.Value))

	case *ast.ReturnStmt:
		e.emitReturn(s)

	case *ast.BreakStmt:
		e.replayDefersForJump()
		e.writeIndent()
		e.out.WriteString("break;\n")

	case *ast.ContinueStmt:
		e.replayDefersForJump()
		e.writeIndent()
		e.out.WriteString("continue;\n")

	case *ast.Loop:
		e.emitLoop(s)

	case *ast.DeferStmt:
		e.recordDefer(s.Value)

	case *ast.StructDecl:
		e.emitStructDecl(s)

	case *ast.EnumDecl:
		e.emitEnumDecl(s)

	case *ast.DestructuringImport:
		// Destructuring imports produce no C text, and the emitter
		// does not record the names they bind: lowerMethodCall
		// recognizes `io.println`/`io.print` by the object name alone.

	case *ast.FunctionDecl:
		e.emitFunctionDecl(s)

	case *ast.ExprStmt:
		e.emitExprStmt(s.Expr)

	default:
		e.writeIndent()
		fmt.Fprintf(&e.out, "/* unhandled statement %T */\n", stmt)
	}
}

// replayDefersForJump re-emits every enclosing scope's pending defers
// from the innermost up to and including the nearest enclosing Loop's
// own scope, since a break/continue exits all of those — not just the
// block it textually sits in (e.g. a pattern-match arm nested inside
// the loop body). Scopes outside the loop (the function itself) are
// left untouched: break/continue don't exit those.
func (e *Emitter) replayDefersForJump() {
	if len(e.loopBase) == 0 {
		// A break/continue outside any loop can only come from
		// malformed input; there is no loop scope to unwind.
		return
	}
	base := e.loopBase[len(e.loopBase)-1]
	for i := len(e.deferStack) - 1; i >= base; i-- {
		e.flushDeferScope(i)
	}
}

func (e *Emitter) emitReturn(s *ast.ReturnStmt) {
	// A return exits every enclosing block in the current function, so
	// every level's pending defers run, innermost first.
	for i := len(e.deferStack) - 1; i >= 0; i-- {
		e.flushDeferScope(i)
	}
	e.writeIndent()
	if s.Value == nil {
		e.out.WriteString("return;\n")
		return
	}
	fmt.Fprintf(&e.out, "return %s;\n", e.exprString(s.Value))
}

func (e *Emitter) emitExprStmt(expr ast.Expr) {
	switch v := expr.(type) {
	case *ast.PatternMatch:
		e.emitPatternMatch(v)
	default:
		e.writeIndent()
		e.out.WriteString(e.exprString(expr))
		e.out.WriteString(";\n")
	}
}

// emitVarDecl writes one declaration, with or without an initializer.
// Immutable declarations are `const` except when the inferred/declared
// type is already `const char*` (spec.md section 4.3).
func (e *Emitter) emitVarDecl(v *ast.VarDecl) {
	typeName := v.TypeName
	if typeName == "" && v.Value != nil {
		typeName = inferType(v.Value)
	}
	if typeName == "" {
		typeName = "int"
	}
	cTypeName := cType(typeName)

	constPrefix := ""
	if !v.IsMutable && cTypeName != "const char*" {
		constPrefix = "const "
	}

	if v.IsForwardDecl {
		fmt.Fprintf(&e.out, "%s%s %s;", constPrefix, cTypeName, v.Name)
		return
	}
	fmt.Fprintf(&e.out, "%s%s %s = %s;", constPrefix, cTypeName, v.Name, e.exprString(v.Value))
}

func cType(name string) string {
	if mapped, ok := builtinTypes[name]; ok {
		return mapped
	}
	return name
}

// inferType implements spec.md section 4.3's untyped-declaration
// inference rule.
func inferType(e ast.Expr) string {
	switch v := e.(type) {
	case *ast.NumberLiteral:
		if v.HasDecimal {
			return "f64"
		}
		return "i32"
	case *ast.StringLiteral:
		return "string"
	case *ast.BoolLiteral:
		return "bool"
	case *ast.StructLiteral:
		return v.TypeName
	case *ast.SomeExpr, *ast.NoneExpr:
		return "option"
	case *ast.OkExpr, *ast.ErrExpr:
		return "result"
	default:
		return "i32"
	}
}

// --- loops --------------------------------------------------------------

func (e *Emitter) emitLoop(l *ast.Loop) {
	switch cond := l.Condition.(type) {
	case nil:
		e.writeIndent()
		e.out.WriteString("while (1) {\n")
		e.emitLoopBody(l.Body)
		e.writeIndent()
		e.out.WriteString("}\n")

	case *ast.RangeExpr:
		e.emitRangeLoop(cond, l.Body)

	default:
		e.writeIndent()
		fmt.Fprintf(&e.out, "while (%s) {\n", e.exprString(cond))
		e.emitLoopBody(l.Body)
		e.writeIndent()
		e.out.WriteString("}\n")
	}
}

// emitLoopBody emits a Loop's own body block. It pushes both a defer
// scope and a loop boundary, so a break/continue anywhere inside it —
// including inside a nested pattern-match arm — knows to unwind back
// out to here (see replayDefersForJump).
func (e *Emitter) emitLoopBody(body *ast.Block) {
	e.indent++
	e.pushDeferScope()
	e.loopBase = append(e.loopBase, len(e.deferStack)-1)
	e.emitBlockStatements(body)
	e.flushDeferScope(len(e.deferStack) - 1)
	e.loopBase = e.loopBase[:len(e.loopBase)-1]
	e.popDeferScope()
	e.indent--
}

// emitMatchArmBody emits a pattern-match arm's body block. Unlike
// emitLoopBody, it pushes only a defer scope, not a loop boundary: a
// pattern match is not itself a loop, so a break/continue inside an
// arm must unwind past the arm to the nearest *enclosing* Loop rather
// than stopping here.
func (e *Emitter) emitMatchArmBody(body *ast.Block) {
	e.indent++
	e.pushDeferScope()
	e.emitBlockStatements(body)
	e.flushDeferScope(len(e.deferStack) - 1)
	e.popDeferScope()
	e.indent--
}

// emitRangeLoop lowers a range primary into the classical indexed C
// for loop spec.md section 4.3 calls for: upper bound exclusive, an
// optional step (default 1).
func (e *Emitter) emitRangeLoop(r *ast.RangeExpr, body *ast.Block) {
	counter := e.nextTemp()
	step := "1"
	if r.Step != nil {
		step = e.exprString(r.Step)
	}
	e.writeIndent()
	fmt.Fprintf(&e.out, "for (long %s = %s; %s < %s; %s += %s) {\n",
		counter, e.exprString(r.Start), counter, e.exprString(r.End), counter, step)
	e.emitLoopBody(body)
	e.writeIndent()
	e.out.WriteString("}\n")
}

// --- pattern match --------------------------------------------------------

// emitPatternMatch lowers the postfix `?` operator to an if/else-if
// chain, per spec.md section 4.3 and testable property 5. Each arm's
// condition is `scrutinee == pattern`, except the boolean-shorthand
// arm (condition is the scrutinee itself) and the wildcard `_` arm
// (condition is the constant 1, so no arm after it can be reached;
// such later arms are still emitted).
func (e *Emitter) emitPatternMatch(pm *ast.PatternMatch) {
	scrutinee := e.exprString(pm.Scrutinee)
	for i, arm := range pm.Arms {
		keyword := "if"
		if i > 0 {
			keyword = "} else if"
		}
		condition := e.armCondition(scrutinee, arm.Pattern)
		e.writeIndent()
		fmt.Fprintf(&e.out, "%s (%s) {\n", keyword, condition)
		e.emitMatchArmBody(arm.Body)
	}
	e.writeIndent()
	e.out.WriteString("}\n")
}

func (e *Emitter) armCondition(scrutinee string, pattern ast.Expr) string {
	if pattern == nil {
		return scrutinee
	}
	if id, ok := pattern.(*ast.Identifier); ok && id.Name == "_" {
		return "1"
	}
	return fmt.Sprintf("%s == %s", scrutinee, e.exprString(pattern))
}

// --- expressions ---------------------------------------------------------

// exprString renders an expression as inline C text. Expressions never
// span statements in this language, so a simple recursive string
// builder (rather than a second indented-writer pass) is sufficient.
func (e *Emitter) exprString(expr ast.Expr) string {
	switch v := expr.(type) {
	case *ast.NumberLiteral:
		return v.Text

	case *ast.StringLiteral:
		return fmt.Sprintf("%q", v.Value)

	case *ast.BoolLiteral:
		if v.Value {
			return "true"
		}
		return "false"

	case *ast.SomeExpr:
		return e.sumTypeLiteral("zen_option_t", true, v.Value)

	case *ast.NoneExpr:
		return "(zen_option_t){.is_some = false}"

	case *ast.OkExpr:
		return e.sumTypeLiteral("zen_result_t", true, v.Value)

	case *ast.ErrExpr:
		return e.sumTypeLiteral("zen_result_t", false, v.Value)

	case *ast.Identifier:
		return v.Name

	case *ast.AtSymbol:
		return strings.ReplaceAll(v.Path, ".", "_")

	case *ast.BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", e.exprString(v.Left), v.Op, e.exprString(v.Right))

	case *ast.MemberAccess:
		return fmt.Sprintf("%s.%s", e.exprString(v.Object), v.Name)

	case *ast.CallExpr:
		if sym, ok := v.Callee.(*ast.AtSymbol); ok {
			if lowered, handled := e.lowerIntrinsicCall(sym.Path, v.Args); handled {
				return lowered
			}
		}
		return fmt.Sprintf("%s(%s)", e.exprString(v.Callee), e.exprList(v.Args))

	case *ast.MethodCall:
		if lowered, handled := e.lowerMethodCall(v); handled {
			return lowered
		}
		return fmt.Sprintf("%s.%s(%s)", e.exprString(v.Object), v.Name, e.exprList(v.Args))

	case *ast.StructLiteral:
		return e.structLiteralString(v)

	case *ast.RangeExpr:
		// A range used outside loop position has no direct C value.
		// The parser accepts a parenthesized range wherever a primary
		// may appear (e.g. `x = (0..3)`), but only a loop condition
		// gives it a meaning; anywhere else it is reported and
		// rendered as 0.
		e.warnf("range expression used outside loop position")
		return "0"

	default:
		return fmt.Sprintf("/* unhandled expr %T */", expr)
	}
}

func (e *Emitter) exprList(args []ast.Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = e.exprString(a)
	}
	return strings.Join(parts, ", ")
}

func (e *Emitter) sumTypeLiteral(typeName string, present bool, value ast.Expr) string {
	flagField := "is_some"
	if typeName == "zen_result_t" {
		flagField = "is_ok"
	}
	valueField := valueFieldFor(value)
	return fmt.Sprintf("(%s){.%s = %s, .%s = %s}", typeName, flagField, boolLit(present), valueField, e.exprString(value))
}

func boolLit(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func valueFieldFor(value ast.Expr) string {
	switch v := value.(type) {
	case *ast.NumberLiteral:
		if v.HasDecimal {
			return "fvalue"
		}
		return "value"
	case *ast.StringLiteral:
		return "svalue"
	default:
		return "value"
	}
}

func (e *Emitter) structLiteralString(s *ast.StructLiteral) string {
	var parts []string
	for _, f := range s.Fields {
		parts = append(parts, fmt.Sprintf(".%s = %s", f.Name, e.exprString(f.Value)))
	}
	return fmt.Sprintf("(struct %s){%s}", s.TypeName, strings.Join(parts, ", "))
}

// --- intrinsic lowering ----------------------------------------------------

// lowerIntrinsicCall recognizes `@std.io.println`/`@std.io.print` by
// at-symbol path and lowers them to printf, per spec.md section 4.3.
// Anything else passes through as an ordinary call so the emitter
// never blocks on an unrecognized built-in.
func (e *Emitter) lowerIntrinsicCall(path string, args []ast.Expr) (string, bool) {
	switch path {
	case "std.io.println":
		return e.lowerPrintf(args, true), true
	case "std.io.print":
		return e.lowerPrintf(args, false), true
	default:
		return "", false
	}
}

// lowerMethodCall recognizes the post-destructuring-import spelling
// `io.println(...)` / `io.print(...)` (spec.md section 9, "intrinsic
// resolution"): a method call whose object is the bare identifier
// `io`. Anything else is left to the generic method-call rendering.
func (e *Emitter) lowerMethodCall(mc *ast.MethodCall) (string, bool) {
	id, ok := mc.Object.(*ast.Identifier)
	if !ok || id.Name != "io" {
		return "", false
	}
	switch mc.Name {
	case "println":
		return e.lowerPrintf(mc.Args, true), true
	case "print":
		return e.lowerPrintf(mc.Args, false), true
	default:
		e.warnf("unknown io intrinsic %q; passing through", mc.Name)
		return "", false
	}
}

// lowerPrintf assembles a printf call from the argument shapes, per
// spec.md section 4.3: a string literal is folded into the format text,
// a decimal number literal gets %f, and anything else (a string-valued
// identifier included) gets %d. With newline set, a trailing newline is
// appended to the format.
func (e *Emitter) lowerPrintf(args []ast.Expr, newline bool) string {
	var format strings.Builder
	var values []string
	for _, a := range args {
		spec, isStringLit := printfSpec(a)
		format.WriteString(spec)
		if !isStringLit {
			values = append(values, e.exprString(a))
		}
	}
	if newline {
		format.WriteString("\n")
	}
	parts := []string{fmt.Sprintf("%q", format.String())}
	parts = append(parts, values...)
	return fmt.Sprintf("printf(%s)", strings.Join(parts, ", "))
}

// printfSpec reports the conversion specifier for a single println/
// print argument. A literal string is folded directly into the format
// text (isStringLit true, no value slot consumed); anything else gets
// a positional specifier.
func printfSpec(e ast.Expr) (string, bool) {
	switch v := e.(type) {
	case *ast.StringLiteral:
		return escapePercent(v.Value), true
	case *ast.NumberLiteral:
		if v.HasDecimal {
			return "%f", false
		}
		return "%d", false
	default:
		return "%d", false
	}
}

func escapePercent(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}
