package emitter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zenlang/zenc/internal/diagnostic"
	"github.com/zenlang/zenc/internal/parser"
)

func emit(t *testing.T, input string) string {
	t.Helper()
	program, diags := parser.Parse(input)
	require.False(t, diags.HasErrors(), "unexpected parse errors: %s", diags.Error())
	emitDiags := &diagnostic.Bag{}
	return Emit(program, emitDiags)
}

// TestDeclarationMutability covers testable property 4.
func TestDeclarationMutability(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"immutable", `x = 10`, "const int x = 10;"},
		{"mutable inferred", `v ::= 10`, "int v = 10;"},
		{"forward decl", `x :: i32`, "int x;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := emit(t, tt.input)
			require.Contains(t, out, tt.want)
		})
	}
}

// TestOperatorPrecedenceEmission covers testable property 3.
func TestOperatorPrecedenceEmission(t *testing.T) {
	out := emit(t, `a = 2 + 3 * 4`)
	require.Contains(t, out, "(2 + (3 * 4))")
}

func TestParenthesizedPrecedence(t *testing.T) {
	out := emit(t, `a = (2 + 3) * 4`)
	require.Contains(t, out, "((2 + 3) * 4)")
}

// TestPatternMatchLowering covers testable property 5.
func TestPatternMatchLowering(t *testing.T) {
	out := emit(t, `flag ? { x = 1 }`)
	require.Contains(t, out, "if (flag) {")
}

func TestPatternMatchMultiArmLowering(t *testing.T) {
	out := emit(t, `ok ? | true { x = 1 } | false { x = 2 }`)
	require.Contains(t, out, "if (ok == true) {")
	require.Contains(t, out, "} else if (ok == false) {")
}

// TestRangeLoopBound covers testable property 6.
func TestRangeLoopBound(t *testing.T) {
	out := emit(t, `loop (0..3) { x = 1 }`)
	require.Regexp(t, `for \(long __zen_tmp\d+ = 0; __zen_tmp\d+ < 3; __zen_tmp\d+ \+= 1\) \{`, out)
}

func TestStructDeclAndLiteralEmission(t *testing.T) {
	out := emit(t, `Point: { x: f64, y: f64 }
p = Point { x: 1.0, y: 2.0 }`)
	require.Contains(t, out, "typedef struct Point {")
	require.Contains(t, out, "double x;")
	require.Contains(t, out, "double y;")
	require.Contains(t, out, "} Point;")
	require.Contains(t, out, "(struct Point){.x = 1.0, .y = 2.0}")
}

func TestEnumDeclEmission(t *testing.T) {
	out := emit(t, `Color: Red | Green | Blue`)
	require.Contains(t, out, "typedef enum Color {")
	require.Contains(t, out, "Color_Red,")
	require.Contains(t, out, "Color_Green,")
	require.Contains(t, out, "Color_Blue,")
	require.Contains(t, out, "} Color;")
}

func TestMainGetsInjectedReturn(t *testing.T) {
	out := emit(t, `main = () void { @std.io.println("hi") }`)
	require.Contains(t, out, "int main(void) {")
	require.Contains(t, out, "return 0;")
}

func TestPrintlnLoweringWithArgs(t *testing.T) {
	out := emit(t, `main = () void { x = 10; y = 20; @std.io.println(x + y) }`)
	require.Contains(t, out, `printf("%d\n", (x + y))`)
}

func TestPrintlnFoldsLiteralText(t *testing.T) {
	out := emit(t, `main = () void { @std.io.println("hi") }`)
	require.Contains(t, out, `printf("hi\n")`)
}

func TestPrintWithoutNewline(t *testing.T) {
	out := emit(t, `main = () void { @std.io.print("hi") }`)
	require.Contains(t, out, `printf("hi")`)
	require.NotContains(t, out, `"hi\n"`)
}

func TestDestructuredIoPrintln(t *testing.T) {
	out := emit(t, `{ io } = @std
main = () void { io.println("hi") }`)
	require.Contains(t, out, `printf("hi\n")`)
}

// TestDeferLIFOOrder covers the defer design note (spec.md section 9):
// deferred expressions run in LIFO order at block exit.
func TestDeferLIFOOrder(t *testing.T) {
	out := emit(t, `main = () void {
@this.defer(@std.io.println("first"))
@this.defer(@std.io.println("second"))
@std.io.println("body")
}`)
	body := strings.Index(out, `printf("body\n")`)
	second := strings.Index(out, `printf("second\n")`)
	first := strings.Index(out, `printf("first\n")`)
	require.True(t, body < second && second < first, "expected body, then second, then first: %s", out)
}

// TestDeferRunsOnceBeforeBreakThroughPatternMatch covers the case
// where a loop-body-level defer is triggered by a break sitting
// inside a nested pattern-match arm — the only way Zen can express a
// conditional early exit, since there is no plain `if`. The deferred
// statement must appear exactly once, immediately before the break.
func TestDeferRunsOnceBeforeBreakThroughPatternMatch(t *testing.T) {
	out := emit(t, `main = () void {
loop {
@this.defer(@std.io.println("cleanup"))
flag ? { break }
}
}`)
	count := strings.Count(out, `printf("cleanup\n")`)
	require.Equal(t, 1, count, "expected the defer to run exactly once: %s", out)

	cleanup := strings.Index(out, `printf("cleanup\n")`)
	brk := strings.Index(out, "break;")
	require.True(t, cleanup >= 0 && brk >= 0 && cleanup < brk, "expected cleanup to run before break: %s", out)
}

// TestDeferInnerLoopBreakDoesNotTouchOuterDefer covers that a break
// only unwinds defers belonging to the loop it actually breaks out of.
func TestDeferInnerLoopBreakDoesNotTouchOuterDefer(t *testing.T) {
	out := emit(t, `main = () void {
@this.defer(@std.io.println("outer"))
loop {
flag ? { break }
}
}`)
	count := strings.Count(out, `printf("outer\n")`)
	require.Equal(t, 1, count, "expected the outer defer to run exactly once, at function exit: %s", out)
}

func TestReassignmentEmitsPlainAssignment(t *testing.T) {
	out := emit(t, `main = () void { v ::= 1; v = v + 2; @std.io.println(v) }`)
	require.Contains(t, out, "v = (v + 2);")
	require.NotContains(t, out, "int v = (v + 2)")
}

func TestPreambleIncludesOptionHelper(t *testing.T) {
	out := emit(t, `x = 1`)
	require.Contains(t, out, "zen_option_t")
	require.Contains(t, out, "#include <stdio.h>")
}

func TestSomeNoneEmission(t *testing.T) {
	out := emit(t, `x = Some(5)`)
	require.Contains(t, out, "zen_option_t){.is_some = true, .value = 5}")

	out = emit(t, `x = None`)
	require.Contains(t, out, "zen_option_t){.is_some = false}")
}
