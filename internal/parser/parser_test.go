package parser

import (
	"testing"

	"github.com/zenlang/zenc/internal/ast"
)

func mustParse(t *testing.T, input string) *ast.Program {
	t.Helper()
	program, diags := Parse(input)
	if diags.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %s", input, diags.Error())
	}
	return program
}

func TestParseImmutableDeclaration(t *testing.T) {
	program := mustParse(t, `x = 10`)
	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
	decl, ok := program.Statements[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected *ast.VarDecl, got %T", program.Statements[0])
	}
	if decl.IsMutable {
		t.Fatalf("expected immutable declaration")
	}
	if decl.Name != "x" {
		t.Fatalf("expected name x, got %q", decl.Name)
	}
}

func TestParseMutableDeclarationInferred(t *testing.T) {
	program := mustParse(t, `v ::= 1`)
	decl, ok := program.Statements[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected *ast.VarDecl, got %T", program.Statements[0])
	}
	if !decl.IsMutable {
		t.Fatalf("expected mutable declaration")
	}
}

func TestParseForwardDeclaration(t *testing.T) {
	program := mustParse(t, `x :: i32`)
	decl, ok := program.Statements[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected *ast.VarDecl, got %T", program.Statements[0])
	}
	if !decl.IsForwardDecl || decl.Value != nil {
		t.Fatalf("expected forward declaration with no value")
	}
	if decl.TypeName != "i32" {
		t.Fatalf("expected type i32, got %q", decl.TypeName)
	}
}

// TestReassignmentAfterMutableDeclaration covers S3: once `v` is
// declared mutable, `v = v + 2` is an Assignment, not a redeclaration.
func TestReassignmentAfterMutableDeclaration(t *testing.T) {
	program := mustParse(t, `v ::= 1
v = v + 2`)
	if len(program.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(program.Statements))
	}
	if _, ok := program.Statements[1].(*ast.Assignment); !ok {
		t.Fatalf("expected *ast.Assignment, got %T", program.Statements[1])
	}
}

func TestLegacyAssignmentHeuristicFallback(t *testing.T) {
	p := &Parser{scope: newScope(nil)}
	value := &ast.BinaryExpr{Op: "+", Left: &ast.Identifier{Name: "n"}, Right: &ast.NumberLiteral{Text: "1"}}
	if !p.legacyAssignmentHeuristic("n", value) {
		t.Fatalf("expected legacy heuristic to flag self-referencing expression as assignment")
	}
	other := &ast.NumberLiteral{Text: "5"}
	if p.legacyAssignmentHeuristic("n", other) {
		t.Fatalf("legacy heuristic should not fire on a non-binary value")
	}
}

func TestParseFunctionDecl(t *testing.T) {
	program := mustParse(t, `main = () void { @std.io.println("hi") }`)
	fn, ok := program.Statements[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected *ast.FunctionDecl, got %T", program.Statements[0])
	}
	if fn.Name != "main" || fn.ReturnType != "void" {
		t.Fatalf("unexpected function shape: %+v", fn)
	}
	if len(fn.Body.Statements) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(fn.Body.Statements))
	}
}

// TestOperatorPrecedence covers testable property 3.
func TestOperatorPrecedence(t *testing.T) {
	program := mustParse(t, `result = 2 + 3 * 4`)
	decl := program.Statements[0].(*ast.VarDecl)
	bin, ok := decl.Value.(*ast.BinaryExpr)
	if !ok || bin.Op != "+" {
		t.Fatalf("expected outermost '+' binary expression, got %+v", decl.Value)
	}
	rhs, ok := bin.Right.(*ast.BinaryExpr)
	if !ok || rhs.Op != "*" {
		t.Fatalf("expected '*' nested on the right of '+', got %+v", bin.Right)
	}
}

func TestParsePatternMatchTruthyShorthand(t *testing.T) {
	program := mustParse(t, `flag ? { @std.io.println("yes") }`)
	stmt, ok := program.Statements[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected *ast.ExprStmt, got %T", program.Statements[0])
	}
	pm, ok := stmt.Expr.(*ast.PatternMatch)
	if !ok {
		t.Fatalf("expected *ast.PatternMatch, got %T", stmt.Expr)
	}
	if len(pm.Arms) != 1 || pm.Arms[0].Pattern != nil {
		t.Fatalf("expected single truthy arm with nil pattern, got %+v", pm.Arms)
	}
}

func TestParsePatternMatchMultiArm(t *testing.T) {
	program := mustParse(t, `ok ? | true { @std.io.println("t") } | false { @std.io.println("f") }`)
	stmt := program.Statements[0].(*ast.ExprStmt)
	pm := stmt.Expr.(*ast.PatternMatch)
	if len(pm.Arms) != 2 {
		t.Fatalf("expected 2 arms, got %d", len(pm.Arms))
	}
}

func TestParseStructDeclAndLiteral(t *testing.T) {
	program := mustParse(t, `Point: { x: f64, y: f64 }
p = Point { x: 1.0, y: 2.0 }`)
	decl, ok := program.Statements[0].(*ast.StructDecl)
	if !ok {
		t.Fatalf("expected *ast.StructDecl, got %T", program.Statements[0])
	}
	if decl.Name != "Point" || len(decl.Fields) != 2 {
		t.Fatalf("unexpected struct shape: %+v", decl)
	}

	varDecl := program.Statements[1].(*ast.VarDecl)
	lit, ok := varDecl.Value.(*ast.StructLiteral)
	if !ok {
		t.Fatalf("expected *ast.StructLiteral, got %T", varDecl.Value)
	}
	if lit.TypeName != "Point" || len(lit.Fields) != 2 {
		t.Fatalf("unexpected struct literal shape: %+v", lit)
	}
}

func TestParseEnumDecl(t *testing.T) {
	program := mustParse(t, `Color: Red | Green | Blue`)
	decl, ok := program.Statements[0].(*ast.EnumDecl)
	if !ok {
		t.Fatalf("expected *ast.EnumDecl, got %T", program.Statements[0])
	}
	want := []string{"Red", "Green", "Blue"}
	if len(decl.Variants) != len(want) {
		t.Fatalf("expected %d variants, got %d", len(want), len(decl.Variants))
	}
	for i, v := range want {
		if decl.Variants[i] != v {
			t.Fatalf("variant[%d] = %q, want %q", i, decl.Variants[i], v)
		}
	}
}

func TestParseRangeLoop(t *testing.T) {
	program := mustParse(t, `loop (0..3) { @std.io.println("x") }`)
	loop, ok := program.Statements[0].(*ast.Loop)
	if !ok {
		t.Fatalf("expected *ast.Loop, got %T", program.Statements[0])
	}
	rng, ok := loop.Condition.(*ast.RangeExpr)
	if !ok {
		t.Fatalf("expected *ast.RangeExpr condition, got %T", loop.Condition)
	}
	if rng.Step != nil {
		t.Fatalf("expected no step clause")
	}
}

func TestParseRangeLoopWithStep(t *testing.T) {
	program := mustParse(t, `loop (0..10).step(2) { @std.io.println("x") }`)
	loop := program.Statements[0].(*ast.Loop)
	rng := loop.Condition.(*ast.RangeExpr)
	if rng.Step == nil {
		t.Fatalf("expected step clause to be parsed")
	}
}

func TestParseDeferRewrite(t *testing.T) {
	program := mustParse(t, `main = () void { @this.defer(@std.io.println("bye")) }`)
	fn := program.Statements[0].(*ast.FunctionDecl)
	if _, ok := fn.Body.Statements[0].(*ast.DeferStmt); !ok {
		t.Fatalf("expected @this.defer(...) to rewrite to *ast.DeferStmt, got %T", fn.Body.Statements[0])
	}
}

func TestParseDestructuringImport(t *testing.T) {
	program := mustParse(t, `{ io } = @std`)
	imp, ok := program.Statements[0].(*ast.DestructuringImport)
	if !ok {
		t.Fatalf("expected *ast.DestructuringImport, got %T", program.Statements[0])
	}
	if len(imp.Names) != 1 || imp.Names[0] != "io" || imp.Source != "std" {
		t.Fatalf("unexpected import shape: %+v", imp)
	}
}

func TestParserRecoversFromUnexpectedToken(t *testing.T) {
	_, diags := Parse(`x = ) y = 10`)
	if !diags.HasErrors() {
		t.Fatalf("expected a diagnostic for the stray ')'")
	}
}
