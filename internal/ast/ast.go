// Package ast defines the Zen abstract syntax tree: a tagged variant
// with one Go type per node kind, grouped into the families described
// in spec.md section 3 (literals, references, composition,
// declarations, control). Every node is either an Expr or a Stmt; the
// emitter treats the two disjointly even though the parser sometimes
// produces an Expr in statement position (wrapped in ExprStmt).
package ast

// Node is implemented by every tree node.
type Node interface {
	node()
}

// Expr is implemented by nodes that produce a value.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by nodes that appear directly in a block's
// statement list.
type Stmt interface {
	Node
	stmtNode()
}

// Program is the root of the tree: the ordered list of top-level
// statements. All other nodes are owned, directly or transitively, by
// a single Program value — there is no sharing and no cycles.
type Program struct {
	Statements []Stmt
}

func (*Program) node() {}

// --- Literals ---------------------------------------------------------

// NumberLiteral preserves the source text of a numeric literal,
// including whether it contained a '.', so the emitter can choose
// between an integer and a floating-point C type.
type NumberLiteral struct {
	Text       string
	HasDecimal bool
}

func (*NumberLiteral) node()     {}
func (*NumberLiteral) exprNode() {}

// StringLiteral holds a string's already-decoded contents (escapes
// resolved by the lexer; any ${...} interpolation marker is left
// untouched as opaque text).
type StringLiteral struct {
	Value string
}

func (*StringLiteral) node()     {}
func (*StringLiteral) exprNode() {}

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	Value bool
}

func (*BoolLiteral) node()     {}
func (*BoolLiteral) exprNode() {}

// SomeExpr wraps a value in the option sum type's present case.
type SomeExpr struct {
	Value Expr
}

func (*SomeExpr) node()     {}
func (*SomeExpr) exprNode() {}

// NoneExpr is the option sum type's absent case.
type NoneExpr struct{}

func (*NoneExpr) node()     {}
func (*NoneExpr) exprNode() {}

// OkExpr wraps a value in the result sum type's success case.
type OkExpr struct {
	Value Expr
}

func (*OkExpr) node()     {}
func (*OkExpr) exprNode() {}

// ErrExpr wraps a value in the result sum type's failure case.
type ErrExpr struct {
	Value Expr
}

func (*ErrExpr) node()     {}
func (*ErrExpr) exprNode() {}

// --- References --------------------------------------------------------

// Identifier is a bare name reference.
type Identifier struct {
	Name string
}

func (*Identifier) node()     {}
func (*Identifier) exprNode() {}

// AtSymbol is a reference to a built-in namespace, e.g. `@std.io`,
// whose Path is the dotted text after the leading '@'.
type AtSymbol struct {
	Path string
}

func (*AtSymbol) node()     {}
func (*AtSymbol) exprNode() {}

// --- Composition --------------------------------------------------------

// BinaryExpr is `Left Op Right` for one of the operator symbols listed
// in spec.md section 3 (==, !=, <, <=, >, >=, +, -, *, /, %).
type BinaryExpr struct {
	Op    string
	Left  Expr
	Right Expr
}

func (*BinaryExpr) node()     {}
func (*BinaryExpr) exprNode() {}

// MemberAccess is `Object.Name`, distinct at parse time from a method
// call (MethodCall) even though both start the same way — the emitter
// relies on this distinction (spec.md section 3 invariants).
type MemberAccess struct {
	Object Expr
	Name   string
}

func (*MemberAccess) node()     {}
func (*MemberAccess) exprNode() {}

// CallExpr is `Callee(Args...)`.
type CallExpr struct {
	Callee Expr
	Args   []Expr
}

func (*CallExpr) node()     {}
func (*CallExpr) exprNode() {}

// MethodCall is `Object.Name(Args...)`, parsed as a single unit rather
// than a MemberAccess immediately followed by a CallExpr.
type MethodCall struct {
	Object Expr
	Name   string
	Args   []Expr
}

func (*MethodCall) node()     {}
func (*MethodCall) exprNode() {}

// StructField is one `name: value` pair inside a StructLiteral,
// ordered as written.
type StructField struct {
	Name  string
	Value Expr
}

// StructLiteral constructs a value of a named struct type with fields
// in declaration order.
type StructLiteral struct {
	TypeName string
	Fields   []StructField
}

func (*StructLiteral) node()     {}
func (*StructLiteral) exprNode() {}

// RangeExpr is `(Start..End)` optionally followed by `.step(Step)`,
// used as the scrutinee of a range-form Loop. End is exclusive.
type RangeExpr struct {
	Start Expr
	End   Expr
	Step  Expr // nil when no .step(...) was written
}

func (*RangeExpr) node()     {}
func (*RangeExpr) exprNode() {}

// --- Declarations --------------------------------------------------------

// VarDecl introduces a variable. IsForwardDecl is true exactly when
// Value is nil (a declaration with no initializer), the sole case in
// which an absent Value is valid (spec.md section 3 invariants). A
// forward declaration normally carries a TypeName, but a bare
// `name ::` yields one with an empty TypeName, which the emitter
// declares as int.
type VarDecl struct {
	Name          string
	TypeName      string // "" when the type is to be inferred
	Value         Expr   // nil for a forward declaration
	IsMutable     bool
	IsForwardDecl bool
}

func (*VarDecl) node()     {}
func (*VarDecl) stmtNode() {}

// Assignment rebinds an already-declared identifier.
type Assignment struct {
	Target string
	Value  Expr
}

func (*Assignment) node()     {}
func (*Assignment) stmtNode() {}

// Param is one function parameter.
type Param struct {
	Name      string
	TypeName  string
	IsMutable bool
}

// FunctionDecl defines a named function. A function named "main"
// receives special emission (spec.md section 4.3).
type FunctionDecl struct {
	Name       string
	Params     []Param
	ReturnType string
	Body       *Block
}

func (*FunctionDecl) node()     {}
func (*FunctionDecl) stmtNode() {}

// StructFieldDecl is one field of a StructDecl.
type StructFieldDecl struct {
	Name      string
	TypeName  string
	IsMutable bool
	Default   Expr // nil when the field has no default
}

// StructDecl defines a struct type and its fields, in declaration order.
type StructDecl struct {
	Name   string
	Fields []StructFieldDecl
}

func (*StructDecl) node()     {}
func (*StructDecl) stmtNode() {}

// EnumDecl defines an enum type as an ordered list of variant names.
type EnumDecl struct {
	Name     string
	Variants []string
}

func (*EnumDecl) node()     {}
func (*EnumDecl) stmtNode() {}

// DestructuringImport is `{ Names... } = @Source`, binding named
// sub-paths of a built-in namespace into local scope.
type DestructuringImport struct {
	Names  []string
	Source string // the at-symbol path, e.g. "std"
}

func (*DestructuringImport) node()     {}
func (*DestructuringImport) stmtNode() {}

// --- Control --------------------------------------------------------

// Block is an ordered list of statements forming a lexical scope. Any
// DeferStmt among Statements is replayed in LIFO order by the emitter
// at every exit from this block (see emitter.Emitter).
type Block struct {
	Statements []Stmt
}

func (*Block) node()     {}
func (*Block) stmtNode() {}
func (*Block) exprNode() {} // a block may also appear where an expression is expected (e.g. loop body)

// ReturnStmt exits a function, optionally carrying a value.
type ReturnStmt struct {
	Value Expr // nil for a bare `return`
}

func (*ReturnStmt) node()     {}
func (*ReturnStmt) stmtNode() {}

// BreakStmt exits the innermost loop.
type BreakStmt struct{}

func (*BreakStmt) node()     {}
func (*BreakStmt) stmtNode() {}

// ContinueStmt jumps to the next iteration of the innermost loop.
type ContinueStmt struct{}

func (*ContinueStmt) node()     {}
func (*ContinueStmt) stmtNode() {}

// Loop is either a bare `loop { ... }` (Condition nil, infinite), a
// conditional `loop (cond) { ... }`, or a range-driven loop whose
// Condition is a *RangeExpr.
type Loop struct {
	Condition Expr // nil, a boolean expr, or a *RangeExpr
	Body      *Block
}

func (*Loop) node()     {}
func (*Loop) stmtNode() {}
func (*Loop) exprNode() {}

// MatchArm is one `| pattern { body }` alternative. Pattern is nil
// only for the single-arm truthy shorthand `expr ? { body }`.
type MatchArm struct {
	Pattern Expr // nil, a *BoolLiteral, an *Identifier (incl. "_"), or a literal
	Body    *Block
}

// PatternMatch is the postfix `?` operator: a scrutinee tested against
// an ordered list of arms.
type PatternMatch struct {
	Scrutinee Expr
	Arms      []MatchArm
}

func (*PatternMatch) node()     {}
func (*PatternMatch) exprNode() {}

// DeferStmt records Value to be run when the enclosing block exits,
// in LIFO order relative to other deferred expressions in that block.
type DeferStmt struct {
	Value Expr
}

func (*DeferStmt) node()     {}
func (*DeferStmt) stmtNode() {}

// ExprStmt wraps an expression used in statement position (e.g. a bare
// call, or a PatternMatch used for its side effects).
type ExprStmt struct {
	Expr Expr
}

func (*ExprStmt) node()     {}
func (*ExprStmt) stmtNode() {}
