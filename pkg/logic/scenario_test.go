package logic

// scenario is the running example used across tests:
//
//	let age: Number = 18
//	let page: Number = 1
//	let text: String = ""
//	if (age > 17) {
//	  text = "Congrats, you're an adult!"
//	}
type scenario struct {
	program    *Program
	age        *VariableDeclaration
	page       *VariableDeclaration
	text       *VariableDeclaration
	branch     *Branch
	condition  *BinaryExpression
	left       *IdentifierExpression
	limit      *LiteralExpression
	assignment *ExpressionStatement
}

func newScenario() scenario {
	var s scenario
	s.age = NewVariableDeclaration("age", NewTypeIdentifier("Number"), NumberExpr(18))
	s.page = NewVariableDeclaration("page", NewTypeIdentifier("Number"), NumberExpr(1))
	s.text = NewVariableDeclaration("text", NewTypeIdentifier("String"), StringExpr(""))
	s.left = NewIdentifierExpression("age")
	s.limit = NumberExpr(17)
	s.condition = NewBinaryExpression(s.left, OpIsGreaterThan, s.limit)
	s.assignment = NewExpressionStatement(
		NewBinaryExpression(NewIdentifierExpression("text"), OpSetEqualTo, StringExpr("Congrats, you're an adult!")),
	)
	s.branch = NewBranch(s.condition, s.assignment)
	s.program = NewProgram(
		NewDeclarationStatement(s.age),
		NewDeclarationStatement(s.page),
		NewDeclarationStatement(s.text),
		s.branch,
	)
	return s
}

const scenarioSource = `let age: Number = 18
let page: Number = 1
let text: String = ""
if (age > 17) {
  text = "Congrats, you're an adult!"
}
`
