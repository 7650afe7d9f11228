package lang

//go:generate go tool stringer --linecomment --type PrefixOperator,PostfixOperator,InfixOperator --output operator_string.go

// PrefixOperator is a unary operator written before its operand.
type PrefixOperator int

const (
	Neg PrefixOperator = iota // -
)

// PostfixOperator is a unary operator written after its operand.
type PostfixOperator int

const (
	Fac PostfixOperator = iota // !
)

// InfixOperator is a binary operator written between its operands.
// Pow renders as "^" regardless of whether it was written "^" or "**".
type InfixOperator int

const (
	Add InfixOperator = iota // +
	Sub                      // -
	Mul                      // *
	Div                      // /
	Rem                      // %
	Pow                      // ^
)
