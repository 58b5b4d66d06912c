package lexer

// Keywords is the set of reserved words that scan as KEYWORD tokens.
// Reserved value words (NULL, TRUE, FALSE) and textual operators
// (AND, OR, NOT) are classified separately; see scanWord().
var Keywords = map[string]bool{
	"DECLARE": true,
	"OUTPUT":  true,
	"INPUT":   true,

	"CASE": true, "OF": true, "OTHERWISE": true, "ENDCASE": true,
	"IF": true, "THEN": true, "ELSE": true, "ENDIF": true,
	"WHILE": true, "DO": true, "ENDWHILE": true,
	"REPEAT": true, "UNTIL": true,
	"FOR": true, "TO": true, "STEP": true, "ENDFOR": true,

	"PROCEDURE": true, "ENDPROCEDURE": true, "CALL": true,
	"FUNCTION": true, "RETURNS": true, "ENDFUNCTION": true, "RETURN": true,

	"TYPE": true, "ENDTYPE": true,

	"BYREF": true, "BYVALUE": true,

	"OPENFILE": true, "READ": true, "WRITE": true, "APPEND": true,
	"READFILE": true, "WRITEFILE": true, "CLOSEFILE": true,
}

// Values are reserved words that scan directly to a literal token.
var Values = map[string]bool{
	"NULL": true, "TRUE": true, "FALSE": true,
}

// TextOperators are reserved words classified as symbol tokens, the same
// as the punctuation operators (with a nil Value, like them).
var TextOperators = map[string]bool{
	"AND": true, "OR": true, "NOT": true,
}

// TypeWords are the built-in type names a DECLARE/parameter/return type may
// name, ARRAY included. User-declared record names are not listed here.
var TypeWords = map[string]bool{
	"BOOLEAN": true, "INTEGER": true, "REAL": true, "STRING": true,
	"FILE": true, "ARRAY": true, "NULL": true,
}

// symSingle are punctuation characters that always scan as a single-rune
// symbol, never combining with a following character.
const symSingle = "()[]:,."

// symMulti are characters that combine greedily into multi-rune operator
// words (+, -, /, *, =, <, >, and the two-rune forms <-, <=, >=, <>).
const symMulti = "+-/*=<>"
