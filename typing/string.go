package typing

import "strings"

func (t *Type) String() string {
	switch t.kind {
	case Void:
		return "void"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case String:
		return "string"
	case Named:
		return t.name
	case Array:
		return t.elem.String() + "[]"
	case Pointer:
		if t.isUnsafe {
			return t.pointee.String() + "@unsafe"
		}
		return t.pointee.String() + "@"
	case Reference:
		return t.pointee.String() + "&"
	case Function:
		var b strings.Builder
		b.WriteString("function(")
		for i, p := range t.params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.String())
		}
		b.WriteString("): ")
		b.WriteString(t.ret.String())
		return b.String()
	case Smart:
		switch t.smartKind {
		case Shared:
			return "#shared<" + t.pointee.String() + ">"
		case Unique:
			return "#unique<" + t.pointee.String() + ">"
		case Weak:
			return "#weak<" + t.pointee.String() + ">"
		}
		return "invalid_smart_pointer"
	case Union:
		return t.left.String() + " | " + t.right.String()
	case Template:
		var b strings.Builder
		b.WriteString(t.name)
		b.WriteString("<")
		for i, a := range t.templateArgs {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.String())
		}
		b.WriteString(">")
		return b.String()
	case Error:
		return "error_type"
	case Null:
		return "null_type"
	}
	return "unknown_type"
}

// IsNumeric reports whether t is Int or Float.
func (t *Type) IsNumeric() bool {
	return t.kind == Int || t.kind == Float
}

// IsBoolConvertible reports whether t implicitly converts to Bool, the
// predicate used by every Bool-convertible condition in the checker
// (if/while/do-while/for conditions, logical operands, `!`).
func (t *Type) IsBoolConvertible() bool {
	return t.IsImplicitlyConvertibleTo(NewBool())
}
