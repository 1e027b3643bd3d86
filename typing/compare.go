package typing

// Equals reports structural equality. Union equality is symmetric: A|B
// equals B|A.
func Equals(a, b *Type) bool {
	if a.kind != b.kind {
		return false
	}

	switch a.kind {
	case Void, Int, Float, Bool, String, Error, Null:
		return true

	case Named:
		return a.name == b.name

	case Array:
		return Equals(a.elem, b.elem)

	case Pointer:
		return Equals(a.pointee, b.pointee) && a.isUnsafe == b.isUnsafe

	case Reference:
		return Equals(a.pointee, b.pointee)

	case Function:
		if !Equals(a.ret, b.ret) || len(a.params) != len(b.params) {
			return false
		}
		for i := range a.params {
			if !Equals(a.params[i], b.params[i]) {
				return false
			}
		}
		return true

	case Smart:
		return Equals(a.pointee, b.pointee) && a.smartKind == b.smartKind

	case Union:
		return (Equals(a.left, b.left) && Equals(a.right, b.right)) ||
			(Equals(a.left, b.right) && Equals(a.right, b.left))

	case Template:
		if a.name != b.name || len(a.templateArgs) != len(b.templateArgs) {
			return false
		}
		for i := range a.templateArgs {
			if !Equals(a.templateArgs[i], b.templateArgs[i]) {
				return false
			}
		}
		return true
	}

	return false
}

// IsAssignableTo implements the assignability lattice of §4.4: identical
// types are always assignable; Error is the zero-propagating sentinel; Null
// assigns only into a reference-like type (Pointer, Reference, Smart,
// Named), never into a scalar; Int->Float widens; a literal-zero Int
// assigns into any Pointer; arrays are covariant; functions are covariant
// in return and contravariant in parameters; smart pointers are covariant
// within the same kind, and Shared assigns into Weak; any type assignable
// to a union's arm is assignable to the union.
func (a *Type) IsAssignableTo(b *Type) bool {
	if Equals(a, b) {
		return true
	}

	if a.kind == Error || b.kind == Error {
		return true
	}

	if b.kind == Union {
		return a.IsAssignableTo(b.left) || a.IsAssignableTo(b.right)
	}

	if a.kind == Int && b.kind == Float {
		return true
	}

	if b.kind == Pointer && a.kind == Int && a.isLiteralZero {
		return true
	}

	if a.kind == Null {
		switch b.kind {
		case Pointer, Reference, Smart, Named:
			return true
		}
		return false
	}

	if a.kind == Smart && b.kind == Smart {
		if a.smartKind == b.smartKind {
			return a.pointee.IsAssignableTo(b.pointee)
		}
		if a.smartKind == Shared && b.smartKind == Weak {
			return a.pointee.IsAssignableTo(b.pointee)
		}
		return false
	}

	if a.kind == Array && b.kind == Array {
		return a.elem.IsAssignableTo(b.elem)
	}

	if a.kind == Function && b.kind == Function {
		if !a.ret.IsAssignableTo(b.ret) {
			return false
		}
		if len(a.params) != len(b.params) {
			return false
		}
		for i := range a.params {
			if !b.params[i].IsAssignableTo(a.params[i]) {
				return false
			}
		}
		return true
	}

	return false
}

// IsImplicitlyConvertibleTo extends assignability with the implicit
// numeric/boolean widenings of §4.4.
func (a *Type) IsImplicitlyConvertibleTo(b *Type) bool {
	if a.IsAssignableTo(b) {
		return true
	}

	switch {
	case a.kind == Int && b.kind == Float:
		return true
	case a.kind == Int && b.kind == Bool:
		return true
	case a.kind == Float && b.kind == Bool:
		return true
	case a.kind == Pointer && b.kind == Bool:
		return true
	case a.kind == Smart && b.kind == Bool:
		return true
	}

	return false
}

// IsExplicitlyConvertibleTo extends implicit convertibility with the
// cast-only conversions of §4.4, distributing over union components on
// either side.
func (a *Type) IsExplicitlyConvertibleTo(b *Type) bool {
	if a.IsImplicitlyConvertibleTo(b) {
		return true
	}

	if (a.kind == Float && b.kind == Int) || (a.kind == Int && b.kind == Float) {
		return true
	}

	if b.kind == String && (a.kind == Int || a.kind == Float || a.kind == Bool) {
		return true
	}

	if a.kind == Pointer && b.kind == Pointer {
		return true
	}
	if a.kind == Pointer && b.kind == Int {
		return true
	}
	if a.kind == Int && b.kind == Pointer {
		return true
	}

	if a.kind == Smart && b.kind == Smart {
		return true
	}
	if (a.kind == Smart && b.kind == Pointer) || (a.kind == Pointer && b.kind == Smart) {
		return true
	}

	if b.kind == Union {
		return a.IsExplicitlyConvertibleTo(b.left) || a.IsExplicitlyConvertibleTo(b.right)
	}
	if a.kind == Union {
		return a.left.IsExplicitlyConvertibleTo(b) || a.right.IsExplicitlyConvertibleTo(b)
	}

	return false
}
