package typing

import "testing"

func TestEqualsPrimitives(t *testing.T) {
	if !Equals(NewInt(), NewInt()) {
		t.Error("two distinct int types should compare equal")
	}
	if Equals(NewInt(), NewFloat()) {
		t.Error("int and float should not compare equal")
	}
}

func TestEqualsNamed(t *testing.T) {
	if !Equals(NewNamed("Point"), NewNamed("Point")) {
		t.Error("two Named types with the same name should compare equal")
	}
	if Equals(NewNamed("Point"), NewNamed("Vector")) {
		t.Error("two Named types with different names should not compare equal")
	}
}

func TestIsAssignableToIdentity(t *testing.T) {
	if !NewInt().IsAssignableTo(NewInt()) {
		t.Error("a type should always be assignable to itself")
	}
	if NewInt().IsAssignableTo(NewString()) {
		t.Error("int should not be assignable to string")
	}
}

func TestIsAssignableToLiteralZero(t *testing.T) {
	zero := NewIntLiteralZero()
	ptr := NewPointer(NewInt(), false)
	if !zero.IsAssignableTo(ptr) {
		t.Error("a literal-zero int should be assignable to a pointer type")
	}
}

func TestArrayAssignability(t *testing.T) {
	intArr := NewArray(NewInt())
	otherIntArr := NewArray(NewInt())
	floatArr := NewArray(NewFloat())

	if !intArr.IsAssignableTo(otherIntArr) {
		t.Error("two int arrays should be assignable to each other")
	}
	if !intArr.IsAssignableTo(floatArr) {
		t.Error("an int array should be assignable to a float array (covariant elements, int widens to float)")
	}
}

func TestNullAssignability(t *testing.T) {
	null := NewNull()
	if !null.IsAssignableTo(NewPointer(NewInt(), false)) {
		t.Error("null should be assignable to a pointer type")
	}
	if !null.IsAssignableTo(NewNamed("Box")) {
		t.Error("null should be assignable to a class (Named) type")
	}
	if null.IsAssignableTo(NewInt()) {
		t.Error("null should not be assignable to a non-nullable scalar type")
	}
	if null.IsAssignableTo(NewString()) {
		t.Error("null should not be assignable to string")
	}
}

func TestUnionMembership(t *testing.T) {
	u := NewUnion(NewInt(), NewString())
	if !NewInt().IsAssignableTo(u) {
		t.Error("a union's left member should be assignable into the union")
	}
	if !NewString().IsAssignableTo(u) {
		t.Error("a union's right member should be assignable into the union")
	}
	if NewBool().IsAssignableTo(u) {
		t.Error("a type outside the union's members should not be assignable into it")
	}
}
