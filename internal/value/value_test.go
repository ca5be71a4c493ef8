package value

import "testing"

func TestIntRealStrCoercions(t *testing.T) {
	i := NewInt(42)
	if i.GetReal() != 42 {
		t.Fatalf("GetReal = %v", i.GetReal())
	}
	if i.GetStr(true) != "42" {
		t.Fatalf("GetStr = %q", i.GetStr(true))
	}

	r := NewReal(3.0)
	if r.GetInt() != 3 {
		t.Fatalf("GetInt = %v", r.GetInt())
	}

	s := NewStr("-17")
	if s.GetInt() != -17 {
		t.Fatalf("GetInt = %v, want -17", s.GetInt())
	}
	if s.GetReal() != -17 {
		t.Fatalf("GetReal = %v, want -17", s.GetReal())
	}
}

func TestDivisionByZero(t *testing.T) {
	_, err := BinOp("/", NewInt(1), NewInt(0))
	if err == nil {
		t.Fatal("expected division by zero error")
	}
}

func TestComparisonsReturnMinusOneOrZero(t *testing.T) {
	v, err := BinOp("=", NewInt(5), NewInt(5))
	if err != nil {
		t.Fatal(err)
	}
	if v.GetInt() != -1 {
		t.Fatalf("true comparison = %d, want -1", v.GetInt())
	}
	v, err = BinOp("=", NewInt(5), NewInt(6))
	if err != nil {
		t.Fatal(err)
	}
	if v.GetInt() != 0 {
		t.Fatalf("false comparison = %d, want 0", v.GetInt())
	}
}

func TestMixedIntRealSoftPromotion(t *testing.T) {
	v, err := BinOp("+", NewInt(2), NewReal(0.5))
	if err != nil {
		t.Fatal(err)
	}
	r, ok := v.(*Real)
	if !ok {
		t.Fatalf("result type = %T, want *Real", v)
	}
	if r.V != 2.5 {
		t.Fatalf("value = %v, want 2.5", r.V)
	}
}

func TestPowHardPromotesToReal(t *testing.T) {
	v, err := BinOp("**", NewInt(2), NewInt(10))
	if err != nil {
		t.Fatal(err)
	}
	r, ok := v.(*Real)
	if !ok {
		t.Fatalf("result type = %T, want *Real", v)
	}
	if r.V != 1024 {
		t.Fatalf("value = %v, want 1024", r.V)
	}
}

func TestBitwiseDemotesReal(t *testing.T) {
	v, err := BinOp("AND", NewReal(6.0), NewInt(3))
	if err != nil {
		t.Fatal(err)
	}
	if v.GetInt() != 2 {
		t.Fatalf("6 AND 3 = %d, want 2", v.GetInt())
	}
}

func TestStringConcatAndCompare(t *testing.T) {
	v, err := BinOp("+", NewStr("foo"), NewStr("bar"))
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "foobar" {
		t.Fatalf("concat = %q", v.String())
	}
	v, err = BinOp("<", NewStr("ab"), NewStr("abc"))
	if err != nil {
		t.Fatal(err)
	}
	if v.GetInt() != -1 {
		t.Fatalf("\"ab\" < \"abc\" = %d, want -1 (shorter is less)", v.GetInt())
	}
}

func TestAssignBaseTypeRejectsStrToInt(t *testing.T) {
	if err := AssignBaseType(NewInt(0), NewStr("x")); err == nil {
		t.Fatal("expected type mismatch assigning Str to Int")
	}
	if err := AssignBaseType(NewReal(0), NewInt(1)); err != nil {
		t.Fatalf("Int->Real assignment should be allowed: %v", err)
	}
}

func TestStaticArrayBoundsAndOffset(t *testing.T) {
	a, err := NewStaticArray(ElemInt, []int{3, 4, 5})
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Cells) != 60 {
		t.Fatalf("cells = %d, want 60", len(a.Cells))
	}
	v, err := a.At([]Value{NewInt(1), NewInt(2), NewInt(3)})
	if err != nil {
		t.Fatal(err)
	}
	if v.GetInt() != 0 {
		t.Fatalf("default cell = %d, want 0", v.GetInt())
	}
	if _, err := a.At([]Value{NewInt(5), NewInt(0), NewInt(0)}); err == nil {
		t.Fatal("expected out-of-range error")
	}
}

func TestDynamicArrayGrows(t *testing.T) {
	a := NewDynamicArray(ElemInt, 1)
	v, err := a.At(10)
	if err != nil {
		t.Fatal(err)
	}
	if v.GetInt() != 0 {
		t.Fatalf("default cell = %d, want 0", v.GetInt())
	}
	if a.Filled != 11 {
		t.Fatalf("Filled = %d, want 11", a.Filled)
	}
}

func TestAssocArrayInsertionOrder(t *testing.T) {
	a := NewAssocArray(ElemInt)
	c1, err := a.At(NewStr("x"))
	if err != nil {
		t.Fatal(err)
	}
	c1.SetInt(7)
	c2, err := a.At(NewStr("x"))
	if err != nil {
		t.Fatal(err)
	}
	if c2.GetInt() != 7 {
		t.Fatalf("expected hit to return existing cell with value 7, got %d", c2.GetInt())
	}
	if _, err := a.At(NewStr("y")); err != nil {
		t.Fatal(err)
	}
	if a.Filled != 2 {
		t.Fatalf("Filled = %d, want 2", a.Filled)
	}
}

func TestFunctionCallArityAndHandler(t *testing.T) {
	fn := NewFunction(FuncBuiltin, "DOUBLE", 1, 1, func(call *CallArgs) error {
		call.Results = append(call.Results, NewInt(call.Args[0].GetInt()*2))
		return nil
	})
	res, err := fn.Call([]Value{NewInt(21)})
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 || res[0].GetInt() != 42 {
		t.Fatalf("res = %v", res)
	}
	if _, err := fn.Call(nil); err == nil {
		t.Fatal("expected arity error calling with 0 args")
	}
}
