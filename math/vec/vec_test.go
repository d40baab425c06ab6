// SPDX-License-Identifier: GPL-2.0-or-later

package vec

import (
	"testing"
)

var (
	NULL = Vec3{}
)

func TestIdx(t *testing.T) {
	v := Vec3{1, 2, 3}
	if v.Idx(0) != 1 || v.Idx(1) != 2 || v.Idx(2) != 3 {
		t.Errorf("Idx of %v does not follow x,y,z", v)
	}
	if FromArray([3]float32{1, 2, 3}) != v || FromInt16([3]int16{1, 2, 3}) != v {
		t.Errorf("FromArray or FromInt16 do not follow x,y,z")
	}
}

func TestLength(t *testing.T) {
	if NULL.Length() != 0 {
		t.Errorf("Null vector has not 0 length")
	}
	for _, v := range []Vec3{{2, 2, 1}, {2, 1, 2}, {1, 2, 2}} {
		if v.Length() != 3 {
			t.Errorf("%v Length is not 3", v)
		}
	}
}

func TestSub(t *testing.T) {
	v := Vec3{1, 2, 3}
	if got := Sub(v, v); got != NULL {
		t.Errorf("Sub(%v,%v) = %v want %v", v, v, got, NULL)
	}
	v2 := Vec3{9, 7, 5}
	got := Sub(v2, v)
	want := Vec3{8, 5, 2}
	if got != want {
		t.Errorf("Sub(%v,%v) = %v want %v", v2, v, got, want)
	}
}

func TestNormalize(t *testing.T) {
	if got := NULL.Normalize(); got != NULL {
		t.Errorf("Normalize(NULL) = %v", got)
	}
	v := Vec3{0, 0, 5}
	if got := v.Normalize(); got != (Vec3{0, 0, 1}) {
		t.Errorf("Normalize(%v) = %v", v, got)
	}
}

func TestCross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	if got := Cross(x, y); got != (Vec3{0, 0, 1}) {
		t.Errorf("Cross(%v,%v) = %v", x, y, got)
	}
	if got := Dot(x, y); got != 0 {
		t.Errorf("Dot(%v,%v) = %v", x, y, got)
	}
}

func TestLerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{10, 20, 30}
	if got := Lerp(a, b, 0.5); got != (Vec3{5, 10, 15}) {
		t.Errorf("Lerp(%v,%v,0.5) = %v", a, b, got)
	}
}

func TestMinMax(t *testing.T) {
	mi, ma := MinMax(Vec3{1, 5, 3}, Vec3{4, 2, 6})
	if mi != (Vec3{1, 2, 3}) || ma != (Vec3{4, 5, 6}) {
		t.Errorf("MinMax = %v %v", mi, ma)
	}
}
