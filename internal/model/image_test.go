package model

import (
	"reflect"
	"testing"
)

func TestImageObjectKeys(t *testing.T) {
	img := Image{ObjectKey: "u1/a.webp", Variants: Variants{{ObjectKey: "u1/a_320.webp"}, {ObjectKey: "u1/a_640.webp"}}}
	want := []string{"u1/a.webp", "u1/a_320.webp", "u1/a_640.webp"}
	if got := img.ObjectKeys(); !reflect.DeepEqual(got, want) {
		t.Errorf("ObjectKeys() = %v; want %v", got, want)
	}
}

func TestVariantsScan(t *testing.T) {
	var v Variants
	if err := v.Scan([]byte(`[{"object_key":"k","size_bytes":3,"width":2,"height":1}]`)); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(v) != 1 || v[0].ObjectKey != "k" || v[0].Width != 2 {
		t.Errorf("Scan = %+v", v)
	}
	if err := v.Scan(nil); err != nil || v != nil {
		t.Errorf("Scan(nil) = %v, %v; want nil, nil", v, err)
	}
	if err := v.Scan(42); err == nil {
		t.Error("Scan(int) should fail")
	}
}

func TestVariantsValue_Nil(t *testing.T) {
	got, err := Variants(nil).Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if string(got.([]byte)) != "[]" {
		t.Errorf("Value() = %s; want []", got)
	}
}

func TestParseTagOrder(t *testing.T) {
	cases := map[string]TagOrder{"": TagOrderUsage, "usage": TagOrderUsage, "name": TagOrderName}
	for in, want := range cases {
		if got, ok := ParseTagOrder(in); !ok || got != want {
			t.Errorf("ParseTagOrder(%q) = %q, %v; want %q", in, got, ok, want)
		}
	}
	if _, ok := ParseTagOrder("date"); ok {
		t.Error("ParseTagOrder(date) should fail")
	}
}
