package scene

import (
	"math"
	"testing"
)

func TestFindByNameDepthFirst(t *testing.T) {
	root := NewNode("Scene")
	a := root.AddChild(NewMesh("A"))
	deep := a.AddChild(NewMesh("Target"))
	root.AddChild(NewMesh("Target")) // sibling duplicate, later in DFS order

	got := root.FindByName("Target")
	if got != deep {
		t.Fatalf("expected first depth-first match (nested under A), got %p", got)
	}
	if root.FindByName("Scene") != root {
		t.Fatal("root should match its own name")
	}
	if root.FindByName("Missing") != nil {
		t.Fatal("missing name should return nil")
	}
}

func TestWorldPosition(t *testing.T) {
	root := NewNode("Scene")
	root.Position = Vec3{1, 0, 0}
	group := root.AddChild(NewNode("Group"))
	group.Position = Vec3{0, 2, 0}
	leaf := group.AddChild(NewMesh("Leaf"))
	leaf.Position = Vec3{0, 0, 3}

	got := leaf.WorldPosition()
	want := Vec3{1, 2, 3}
	if got != want {
		t.Fatalf("WorldPosition = %v, want %v", got, want)
	}
}

func TestEachMesh(t *testing.T) {
	root := NewNode("Scene")
	root.AddChild(NewMesh("A"))
	group := root.AddChild(NewNode("Group"))
	group.AddChild(NewMesh("B"))

	var names []string
	root.EachMesh(func(n *Node) { names = append(names, n.Name) })
	if len(names) != 2 || names[0] != "A" || names[1] != "B" {
		t.Fatalf("EachMesh visited %v", names)
	}
}

func TestVec3Math(t *testing.T) {
	v := Vec3{3, 0, 4}
	if v.Length() != 5 {
		t.Fatalf("Length = %v", v.Length())
	}
	n := v.Normalize()
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Fatalf("Normalize length = %v", n.Length())
	}
	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Fatal("zero vector should normalize to itself")
	}
	if got := (Vec3{0, 0, 0}).Lerp(Vec3{2, 4, 6}, 0.5); got != (Vec3{1, 2, 3}) {
		t.Fatalf("Lerp = %v", got)
	}
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{in: "#ff0000", want: Color{1, 0, 0}},
		{in: "#F80", want: Color{1, 136.0 / 255, 0}},
		{in: "red", want: Color{1, 0, 0}},
		{in: " White ", want: Color{1, 1, 1}},
		{in: "#12345", wantErr: true},
		{in: "notacolor", wantErr: true},
		{in: "#gg0000", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseColor(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseColor(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tc.in, err)
			continue
		}
		if math.Abs(got.R-tc.want.R) > 1e-9 || math.Abs(got.G-tc.want.G) > 1e-9 || math.Abs(got.B-tc.want.B) > 1e-9 {
			t.Errorf("ParseColor(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
