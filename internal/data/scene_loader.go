// Package data loads the host-side set definitions the direction engine
// runs against. Scene files are YAML; the loader builds the mutable
// graph once at boot and hands it to the engine context.
package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cinedir/engine/internal/scene"
)

// VecDef is an {x,y,z} triple in a scene file. Omitted axes are zero.
type VecDef struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v VecDef) vec3() scene.Vec3 {
	return scene.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// NodeDef is one object in a scene file. Kind "mesh" gets a material;
// anything else is a plain grouping node. Scale defaults to unit,
// opacity to 1, lit to true.
type NodeDef struct {
	Name        string    `yaml:"name"`
	Kind        string    `yaml:"kind"`
	Position    VecDef    `yaml:"position"`
	Rotation    VecDef    `yaml:"rotation"`
	Scale       *VecDef   `yaml:"scale"`
	Color       string    `yaml:"color"`
	Opacity     *float64  `yaml:"opacity"`
	Lit         *bool     `yaml:"lit"`
	Transparent bool      `yaml:"transparent"`
	Children    []NodeDef `yaml:"children"`
}

// SceneDef is the top-level scene file shape.
type SceneDef struct {
	Name  string    `yaml:"name"`
	Nodes []NodeDef `yaml:"nodes"`
}

// LoadSceneFile reads a YAML scene definition and builds the graph.
func LoadSceneFile(path string) (*scene.Node, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene file: %w", err)
	}
	var def SceneDef
	if err := yaml.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("parse scene file: %w", err)
	}
	return BuildScene(def)
}

// BuildScene converts a scene definition into a live node graph rooted
// at a node named after the definition ("Scene" when unnamed).
func BuildScene(def SceneDef) (*scene.Node, error) {
	name := def.Name
	if name == "" {
		name = "Scene"
	}
	root := scene.NewNode(name)
	for i := range def.Nodes {
		child, err := buildNode(&def.Nodes[i])
		if err != nil {
			return nil, err
		}
		root.AddChild(child)
	}
	return root, nil
}

func buildNode(def *NodeDef) (*scene.Node, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("scene node missing name")
	}

	var n *scene.Node
	switch def.Kind {
	case "mesh", "":
		n = scene.NewMesh(def.Name)
	case "group":
		n = scene.NewNode(def.Name)
	default:
		return nil, fmt.Errorf("node %s: unknown kind %q", def.Name, def.Kind)
	}

	n.Position = def.Position.vec3()
	n.Rotation = def.Rotation.vec3()
	if def.Scale != nil {
		n.Scale = def.Scale.vec3()
	}

	if n.IsMesh {
		if def.Color != "" {
			c, err := scene.ParseColor(def.Color)
			if err != nil {
				return nil, fmt.Errorf("node %s: %w", def.Name, err)
			}
			n.Material.Color = c
		}
		if def.Opacity != nil {
			n.Material.Opacity = *def.Opacity
			n.Material.Transparent = *def.Opacity < 1
		}
		if def.Transparent {
			n.Material.Transparent = true
		}
		if def.Lit != nil {
			n.Material.Lit = *def.Lit
		}
	}

	for i := range def.Children {
		child, err := buildNode(&def.Children[i])
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}
	return n, nil
}
