/*
Package dualmesh grows a 2D point set one point at a time and keeps the
Delaunay triangulation and its Voronoi dual in sync at every step, so
the construction can be rendered as an animation.

The package provides a command line utility supporting various customization options.
Check the supported commands by typing:

	$ dualmesh --help

Example to grow a mesh point by point and inspect each state:

	package main

	import (
		"fmt"

		"github.com/esimov/dualmesh"
	)

	func main() {
		mesh, err := dualmesh.New(dualmesh.DefaultSeedPoints())
		if err != nil {
			fmt.Printf("Error seeding the mesh: %s", err.Error())
			return
		}

		mesh, err = mesh.AddPoint(dualmesh.Point{X: 0.5, Y: 0.5})
		if err != nil {
			fmt.Printf("Error growing the mesh: %s", err.Error())
			return
		}

		tri := mesh.Triangulation()
		vor := mesh.Voronoi()
		fmt.Println(len(tri.Triangles), "triangles,", len(vor.Cells), "cells")
	}

Example to render the growth as an animated GIF:

	package main

	import (
		"context"
		"fmt"

		"github.com/esimov/dualmesh"
	)

	func main() {
		mesh, err := dualmesh.New(dualmesh.DefaultSeedPoints())
		if err != nil {
			fmt.Printf("Error seeding the mesh: %s", err.Error())
			return
		}

		src := dualmesh.NewRandomSource(100, dualmesh.UnitSquare(), 42)
		sink := dualmesh.NewGIFSink("mesh.gif", dualmesh.DefaultInterval)
		player := &dualmesh.Player{Interval: -1}

		if _, err := player.Run(context.Background(), mesh, src, sink); err != nil {
			fmt.Printf("Error animating the mesh: %s", err.Error())
			return
		}
		if err := sink.Close(); err != nil {
			fmt.Printf("Error writing the animation: %s", err.Error())
		}
	}
*/
package dualmesh
