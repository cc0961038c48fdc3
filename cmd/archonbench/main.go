// Profiling:
// go build ./cmd/archonbench
// go tool pprof -http=":8000" -nodefraction=0.001 ./archonbench mem.pprof
package main

import (
	"github.com/bitshard-dev/archon"
	"github.com/pkg/profile"
)

type position struct {
	X, Y float64
}

type velocity struct {
	X, Y float64
}

func main() {
	rounds := 50
	iters := 2000
	numEntities := 1000

	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, iters, numEntities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	for range rounds {
		registry := archon.NewComponentRegistry()
		archon.RegisterComponent[position](registry)
		archon.RegisterComponent[velocity](registry)

		world := archon.NewWorld(registry)

		for range iters {
			entities := make([]archon.Entity, 0, numEntities)
			for i := 0; i < numEntities; i++ {
				e := archon.Insert2(world, world.SpawnEmpty(),
					position{X: float64(i)}, velocity{X: 1, Y: 1})
				entities = append(entities, e)
			}

			archon.Query2(world, func(_ archon.Entity, pos *position, vel *velocity) {
				pos.X += vel.X
				pos.Y += vel.Y
			})

			for _, e := range entities {
				world.Despawn(e)
			}
		}
	}
}
