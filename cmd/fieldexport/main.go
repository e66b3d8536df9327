// Package main writes the tree and exploded target fields to CSV.
package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/tinsel/config"
	"github.com/pthm-cable/tinsel/field"
	"github.com/pthm-cable/tinsel/game"
)

// row is one particle's targets in both fields.
type row struct {
	Index int     `csv:"index"`
	TreeX float64 `csv:"tree_x"`
	TreeY float64 `csv:"tree_y"`
	TreeZ float64 `csv:"tree_z"`
	ExpX  float64 `csv:"exploded_x"`
	ExpY  float64 `csv:"exploded_y"`
	ExpZ  float64 `csv:"exploded_z"`
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	output := flag.String("output", "fields.csv", "Output CSV path")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	count := flag.Int("count", 0, "Particle count (0 = use config)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	n := cfg.Particles.Count
	if *count > 0 {
		n = *count
	}
	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}

	f, err := field.Generate(n, rand.New(rand.NewSource(s)), game.FieldParams(cfg))
	if err != nil {
		log.Fatalf("generating fields: %v", err)
	}

	rows := make([]row, f.Len())
	for i := range rows {
		t, e := f.Tree()[i], f.Exploded()[i]
		rows[i] = row{
			Index: i,
			TreeX: t.X, TreeY: t.Y, TreeZ: t.Z,
			ExpX: e.X, ExpY: e.Y, ExpZ: e.Z,
		}
	}

	out, err := os.Create(*output)
	if err != nil {
		log.Fatalf("creating output: %v", err)
	}
	defer out.Close()

	if err := gocsv.MarshalFile(&rows, out); err != nil {
		log.Fatalf("writing csv: %v", err)
	}
	log.Printf("wrote %d particles to %s (seed %d)", len(rows), *output, s)
}
