package main

import (
	"bufio"
	"brc/record"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/pingcap/go-ycsb/pkg/generator"
)

type station struct {
	name string
	mean float64
}

var builtin = []station{
	{"Abha", 18.0}, {"Abidjan", 26.0}, {"Accra", 26.4}, {"Addis Ababa", 16.0},
	{"Adelaide", 17.3}, {"Alexandria", 20.0}, {"Amsterdam", 10.2}, {"Anchorage", 2.8},
	{"Athens", 19.2}, {"Baghdad", 22.8}, {"Bangkok", 28.6}, {"Bergen", 7.7},
	{"Bridgetown", 27.0}, {"Bulawayo", 18.9}, {"Cabo San Lucas", 23.9}, {"Conakry", 26.4},
	{"Cracow", 8.3}, {"Dikson", -11.1}, {"Dodoma", 22.7}, {"Hamburg", 9.7},
	{"Istanbul", 13.9}, {"Jakarta", 26.7}, {"Kuopio", 3.4}, {"Lhasa", 7.6},
	{"Mexicali", 23.1}, {"Nouakchott", 25.7}, {"Oslo", 5.7}, {"Palembang", 27.3},
	{"Petropavlovsk-Kamchatsky", 1.9}, {"Reykjavík", 4.3}, {"Roseau", 26.2}, {"São Paulo", 19.8},
	{"St. John's", 5.0}, {"Tromsø", 2.9}, {"Vardø", 1.3}, {"Yakutsk", -8.8},
	{"Yellowknife", -4.3}, {"Zürich", 9.3},
}

var (
	rows     int
	out      string
	seed     int64
	stations int
)

func init() {
	flag.IntVar(&rows, "rows", 1_000_000, "number of records")
	flag.StringVar(&out, "out", "measurements.txt", "output file")
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	flag.IntVar(&stations, "stations", len(builtin), "number of distinct stations")
}

func main() {
	flag.Parse()

	r := rand.New(rand.NewSource(seed))
	all := pickStations(r, max(stations, 1))

	f, err := os.Create(out)
	if err != nil {
		log.Fatalf("unable to create %s: %v", out, err)
	}
	defer f.Close()

	t := time.Now()
	if err := generate(bufio.NewWriterSize(f, 1024*1024), r, all, rows); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %d records for %d stations to %s in %s\n", rows, len(all), out, time.Since(t))
}

// pickStations returns n stations, padding the builtin list with synthetic
// ones when n exceeds it.
func pickStations(r *rand.Rand, n int) []station {
	all := make([]station, 0, n)
	all = append(all, builtin[:min(n, len(builtin))]...)
	for i := len(all); i < n; i++ {
		all = append(all, station{
			name: fmt.Sprintf("Station-%d", i),
			mean: r.Float64()*60 - 20,
		})
	}
	return all
}

// generate writes rows records, choosing stations with a scrambled zipfian
// distribution so a few keys dominate.
func generate(w *bufio.Writer, r *rand.Rand, all []station, rows int) error {
	g := generator.NewScrambledZipfian(0, int64(len(all)-1), generator.ZipfianConstant)
	buf := make([]byte, 0, 128)

	for range rows {
		s := all[g.Next(r)]
		temp := math.Max(-99.9, math.Min(99.9, s.mean+r.NormFloat64()*10))

		buf = append(buf[:0], s.name...)
		buf = append(buf, record.Delimiter)
		buf = record.Value(math.Round(temp * 10)).AppendText(buf)
		buf = append(buf, record.Terminator)
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("unable to write record: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("unable to flush records: %w", err)
	}
	return nil
}
