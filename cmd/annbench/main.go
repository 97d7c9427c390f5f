package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"sort"

	"github.com/cheggaaa/pb/v3"
	"github.com/gasparian/lsh-index-go/annbench"
	cm "github.com/gasparian/lsh-index-go/common"
	"github.com/gasparian/lsh-index-go/lsh"
	"github.com/gasparian/lsh-index-go/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"gonum.org/v1/hdf5"
)

var logger = cm.GetNewLogger()

func newRootCmd() *cobra.Command {
	config, err := ParseEnv()
	if err != nil {
		logger.Err.Fatal(err)
	}
	var verbose bool
	cmd := &cobra.Command{
		Use:   "annbench",
		Short: "Measure lsh index recall on an ann-benchmarks dataset",
		Long: `Builds the lsh index from the "train" part of an ann-benchmarks hdf5 file,
queries it with the "test" vectors and compares candidates, ranked by cosine
distance, with the "neighbors" ground truth.

Index params are read from N_PLANES, N_TABLES, MAX_NN and SEED env variables.

Examples:
  annbench --dataset ./test-data/glove-25-angular.hdf5
  N_TABLES=20 annbench --dataset ./test-data/glove-25-angular.hdf5 --limit 1000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(config.DatasetPath) == 0 {
				return errors.New("dataset path is required")
			}
			err := run(config, verbose)
			if err != nil {
				logger.Err.Println(err)
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&config.DatasetPath, "dataset", "d", "", "path to the hdf5 dataset")
	cmd.Flags().IntVarP(&config.Limit, "limit", "l", 0, "max number of test vectors, 0 means all")
	cmd.Flags().StringVar(&config.MetricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log bucket collisions")
	return cmd
}

func run(config *Config, verbose bool) error {
	logger.Info.Println("Opening the hdf5 bench dataset...")
	f, err := hdf5.OpenFile(config.DatasetPath, hdf5.F_ACC_RDONLY)
	if err != nil {
		return err
	}
	defer f.Close()

	train, err := annbench.GetVectorsFromHDF5(f, "train")
	if err != nil {
		return err
	}
	test, err := annbench.GetVectorsFromHDF5(f, "test")
	if err != nil {
		return err
	}
	neighbors, err := annbench.GetNeighborsFromHDF5(f, "neighbors")
	if err != nil {
		return err
	}
	if len(train) == 0 || len(test) == 0 {
		return errors.New("dataset is empty")
	}
	test, err = limitTestSet(test, neighbors, config.Limit)
	if err != nil {
		return err
	}
	logger.Info.Printf("Train set: %v, test set: %v", len(train), len(test))

	reg := prometheus.NewRegistry()
	collector, err := metrics.NewCollisionCollector(reg)
	if err != nil {
		return err
	}
	if len(config.MetricsAddr) > 0 {
		go serveMetrics(config.MetricsAddr, reg)
	}
	var observer lsh.CollisionObserver = collector
	if verbose {
		observer = lsh.MultiObserver{collector, lsh.LogObserver{Logger: logger}}
	}

	config.Index.Dims = len(train[0])
	index, err := lsh.New(
		config.Index,
		lsh.WithSource(rand.NewPCG(config.Seed, config.Seed)),
		lsh.WithObserver(observer),
		lsh.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	logger.Info.Println("Populating index...")
	ids := make([]string, len(train))
	vectors := make(map[string][]float64, len(train))
	indicesMap := make(map[string]int, len(train))
	bar := pb.StartNew(len(train))
	for i, vec := range train {
		bar.Increment()
		ids[i] = cm.GetRandomID()
		vectors[ids[i]] = vec
		indicesMap[ids[i]] = i
		if err := index.Insert(vec, ids[i]); err != nil {
			bar.Finish()
			return err
		}
	}
	bar.Finish()

	logger.Info.Println("Making predictions...")
	precision, recall, avgCandidates, avgHamming := 0.0, 0.0, 0.0, 0.0
	ranked := 0
	bar = pb.StartNew(len(test))
	for i, vec := range test {
		bar.Increment()
		candidates, err := index.Query(vec)
		if err != nil {
			bar.Finish()
			return err
		}
		avgCandidates += float64(candidates.Len())
		closest := annbench.Rank(candidates.Sorted(), vectors, vec, config.MaxNN)
		closestPointsArr := make([]int, len(closest))
		for j, cl := range closest {
			closestPointsArr[j] = indicesMap[cl.ID]
		}
		sort.Ints(closestPointsArr)
		p, r := annbench.PrecisionRecall(closestPointsArr, neighbors[i])
		precision += p
		recall += r

		if len(closest) == 0 {
			continue
		}
		// how far the best candidate lands from the query in signature space
		queryHashes, err := index.Hashes(vec)
		if err != nil {
			bar.Finish()
			return err
		}
		bestHashes, err := index.Hashes(vectors[closest[0].ID])
		if err != nil {
			bar.Finish()
			return err
		}
		dist, err := meanHamming(queryHashes, bestHashes)
		if err != nil {
			bar.Finish()
			return err
		}
		avgHamming += dist
		ranked++
	}
	bar.Finish()
	n := float64(len(test))
	logger.Info.Printf("Precision: %v, Recall: %v, Avg candidates: %v", precision/n, recall/n, avgCandidates/n)
	if ranked > 0 {
		logger.Info.Printf("Avg hamming distance to the best candidate: %v of %v bits", avgHamming/float64(ranked), config.Index.NPlanes)
	}
	for i, st := range index.Stats().Tables {
		logger.Info.Printf("Table %v: %v buckets, max bucket size %v", i, st.Buckets, st.MaxBucketSize)
	}
	return nil
}

// limitTestSet keeps first limit test vectors and checks that each of them has ground truth
func limitTestSet(test [][]float64, neighbors [][]int, limit int) ([][]float64, error) {
	if limit > 0 && limit < len(test) {
		test = test[:limit]
	}
	if len(neighbors) < len(test) {
		return nil, fmt.Errorf("ground truth has %v rows for %v test vectors", len(neighbors), len(test))
	}
	return test, nil
}

// meanHamming averages hamming distances between signatures of the same tables
func meanHamming(a, b []lsh.Signature) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("got %v and %v tables", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, nil
	}
	sum := 0
	for i := range a {
		d, err := a[i].Hamming(b[i])
		if err != nil {
			return 0, err
		}
		sum += d
	}
	return float64(sum) / float64(len(a)), nil
}

func serveMetrics(addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", cm.Decorate(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), cm.Timer(logger)))
	logger.Info.Printf("Serving metrics on %v", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Warn.Println(err)
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
