package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/atomic"

	ng "github.com/sharnoff/neurograph"
	"github.com/sharnoff/neurograph/activations"
	"github.com/sharnoff/neurograph/criteria"
	"github.com/sharnoff/neurograph/initializers"
	"github.com/sharnoff/neurograph/storage"
	"github.com/sharnoff/neurograph/utils"
)

// Usage: perceptron [loops [alpha [sigma [learn_rate [verbose [rng_seed]]]]]]
//
// Trains a small feed-forward network to recognise near-diagonal points and exits with the
// number of failed checks (0 on success).

const (
	inputD  int = 2
	hiddenD int = 2
	outputD int = 1

	trainCnt int = 100
	testCnt  int = 500

	// where to save/load the trained network
	dbPath  string = "perceptron.db"
	netName string = "perceptron"
)

type config struct {
	loops     int
	alpha     float64
	sigma     float64
	learnRate float64
	verbose   bool
	rngSeed   int64
}

func parseArgs(args []string) config {
	c := config{
		loops:     1000,
		alpha:     0.1,
		sigma:     1e-10,
		learnRate: 0.95,
		rngSeed:   time.Now().Unix(),
	}

	var err error
	if len(args) > 0 {
		if c.loops, err = strconv.Atoi(args[0]); err != nil {
			panic("bad loops: " + err.Error())
		}
	}
	if len(args) > 1 {
		if c.alpha, err = strconv.ParseFloat(args[1], 64); err != nil {
			panic("bad alpha: " + err.Error())
		}
	}
	if len(args) > 2 {
		if c.sigma, err = strconv.ParseFloat(args[2], 64); err != nil {
			panic("bad sigma: " + err.Error())
		}
	}
	if len(args) > 3 {
		if c.learnRate, err = strconv.ParseFloat(args[3], 64); err != nil {
			panic("bad learn_rate: " + err.Error())
		}
	}
	if len(args) > 4 {
		c.verbose = args[4] == "verbose"
	}
	if len(args) > 5 {
		if c.rngSeed, err = strconv.ParseInt(args[5], 10, 64); err != nil {
			panic("bad rng_seed: " + err.Error())
		}
	}

	return c
}

// target is the function the network learns: whether the two coordinates nearly coincide.
func target(x []float64) []float64 {
	d := x[0] - x[1]
	if d*d < 0.01 {
		return []float64{1}
	}

	return []float64{0}
}

// normalise divides each coordinate by the squared norm of the vector.
func normalise(x []float64) []float64 {
	sum := 0.0
	for _, xi := range x {
		sum += xi * xi
	}

	nx := make([]float64, len(x))
	for i := range x {
		nx[i] = x[i] / sum
	}

	return nx
}

func makeSamples(n int, rng ng.Initializer) []ng.Sample {
	set := make([]ng.Sample, 0, n)
	for i := 0; i < n; i++ {
		x := make([]float64, inputD)
		for j := range x {
			x[j] = rng()
		}

		x = normalise(x)
		set = append(set, ng.Sample{Inputs: x, Targets: target(x)})
	}

	return set
}

func train(ff *ng.FeedForward, set []ng.Sample, c config) (en2 float64) {
	training, err := ff.Training()
	if err != nil {
		panic(err.Error())
	}

	crit := criteria.Adaptive(c.sigma, c.alpha)

	if c.verbose {
		fmt.Println("Training samples:")
		for _, s := range set {
			fmt.Printf("f%v == %v\n", s.Inputs, s.Targets)
		}
	}

	en2Order := -1.0
	for i := 0; i < c.loops; i++ {
		if en2, err = training.TrainBatch(set, crit); err != nil {
			panic(err.Error())
		}

		// print each order-of-magnitude improvement or regression
		frac := en2 / en2Order
		if c.verbose || frac <= 0.1 || frac >= 10 {
			fmt.Printf("Loop %d: |err|^2 == %v\n", i+1, en2)
			en2Order = en2
		}

		// batch training: once there was no update, there'll never be one again
		if !crit.Updated() {
			break
		}
	}

	return en2
}

type testResult struct {
	sample ng.Sample
	outs   []float64
	errN2  float64
	errRN2 float64
	failed bool
}

// test evaluates the network on fresh samples in parallel, one evaluator per sample.
func test(ff *ng.FeedForward, set []ng.Sample, c config) int {
	results := make([]testResult, len(set))
	failCnt := atomic.NewInt64(0)

	utils.MultiThread(0, len(set), func(i int) {
		s := set[i]

		outs, err := ff.Function().Run(s.Inputs)
		if err != nil {
			panic(err.Error())
		}

		r := testResult{sample: s, outs: outs}
		for j := range outs {
			err := outs[j] - s.Targets[j]
			rounded := 0.0
			if outs[j] >= 0.5 {
				rounded = 1
			}
			errR := rounded - s.Targets[j]

			r.errN2 += err * err
			r.errRN2 += errR * errR
		}

		r.failed = r.errRN2 > c.sigma*10
		if r.failed {
			failCnt.Inc()
		}

		results[i] = r
	}, 16, 2)

	suffix := " (only failed)"
	if c.verbose {
		suffix = ""
	}
	fmt.Printf("Test samples%s:\n", suffix)

	for _, r := range results {
		if !c.verbose && !r.failed {
			continue
		}

		fmt.Printf("x == %v\nf(x) == %v\nnet_f(x) == %v\n|err|^2 == %v\nRounded output |err|^2 == %v\n",
			r.sample.Inputs, r.sample.Targets, r.outs, r.errN2, r.errRN2)
		if r.failed {
			fmt.Println("Failed to generalise")
		}
	}

	return int(failCnt.Load())
}

// saveLoadCheck persists the trained network to SQLite, loads it back, and verifies the copy
// still evaluates.
func saveLoadCheck(ff *ng.FeedForward, probe []float64) {
	ctx := context.Background()

	store := storage.NewSQLiteStore(dbPath)
	if err := store.Init(ctx); err != nil {
		panic(err.Error())
	}
	defer store.Close()

	fmt.Println("Saving...")
	if err := store.SaveFeedForward(ctx, netName, ff); err != nil {
		panic(err.Error())
	}

	fmt.Println("Loading...")
	loaded, ok, err := store.GetFeedForward(ctx, netName)
	if err != nil {
		panic(err.Error())
	}
	if !ok {
		panic("saved network not found")
	}

	want, err := ff.Function().Run(probe)
	if err != nil {
		panic(err.Error())
	}

	got, err := loaded.Function().Run(probe)
	if err != nil {
		panic(err.Error())
	}

	fmt.Printf("Reloaded check: %v == %v\n", got, want)
}

func main() {
	c := parseArgs(os.Args[1:])
	fmt.Fprintf(os.Stderr, "RNG seeded with %d\n", c.rngSeed)

	fmt.Println("Perceptron NN test BEGIN")
	errorCnt := 0

	rng, err := initializers.Uniform().Range(-10, 10).Seed(c.rngSeed).Build()
	if err != nil {
		panic(err.Error())
	}

	ff, err := ng.NewFeedForward(
		[]int{inputD, hiddenD, outputD}, activations.Logistic(0, 1, 15), rng, ng.Bias)
	if err != nil {
		panic(err.Error())
	}

	fmt.Println("Initial learning factor:", c.alpha)
	fmt.Println("Acceptable error:", c.sigma)
	fmt.Println("Acceptable learn rate:", c.learnRate)

	trainSet := makeSamples(trainCnt, rng)
	en2 := train(ff, trainSet, c)

	if en2 > c.sigma {
		fmt.Println("Failed to learn")
		errorCnt++
	}

	testSet := makeSamples(testCnt, rng)
	failCnt := test(ff, testSet, c)

	successRate := 1 - float64(failCnt)/float64(testCnt)
	fmt.Printf("Successful on %v %% of test samples\n", successRate*100)

	if c.learnRate > successRate {
		errorCnt++
	}

	if errorCnt == 0 {
		saveLoadCheck(ff, trainSet[0].Inputs)
	}

	fmt.Println("Network:")
	ff.WriteTo(os.Stdout)

	fmt.Println("Perceptron NN test END")
	fmt.Fprintln(os.Stderr, "Exit code:", errorCnt)
	os.Exit(errorCnt)
}
