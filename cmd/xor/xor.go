package main

import (
	"fmt"
	"os"

	ng "github.com/sharnoff/neurograph"
	"github.com/sharnoff/neurograph/activations"
	"github.com/sharnoff/neurograph/criteria"
	"github.com/sharnoff/neurograph/initializers"
)

// Trains a small feed-forward network on XOR with on-line gradient descent, saves it to a text
// file, loads it back, and verifies the copy still computes the same function.

const (
	statusFrequency int = 500

	// main hyperparameters
	learnRate     float64 = 2
	sigma         float64 = 1e-3
	maxIterations int     = 20000
	rngSeed       int64   = 20

	// where to save/load the network
	path string = "xor.nn"
)

var dataset = []ng.Sample{
	{Inputs: []float64{-1, -1}, Targets: []float64{0}},
	{Inputs: []float64{-1, 1}, Targets: []float64{1}},
	{Inputs: []float64{1, -1}, Targets: []float64{1}},
	{Inputs: []float64{1, 1}, Targets: []float64{0}},
}

func setup() *ng.FeedForward {
	fmt.Println("Setting up network...")

	rng, err := initializers.Uniform().Range(-1, 1).Seed(rngSeed).Build()
	if err != nil {
		panic(err.Error())
	}

	ff, err := ng.NewFeedForward([]int{2, 2, 1}, activations.Logistic(0, 1, 1), rng, ng.Bias)
	if err != nil {
		panic(err.Error())
	}

	fmt.Println("Done!")
	return ff
}

func train(ff *ng.FeedForward) {
	training, err := ff.Training()
	if err != nil {
		panic(err.Error())
	}

	crit := criteria.Constant(sigma, learnRate)

	fmt.Println("Starting training...")
	for i := 0; i < maxIterations; i++ {
		worst := 0.0
		for _, s := range dataset {
			en2, err := training.TrainOne(s.Inputs, s.Targets, crit)
			if err != nil {
				panic(err.Error())
			}

			if en2 > worst {
				worst = en2
			}
		}

		if (i+1)%statusFrequency == 0 {
			fmt.Printf("Iteration %d: worst |err|^2 == %v\n", i+1, worst)
		}

		if worst <= sigma {
			fmt.Printf("Converged after %d iterations\n", i+1)
			break
		}
	}
	fmt.Println("Done training!")
}

func test(ff *ng.FeedForward) {
	fmt.Println("Testing...")

	f := ff.Function()
	failed := 0

	for _, s := range dataset {
		outs, err := f.Run(s.Inputs)
		if err != nil {
			panic(err.Error())
		}

		rounded := 0.0
		if outs[0] >= 0.5 {
			rounded = 1
		}

		fmt.Printf("f%v == %v (rounded %v, expected %v)\n", s.Inputs, outs[0], rounded, s.Targets[0])
		if rounded != s.Targets[0] {
			failed++
		}
	}

	if failed != 0 {
		panic(fmt.Sprintf("%d of %d samples misclassified", failed, len(dataset)))
	}
	fmt.Println("Done!")
}

func save(ff *ng.FeedForward) {
	fmt.Println("Saving...")

	f, err := os.Create(path)
	if err != nil {
		panic(err.Error())
	}
	defer f.Close()

	if _, err := ff.WriteTo(f); err != nil {
		panic(err.Error())
	}
	fmt.Println("Done!")
}

func load() *ng.FeedForward {
	fmt.Println("Loading...")

	f, err := os.Open(path)
	if err != nil {
		panic(err.Error())
	}
	defer f.Close()

	ff, err := ng.ParseFeedForward(f)
	if err != nil {
		panic(err.Error())
	}

	fmt.Println("Done!")
	return ff
}

func main() {
	ff := setup()

	train(ff)
	test(ff)
	save(ff)

	ff = load()
	train(ff)
	test(ff)
}
