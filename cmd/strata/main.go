// Package main provides the strata CLI.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/strata-ml/strata/checkpoint"
	"github.com/strata-ml/strata/loader"
	"github.com/strata-ml/strata/nn"
	"github.com/strata-ml/strata/optim"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	switch os.Args[1] {
	case "version":
		fmt.Printf("strata %s\n", version)
	case "train":
		if err := runTrain(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "strata train: %v\n", err)
			os.Exit(1)
		}
	default:
		usage()
	}
}

func usage() {
	fmt.Println("strata - dense feedforward networks with hand-rolled linear algebra")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  train      Train a network on a dataset file")
	fmt.Println("")
	fmt.Println("Run 'strata train -h' for training flags.")
}

func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	var (
		dataPath    = fs.String("data", "", "dataset file (\"x1 x2,t1 t2\" lines)")
		layersSpec  = fs.String("layers", "", "comma-separated node counts, e.g. 1,64,32,1")
		actsSpec    = fs.String("activations", "", "comma-separated activations, one per non-input layer")
		optName     = fs.String("optimizer", "sgd", "optimizer: sgd, momentum, adagrad, adam")
		costName    = fs.String("cost", "leastsquares", "cost: leastsquares, meanabs")
		lr          = fs.Float64("lr", 0, "learning rate (0 = optimizer default)")
		beta        = fs.Float64("beta", 0, "momentum decay (momentum optimizer only)")
		epochs      = fs.Int("epochs", 100, "number of epochs")
		batch       = fs.Int("batch", 10, "mini-batch size")
		seed        = fs.Int64("seed", 0, "shuffle seed (0 = random)")
		outPath     = fs.String("out", "", "optional snapshot path for the trained model")
		quiet       = fs.Bool("quiet", false, "suppress per-epoch output")
		logInterval = fs.Int("log-interval", 1, "epochs between progress lines")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dataPath == "" || *layersSpec == "" || *actsSpec == "" {
		return fmt.Errorf("-data, -layers and -activations are required")
	}

	nodeCounts, err := parseLayers(*layersSpec)
	if err != nil {
		return err
	}
	activations, err := parseActivations(*actsSpec)
	if err != nil {
		return err
	}
	cost, err := parseCost(*costName)
	if err != nil {
		return err
	}
	optimizer, err := parseOptimizer(*optName, *lr, *beta)
	if err != nil {
		return err
	}

	ds, err := loader.Load(*dataPath)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded %d samples from %s.\n", ds.Len(), *dataPath)

	net, err := nn.NewSequential(nodeCounts...)
	if err != nil {
		return err
	}
	if err := net.SetActivations(activations...); err != nil {
		return err
	}
	if err := net.LoadSamples(ds.Inputs, ds.Targets); err != nil {
		return err
	}

	fmt.Println("Initiating training sequence.")
	err = net.Train(nn.TrainConfig{
		Epochs:    *epochs,
		BatchSize: *batch,
		Optimizer: optimizer,
		Cost:      cost,
		Seed:      *seed,
		OnEpoch: func(epoch int, loss float64) {
			if *quiet || epoch%*logInterval != 0 {
				return
			}
			fmt.Printf("Epoch %d complete. Error: %g.\n", epoch, loss)
		},
	})
	if err != nil {
		return err
	}
	fmt.Println("Training completed successfully.")

	if *outPath != "" {
		if err := checkpoint.Save(*outPath, net); err != nil {
			return err
		}
		fmt.Printf("Saved model to %s.\n", *outPath)
	}
	return nil
}

func parseLayers(spec string) ([]int, error) {
	fields := strings.Split(spec, ",")
	counts := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("bad layer count %q", f)
		}
		counts[i] = n
	}
	return counts, nil
}

func parseActivations(spec string) ([]nn.Activation, error) {
	fields := strings.Split(spec, ",")
	acts := make([]nn.Activation, len(fields))
	for i, f := range fields {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "sigmoid":
			acts[i] = nn.NewSigmoid()
		case "relu":
			acts[i] = nn.NewReLU()
		case "tanh":
			acts[i] = nn.NewTanh()
		case "step":
			acts[i] = nn.NewBinaryStep()
		case "leakyrelu":
			acts[i] = nn.NewLeakyReLU(0.01, 1)
		case "softmax":
			acts[i] = nn.NewSoftmax()
		case "softplus":
			acts[i] = nn.NewSoftplus()
		case "linear":
			acts[i] = nn.NewLinear()
		default:
			return nil, fmt.Errorf("unknown activation %q", f)
		}
	}
	return acts, nil
}

func parseCost(name string) (nn.Cost, error) {
	switch strings.ToLower(name) {
	case "leastsquares":
		return nn.NewLeastSquares(), nil
	case "meanabs":
		return nn.NewMeanAbsolute(), nil
	default:
		return nil, fmt.Errorf("unknown cost %q", name)
	}
}

func parseOptimizer(name string, lr, beta float64) (optim.Optimizer, error) {
	switch strings.ToLower(name) {
	case "sgd":
		return optim.NewSGD(optim.SGDConfig{LR: lr}), nil
	case "momentum":
		return optim.NewMomentum(optim.MomentumConfig{LR: lr, Beta: beta}), nil
	case "adagrad":
		return optim.NewAdaGrad(optim.AdaGradConfig{LR: lr}), nil
	case "adam":
		return optim.NewAdam(optim.AdamConfig{LR: lr}), nil
	default:
		return nil, fmt.Errorf("unknown optimizer %q", name)
	}
}
