// Package main provides the gradgraph CLI.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"

	"github.com/born-ml/gradgraph/autodiff"
	"github.com/born-ml/gradgraph/tensor"
)

const version = "v0.1.0-dev"

var (
	flagLen      = flag.Int("len", 3, "length of the demo input vectors")
	flagParallel = flag.Bool("parallel", false, "split operation kernels across CPUs")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	switch flag.Arg(0) {
	case "version":
		fmt.Printf("gradgraph %s\n", version)
	case "demo":
		if err := demo(*flagLen, *flagParallel); err != nil {
			klog.Errorf("demo failed: %+v", err)
			os.Exit(1)
		}
	default:
		fmt.Println("gradgraph - reverse-mode autodiff over a recorded graph")
		fmt.Printf("Version: %s\n\n", version)
		fmt.Println("Commands:")
		fmt.Println("  version    Show version")
		fmt.Println("  demo       Build c = a + b; d = c + a, run forward and backward")
		fmt.Println("")
		flag.PrintDefaults()
	}
}

// demo builds a two-operation chain and prints values and gradients.
func demo(n int, parallelKernels bool) error {
	cfg := tensor.DefaultGraphConfig()
	cfg.Name = "demo"
	if parallelKernels {
		cfg.Parallel = tensor.ParallelKernels()
	}
	g := tensor.NewGraphWithConfig(cfg)

	aData := make([]float64, n)
	bData := make([]float64, n)
	for i := range aData {
		aData[i] = float64(i + 1)
		bData[i] = float64(10 * (i + 1))
	}
	a := must.M1(tensor.FromSlice(g, aData)).WithName("a")
	b := must.M1(tensor.FromSlice(g, bData)).WithName("b")

	c, err := autodiff.Add(a, b)
	if err != nil {
		return err
	}
	d, err := autodiff.Add(c.WithName("c"), a)
	if err != nil {
		return err
	}
	d.WithName("d")

	if err := autodiff.Forward(g); err != nil {
		return err
	}
	if err := autodiff.Backward(d); err != nil {
		return err
	}

	for _, t := range []*tensor.Tensor[float64]{a, b, c, d} {
		if n <= 8 {
			fmt.Println(t)
		} else {
			fmt.Printf("%s: len=%s\n", t.Name(), humanize.Comma(int64(t.Len())))
		}
	}
	fmt.Print(g.Summary())
	return nil
}
