package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/henderiw/rangedial/pkg/config"
	"github.com/henderiw/rangedial/pkg/slider"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/klog/v2"
)

func main() {
	klog.InitFlags(nil)
	configPath := flag.String("config", "", "slider configuration file")
	scriptPath := flag.String("script", "", "gesture script to replay")
	flag.Parse()
	defer klog.Flush()

	log := klog.NewKlogr().WithName("rangedial")
	if err := run(*configPath, *scriptPath, os.Stdout, log); err != nil {
		log.Error(err, "replay failed")
		klog.Flush()
		os.Exit(1)
	}
}

func run(configPath, scriptPath string, out io.Writer, log logr.Logger) error {
	if configPath == "" || scriptPath == "" {
		return fmt.Errorf("both -config and -script are required")
	}
	f, err := config.Load(configPath)
	if err != nil {
		return err
	}
	script, err := config.LoadScript(scriptPath)
	if err != nil {
		return err
	}
	return replay(f, script, out, log)
}

// printer writes every event as one line.
type printer struct {
	out io.Writer
}

func (r printer) RangeChanged(id uuid.UUID, lower, upper float64) {
	fmt.Fprintf(r.out, "changed %s %g %g\n", id, lower, upper)
}

func (r printer) TouchedValue(value float64) {
	fmt.Fprintf(r.out, "touched %g\n", value)
}

func (r printer) InsertionRejected(lower, upper float64) {
	fmt.Fprintf(r.out, "rejected %g %g\n", lower, upper)
}

func replay(f *config.File, script *config.Script, out io.Writer, log logr.Logger) error {
	m, err := f.NewManager(slider.WithLogger(log), slider.WithEventHandler(printer{out: out}))
	if err != nil {
		return err
	}
	for _, rg := range m.Ranges() {
		fmt.Fprintf(out, "range %s\n", rg)
	}

	for i, step := range script.Steps {
		log.V(1).Info("step", "index", i, "action", step.Action)
		switch step.Action {
		case config.ActionDown:
			hit, err := m.PointerDown(step.Target(f.Center(), f.Radius()))
			if err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
			fmt.Fprintf(out, "hit %s\n", hit)
		case config.ActionMove:
			if err := m.PointerMove(step.Target(f.Center(), f.Radius())); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
		case config.ActionUp:
			m.PointerUp()
		case config.ActionCancel:
			m.Cancel()
		case config.ActionAdd:
			rg, ok, err := m.AddRange(step.Lower, step.Upper, labels.Set(step.Labels))
			if err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
			if ok {
				fmt.Fprintf(out, "added %s\n", rg)
			}
		case config.ActionAddAt:
			// touching inside a range removes it, otherwise a range is added
			if rg, ok := m.RangeAtValue(step.Value); ok {
				if err := m.RemoveRange(rg.ID); err != nil {
					return fmt.Errorf("step %d: %w", i, err)
				}
				fmt.Fprintf(out, "removed %s\n", rg.ID)
				continue
			}
			rg, ok, err := m.AddRangeAt(step.Value, labels.Set(step.Labels))
			if err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
			if ok {
				fmt.Fprintf(out, "added %s\n", rg)
			}
		case config.ActionRemove:
			selector, err := labels.Parse(step.Selector)
			if err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
			n, err := m.RemoveByLabel(selector)
			if err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
			fmt.Fprintf(out, "removed %d\n", n)
		}
	}
	return nil
}
