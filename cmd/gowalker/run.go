package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/samuelfneumann/gowalker/agent"
	"github.com/samuelfneumann/gowalker/agent/random"
	"github.com/samuelfneumann/gowalker/environment/envconfig"
	"github.com/samuelfneumann/gowalker/experiment"
	"github.com/samuelfneumann/gowalker/experiment/tracker"
	"github.com/samuelfneumann/gowalker/experiment/trackers"
	ts "github.com/samuelfneumann/gowalker/timestep"
	"github.com/samuelfneumann/gowalker/utils/progressbar"
)

const progressWidth = 40

// progress is a tracker.Tracker which advances a progress bar once per
// environment step
type progress struct {
	bar *progressbar.ManualProgressBar
}

func (p *progress) Track(t ts.TimeStep) {
	if t.First() {
		return
	}
	p.bar.Increment()
	p.bar.Display()
}

func (p *progress) Save() error {
	p.bar.Close()
	return nil
}

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run an agent online in the humanoid environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd)
		},
	}

	flags := cmd.Flags()
	flags.Uint(keySteps, 10000, "maximum number of environment steps")
	flags.Uint(keyEpisodes, 0, "maximum number of episodes, 0 for no limit")
	flags.String(keyAgent, string(agent.UniformRandom), "agent type, "+
		string(agent.UniformRandom)+" or "+string(agent.GaussianRandom))
	flags.Float64(keyStdDev, 0.3, "standard deviation of Gaussian agents")
	flags.Int64(keySeed, -1, "seed, the environment configuration seed if "+
		"negative")
	flags.String(keyOut, "runs", "directory in which run directories are "+
		"created")
	flags.Int(keyRenderEvery, 0, "render the world every n steps of an "+
		"episode, never if 0")
	flags.Int(keyPlotWindow, 10, "episodes averaged in the return plot")
	flags.Bool(keyProgress, false, "display a progress bar, only with a "+
		"single run")
	flags.Int(keyRuns, 1, "number of independent runs with consecutive "+
		"seeds")

	return cmd
}

func (a *app) run(cmd *cobra.Command) error {
	envConf, err := a.envConfig()
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	if seed := a.v.GetInt64(keySeed); seed >= 0 {
		envConf.Seed = uint64(seed)
	}

	agentConf := random.Config{
		Type:   agent.Type(a.v.GetString(keyAgent)),
		StdDev: a.v.GetFloat64(keyStdDev),
	}
	if err := agentConf.Validate(); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	runs := a.v.GetInt(keyRuns)
	if runs < 1 {
		return fmt.Errorf("run: number of runs must be positive \n\thave(%v)",
			runs)
	}

	dirs := make([]string, runs)
	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())
	for i := 0; i < runs; i++ {
		i := i
		c := envConf
		c.Seed = envConf.Seed + uint64(i)

		g.Go(func() error {
			dir, err := a.runOne(cmd, c, agentConf, runs == 1)
			dirs[i] = dir
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	for _, dir := range dirs {
		fmt.Fprintln(cmd.OutOrStdout(), dir)
	}
	return nil
}

// runOne runs a single experiment in a new run directory and returns
// the directory
func (a *app) runOne(cmd *cobra.Command, envConf envconfig.Config,
	agentConf random.Config, interactive bool) (string, error) {
	runID := uuid.New()
	dir := filepath.Join(a.v.GetString(keyOut), runID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("runOne: %w", err)
	}
	logger := a.logger.With(zap.Stringer("run", runID))

	if err := envConf.Save(filepath.Join(dir, "environment.yaml")); err != nil {
		return "", fmt.Errorf("runOne: %w", err)
	}

	returns := trackers.NewReturn(filepath.Join(dir, "return.bin"))
	t := []tracker.Tracker{
		returns,
		trackers.NewEpisodeLength(filepath.Join(dir, "length.bin")),
		trackers.NewEndType(filepath.Join(dir, "end.bin")),
	}
	steps := a.v.GetUint(keySteps)
	if interactive && a.v.GetBool(keyProgress) {
		bar := progressbar.NewManualProgressBar(cmd.ErrOrStderr(),
			progressWidth, int(steps))
		t = append(t, &progress{bar})
	}

	logger.Info("starting run",
		zap.String("dir", dir),
		zap.Uint("steps", steps),
		zap.String("agent", string(agentConf.Type)),
		zap.Uint64("seed", envConf.Seed),
	)

	expConf := experiment.Config{
		Type:        experiment.OnlineExp,
		MaxSteps:    steps,
		MaxEpisodes: a.v.GetUint(keyEpisodes),
		EnvConf:     envConf,
		AgentConf:   agentConf,
		RenderEvery: a.v.GetInt(keyRenderEvery),
		FramesDir:   filepath.Join(dir, "frames"),
	}
	exp, err := expConf.CreateExp(logger, t, nil)
	if err != nil {
		return "", fmt.Errorf("runOne: %w", err)
	}
	runErr := exp.Run()
	if err := exp.Save(); err != nil {
		return "", fmt.Errorf("runOne: %w", err)
	}
	if runErr != nil {
		return "", fmt.Errorf("runOne: %w", runErr)
	}

	if len(returns.Data()) > 0 {
		err := trackers.PlotReturns(returns.Data(), a.v.GetInt(keyPlotWindow),
			filepath.Join(dir, "return.png"))
		if err != nil {
			return "", fmt.Errorf("runOne: %w", err)
		}
	}

	logger.Info("run finished",
		zap.Uint("steps", exp.Steps()),
		zap.Uint("episodes", exp.Episodes()),
	)
	return dir, nil
}
