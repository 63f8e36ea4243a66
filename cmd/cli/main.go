package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"goeda/adapters/export"
	"goeda/adapters/htmlreport"
	"goeda/adapters/ingest"
	"goeda/adapters/kaggle"
	"goeda/app"
	"goeda/domain/dataset"
	"goeda/domain/pipeline"
	"goeda/internal"
	"goeda/internal/config"
)

const version = "1.0.0"

func main() {
	// Optional .env overrides (LOG_LEVEL etc.); missing file is fine
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:     "goeda",
		Short:   "goeda: automated exploratory data analysis reports",
		Version: version,
	}
	rootCmd.AddCommand(newRunCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var configPath string
	var profile bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the EDA pipeline from a config file or the interactive wizard",
		Long: `Runs the automated EDA process.

With --config, the analysis plan is read from a YAML file. Without it, an
interactive wizard builds the plan step by step and offers to save it.

Example: goeda run --config config.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalysis(configPath, profile)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a configuration YAML file")
	cmd.Flags().BoolVar(&profile, "profile", false, "Enable CPU profiling for the run")

	return cmd
}

func runAnalysis(configPath string, profile bool) error {
	log := internal.DefaultLogger

	var cfg *config.Config
	var err error
	if configPath != "" {
		log.Info("running in file mode, loading configuration from %s", configPath)
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
	} else {
		cfg, err = runWizard(log)
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if profile {
		profPath := filepath.Join(cfg.OutputDir, "goeda_profile.prof")
		f, err := os.Create(profPath)
		if err != nil {
			return fmt.Errorf("create profile file: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
		log.Info("CPU profile will be written to %s", profPath)
	}

	inputPath := cfg.InputFile
	if kaggle.IsKaggleRef(inputPath) {
		inputPath, err = kaggle.NewHandler(log).Download(inputPath, filepath.Join(cfg.OutputDir, "data"))
		if err != nil {
			return err
		}
	}

	log.Info("loading data from %s", inputPath)
	ds, err := ingest.NewDataReader(inputPath).ReadData()
	if err != nil {
		return err
	}

	analyzer := app.NewAnalyzer(ds, cfg, htmlreport.NewAssembler(log), log)
	data, err := analyzer.Run()
	if err != nil {
		return err
	}

	if err := export.NewDeckExporter(log).Export(data, cfg.OutputDir); err != nil {
		// The report itself succeeded; a deck failure only degrades the run
		log.Warn("summary deck export failed: %v", err)
	}

	for _, issue := range analyzer.Issues() {
		log.Warn("step %s was skipped or degraded: %v", issue.Step, issue.Cause)
	}
	log.Info("analysis complete, report saved in %s", cfg.OutputDir)
	return nil
}

// runWizard walks the user through building a configuration interactively.
func runWizard(log *internal.Logger) (*config.Config, error) {
	in := bufio.NewReader(os.Stdin)
	fmt.Println("goeda interactive setup wizard")
	fmt.Println("Let's configure your EDA report step by step.")

	var ds *dataset.Dataset
	var inputFile string
	for {
		inputFile = prompt(in, "Enter the path to your input data file", "")
		if inputFile == "" {
			fmt.Println("File not found. Please enter a valid path.")
			continue
		}
		var err error
		ds, err = ingest.NewDataReader(inputFile).ReadData()
		if err == nil {
			break
		}
		fmt.Printf("Error: %v. Please choose a different file.\n", err)
	}

	outputDir := prompt(in, "Enter the output directory", "output")
	stem := strings.TrimSuffix(filepath.Base(inputFile), filepath.Ext(inputFile))
	title := prompt(in, "Enter the report title", "EDA Report for "+stem)

	fmt.Printf("Available columns: %s\n", strings.Join(ds.ColumnNames(), ", "))
	target := prompt(in, "Enter the target variable (or press Enter to skip)", "")
	if target != "" && !ds.HasColumn(target) {
		fmt.Printf("Warning: column %q not found. Proceeding without a target.\n", target)
		target = ""
	}

	cfg := &config.Config{
		InputFile:      inputFile,
		OutputDir:      outputDir,
		ReportTitle:    title,
		TargetVariable: target,
	}

	fmt.Println("Select the analysis steps to perform:")
	if confirm(in, "Generate data profile (overview, missing values, etc.)?") {
		cfg.AnalysisPipeline = append(cfg.AnalysisPipeline, pipeline.Step{
			Profile: &pipeline.ProfileParams{Enabled: true},
		})
	}
	if confirm(in, "Generate univariate analysis (plots for single columns)?") {
		cfg.AnalysisPipeline = append(cfg.AnalysisPipeline, pipeline.Step{
			Univariate: &pipeline.UnivariateParams{
				Enabled:   true,
				PlotTypes: pipeline.DefaultUnivariatePlotTypes(),
			},
		})
	}
	if target != "" && confirm(in, fmt.Sprintf("Generate bivariate analysis (features vs. %q)?", target)) {
		cfg.AnalysisPipeline = append(cfg.AnalysisPipeline, pipeline.Step{
			Bivariate: &pipeline.BivariateParams{Enabled: true, TargetCentric: true},
		})
	}
	if confirm(in, "Generate multivariate analysis (correlation matrix)?") {
		cfg.AnalysisPipeline = append(cfg.AnalysisPipeline, pipeline.Step{
			Multivariate: &pipeline.MultivariateParams{Enabled: true},
		})
	}

	if confirm(in, "Save this configuration to 'config.yaml' for future use?") {
		if err := saveConfig(cfg, "config.yaml"); err != nil {
			log.Warn("could not save config.yaml: %v", err)
		} else {
			fmt.Println("Configuration saved to 'config.yaml'.")
		}
	}

	return cfg, nil
}

func saveConfig(cfg *config.Config, path string) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}

func prompt(in *bufio.Reader, question, def string) string {
	if def != "" {
		fmt.Printf("%s [%s]: ", question, def)
	} else {
		fmt.Printf("%s: ", question)
	}
	line, _ := in.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	return line
}

func confirm(in *bufio.Reader, question string) bool {
	answer := prompt(in, question+" [Y/n]", "y")
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}
