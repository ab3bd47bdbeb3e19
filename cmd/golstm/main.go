package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/sartorproj/golstm/forecast"
	"github.com/sartorproj/golstm/lstm"
	"github.com/sartorproj/golstm/scale"
	"github.com/sartorproj/golstm/timeseries"
	"github.com/sartorproj/golstm/window"
)

var (
	cfgFile    string
	dataFile   string
	layout     string
	column     string
	key        string
	windowSize int
	horizon    int
	epochs     int
	hidden     int
	lr         float64
	seed       int64
	holdout    int
	format     string
	outputFile string
	daily      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "golstm",
		Short: "LSTM forecasting walkthrough for short daily time series",
		Long: `golstm fits a small two-layer LSTM regressor to a univariate daily
time series and forecasts ahead by autoregressive rollout.

The walkthrough runs top to bottom once: load a CSV, scale the values
into [0,1], slide a fixed-width window to build training pairs, train
for a fixed number of epochs, and roll the model forward to the horizon.

Examples:
  golstm --data confirmed.csv --key Hubei --horizon 12
  golstm --data cases.csv --layout column --column confirmed --holdout 8
  golstm --data confirmed.csv --daily --epochs 600 --format json`,
		RunE: run,
	}

	rootCmd.Flags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.Flags().StringVar(&dataFile, "data", "", "input CSV path")
	rootCmd.Flags().StringVar(&layout, "layout", "wide", "CSV layout: column, wide")
	rootCmd.Flags().StringVar(&column, "column", "", "value column name (column layout)")
	rootCmd.Flags().StringVar(&key, "key", "", "row key to select (wide layout)")
	rootCmd.Flags().IntVar(&windowSize, "window", 5, "history window length")
	rootCmd.Flags().IntVar(&horizon, "horizon", 12, "number of steps to forecast")
	rootCmd.Flags().IntVar(&epochs, "epochs", 400, "training epochs")
	rootCmd.Flags().IntVar(&hidden, "hidden", 16, "hidden units per LSTM layer")
	rootCmd.Flags().Float64Var(&lr, "lr", 0.05, "learning rate")
	rootCmd.Flags().Int64Var(&seed, "seed", 42, "weight initialization seed")
	rootCmd.Flags().IntVar(&holdout, "holdout", 0, "observations held out for accuracy evaluation")
	rootCmd.Flags().StringVar(&format, "format", "table", "output format: table, json")
	rootCmd.Flags().StringVar(&outputFile, "output", "", "save forecast CSV to this path")
	rootCmd.Flags().BoolVar(&daily, "daily", false, "difference cumulative totals into daily increments")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Override config with CLI flags
	if dataFile != "" {
		cfg.Data.File = dataFile
	}
	if cmd.Flags().Changed("layout") {
		cfg.Data.Layout = layout
	}
	if cmd.Flags().Changed("column") {
		cfg.Data.Column = column
	}
	if cmd.Flags().Changed("key") {
		cfg.Data.Key = key
	}
	if cmd.Flags().Changed("daily") {
		cfg.Data.Daily = daily
	}
	if cmd.Flags().Changed("window") {
		cfg.Model.Window = windowSize
	}
	if cmd.Flags().Changed("hidden") {
		cfg.Model.Hidden = hidden
	}
	if cmd.Flags().Changed("epochs") {
		cfg.Model.Epochs = epochs
	}
	if cmd.Flags().Changed("lr") {
		cfg.Model.LearningRate = lr
	}
	if cmd.Flags().Changed("seed") {
		cfg.Model.Seed = seed
	}
	if cmd.Flags().Changed("horizon") {
		cfg.Forecast.Horizon = horizon
	}
	if cmd.Flags().Changed("holdout") {
		cfg.Forecast.Holdout = holdout
	}
	if cmd.Flags().Changed("format") {
		cfg.Forecast.Format = format
	}
	if cmd.Flags().Changed("output") {
		cfg.Forecast.Output = outputFile
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	series, err := loadSeries(cfg)
	if err != nil {
		return fmt.Errorf("loading data: %w", err)
	}
	fmt.Printf("Loaded %d observations (%.0f to %.0f)\n", series.Len(), series.Min(), series.Max())

	if cfg.Data.Daily {
		series = series.Diff()
		fmt.Printf("Differenced to %d daily increments\n", series.Len())
	}
	if !series.IsFinite() {
		return fmt.Errorf("series contains a non-finite value")
	}

	result, err := analyze(series, cfg)
	if err != nil {
		return err
	}

	if cfg.Forecast.Output != "" {
		if err := timeseries.SaveCSV(result.forecastSeries, cfg.Forecast.Output, true); err != nil {
			return fmt.Errorf("saving forecast: %w", err)
		}
		fmt.Printf("Saved forecast to %s\n", cfg.Forecast.Output)
	}

	if cfg.Forecast.Format == "json" {
		return outputJSON(result)
	}
	return outputTable(result)
}

func loadSeries(cfg *Config) (*timeseries.Series, error) {
	if cfg.Data.Layout == "column" {
		opts := timeseries.DefaultCSVOptions()
		opts.ValueColumn = cfg.Data.Column
		return timeseries.LoadCSV(cfg.Data.File, opts)
	}

	opts := timeseries.DefaultWideCSVOptions()
	opts.KeyValue = cfg.Data.Key
	if cfg.Data.Offset > 0 {
		opts.ValueOffset = cfg.Data.Offset
	}
	return timeseries.LoadCSVWide(cfg.Data.File, opts)
}

// runResult collects everything the output stage needs.
type runResult struct {
	series         *timeseries.Series
	forecastSeries *timeseries.Series
	summary        *lstm.Summary
	losses         []epochLoss
	metrics        *forecast.Metrics
	holdout        int
}

type epochLoss struct {
	Epoch int     `json:"epoch"`
	Loss  float64 `json:"loss"`
}

// shouldReport says whether a loss line is kept for the given epoch:
// every `every` epochs, plus the final epoch.
func shouldReport(epoch, every, total int) bool {
	return epoch%every == 0 || epoch == total
}

// analyze performs the walkthrough: split, scale, window, fit, evaluate,
// forecast.
func analyze(series *timeseries.Series, cfg *Config) (*runResult, error) {
	n := series.Len()
	testSize := cfg.Forecast.Holdout
	if testSize >= n {
		return nil, fmt.Errorf("holdout %d must be smaller than the %d-observation series", testSize, n)
	}
	train := series.Slice(0, n-testSize)
	test := series.Slice(n-testSize, n)
	if testSize > 0 {
		fmt.Printf("Train: %d, Test: %d\n", train.Len(), test.Len())
	}

	// Fit the scaler on the training portion only, so nothing from the
	// held-out range leaks into the transform.
	scaler := scale.NewMinMax()
	if err := scaler.Fit(train.Values); err != nil {
		return nil, fmt.Errorf("fitting scaler: %w", err)
	}
	scaled, err := scaler.TransformAll(train.Values)
	if err != nil {
		return nil, err
	}

	pairs, err := window.Make(scaled, cfg.Model.Window)
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("series too short: %d observations produce no %d-wide training pairs",
			train.Len(), cfg.Model.Window)
	}
	fmt.Printf("Built %d training pairs (window=%d)\n\n", len(pairs), cfg.Model.Window)

	model, err := lstm.New(cfg.ModelConfig())
	if err != nil {
		return nil, err
	}

	bar := progressbar.NewOptions(cfg.Model.Epochs,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Training"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]█[reset]",
			SaucerHead:    "[green]█[reset]",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	var losses []epochLoss
	err = model.Fit(pairs, func(epoch int, loss float64) { // fires every epoch
		bar.Set(epoch)
		if shouldReport(epoch, cfg.Model.LogEvery, cfg.Model.Epochs) {
			losses = append(losses, epochLoss{Epoch: epoch, Loss: loss})
		}
	})
	if err != nil {
		return nil, fmt.Errorf("training: %w", err)
	}
	bar.Finish()
	fmt.Println()

	for _, l := range losses {
		fmt.Printf("   epoch %4d  loss %.6f\n", l.Epoch, l.Loss)
	}
	fmt.Println()

	result := &runResult{
		series:  series,
		summary: model.Summary(),
		losses:  losses,
		holdout: testSize,
	}

	fc, err := forecast.New(model, scaler, cfg.Model.Window)
	if err != nil {
		return nil, err
	}

	if testSize > 0 {
		predicted, err := fc.Forecast(train, testSize)
		if err != nil {
			return nil, fmt.Errorf("holdout evaluation: %w", err)
		}
		m := forecast.Accuracy(test.Values, predicted)
		result.metrics = &m
		fmt.Printf("Holdout accuracy over %d steps: RMSE=%.2f MAE=%.2f MAPE=%.1f%%\n\n",
			testSize, m.RMSE, m.MAE, m.MAPE)
	}

	forecasts, err := fc.Forecast(series, cfg.Forecast.Horizon)
	if err != nil {
		return nil, fmt.Errorf("forecasting: %w", err)
	}
	result.forecastSeries = forecastSeries(series, forecasts)

	return result, nil
}

// forecastSeries extends the input's timeline past its last observation.
func forecastSeries(series *timeseries.Series, forecasts []float64) *timeseries.Series {
	out := timeseries.New(forecasts)
	out.Name = series.Name + "_forecast"
	if len(series.Timestamps) != series.Len() || series.Len() == 0 {
		return out
	}
	last := series.Timestamps[series.Len()-1]
	for i := range out.Timestamps {
		out.Timestamps[i] = last.AddDate(0, 0, i+1)
	}
	return out
}

func outputTable(result *runResult) error {
	s := result.summary
	fmt.Printf("Model: 2-layer LSTM, hidden=%d, window=%d, %d epochs, final loss %.6f\n\n",
		s.HiddenSize, s.WindowSize, s.Epochs, s.FinalLoss)

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Step", "Date", "Forecast"}),
	)
	fs := result.forecastSeries
	for i, v := range fs.Values {
		date := "-"
		if i < len(fs.Timestamps) {
			date = fs.Timestamps[i].Format("2006-01-02")
		}
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			date,
			fmt.Sprintf("%.1f", v),
		})
	}
	table.Render()
	return nil
}

// jsonOutput holds run results for JSON export
type jsonOutput struct {
	Name      string            `json:"name"`
	NObs      int               `json:"n_obs"`
	Window    int               `json:"window"`
	Hidden    int               `json:"hidden"`
	Epochs    int               `json:"epochs"`
	FinalLoss float64           `json:"final_loss"`
	Losses    []epochLoss       `json:"losses"`
	Holdout   int               `json:"holdout,omitempty"`
	Metrics   *forecast.Metrics `json:"metrics,omitempty"`
	Dates     []string          `json:"dates"`
	Forecasts []float64         `json:"forecasts"`
}

func outputJSON(result *runResult) error {
	fs := result.forecastSeries
	dates := make([]string, 0, len(fs.Timestamps))
	for _, ts := range fs.Timestamps {
		dates = append(dates, ts.Format(time.DateOnly))
	}

	out := jsonOutput{
		Name:      result.series.Name,
		NObs:      result.series.Len(),
		Window:    result.summary.WindowSize,
		Hidden:    result.summary.HiddenSize,
		Epochs:    result.summary.Epochs,
		FinalLoss: result.summary.FinalLoss,
		Losses:    result.losses,
		Holdout:   result.holdout,
		Metrics:   result.metrics,
		Dates:     dates,
		Forecasts: fs.Values,
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
