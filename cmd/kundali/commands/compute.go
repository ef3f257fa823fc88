package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yanqian/kundali/internal/bootstrap"
	"github.com/yanqian/kundali/internal/domain/chart"
	"github.com/yanqian/kundali/internal/infra/config"
	"github.com/yanqian/kundali/pkg/logger"
)

var (
	computeFile   string
	computeStore  bool
	computeOwner  string
	computeOutput string
)

var computeCmd = &cobra.Command{
	Use:   "compute [json]",
	Short: "Compute natal charts from birth data",
	Long: `Compute one chart per birth record. Input is a JSON object or an array of
objects with the keys name, dob (YYYY-MM-DD), tob (HH:MM[:SS]), place, lat,
lon and tz. Input is read from the argument, --file, or stdin.

Examples:
  kundali compute '{"name":"Asha","dob":"1990-06-15","tob":"10:30","lat":28.6139,"lon":77.209,"tz":"IST"}'
  kundali compute --file people.json --output json
  kundali compute --file people.json --store --owner asha`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompute,
}

func init() {
	rootCmd.AddCommand(computeCmd)

	computeCmd.Flags().StringVarP(&computeFile, "file", "f", "", "read birth data from a JSON file")
	computeCmd.Flags().BoolVar(&computeStore, "store", false, "persist charts to the configured store")
	computeCmd.Flags().StringVar(&computeOwner, "owner", "cli", "owner recorded with stored charts")
	computeCmd.Flags().StringVarP(&computeOutput, "output", "o", "table", "output format (table|json)")
}

func runCompute(cmd *cobra.Command, args []string) error {
	if computeOutput != "table" && computeOutput != "json" {
		return fmt.Errorf("unknown output format %q", computeOutput)
	}
	raw, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	reqs, batch, err := parseRequests(raw)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.NewWithWriter(os.Stderr)

	build := bootstrap.InitializePreviewService
	if computeStore {
		build = bootstrap.InitializeChartService
	}
	svc, cleanup, err := build(cfg, log)
	if err != nil {
		return fmt.Errorf("initialize chart service: %w", err)
	}
	defer cleanup()

	ctx := cmd.Context()
	var (
		results []chart.Response
		failed  int
	)
	for i, req := range reqs {
		var resp chart.Response
		if computeStore {
			resp, err = svc.Create(ctx, computeOwner, req)
		} else {
			resp, err = svc.Preview(ctx, req)
		}
		if err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "record %d (%s): %v\n", i+1, req.Name, err)
			continue
		}
		results = append(results, resp)
	}

	if err := render(cmd.OutOrStdout(), computeOutput, results, batch); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d records failed", failed, len(reqs))
	}
	return nil
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	switch {
	case computeFile != "":
		data, err := os.ReadFile(computeFile)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", computeFile, err)
		}
		return data, nil
	case len(args) == 1:
		return []byte(args[0]), nil
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
}

func render(w io.Writer, format string, results []chart.Response, batch bool) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if !batch && len(results) == 1 {
			return enc.Encode(results[0])
		}
		if results == nil {
			results = []chart.Response{}
		}
		return enc.Encode(results)
	}
	for i, resp := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := writeChartTable(w, resp); err != nil {
			return err
		}
	}
	return nil
}
