package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/explorekit/sqlgen/pkg/config"
	"github.com/explorekit/sqlgen/pkg/core"
	"github.com/explorekit/sqlgen/pkg/sqlite"
)

var (
	cfgPath   string
	queryPath string
	verbose   bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:          "sqlgen",
	Short:        "Build and run SQL queries from declarative filter descriptors",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}

		zapCfg := zap.NewProductionConfig()
		if verbose || cfg.Verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Print the SQL for a query description",
	RunE: func(cmd *cobra.Command, args []string) error {
		props, err := loadProperties(queryPath)
		if err != nil {
			return err
		}
		query, err := core.BuildQuery(cfg.Table, props, rowLimit())
		if err != nil {
			return err
		}
		fmt.Println(query)
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build a query and execute it against the configured database",
	RunE: func(cmd *cobra.Command, args []string) error {
		props, err := loadProperties(queryPath)
		if err != nil {
			return err
		}

		db, err := sqlite.Open(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		executor := sqlite.NewExecutor(db, nil, logger)
		result, err := executor.Query(context.Background(), cfg.Table, props, rowLimit())
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		for _, row := range result.Rows {
			if err := enc.Encode(row); err != nil {
				return err
			}
		}
		return nil
	},
}

// loadProperties reads a JSON query description from path.
func loadProperties(path string) (*core.QueryProperties, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read query description: %w", err)
	}
	var props core.QueryProperties
	if err := json.Unmarshal(data, &props); err != nil {
		return nil, fmt.Errorf("failed to parse query description: %w", err)
	}
	for _, agg := range props.Aggregations {
		if !agg.IsStandard() {
			logger.Warn("unrecognized aggregation", zap.String("name", string(agg)))
		}
	}
	return &props, nil
}

// rowLimit maps the configured cap onto the builder's limit argument.
func rowLimit() int {
	if cfg.RowLimit > 0 {
		return cfg.RowLimit
	}
	return core.NoLimit
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "sqlgen.hcl", "path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	for _, cmd := range []*cobra.Command{buildCmd, runCmd} {
		cmd.Flags().StringVarP(&queryPath, "query", "f", "", "path to the query description (JSON)")
		_ = cmd.MarkFlagRequired("query")
		rootCmd.AddCommand(cmd)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
