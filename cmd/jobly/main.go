package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"jobly/internal/jobly/config"
	"jobly/internal/jobly/dto"
	"jobly/internal/jobly/repository"
	"jobly/internal/jobly/service"
	"jobly/pkg/apperror"
	"jobly/pkg/logger"
	"jobly/pkg/postgres"

	"github.com/spf13/cobra"
)

var configPath string

// withJobService loads configuration, opens the database and hands a job
// service to fn. Everything is released before it returns.
func withJobService(fn func(ctx context.Context, svc service.JobService) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() { _ = appLogger.Sync() }()

	db, err := postgres.NewDB(postgres.Config{
		DSN:             cfg.Database.DSN(),
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	})
	if err != nil {
		appLogger.Error("Failed to initialize database", logger.ErrorField(err))
		return fmt.Errorf("initialize database: %w", err)
	}
	defer db.Close()

	jobRepo := repository.NewJobRepository(db.DB, appLogger)
	return fn(ctx, service.NewJobService(jobRepo, appLogger))
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, apperror.BadRequest("Invalid job ID: %s", arg)
	}
	return id, nil
}

func newJobsCmd() *cobra.Command {
	jobsCmd := &cobra.Command{
		Use:   "jobs",
		Short: "Create, query, update and delete job listings",
	}

	var (
		title     string
		minSalary int
		hasEquity bool
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := dto.JobFilter{Title: title, HasEquity: hasEquity}
			if cmd.Flags().Changed("min-salary") {
				filter.MinSalary = &minSalary
			}
			return withJobService(func(ctx context.Context, svc service.JobService) error {
				jobs, err := svc.GetAllJobs(ctx, filter)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), map[string]interface{}{"jobs": jobs})
			})
		},
	}
	listCmd.Flags().StringVar(&title, "title", "", "Case-insensitive title substring")
	listCmd.Flags().IntVar(&minSalary, "min-salary", 0, "Minimum salary, inclusive")
	listCmd.Flags().BoolVar(&hasEquity, "has-equity", false, "Only jobs offering equity")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withJobService(func(ctx context.Context, svc service.JobService) error {
				job, err := svc.GetJobByID(ctx, id)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), map[string]interface{}{"job": job})
			})
		},
	}

	companyCmd := &cobra.Command{
		Use:   "company <handle>",
		Short: "List the jobs of one company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJobService(func(ctx context.Context, svc service.JobService) error {
				jobs, err := svc.GetJobsByCompany(ctx, args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), map[string]interface{}{"jobs": jobs})
			})
		},
	}

	createCmd := &cobra.Command{
		Use:   "create <json>",
		Short: `Create a job from {"title", "salary", "equity", "companyHandle"}`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req dto.CreateJobRequest
			if err := json.Unmarshal([]byte(args[0]), &req); err != nil {
				return apperror.BadRequest("Invalid request payload: %v", err)
			}
			return withJobService(func(ctx context.Context, svc service.JobService) error {
				job, err := svc.CreateJob(ctx, &req)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), map[string]interface{}{"job": job})
			})
		},
	}

	updateCmd := &cobra.Command{
		Use:   "update <id> <json>",
		Short: "Change only the given fields of a job",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var req dto.UpdateJobRequest
			if err := json.Unmarshal([]byte(args[1]), &req); err != nil {
				return apperror.BadRequest("Invalid request payload: %v", err)
			}
			return withJobService(func(ctx context.Context, svc service.JobService) error {
				job, err := svc.UpdateJob(ctx, id, &req)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), map[string]interface{}{"job": job})
			})
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withJobService(func(ctx context.Context, svc service.JobService) error {
				if err := svc.DeleteJob(ctx, id); err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), map[string]interface{}{"deleted": id})
			})
		},
	}

	jobsCmd.AddCommand(listCmd, getCmd, companyCmd, createCmd, updateCmd, deleteCmd)
	return jobsCmd
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "jobly",
		Short:         "A CLI for the Jobly job listings database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-jobly.yaml", "Path to the configuration file")

	rootCmd.AddCommand(newJobsCmd())
	if err := rootCmd.Execute(); err != nil {
		_ = writeJSON(os.Stderr, dto.ErrorResponse{Error: dto.ErrorBody{
			Message: apperror.Message(err),
			Status:  apperror.StatusCode(err),
		}})
		os.Exit(1)
	}
}
