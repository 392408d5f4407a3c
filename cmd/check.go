package cmd

import (
	"fmt"

	"github.com/mobiplan/taskdeps/internal/deps"
	"github.com/mobiplan/taskdeps/internal/logger"
	"github.com/mobiplan/taskdeps/internal/report"
	"github.com/mobiplan/taskdeps/internal/snapshot"
	"github.com/spf13/cobra"
)

var (
	checkTask   string
	graphJSON   bool
	graphDOT    bool
	failBlocked bool

	checkCmd = &cobra.Command{
		Use:   "check <snapshot.json>",
		Short: "Validate the tasks in a snapshot file",
		Long: `Loads a task snapshot from a JSON file, builds the dependency graph, and
reports per-task readiness together with any structural defects.

The snapshot format:

  {"tasks": [{"id": "a", "complete": true},
             {"id": "b", "dependsOn": ["a"]}]}`,
		Args: cobra.ExactArgs(1),
		RunE: runCheck,
	}
)

func init() {
	checkCmd.Flags().StringVar(&checkTask, "task", "", "Validate a single task id instead of the whole snapshot")
	checkCmd.Flags().BoolVar(&graphJSON, "graph", false, "Print the dependency graph as JSON instead of a report")
	checkCmd.Flags().BoolVar(&graphDOT, "dot", false, "Print the dependency graph in DOT format instead of a report")
	checkCmd.Flags().BoolVar(&failBlocked, "fail-on-blocked", false, "Exit non-zero if any task is blocked or has an integrity issue")
}

func runCheck(cmd *cobra.Command, args []string) error {
	records, err := snapshot.Load(args[0])
	if err != nil {
		return err
	}

	engine := deps.New(deps.WithLogger(logger.L()))
	engine.ApplySnapshot(records)

	stats := engine.Stats()
	logger.Debugf("loaded %d tasks with %d dependency edges", stats.Tasks, stats.Edges)

	switch {
	case graphJSON:
		data, err := engine.ExportJSON()
		if err != nil {
			return err
		}
		cmd.Println(string(data))
	case graphDOT:
		cmd.Print(engine.ExportDOT())
	case checkTask != "":
		res, err := engine.Validate(deps.TaskID(checkTask))
		if err != nil {
			return err
		}
		cmd.Print(report.Render([]deps.ValidationResult{res}))
	default:
		results := make([]deps.ValidationResult, 0, stats.Tasks)
		for _, id := range engine.TaskIDs() {
			res, err := engine.Validate(id)
			if err != nil {
				return err
			}
			results = append(results, res)
		}
		cmd.Print(report.Render(results))
	}

	if failBlocked {
		for _, id := range engine.TaskIDs() {
			res, err := engine.Validate(id)
			if err != nil {
				return err
			}
			if !res.Valid {
				return fmt.Errorf("task %s is not ready", id)
			}
		}
	}

	return nil
}
