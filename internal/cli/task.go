package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kanbankarma/karma/internal/api"
	"github.com/kanbankarma/karma/internal/model"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your tasks by column",
	RunE:  runTaskList,
}

var taskAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Create a task",
	Long: `Create a task.

Examples:
  karma task add "Write release notes"
  karma task add "Fix login bug" --board abc123 --color "#FF6B6B"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTaskAdd,
}

var taskMoveCmd = &cobra.Command{
	Use:   "move [id] [status]",
	Short: "Move a task to another column (todo, in-progress, done)",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskMove,
}

var taskRmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskRm,
}

var (
	taskBoard  string
	taskStatus string
	taskColor  string
	listBoard  string
)

func init() {
	taskAddCmd.Flags().StringVar(&taskBoard, "board", "", "Board to add the task to")
	taskAddCmd.Flags().StringVar(&taskStatus, "status", "todo", "Starting column (todo, in-progress, done)")
	taskAddCmd.Flags().StringVar(&taskColor, "color", "", "Card color, e.g. #4ECDC4")
	taskListCmd.Flags().StringVar(&listBoard, "board", "", "Only show tasks on this board")

	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskMoveCmd)
	taskCmd.AddCommand(taskRmCmd)
}

func runTaskList(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	tasks, err := client.Tasks()
	if err != nil {
		return err
	}

	for _, status := range model.Statuses {
		fmt.Printf("%s:\n", status)
		for _, t := range tasks {
			if t.Status != status {
				continue
			}
			if listBoard != "" && t.BoardID != listBoard {
				continue
			}
			fmt.Printf("  %s  %s\n", t.ID, t.Title)
		}
	}
	return nil
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	if !model.Status(taskStatus).Valid() {
		return fmt.Errorf("invalid status %q, want todo, in-progress or done", taskStatus)
	}

	task, err := client.CreateTask(api.NewTask{
		Title:   strings.Join(args, " "),
		Status:  taskStatus,
		Color:   taskColor,
		BoardID: taskBoard,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added %q to %s (%s)\n", task.Title, task.Status, task.ID)
	return nil
}

func runTaskMove(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	status := model.Status(args[1])
	if !status.Valid() {
		return fmt.Errorf("invalid status %q, want todo, in-progress or done", args[1])
	}

	if err := client.MoveTask(args[0], status); err != nil {
		return err
	}

	fmt.Printf("Moved to %s\n", status)
	return nil
}

func runTaskRm(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	if err := client.DeleteTask(args[0]); err != nil {
		return err
	}

	fmt.Println("Task deleted.")
	return nil
}
