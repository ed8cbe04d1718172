package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Manage boards",
}

var boardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your boards",
	RunE:  runBoardList,
}

var boardAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Create a board",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBoardAdd,
}

var boardRenameCmd = &cobra.Command{
	Use:   "rename [id] [title]",
	Short: "Rename a board",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runBoardRename,
}

var boardRmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete a board and its tasks",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoardRm,
}

func init() {
	boardCmd.AddCommand(boardListCmd)
	boardCmd.AddCommand(boardAddCmd)
	boardCmd.AddCommand(boardRenameCmd)
	boardCmd.AddCommand(boardRmCmd)
}

func runBoardList(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	boards, err := client.Boards()
	if err != nil {
		return err
	}

	if len(boards) == 0 {
		fmt.Println("No boards yet. Create one with 'karma board add'.")
		return nil
	}
	for _, b := range boards {
		fmt.Printf("%s  %s\n", b.ID, b.Title)
	}
	return nil
}

func runBoardAdd(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	title := strings.Join(args, " ")
	board, err := client.CreateBoard(title)
	if err != nil {
		return err
	}

	fmt.Printf("Created board %q (%s)\n", board.Title, board.ID)
	return nil
}

func runBoardRename(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	id := args[0]
	title := strings.Join(args[1:], " ")
	if err := client.RenameBoard(id, title); err != nil {
		return err
	}

	fmt.Printf("Renamed board to %q\n", title)
	return nil
}

func runBoardRm(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	if err := client.DeleteBoard(args[0]); err != nil {
		return err
	}

	fmt.Println("Board deleted.")
	return nil
}
