package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/tinytask-cli/tinytask/internal/ui"
	"github.com/tinytask-cli/tinytask/models"
	"github.com/tinytask-cli/tinytask/store"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live-render the task list as it changes",
	Long: `Watch the storage directory and re-render the pending task list every
time the task document changes. Stop with Ctrl-C.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory, not the file: the store replaces the document
	// via rename, which retires the old inode.
	if err := watcher.Add(s.Dir()); err != nil {
		return fmt.Errorf("failed to watch %s: %w", s.Dir(), err)
	}

	render := func() {
		tasks, err := s.List(store.ListFilter{Now: time.Now()})
		if err != nil {
			PrintError("Could not read tasks.", err)
			return
		}
		tasks = models.SortForDisplay(tasks, time.Now())

		fmt.Print("\033[2J\033[H") // clear screen, cursor home
		fmt.Println(ui.StyleHeader.Render("tinytask — watching " + s.Dir()))
		if len(tasks) == 0 {
			fmt.Println("No pending tasks.")
		} else {
			fmt.Println(ui.RenderTaskList(tasks))
		}
		fmt.Println(ui.StyleSubtle.Render(time.Now().Format("15:04:05") + "  Ctrl-C to stop"))
	}
	render()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	// Editors and the store itself fire bursts of events per save, so
	// coalesce them before re-rendering.
	const debounce = 250 * time.Millisecond
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filepath.Base(s.TasksPath()) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			LogError("watch error", err)
		case <-timer.C:
			render()
		}
	}
}
