package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strand-ui/strand/pkg/reactive"
)

func demoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo [counter|todo]",
		Short: "Run a terminal walkthrough of the reactive runtime",
		Long: `Run a small reactive program and print each step.

Two walkthroughs are available:

  counter   A counter signal with a derived doubled value.
  todo      A todo list with derived remaining-count and label.

Examples:
  strand demo counter
  strand demo todo`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"counter", "todo"},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "counter"
			if len(args) > 0 {
				name = args[0]
			}
			switch name {
			case "counter":
				runCounterDemo()
			case "todo":
				runTodoDemo()
			default:
				return fmt.Errorf("unknown demo %q", name)
			}
			return nil
		},
	}

	return cmd
}

func runCounterDemo() {
	printBanner()
	info("demo: counter")
	fmt.Println()

	store := reactive.NewStore()

	count := reactive.NewIntSignalIn(store, 0)
	doubled := reactive.NewMemoIn(store, func() int {
		return count.Get() * 2
	})

	count.Subscribe(func() {
		info("count changed, now %d (doubled %d)", count.Peek(), doubled.Peek())
	})

	success("created count=%d, doubled=%d", count.Peek(), doubled.Peek())

	for i := 0; i < 3; i++ {
		count.Inc()
	}
	count.Set(10)

	fmt.Println()
	success("final: count=%d doubled=%d", count.Peek(), doubled.Peek())

	stats := store.Stats()
	info("store: %d signals, %d writes, %d recomputes",
		stats.Signals, stats.Writes, stats.Recomputes)
}

type todoItem struct {
	Title string
	Done  bool
}

func runTodoDemo() {
	printBanner()
	info("demo: todo")
	fmt.Println()

	store := reactive.NewStore()

	todos := reactive.NewSignalIn(store, []todoItem{})

	remaining := reactive.NewMemoIn(store, func() int {
		n := 0
		for _, item := range todos.Get() {
			if !item.Done {
				n++
			}
		}
		return n
	})

	label := reactive.NewMemoIn(store, func() string {
		return fmt.Sprintf("%d of %d remaining", remaining.Get(), len(todos.Get()))
	})

	label.Subscribe(func() {
		info("%s", label.Peek())
	})

	add := func(title string) {
		todos.Update(func(items []todoItem) []todoItem {
			return append(items, todoItem{Title: title})
		})
		success("added %q", title)
	}

	toggle := func(i int) {
		todos.Update(func(items []todoItem) []todoItem {
			out := make([]todoItem, len(items))
			copy(out, items)
			out[i].Done = !out[i].Done
			return out
		})
		success("toggled #%d", i)
	}

	add("write the docs")
	add("wire the metrics")
	add("ship it")
	toggle(0)
	toggle(1)

	fmt.Println()
	for i, item := range todos.Peek() {
		mark := " "
		if item.Done {
			mark = "x"
		}
		info("[%s] %d. %s", mark, i, item.Title)
	}
	success("final: %s", label.Peek())
}
