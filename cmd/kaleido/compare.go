package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kaleido-ai/kaleido/internal/render"
)

func compareCmd() *cobra.Command {
	var (
		provider    string
		modelType   string
		interactive bool
		visualize   string
	)

	cmd := &cobra.Command{
		Use:   "compare [query]",
		Short: "Ask every matching model the same question",
		Long: `Fan the query out to every catalog model matching the provider and
model-type filters and show the answers side by side. Individual model
failures are reported in their slot and do not fail the command.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}

			if interactive {
				return runInteractive(a, provider, modelType, visualize)
			}

			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return errors.New("query is required (or use --interactive)")
			}
			return runCompare(a, query, provider, modelType, visualize)
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "all", "provider filter (openai|anthropic|huggingface|all)")
	cmd.Flags().StringVar(&modelType, "model-type", "all", "model type filter (base|instruct|fine-tuned|all)")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "read queries from stdin in a loop")
	cmd.Flags().StringVar(&visualize, "visualize", "", "write latency/token charts to the given HTML file")
	cmd.Flags().Lookup("visualize").NoOptDefVal = "comparison.html"

	return cmd
}

func runCompare(a *app, query, provider, modelType, visualize string) error {
	matrix, err := a.compare.Run(context.Background(), query, provider, modelType)
	if err != nil {
		return err
	}

	out := render.Stdout()
	out.Matrix(matrix)

	if visualize != "" {
		if err := render.WriteCharts(visualize, matrix); err != nil {
			return err
		}
		fmt.Printf("Charts written to %s\n", visualize)
	}
	return nil
}

func runInteractive(a *app, provider, modelType, visualize string) error {
	fmt.Println("Interactive comparison. Empty input keeps the current value; 'exit' quits.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		query, done := prompt(scanner, "query", "")
		if done || isQuit(query) {
			return scanner.Err()
		}
		if query == "" {
			continue
		}

		if answer, done := prompt(scanner, "provider", provider); done {
			return scanner.Err()
		} else if answer != "" {
			provider = answer
		}
		if answer, done := prompt(scanner, "model type", modelType); done {
			return scanner.Err()
		} else if answer != "" {
			modelType = answer
		}

		chartPath := ""
		if answer, done := prompt(scanner, "visualize? [y/N]", ""); done {
			return scanner.Err()
		} else if strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes") {
			chartPath = visualize
			if chartPath == "" {
				chartPath = "comparison.html"
			}
		}

		if err := runCompare(a, query, provider, modelType, chartPath); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
}

func prompt(scanner *bufio.Scanner, label, current string) (string, bool) {
	if current != "" && current != "all" {
		fmt.Printf("%s [%s]: ", label, current)
	} else {
		fmt.Printf("%s: ", label)
	}
	if !scanner.Scan() {
		fmt.Println()
		return "", true
	}
	return strings.TrimSpace(scanner.Text()), false
}

func isQuit(input string) bool {
	return strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit")
}
