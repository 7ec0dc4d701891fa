package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func reasonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reason <query>",
		Short: "Answer a question with structured reasoning and local tools",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			result, err := a.reasoner.Run(context.Background(), query)
			if err != nil {
				return err
			}

			if result.Reasoning != "" {
				fmt.Println(color.CyanString("REASONING"))
				fmt.Println(result.Reasoning)
				fmt.Println()
			}
			if result.ToolCall != "" {
				fmt.Println(color.CyanString("TOOL"))
				fmt.Printf("call:   %s\n", result.ToolCall)
				if result.ToolError != "" {
					fmt.Printf("error:  %s\n", color.RedString(result.ToolError))
				} else {
					fmt.Printf("result: %s\n", result.ToolResult)
				}
				fmt.Println()
			}

			fmt.Println(color.CyanString("ANSWER"))
			fmt.Println(result.FinalAnswer)
			fmt.Println()
			fmt.Println(color.New(color.Faint).Sprintf("model %s/%s | fallback %v",
				result.Provider, result.Model, result.UsedFallback))
			return nil
		},
	}
}
