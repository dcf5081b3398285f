package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/palemoky/tinci/internal/hanzi"
	"github.com/palemoky/tinci/internal/tools"
)

// run opens the configured corpus and passes its service to fn.
func run(fn func(svc *tools.Service) error) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a.Service)
}

func newJyutpingCmd() *cobra.Command {
	var showPinyin bool

	cmd := &cobra.Command{
		Use:   "jyutping <text>",
		Short: "Romanize text in jyutping",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := hanzi.NormalizeText(strings.Join(args, " "))
			return run(func(svc *tools.Service) error {
				res, err := svc.GetJyutping(tools.JyutpingArgs{Text: text})
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if jsonOutput {
					return printJSON(w, res)
				}
				fmt.Fprintln(w, res.Romanization)
				if showPinyin {
					fmt.Fprintln(w, hanzi.ToPinyin(text))
					for _, hint := range pinyinHints(text) {
						fmt.Fprintln(w, hint)
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&showPinyin, "pinyin", "p", false, "Also print the Mandarin pinyin")
	return cmd
}

// pinyinHints lists the Han characters of text with more than one Mandarin
// reading, e.g. "好: hao3/hao4". Each character is listed once.
func pinyinHints(text string) []string {
	var hints []string
	seen := make(map[rune]bool)
	for _, r := range text {
		if !hanzi.IsHan(r) || seen[r] {
			continue
		}
		seen[r] = true
		if readings := hanzi.PinyinReadings(string(r)); len(readings) > 1 {
			hints = append(hints, fmt.Sprintf("%c: %s", r, strings.Join(readings, "/")))
		}
	}
	return hints
}

func newPatternCmd() *cobra.Command {
	var system string

	cmd := &cobra.Command{
		Use:   "pattern <text>",
		Short: "Print the tone pattern of text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(svc *tools.Service) error {
				res, err := svc.GetTonePattern(tools.TonePatternArgs{
					Text:   hanzi.NormalizeText(strings.Join(args, " ")),
					System: system,
				})
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if jsonOutput {
					return printJSON(w, res)
				}
				return printPattern(w, res)
			})
		},
	}
	cmd.Flags().StringVarP(&system, "system", "s", "", "Tone system: 0243 or 1056")
	return cmd
}

func printPattern(w io.Writer, res *tools.TonePatternResult) error {
	fmt.Fprintf(w, "%s (%s)\n", res.Pattern, res.System)

	table := tablewriter.NewWriter(w)
	table.Header("Character", "Jyutping", "Tone", "Digit")
	for _, t := range res.Breakdown {
		tn := "-"
		if t.Tone != nil {
			tn = strconv.Itoa(*t.Tone)
		}
		_ = table.Append([]string{t.Character, orDash(t.Jyutping), tn, orDash(t.Mapped)})
	}
	return table.Render()
}

func newRhymesCmd() *cobra.Command {
	var (
		filter      string
		system      string
		limit       int
		targetTone  int
		targetGroup string
	)

	cmd := &cobra.Command{
		Use:   "rhymes <character>",
		Short: "List characters rhyming with a character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := tools.RhymesArgs{
				Character:  hanzi.TrimAllWhitespace(args[0]),
				ToneFilter: filter,
				System:     system,
				Limit:      limit,
			}
			if cmd.Flags().Changed("target-tone") {
				q.TargetTone = &targetTone
			}
			if cmd.Flags().Changed("target-group") {
				q.TargetGroup = &targetGroup
			}

			return run(func(svc *tools.Service) error {
				res, err := svc.GetRhymingCharacters(q)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if jsonOutput {
					return printJSON(w, res)
				}
				fmt.Fprintf(w, "%s %s, final %s, group %s (%s): showing %d of %d\n",
					res.Input.Character, res.Input.Jyutping, res.Final,
					res.Input.ToneGroup, res.System, res.Count, res.TotalCount)
				return printCharacters(w, res.Rhymes)
			})
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "Tone filter: all, same or group")
	cmd.Flags().StringVarP(&system, "system", "s", "", "Tone system: 0243 or 1056")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum number of results (0 = server default)")
	cmd.Flags().IntVar(&targetTone, "target-tone", 0, "Only list this tone (1-9)")
	cmd.Flags().StringVar(&targetGroup, "target-group", "", "Only list this tone group")
	return cmd
}

func newFinalsCmd() *cobra.Command {
	var (
		tn     int
		limit  int
		system string
	)

	cmd := &cobra.Command{
		Use:   "finals [final]",
		Short: "List the finals, or the characters of one final",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			return run(func(svc *tools.Service) error {
				if len(args) == 0 {
					res, err := svc.ListFinals()
					if err != nil {
						return err
					}
					if jsonOutput {
						return printJSON(w, res)
					}
					fmt.Fprintln(w, strings.Join(res.Finals, " "))
					return nil
				}

				q := tools.FinalArgs{Final: args[0], System: system, Limit: limit}
				if cmd.Flags().Changed("tone") {
					q.Tone = &tn
				}
				res, err := svc.GetCharactersByFinal(q)
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(w, res)
				}
				fmt.Fprintf(w, "final %s: showing %d of %d\n", res.Final, res.Count, res.TotalCount)
				return printCharacters(w, res.Characters)
			})
		},
	}
	cmd.Flags().IntVarP(&tn, "tone", "t", 0, "Only list this tone (1-9)")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum number of characters (0 = default)")
	cmd.Flags().StringVarP(&system, "system", "s", "", "Tone system: 0243 or 1056")
	return cmd
}

func newCallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "call <tool> [json-arguments]",
		Short: "Invoke a tool by name and print its JSON result",
		Long:  "Invoke a tool by name. Available tools: " + strings.Join(tools.Names(), ", "),
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw json.RawMessage
			if len(args) == 2 {
				raw = json.RawMessage(args[1])
			}
			return run(func(svc *tools.Service) error {
				res, err := svc.Call(args[0], raw)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			})
		},
	}
}
