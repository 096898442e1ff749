package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/tablesafe-cli/internal/dataset"
	"github.com/KaramelBytes/tablesafe-cli/internal/detect"
	"github.com/KaramelBytes/tablesafe-cli/internal/utils"
)

var (
	checkDelimiter  string
	checkFormat     string
	checkOutputPath string
	checkMaxRows    int
	checkKeywords   []string
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Scan a CSV/TSV for columns that likely contain PII",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		ropt := dataset.DefaultReadOptions()

		delimFlag := checkDelimiter
		if delimFlag == "" && cfg != nil {
			delimFlag = cfg.Delimiter
		}
		delim, err := parseDelimiter(delimFlag)
		if err != nil {
			return err
		}
		ropt.Delimiter = delim
		if checkMaxRows > 0 {
			ropt.MaxRows = checkMaxRows
		} else if cfg != nil {
			ropt.MaxRows = cfg.MaxRows
		}

		frame, err := dataset.ReadCSV(path, ropt)
		if err != nil {
			return err
		}

		extra := checkKeywords
		if cfg != nil {
			extra = append(append([]string(nil), cfg.ExtraKeywords...), extra...)
		}
		det := detect.New(detect.WithKeywords(extra...))
		rep := det.Check(frame)

		format := strings.ToLower(strings.TrimSpace(checkFormat))
		if format == "" {
			format = "markdown"
			if cfg != nil && cfg.Format != "" {
				format = cfg.Format
			}
		}
		var out []byte
		switch format {
		case "markdown", "md":
			out = []byte(rep.Markdown())
		case "yaml", "yml":
			out, err = yaml.Marshal(rep)
			if err != nil {
				return fmt.Errorf("marshal report: %w", err)
			}
		case "json":
			out, err = utils.PrettyJSON(rep)
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported --format: %s (use markdown|yaml|json)", format)
		}

		if checkOutputPath != "" {
			if err := os.WriteFile(checkOutputPath, out, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote report to %s\n", checkOutputPath)
			return nil
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (auto-detect if omitted)")
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "", "report format: markdown | yaml | json")
	checkCmd.Flags().StringVarP(&checkOutputPath, "output", "o", "", "optional path to write the report")
	checkCmd.Flags().IntVar(&checkMaxRows, "max-rows", 0, "maximum rows to read (0 = unlimited)")
	checkCmd.Flags().StringSliceVar(&checkKeywords, "keyword", nil, "extra column-name keywords to flag (repeatable)")
}
