package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/tablesafe-cli/internal/dataset"
	"github.com/KaramelBytes/tablesafe-cli/internal/detect"
	"github.com/KaramelBytes/tablesafe-cli/internal/split"
	"github.com/KaramelBytes/tablesafe-cli/internal/utils"
)

var (
	splitDelimiter string
	splitOutDir    string
	splitKeyColumn string
	splitExclude   []string
	splitKeywords  []string
	splitMaxRows   int
)

var splitCmd = &cobra.Command{
	Use:   "split <file>",
	Short: "Partition a dataset into a PII frame and a safe-to-share frame",
	Long: `Split runs PII detection, then writes two CSVs linked by a synthetic
join key: <base>.pii.csv holding the flagged columns and <base>.safe.csv
holding everything else. Columns named with --exclude stay in the safe frame
even when flagged; naming a column absent from the dataset is an error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		ropt := dataset.DefaultReadOptions()

		delimFlag := splitDelimiter
		if delimFlag == "" && cfg != nil {
			delimFlag = cfg.Delimiter
		}
		delim, err := parseDelimiter(delimFlag)
		if err != nil {
			return err
		}
		ropt.Delimiter = delim
		if splitMaxRows > 0 {
			ropt.MaxRows = splitMaxRows
		} else if cfg != nil {
			ropt.MaxRows = cfg.MaxRows
		}

		frame, err := dataset.ReadCSV(path, ropt)
		if err != nil {
			return err
		}

		exclude := splitExclude
		keyColumn := splitKeyColumn
		extra := splitKeywords
		if cfg != nil {
			exclude = append(append([]string(nil), cfg.Exclude...), exclude...)
			if keyColumn == "" {
				keyColumn = cfg.JoinKeyColumn
			}
			extra = append(append([]string(nil), cfg.ExtraKeywords...), extra...)
		}

		res, err := split.Split(frame, split.Options{
			KeyColumn: keyColumn,
			Exclude:   exclude,
			Detector:  detect.New(detect.WithKeywords(extra...)),
		})
		if err != nil {
			return err
		}

		outDir := splitOutDir
		if outDir == "" {
			outDir = filepath.Dir(path)
		}
		if err := utils.EnsureDir(outDir); err != nil {
			return fmt.Errorf("ensure output dir: %w", err)
		}
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		piiPath := filepath.Join(outDir, base+".pii.csv")
		safePath := filepath.Join(outDir, base+".safe.csv")
		if err := dataset.WriteCSV(res.PII, piiPath, ','); err != nil {
			return fmt.Errorf("write pii frame: %w", err)
		}
		if err := dataset.WriteCSV(res.Safe, safePath, ','); err != nil {
			return fmt.Errorf("write safe frame: %w", err)
		}

		fmt.Printf("✓ Wrote %d PII column(s) to %s\n", res.PII.Width()-1, piiPath)
		fmt.Printf("✓ Wrote %d safe column(s) to %s\n", res.Safe.Width()-1, safePath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(splitCmd)
	splitCmd.Flags().StringVar(&splitDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (auto-detect if omitted)")
	splitCmd.Flags().StringVarP(&splitOutDir, "out-dir", "d", "", "directory for the two output CSVs (default: alongside input)")
	splitCmd.Flags().StringVar(&splitKeyColumn, "key-column", "", "join key column name (default: join_key)")
	splitCmd.Flags().StringSliceVarP(&splitExclude, "exclude", "x", nil, "flagged columns to keep in the safe frame (repeatable)")
	splitCmd.Flags().StringSliceVar(&splitKeywords, "keyword", nil, "extra column-name keywords to flag (repeatable)")
	splitCmd.Flags().IntVar(&splitMaxRows, "max-rows", 0, "maximum rows to read (0 = unlimited)")
}
