// cmd/query.go
package cmd

import (
	"fmt"

	json "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/xkilldash9x/dragsense/internal/observability"
	"github.com/xkilldash9x/dragsense/pkg/dom"
)

// matchRecord is one selector match on query's stdout.
type matchRecord struct {
	Tag     string   `json:"tag"`
	ID      string   `json:"id,omitempty"`
	Classes []string `json:"classes,omitempty"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	Width   float64  `json:"width"`
	Height  float64  `json:"height"`
}

// newQueryCmd creates and configures the `query` command.
func newQueryCmd() *cobra.Command {
	queryCmd := &cobra.Command{
		Use:   "query <selector>",
		Short: "Lists the elements of a page matching a selector",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.GetLogger()

			pagePath, _ := cmd.Flags().GetString("page")
			layoutPath, _ := cmd.Flags().GetString("layout")

			doc, err := parsePage(pagePath, logger)
			if err != nil {
				return err
			}
			if layoutPath != "" {
				entries, err := loadLayout(layoutPath)
				if err != nil {
					return err
				}
				if err := applyLayout(doc, entries); err != nil {
					return err
				}
			}

			filter, err := dom.CompileFilter(args[0])
			if err != nil {
				return err
			}

			out := json.NewEncoder(cmd.OutOrStdout())
			for _, el := range doc.FindAll(filter) {
				bounds := el.Bounds()
				rec := matchRecord{
					Tag:     el.Tag(),
					ID:      el.ID(),
					Classes: el.Classes(),
					X:       bounds.X,
					Y:       bounds.Y,
					Width:   bounds.Width,
					Height:  bounds.Height,
				}
				if err := out.Encode(rec); err != nil {
					return fmt.Errorf("encode match: %w", err)
				}
			}
			return nil
		},
	}

	queryCmd.Flags().String("page", "", "HTML page to query (required)")
	queryCmd.Flags().String("layout", "", "JSON layout sidecar assigning element bounds")
	_ = queryCmd.MarkFlagRequired("page")

	return queryCmd
}
