package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (c *CommandLine) newImportCmd() *baseCmd {
	var out string
	var headers http.Header

	cmd := &cobra.Command{
		Use:   "import <url-or-file>",
		Short: "Convert a GraphQL schema to a doc source",
		Long: `import fetches a remote GraphQL endpoint, or reads a local JSON
introspection result, and converts it to a Markdown doc source. The
converted source can then be edited and built like any other.`,
		Example: "gqldoc import -o api.md https://api.example.com/graphql",
		Args:    cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			name := args[0]

			var rc io.ReadCloser
			var docName string
			if strings.HasPrefix(name, "http") || strings.HasPrefix(name, "ws") {
				u, err := url.Parse(name)
				if err != nil {
					return err
				}

				rc, err = fetch(ctx, &fetchClient{Client: http.DefaultClient}, u, headers)
				if err != nil {
					return err
				}
				docName = remoteDocName(u)
			} else {
				if filepath.Ext(name) != ".json" {
					return fmt.Errorf("gqldoc: expected a JSON introspection result: %s", name)
				}

				f, err := c.fs.Open(name)
				if err != nil {
					return err
				}

				rc, err = newConverter(f)
				if err != nil {
					f.Close()
					return err
				}

				base := filepath.Base(name)
				docName = base[:len(base)-len(filepath.Ext(base))]
			}
			defer rc.Close()

			if out == "" {
				out = docName + ".md"
			}

			zap.L().Info("writing doc source", zap.String("file", out))
			return afero.WriteReader(c.fs, out, rc)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "File to write the doc source to.")
	cmd.Flags().Var(&headerFlag{value: &headers}, "header", "Set headers used when fetching the source.")

	return &baseCmd{Command: cmd}
}
