package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	yamlcodec "github.com/subaru-pfs/instdata/codec/yaml"
	"github.com/subaru-pfs/instdata/document"
	"github.com/subaru-pfs/instdata/store"
)

var errUnknownFormat = errors.New("unknown output format")

func newPathCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path <config|data> <name> [subdir...]",
		Short: "Print the file path of a document",
		Example: `  instdata path config foo bar
  # prints $PFS_INSTDATA_DIR/config/bar/foo.yaml`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := store.ParseKind(args[0])
			if err != nil {
				return err
			}

			path, err := opts.store().ResolvePath(kind, args[2:], args[1])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)

			return err
		},
	}
}

func newGetCmd(opts *globalOptions) *cobra.Command {
	var (
		section string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "get <config|data> <name> [subdir...]",
		Short: "Print a document or one of its sections",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := store.ParseKind(args[0])
			if err != nil {
				return err
			}

			doc, err := opts.store().LoadDocument(kind, args[1], args[2:]...)
			if err != nil {
				return err
			}

			if section != "" {
				sub, ok := doc.Lookup(section)
				if !ok {
					return fmt.Errorf("%w: section %q of %s", store.ErrNotFound, section,
						store.Ref{Kind: kind, SubDir: args[2:], Name: args[1]})
				}

				doc = sub
			}

			return writeDocument(cmd.OutOrStdout(), doc, format)
		},
	}

	cmd.Flags().StringVarP(&section, "section", "s", "", "colon-separated path into the document, e.g. motors:theta")
	cmd.Flags().StringVarP(&format, "format", "o", "yaml", "output format: yaml or json")

	return cmd
}

func writeDocument(w io.Writer, doc document.Value, format string) error {
	var (
		out []byte
		err error
	)

	switch strings.ToLower(format) {
	case "yaml", "":
		out, err = yamlcodec.NewCodec().Encode(doc)
	case "json":
		out, err = doc.MarshalJSON()
		out = append(out, '\n')
	default:
		return fmt.Errorf("%w: %q", errUnknownFormat, format)
	}

	if err != nil {
		return err
	}

	_, err = w.Write(out)

	return err
}

func newPutCmd(opts *globalOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "put <name> [subdir...]",
		Short: "Write a data document from a YAML file or standard input",
		Long: `put replaces data/<subdir...>/<name>.yaml with the YAML read from --file,
or from standard input when --file is "-". Config documents are never written.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			doc, err := yamlcodec.NewCodec().Decode(input)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", store.ErrParse, file, err)
			}

			return opts.store().DumpData(args[0], doc, args[1:]...)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", `YAML file to write, "-" for standard input`)

	return cmd
}

func readInput(stdin io.Reader, file string) ([]byte, error) {
	if file == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("%w: reading standard input: %w", store.ErrIO, err)
		}

		return data, nil
	}

	data, err := os.ReadFile(filepath.Clean(file))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrIO, err)
	}

	return data, nil
}
