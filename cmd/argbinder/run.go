// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-argbinder"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "argbinder",
		Short:        "argbinder calls functions with arguments taken from a document",
		SilenceUsage: true,
	}

	root.AddCommand((&runCmd{}).registerFlags())
	return root
}

type runCmd struct {
	file     string
	format   string
	logLevel string
	keys     []string
}

func (c *runCmd) registerFlags() *cobra.Command {
	r := &cobra.Command{
		Use:   "run <handler>",
		Short: "Run a handler against a document",
		Long: fmt.Sprintf("Run a handler against a document. Handlers: %s",
			strings.Join(handlerNames(), ", ")),
		Args: cobra.ExactArgs(1),
		RunE: c.run,
	}

	r.Flags().StringVarP(&c.file, "file", "f", "", "JSON or YAML document to read arguments from")
	r.Flags().StringVar(&c.format, "format", "", "document format: json or yaml (default from the file extension)")
	r.Flags().StringVar(&c.logLevel, "log-level", "warn", "log level")
	r.Flags().StringSliceVarP(&c.keys, "key", "k", nil, "keys to bind, in parameter order")
	_ = r.MarkFlagRequired("file")

	return r
}

func (c *runCmd) run(cmd *cobra.Command, args []string) error {
	h, ok := handlers[args[0]]
	if !ok {
		return fmt.Errorf("unknown handler %q, expected one of: %s",
			args[0], strings.Join(handlerNames(), ", "))
	}

	log := hclog.New(&hclog.LoggerOptions{
		Name:   "argbinder",
		Level:  hclog.LevelFromString(c.logLevel),
		Output: cmd.ErrOrStderr(),
	})

	src, err := c.load()
	if err != nil {
		return err
	}

	f, err := h.New(argbinder.Logger(log), argbinder.FuncName(args[0]))
	if err != nil {
		return err
	}

	b, err := f.Bind(h.args(c.keys)...)
	if err != nil {
		return err
	}

	var result argbinder.Result
	if h.Recv != nil {
		result = b.CallMethod(src, h.Recv())
	} else {
		result = b.Call(src)
	}
	if err := result.Err(); err != nil {
		return err
	}

	for i := 0; i < result.Len(); i++ {
		fmt.Fprintln(cmd.OutOrStdout(), result.Out(i))
	}

	return nil
}

// load reads the document as a source.
func (c *runCmd) load() (interface{}, error) {
	data, err := os.ReadFile(c.file)
	if err != nil {
		return nil, err
	}

	format := c.format
	if format == "" {
		switch strings.ToLower(filepath.Ext(c.file)) {
		case ".yaml", ".yml":
			format = "yaml"
		default:
			format = "json"
		}
	}

	switch format {
	case "json":
		return argbinder.ParseJSON(data)

	case "yaml":
		return argbinder.ParseYAML(data)

	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}
