// Package cmd implements the downify command-line interface.
package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/downify/downify/inline"
	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inlineCmd)
	inlineCmd.AddCommand(inlineSchemaCmd)
}

// inlineCmd groups helpers for scripting against the json output of extract and download.
var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Helpers for scripting against the structured output",
}

// inlineSchemaCmd prints the JSON Schema of the structured output.
var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema of the extract and download json output",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "entry", "media", "file", "job", "output":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(reflector.Reflect(&inline.Output{})))
	},
}
