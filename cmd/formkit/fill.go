package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/vango-dev/formkit/pkg/schema"
)

func fillCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "fill <schema.yaml>",
		Short: "Fill out a rule schema interactively",
		Long: `Fill out a form in the terminal, driven by a YAML rule schema.

Each declared field becomes a prompt. Answers are validated against
the schema; fields that fail are asked again with their violation
message. The valid result is printed as JSON, or written to a file
with --out.

Examples:
  formkit fill signup.yaml
  formkit fill signup.yaml --out answers.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFill(args[0], out)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Write answers to a file instead of stdout")

	return cmd
}

func runFill(schemaPath, out string) error {
	doc, err := schema.LoadYAMLFile(schemaPath)
	if err != nil {
		return err
	}

	printBanner()
	info("Filling %s", schemaPath)
	fmt.Println()

	values := make(map[string]any, len(doc.FieldSpecs()))
	for _, spec := range doc.FieldSpecs() {
		answer, err := ask(spec, "")
		if err != nil {
			return err
		}
		values[spec.Name] = answer
	}

	// Re-ask failing fields until the whole document validates.
	for {
		result := schema.Validate(doc, values)
		if result.Valid {
			break
		}
		if len(result.FieldErrors) == 0 {
			return fmt.Errorf("schema rejected the answers: %s", result.Message)
		}
		for _, spec := range doc.FieldSpecs() {
			msg, failing := result.FieldErrors[spec.Name]
			if !failing {
				continue
			}
			errorMsg("%s: %s", spec.Label, msg)
			answer, err := ask(spec, msg)
			if err != nil {
				return err
			}
			values[spec.Name] = answer
		}
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	if out == "" {
		fmt.Println()
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(out, append(data, '\n'), 0o644); err != nil {
		return err
	}
	success("Wrote %s", out)
	return nil
}

// ask prompts for one field, choosing the prompt style from the field's
// declared kind.
func ask(spec schema.FieldSpec, help string) (any, error) {
	switch spec.Kind {
	case "checkbox":
		var checked bool
		prompt := &survey.Confirm{Message: spec.Label, Help: help}
		if err := survey.AskOne(prompt, &checked); err != nil {
			return nil, err
		}
		return checked, nil

	case "password":
		var s string
		prompt := &survey.Password{Message: spec.Label, Help: help}
		if err := survey.AskOne(prompt, &s); err != nil {
			return nil, err
		}
		return s, nil

	case "number":
		var s string
		prompt := &survey.Input{Message: spec.Label, Help: help}
		if err := survey.AskOne(prompt, &s); err != nil {
			return nil, err
		}
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			return "", nil
		}
		if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return n, nil
		}
		return s, nil

	default:
		var s string
		prompt := &survey.Input{Message: spec.Label, Help: help}
		if err := survey.AskOne(prompt, &s); err != nil {
			return nil, err
		}
		return s, nil
	}
}
