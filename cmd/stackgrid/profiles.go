package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/stackgrid/internal/config"
	"github.com/alexisbeaulieu97/stackgrid/internal/style"
	"github.com/alexisbeaulieu97/stackgrid/internal/transition"
)

type profilesOptions struct {
	jsonOutput bool
	configPath string
}

type profilesPayload struct {
	Profiles   []string          `json:"profiles"`
	Easings    map[string]string `json:"easings"`
	Transforms []string          `json:"transforms"`
}

func newProfilesCmd() *cobra.Command {
	opts := &profilesOptions{}

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List transition profiles, easing curves and transform properties",
		Long: `Profiles lists what a grid document can name. With --config the
document's transition script is loaded first and listed under its file name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfiles(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Grid document whose transition script should be listed")

	return cmd
}

func runProfiles(cmd *cobra.Command, opts *profilesOptions) error {
	if opts.configPath != "" {
		doc, err := config.ParseConfig(opts.configPath)
		if err != nil {
			return newCommandError("list profiles", "parsing "+opts.configPath, err, "Fix the reported field and try again.")
		}
		if _, err := doc.Options(); err != nil {
			return newCommandError("list profiles", "loading transitions", err, "")
		}
	}

	payload := profilesPayload{
		Profiles:   transition.Names(),
		Easings:    map[string]string{},
		Transforms: style.TransformProperties(),
	}
	for _, name := range transition.EasingNames() {
		e, err := transition.ParseEasing(name)
		if err != nil {
			return err
		}
		payload.Easings[name] = e.CSS()
	}

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}

	fmt.Fprintln(out, "Transition profiles:")
	for _, name := range payload.Profiles {
		fmt.Fprintf(out, "  %s\n", name)
	}
	fmt.Fprintln(out, "\nEasing curves:")
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, name := range transition.EasingNames() {
		fmt.Fprintf(tw, "  %s\t%s\n", name, payload.Easings[name])
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(out, "\nTransform properties:")
	fmt.Fprintf(out, "  %s\n", strings.Join(payload.Transforms, ", "))
	return nil
}
