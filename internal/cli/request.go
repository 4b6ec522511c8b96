package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mark3labs/statsapi"
)

const paramsHelp = "Parameters are given as name=value pairs. Path and query parameters share one namespace; " +
	"query parameters keep the order they are given in."

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <endpoint> [name=value...]",
		Short: "Call an endpoint and print the JSON response",
		Long:  "Call an endpoint and print the response. " + paramsHelp,
		Example: strings.TrimSpace(`  statsapi get team teamId=143 hydrate=league
  statsapi get schedule sportId=1 date=04/24/2019 -o yaml`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, name, params, opts, err := requestArgs(cmd, args)
			if err != nil {
				return err
			}
			body, err := s.client.Get(cmd.Context(), name, params, opts...)
			if err != nil {
				return friendlyError(err)
			}
			return s.print(body)
		},
	}
	cmd.Flags().Bool("force", false, "Pass undeclared parameters through and skip required checks")
	return cmd
}

func newURLCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "url <endpoint> [name=value...]",
		Short: "Print the resolved request URL without calling it",
		Long:  "Resolve the request URL for an endpoint. " + paramsHelp,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, name, params, opts, err := requestArgs(cmd, args)
			if err != nil {
				return err
			}
			req, err := s.client.ResolveContext(cmd.Context(), name, params, opts...)
			if err != nil {
				return friendlyError(err)
			}
			_, err = fmt.Fprintln(s.out, req.URL)
			return err
		},
	}
	cmd.Flags().Bool("force", false, "Pass undeclared parameters through and skip required checks")
	return cmd
}

func requestArgs(cmd *cobra.Command, args []string) (*session, string, statsapi.Params, []statsapi.CallOption, error) {
	params, err := parseParams(args[1:])
	if err != nil {
		return nil, "", nil, nil, err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return nil, "", nil, nil, err
	}
	s, err := newSession(cmd)
	if err != nil {
		return nil, "", nil, nil, err
	}
	var opts []statsapi.CallOption
	if force {
		opts = append(opts, statsapi.Force())
	}
	return s, args[0], params, opts, nil
}

// parseParams reads name=value pairs in order. Repeating a name replaces
// its earlier value.
func parseParams(args []string) (statsapi.Params, error) {
	var params statsapi.Params
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, newUsageError(fmt.Sprintf("invalid parameter %q (want name=value)", arg))
		}
		params.Set(name, value)
	}
	return params, nil
}

func newNotesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notes <endpoint>",
		Short: "Describe the parameters of an endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			notes, err := s.client.Notes(args[0])
			if err != nil {
				return friendlyError(err)
			}
			_, err = fmt.Fprint(s.out, notes)
			return err
		},
	}
}

func newEndpointsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "endpoints",
		Short: "List endpoint names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			if s.cfg.Output == "text" {
				_, err = fmt.Fprintln(s.out, strings.Join(s.client.Endpoints(), "\n"))
				return err
			}
			return s.print(s.client.Endpoints())
		},
	}
}

func newMetaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "meta <type>",
		Short: "Print the lookup values of a meta type",
		Long:  "Print the lookup values of a meta type. Available types: " + strings.Join(statsapi.MetaTypes, ", ") + ".",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			body, err := s.client.Meta(cmd.Context(), args[0])
			if err != nil {
				return friendlyError(err)
			}
			return s.print(body)
		},
	}
}
